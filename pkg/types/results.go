package types

// RunResult holds the result of the 'run' command.
type RunResult struct {
	Jobs int `json:"jobs"`
	// Commands is the number of rendered commands
	Commands int `json:"commands"`
	// Failed counts commands that exited non-zero or failed the syntax check
	Failed int `json:"failed"`
}

// RenderResult holds the result of the 'render' command.
type RenderResult struct {
	Output string `json:"output"`
	Jobs   int    `json:"jobs"`
}

// ListResult holds the result of the 'list' command.
type ListResult struct {
	Entries []ListEntry `json:"entries"`
}

// ListEntry is one listed file. Prefix is the category directory when
// several categories are listed.
type ListEntry struct {
	Category Category `json:"category"`
	Prefix   string   `json:"prefix"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Matches  []Line   `json:"matches,omitempty"`
}

// Display returns the entry as shown by list, "<prefix>/<name>" or "<name>"
func (e ListEntry) Display() string {
	if e.Prefix == "" {
		return e.Name
	}
	return e.Prefix + "/" + e.Name
}

// NewResult holds the result of the 'new' command.
type NewResult struct {
	Root      string   `json:"root"`
	Variables []string `json:"variables"`
}

// VariableInfo describes a variable file: its first line and the rest
type VariableInfo struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Details []string `json:"details,omitempty"`
}

// VariableResult holds the result of the 'variable' command.
type VariableResult struct {
	// New are scanned variables without a variable file
	New []string `json:"new"`
	// Added are the variable files created for New
	Added []string       `json:"added"`
	Infos []VariableInfo `json:"infos"`
}

// ShowResult holds the result of the 'show' command.
type ShowResult struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	// IsCommand is set for command files, shown as templates
	IsCommand bool `json:"isCommand"`
}

// ReportResult holds the result of the 'report' command.
type ReportResult struct {
	Content string `json:"content"`
	// Path is the written report, empty when not written
	Path string `json:"path"`
}

// ExportResult holds the result of the 'export' command.
type ExportResult struct {
	Output string `json:"output"`
	Rows   int    `json:"rows"`
}

// GraphResult holds the result of the 'graph' command.
type GraphResult struct {
	Dot   string `json:"dot"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}
