package topics

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns the raw text of a topic into what gets printed. ext is the
// extension of the file the text came from, including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics untouched.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, _ string) string {
	return content
}

// GlamourRenderer renders markdown topics and reports for the terminal.
// Anything that is not markdown passes through.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to
	// a JSON style file. Empty or "auto" picks one from the terminal.
	Style string
	// Width wraps rendered text at this column. Zero keeps glamour's default.
	Width int
}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func isMarkdown(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var opts []glamour.TermRendererOption
	if r.Style == "" || r.Style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	return opts
}

// Render falls back to the raw content when glamour fails.
func (r *GlamourRenderer) Render(content string, ext string) string {
	if !isMarkdown(ext) {
		return content
	}
	tr, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
