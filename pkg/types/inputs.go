package types

// CommandInputs is one job: the inputs a command is rendered against.
// Files are read and merged in order into Variables, later files winning.
type CommandInputs struct {
	// Index is the job's ordinal, the loop combination number for loops
	Index int
	// Name describes the inputs: input names, batch line or loop label
	Name      string
	Files     []string
	Variables VariableMap
}
