package types

import "fmt"

// Line is a meaningful line of a configuration file. Number is the line's
// position in its source file, or its compacted position after renumbering.
type Line struct {
	Number int
	Text   string
	Source string
}

func (l Line) String() string {
	return fmt.Sprintf("%d: %s", l.Number, l.Text)
}

// Texts returns the text of every line in order
func Texts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}
