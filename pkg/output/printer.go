// Package output writes anek's user facing messages: job headers, the
// command being run, diffs and errors. Results go to stdout and
// diagnostics to stderr, styled when the terminal supports it.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/anek/pkg/output/styles"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

// Arrow marks the end of a command header, before its output
const Arrow = "⇒"

// Printer writes styled messages
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	color bool
}

// New creates a printer over the given writers. color enables styling.
func New(out, errOut io.Writer, color bool) *Printer {
	return &Printer{Out: out, Err: errOut, color: color}
}

// Stdio creates a printer over stdout and stderr, styled when stderr is
// a color terminal and noColor is false.
func Stdio(noColor bool) *Printer {
	return New(os.Stdout, os.Stderr, !noColor && DetectColor(os.Stderr))
}

// Color reports whether the printer styles its output
func (p *Printer) Color() bool { return p.color }

// Style renders text with a named style, or returns it unchanged
func (p *Printer) Style(name, text string) string {
	if !p.color || text == "" {
		return text
	}
	return styles.GetStyle(name).Render(text)
}

// JobHeader prints "Job <index> [<i> of <total>]: <name>" to stderr
func (p *Printer) JobHeader(index, i, total int, name string) {
	fmt.Fprintln(p.Err, p.Style("JobHeader", fmt.Sprintf("Job %d [%d of %d]: %s", index, i, total, name)))
}

// Command prints "Command (<name>): " to stderr, the rendered command to
// stdout and the arrow to stderr.
func (p *Printer) Command(name, rendered string) {
	fmt.Fprint(p.Err, p.Style("CommandName", fmt.Sprintf("Command (%s): ", name)))
	fmt.Fprintln(p.Out, p.Style("Command", rendered))
	fmt.Fprintln(p.Err, p.Style("Arrow", Arrow))
}

// Line prints text to stdout
func (p *Printer) Line(text string) {
	fmt.Fprintln(p.Out, text)
}

// Linef prints formatted text to stdout
func (p *Printer) Linef(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Notice prints a muted message to stderr
func (p *Printer) Notice(format string, args ...interface{}) {
	fmt.Fprintln(p.Err, p.Style("Muted", fmt.Sprintf(format, args...)))
}

// Warn prints a warning to stderr
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintln(p.Err, p.Style("Warning", fmt.Sprintf(format, args...)))
}

// Error prints "Error: <err>" to stderr
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.Err, p.Style("Error", "Error:"), err)
}

// Timing prints the start time and elapsed duration to stderr
func (p *Printer) Timing(start time.Time, elapsed time.Duration) {
	fmt.Fprintf(p.Err, "%s: %s\n", p.Style("Timestamp", fmt.Sprintf("%-12s", "Started at")), start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(p.Err, "%s: %s\n", p.Style("Timestamp", fmt.Sprintf("%-12s", "Time Elapsed")), elapsed.Round(time.Millisecond))
}

// Highlight styles every occurrence of the terms in text
func (p *Printer) Highlight(text string, terms []string) string {
	if !p.color {
		return text
	}
	for _, term := range terms {
		if term == "" {
			continue
		}
		text = strings.ReplaceAll(text, term, p.Style("Highlight", term))
	}
	return text
}

// Template renders a template's source with its placeholders and
// sub-commands styled.
func (p *Printer) Template(t *template.Template) string {
	var b strings.Builder
	p.writeParts(&b, t.Parts())
	return b.String()
}

func (p *Printer) writeParts(b *strings.Builder, parts []template.Part) {
	for _, part := range parts {
		switch part.Kind {
		case template.LiteralPart:
			b.WriteString(part.Text)
		case template.PlaceholderPart:
			b.WriteString(p.Style("Placeholder", part.Text))
		case template.CommandPart:
			b.WriteString(p.Style("SubCommand", "$("))
			p.writeParts(b, part.Command.Parts())
			b.WriteString(p.Style("SubCommand", ")"))
		}
	}
}

// Change prints a variable update. New variables print as
// "<file>:: <var>: <new>", changed ones as
// "<file>:: <var>: <common><old> -> <common><new>" with the differing
// suffixes styled. Unchanged values print nothing.
func (p *Printer) Change(c variables.Change) {
	if !c.Existed {
		fmt.Fprintf(p.Out, "%s:: %s: %s\n", c.File, c.Variable, c.New)
		return
	}
	if !c.Changed() {
		return
	}
	common := commonPrefix(c.Old, c.New)
	fmt.Fprintf(p.Out, "%s:: %s: %s%s -> %s%s\n",
		c.File, c.Variable,
		common, p.Style("Removed", c.Old[len(common):]),
		common, p.Style("Added", c.New[len(common):]))
}

// VariableInfo prints "⇒ <name>: <summary>" with the name padded to 10
// columns, then each detail line indented.
func (p *Printer) VariableInfo(info types.VariableInfo) {
	fmt.Fprintf(p.Out, "%s %s: %s\n", p.Style("Arrow", Arrow), p.Style("CommandName", fmt.Sprintf("%-10s", info.Name)), info.Summary)
	for _, line := range info.Details {
		fmt.Fprintf(p.Out, "    %s\n", line)
	}
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}
