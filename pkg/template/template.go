package template

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
)

// Quote delimits literal fallback alternatives
const Quote = '"'

// PartKind identifies the kind of a template part
type PartKind int

const (
	// LiteralPart is plain text
	LiteralPart PartKind = iota
	// PlaceholderPart is a {...} substitution
	PlaceholderPart
	// CommandPart is a $(...) sub-command
	CommandPart
)

// Alternative is one ?-separated option of a placeholder
type Alternative struct {
	// Name of the variable, empty for literal alternatives
	Name string
	// Literal is the fallback text when IsLiteral is set
	Literal   string
	IsLiteral bool
}

// Part is one piece of a parsed template
type Part struct {
	Kind PartKind
	// Text is the literal text, or the source text of placeholders and commands
	Text         string
	Alternatives []Alternative
	// Optional is set when the placeholder ends with an empty alternative
	Optional bool
	// Command is the parsed body of a $(...) part
	Command *Template
}

// Template is a parsed template
type Template struct {
	source string
	parts  []Part
}

// Parse parses a template string
func Parse(source string) (*Template, error) {
	p := &parser{src: []rune(source)}
	parts, err := p.parse(false)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "invalid template %q", source).
			WithDetail("template", source)
	}
	return &Template{source: source, parts: parts}, nil
}


// Source returns the original template text
func (t *Template) Source() string { return t.source }

// Parts returns the parsed parts in order
func (t *Template) Parts() []Part { return t.parts }

// Literal returns the rendered text and true when the template has no
// placeholders or sub-commands.
func (t *Template) Literal() (string, bool) {
	var b strings.Builder
	for _, p := range t.parts {
		if p.Kind != LiteralPart {
			return "", false
		}
		b.WriteString(p.Text)
	}
	return b.String(), true
}

// Variables returns the variable names referenced by the template in order
// of appearance, every alternative counted once. Literal fallbacks are not
// variables.
func (t *Template) Variables() []string {
	seen := map[string]bool{}
	var out []string
	t.collect(seen, &out)
	return out
}

func (t *Template) collect(seen map[string]bool, out *[]string) {
	for _, p := range t.parts {
		switch p.Kind {
		case PlaceholderPart:
			for _, a := range p.Alternatives {
				if a.IsLiteral || seen[a.Name] {
					continue
				}
				seen[a.Name] = true
				*out = append(*out, a.Name)
			}
		case CommandPart:
			p.Command.collect(seen, out)
		}
	}
}

// ValidName reports whether s is a valid variable name
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func isNameRune(r rune) bool {
	return r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
