package template

import (
	"fmt"
	"strings"
)

type parser struct {
	src []rune
	pos int
}

// parse reads parts until the end of input, or until the closing ')' of a
// sub-command when inCommand is set.
func (p *parser) parse(inCommand bool) ([]Part, error) {
	var parts []Part
	var lit strings.Builder
	depth := 0

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, Part{Kind: LiteralPart, Text: lit.String()})
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case r == '\\' && p.pos+1 < len(p.src) && strings.ContainsRune("{}$", p.src[p.pos+1]):
			lit.WriteRune(p.src[p.pos+1])
			p.pos += 2
		case r == '{' && !p.opensPlaceholder():
			lit.WriteRune(r)
			p.pos++
		case r == '{':
			flush()
			part, err := p.placeholder()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case r == '$' && p.startsCommand():
			flush()
			part, err := p.command()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case inCommand && r == '(':
			depth++
			lit.WriteRune(r)
			p.pos++
		case inCommand && r == ')':
			if depth == 0 {
				flush()
				return parts, nil
			}
			depth--
			lit.WriteRune(r)
			p.pos++
		default:
			lit.WriteRune(r)
			p.pos++
		}
	}

	if inCommand {
		return nil, fmt.Errorf("unterminated $( sub-command")
	}
	flush()
	return parts, nil
}

// startsCommand reports whether the '$' at pos opens a sub-command. "$((" is
// shell arithmetic and stays literal.
func (p *parser) startsCommand() bool {
	if p.pos+1 >= len(p.src) || p.src[p.pos+1] != '(' {
		return false
	}
	return p.pos+2 >= len(p.src) || p.src[p.pos+2] != '('
}

// opensPlaceholder reports whether the '{' at pos starts a placeholder. A
// brace followed by anything other than name characters up to '}', '?' or a
// quote is shell text ("{}", "{print $1}", "{1..3}") and stays literal. A
// brace left open at the end of input is still a placeholder so it fails.
func (p *parser) opensPlaceholder() bool {
	for i := p.pos + 1; i < len(p.src); i++ {
		switch r := p.src[i]; {
		case r == '}':
			return i > p.pos+1
		case r == '?' || r == Quote:
			return true
		case !isNameRune(r):
			return false
		}
	}
	return true
}

func (p *parser) placeholder() (Part, error) {
	start := p.pos
	p.pos++ // {

	var alts []Alternative
	var current strings.Builder
	quoted := false
	literal := false

	finish := func() {
		if literal {
			alts = append(alts, Alternative{Literal: current.String(), IsLiteral: true})
		} else {
			alts = append(alts, Alternative{Name: current.String()})
		}
		current.Reset()
		literal = false
	}

	for p.pos < len(p.src) {
		r := p.src[p.pos]
		p.pos++

		if quoted {
			if r == Quote {
				quoted = false
				continue
			}
			current.WriteRune(r)
			continue
		}

		switch r {
		case Quote:
			if current.Len() > 0 || literal {
				return Part{}, fmt.Errorf("unexpected quote at offset %d", p.pos-1)
			}
			quoted = true
			literal = true
		case '?':
			finish()
		case '}':
			finish()
			return buildPlaceholder(string(p.src[start:p.pos]), alts)
		default:
			if literal {
				return Part{}, fmt.Errorf("text after literal fallback at offset %d", p.pos-1)
			}
			current.WriteRune(r)
		}
	}
	return Part{}, fmt.Errorf("unterminated placeholder %q", string(p.src[start:]))
}

func buildPlaceholder(text string, alts []Alternative) (Part, error) {
	part := Part{Kind: PlaceholderPart, Text: text}

	last := len(alts) - 1
	if len(alts) > 1 && !alts[last].IsLiteral && alts[last].Name == "" {
		part.Optional = true
		alts = alts[:last]
	}

	for _, a := range alts {
		if a.IsLiteral {
			continue
		}
		if !ValidName(a.Name) {
			if a.Name == "" {
				return Part{}, fmt.Errorf("empty variable name in %s", text)
			}
			return Part{}, fmt.Errorf("invalid variable name %q in %s", a.Name, text)
		}
	}
	part.Alternatives = alts
	return part, nil
}

func (p *parser) command() (Part, error) {
	start := p.pos
	p.pos += 2 // $(

	body, err := p.parse(true)
	if err != nil {
		return Part{}, err
	}
	end := p.pos
	p.pos++ // )

	source := string(p.src[start+2 : end])
	return Part{
		Kind:    CommandPart,
		Text:    string(p.src[start : end+1]),
		Command: &Template{source: source, parts: body},
	}, nil
}
