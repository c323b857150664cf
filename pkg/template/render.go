package template

import (
	"context"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/types"
)

// Capturer runs a shell command and returns its standard output
type Capturer interface {
	Capture(ctx context.Context, command, dir string) (string, error)
}

// RenderOptions control rendering
type RenderOptions struct {
	Variables types.VariableMap
	// Dir is the working directory of sub-commands
	Dir string
	// Subcommands enables running $(...) parts, they are emitted verbatim otherwise
	Subcommands bool
	Shell       Capturer
	Context     context.Context
}

// Render renders the template against the options' variables
func (t *Template) Render(opts RenderOptions) (string, error) {
	var b strings.Builder
	for _, p := range t.parts {
		switch p.Kind {
		case LiteralPart:
			b.WriteString(p.Text)
		case PlaceholderPart:
			value, err := resolve(p, opts.Variables)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
		case CommandPart:
			out, err := t.runCommand(p, opts)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
	}
	return b.String(), nil
}

// RenderString parses and renders source in one step
func RenderString(source string, opts RenderOptions) (string, error) {
	t, err := Parse(source)
	if err != nil {
		return "", err
	}
	return t.Render(opts)
}

func resolve(p Part, vars types.VariableMap) (string, error) {
	for _, a := range p.Alternatives {
		if a.IsLiteral {
			return a.Literal, nil
		}
		if v, ok := vars[a.Name]; ok {
			return v, nil
		}
	}
	if p.Optional {
		return "", nil
	}
	names := make([]string, 0, len(p.Alternatives))
	for _, a := range p.Alternatives {
		names = append(names, a.Name)
	}
	return "", errors.Newf(errors.ErrTemplateRender, "none of the variables %s found for %s",
		strings.Join(names, ", "), p.Text).
		WithDetail("placeholder", p.Text).
		WithDetail("variables", names)
}

func (t *Template) runCommand(p Part, opts RenderOptions) (string, error) {
	if !opts.Subcommands || opts.Shell == nil {
		inner, err := p.Command.Render(opts)
		if err != nil {
			return "", err
		}
		return "$(" + inner + ")", nil
	}

	command, err := p.Command.Render(opts)
	if err != nil {
		return "", err
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := opts.Shell.Capture(ctx, command, opts.Dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "sub-command %q failed", command).
			WithDetail("command", command)
	}
	return strings.TrimRight(out, "\r\n"), nil
}
