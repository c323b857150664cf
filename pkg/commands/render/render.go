// Package render renders a template file against every job. Text can be
// split with clipper lines ("----8<----") into a header rendered with the
// first job, a body rendered for every job and a footer rendered with the
// last job.
package render

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/inputs"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/output"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/watch"
)

// Clipper separates the header, body and footer of a template
const Clipper = "----8<----"

// RenderOptions defines the options for the Render command.
type RenderOptions struct {
	Project *paths.Project
	Config  *config.Config
	// File is a path to the template, an inline template when Inline is
	// set, or a name under templates/ when Stored is set
	File   string
	Inline bool
	Stored bool
	Inputs inputs.Options
	Shell  template.Capturer
	// Printer receives job headers, nil to skip them
	Printer *output.Printer
	Context context.Context
}

// Sections is a template split on clipper lines
type Sections struct {
	Header *template.Template
	Body   *template.Template
	Footer *template.Template
}

// Split parses text into its sections. Without clipper the whole text is
// the body. Clippers after the second one stay in the footer.
func Split(text string) (*Sections, error) {
	var parts [][]string
	current := []string{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == Clipper && len(parts) < 2 {
			parts = append(parts, current)
			current = []string{}
			continue
		}
		current = append(current, line)
	}
	parts = append(parts, current)

	sources := make([]string, len(parts))
	for i, p := range parts {
		sources[i] = strings.Join(p, "\n")
	}

	s := &Sections{}
	var err error
	switch len(sources) {
	case 1:
		s.Body, err = parse(sources[0])
	default:
		if s.Header, err = parse(sources[0]); err != nil {
			return nil, err
		}
		if s.Body, err = parse(sources[1]); err != nil {
			return nil, err
		}
		if len(sources) == 3 {
			s.Footer, err = parse(sources[2])
		}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parse(source string) (*template.Template, error) {
	return template.Parse(strings.Trim(source, "\n"))
}

// Variables returns every variable referenced by the sections
func (s *Sections) Variables() map[string]bool {
	var templates []*template.Template
	for _, t := range []*template.Template{s.Header, s.Body, s.Footer} {
		if t != nil {
			templates = append(templates, t)
		}
	}
	return internal.Relevant(templates...)
}

// Render renders the template against every job
func Render(opts RenderOptions) (*types.RenderResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Render").Str("file", opts.File).Msg("Executing command")

	text, err := source(opts)
	if err != nil {
		return nil, err
	}
	sections, err := Split(text)
	if err != nil {
		return nil, err
	}

	resolution, err := inputs.Resolve(opts.Project, opts.Inputs, sections.Variables())
	if err != nil {
		return nil, err
	}
	renderOpts := internal.RenderOptions(opts.Context, opts.Project, opts.Config, opts.Shell)

	var out []string
	var last template.RenderOptions
	result := &types.RenderResult{}
	total := resolution.Sequence.Len()
	for i := 1; ; i++ {
		job, ok, err := resolution.Sequence.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		result.Jobs++
		if opts.Printer != nil {
			opts.Printer.JobHeader(job.Index, i, total, job.Name)
		}

		vars, err := resolution.Variables(job, renderOpts)
		if err != nil {
			return nil, err
		}
		jobOpts := renderOpts
		jobOpts.Variables = vars

		if i == 1 && sections.Header != nil {
			if out, err = appendRendered(out, sections.Header, jobOpts); err != nil {
				return nil, err
			}
		}
		if out, err = appendRendered(out, sections.Body, jobOpts); err != nil {
			return nil, err
		}
		last = jobOpts
	}

	if result.Jobs > 0 && sections.Footer != nil {
		if out, err = appendRendered(out, sections.Footer, last); err != nil {
			return nil, err
		}
	}
	if len(out) > 0 {
		result.Output = strings.Join(out, "\n") + "\n"
	}

	log.Info().Str("command", "Render").Int("jobs", result.Jobs).Msg("Command finished")
	return result, nil
}

func appendRendered(out []string, t *template.Template, opts template.RenderOptions) ([]string, error) {
	rendered, err := t.Render(opts)
	if err != nil {
		return out, err
	}
	return append(out, rendered), nil
}

// TemplatePath returns the file the options render, empty for inline templates
func TemplatePath(opts RenderOptions) string {
	switch {
	case opts.Inline:
		return ""
	case opts.Stored:
		return opts.Project.File(types.Templates, opts.File)
	default:
		return opts.File
	}
}

func source(opts RenderOptions) (string, error) {
	if opts.File == "" {
		return "", errors.New(errors.ErrInvalidInput, "a template file is required")
	}
	if opts.Inline {
		return opts.File, nil
	}
	if opts.Stored && !opts.Project.Exists(types.Templates, opts.File) {
		return "", opts.Project.Missing(types.Templates, opts.File)
	}
	path := TemplatePath(opts)
	data, err := opts.Project.FS().ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "couldn't open file %s", path).
			WithDetail("path", path)
	}
	return strings.TrimSpace(string(data)), nil
}

// Watch renders once, then again every time the template or the project
// configuration changes, writing each rendering to w. Rendering errors
// are reported through onError and watching continues.
func Watch(opts RenderOptions, w io.Writer, onError func(error)) error {
	log := logging.GetLogger("core.commands")

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	renderTo := func() error {
		result, err := Render(opts)
		if err != nil {
			onError(err)
			return nil
		}
		_, err = io.WriteString(w, result.Output)
		return err
	}
	if err := renderTo(); err != nil {
		return err
	}

	watched := []string{opts.Project.ConfigDir()}
	if path := TemplatePath(opts); path != "" && !opts.Stored {
		if abs, err := filepath.Abs(path); err == nil {
			watched = append(watched, abs)
		}
	}
	watcher, err := watch.New(watched, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	log.Info().Strs("paths", watched).Msg("Watching for changes")
	return watcher.Run(ctx, func(path string) error {
		log.Debug().Str("path", path).Msg("Re-rendering")
		return renderTo()
	})
}
