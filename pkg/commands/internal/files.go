// Package internal holds the helpers shared by the anek commands: loading
// command templates and pipelines and resolving paths inside the project.
package internal

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
)

// InlineName names templates given on the command line
const InlineName = "-T-"

// NamedTemplate is a parsed command template and its name
type NamedTemplate struct {
	Name     string
	Template *template.Template
}

// ReadTemplate reads a whole file, trimmed, and parses it as one template
func ReadTemplate(fs types.FS, path string) (*template.Template, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't open file %s", path).
			WithDetail("path", path)
	}
	t, err := template.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "invalid template in %s", path).
			WithDetail("path", path)
	}
	return t, nil
}

// LoadCommand reads commands/<name>
func LoadCommand(p *paths.Project, name string) (NamedTemplate, error) {
	path := p.File(types.Commands, name)
	if info, err := p.FS().Stat(path); err != nil || info.IsDir() {
		return NamedTemplate{}, p.Missing(types.Commands, name)
	}
	t, err := ReadTemplate(p.FS(), path)
	if err != nil {
		return NamedTemplate{}, err
	}
	return NamedTemplate{Name: name, Template: t}, nil
}

// InlineCommand parses a template given on the command line
func InlineCommand(source string) (NamedTemplate, error) {
	t, err := template.Parse(strings.TrimSpace(source))
	if err != nil {
		return NamedTemplate{}, err
	}
	return NamedTemplate{Name: InlineName, Template: t}, nil
}

// PipelineCommands returns the command names of pipelines/<name>, one per line
func PipelineCommands(p *paths.Project, name string) ([]string, error) {
	if !p.Exists(types.Pipelines, name) {
		return nil, p.Missing(types.Pipelines, name)
	}
	read, err := lines.Merge(p.FS(), []string{p.File(types.Pipelines, name)})
	if err != nil {
		return nil, err
	}
	return types.Texts(read), nil
}

// LoadPipeline loads every command of a pipeline in order
func LoadPipeline(p *paths.Project, name string) ([]NamedTemplate, error) {
	names, err := PipelineCommands(p, name)
	if err != nil {
		return nil, err
	}
	commands := make([]NamedTemplate, 0, len(names))
	for _, n := range names {
		c, err := LoadCommand(p, n)
		if err != nil {
			return nil, err
		}
		commands = append(commands, c)
	}
	return commands, nil
}

// Relevant is the set of variables referenced by the templates
func Relevant(templates ...*template.Template) map[string]bool {
	set := make(map[string]bool)
	for _, t := range templates {
		for _, v := range t.Variables() {
			set[v] = true
		}
	}
	return set
}

// ConfigFile resolves a '/' separated path relative to the .anek
// directory, refusing paths that leave it.
func ConfigFile(p *paths.Project, rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "%q is not a path inside %s", rel, p.ConfigDir()).
			WithDetail("path", rel)
	}
	path := filepath.Join(p.ConfigDir(), clean)
	if _, err := p.FS().Stat(path); err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "%s not found", path).
			WithDetail("path", path)
	}
	return path, nil
}

// RenderOptions builds the template render options for a project
func RenderOptions(ctx context.Context, p *paths.Project, cfg *config.Config, shell template.Capturer) template.RenderOptions {
	if ctx == nil {
		ctx = context.Background()
	}
	return template.RenderOptions{
		Dir:         p.Root(),
		Subcommands: cfg.Shell.Subcommands,
		Shell:       shell,
		Context:     ctx,
	}
}
