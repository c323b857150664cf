package list

import (
	"os"
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/loops"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

// facets returns what a file of a category refers to. Has matches terms
// against these.
type facets func(p *paths.Project, name string) ([]string, error)

// filter is the "list --has" strategy of one category
type filter struct {
	facets facets
	match  func(value, term string) bool
}

func sameName(value, term string) bool { return value == term }

var filters = map[types.Category]filter{
	types.Variables: {variableDescription, strings.Contains},
	types.Inputs:    {inputKeys, sameName},
	types.Commands:  {templateVariables(types.Commands), sameName},
	types.Templates: {templateVariables(types.Templates), sameName},
	types.Pipelines: {pipelineCommands, sameName},
	types.Batch:     {batchInputs, sameName},
	types.Loops:     {loopAxes, sameName},
}

// Has reports whether the file refers to every term.
func Has(p *paths.Project, c types.Category, name string, terms []string) (bool, error) {
	f := filters[c]
	values, err := f.facets(p, name)
	if err != nil {
		return false, err
	}

	for _, term := range terms {
		found := false
		for _, v := range values {
			if f.match(v, term) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

func merged(p *paths.Project, c types.Category, name string) ([]types.Line, error) {
	return lines.Merge(p.FS(), []string{p.File(c, name)})
}

func variableDescription(p *paths.Project, name string) ([]string, error) {
	path := p.File(types.Variables, name)
	data, err := p.FS().ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read variable %s", path).
			WithDetail("path", path)
	}
	return []string{string(data)}, nil
}

func inputKeys(p *paths.Project, name string) ([]string, error) {
	read, err := merged(p, types.Inputs, name)
	if err != nil {
		return nil, err
	}
	return variables.Keys(read)
}

func templateVariables(c types.Category) facets {
	return func(p *paths.Project, name string) ([]string, error) {
		sources, err := lines.Sources(p.FS(), []string{p.File(c, name)})
		if err != nil {
			return nil, err
		}
		var names []string
		for _, s := range sources {
			t, err := internal.ReadTemplate(p.FS(), s)
			if err != nil {
				return nil, err
			}
			names = append(names, t.Variables()...)
		}
		return names, nil
	}
}

func pipelineCommands(p *paths.Project, name string) ([]string, error) {
	read, err := merged(p, types.Pipelines, name)
	if err != nil {
		return nil, err
	}
	return types.Texts(read), nil
}

func batchInputs(p *paths.Project, name string) ([]string, error) {
	read, err := merged(p, types.Batch, name)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, l := range read {
		for _, n := range strings.Split(l.Text, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names, nil
}

func loopAxes(p *paths.Project, name string) ([]string, error) {
	dir := p.File(types.Loops, strings.TrimSuffix(name, lines.DropInSuffix)+lines.DropInSuffix)
	if info, err := p.FS().Stat(dir); err != nil || !info.IsDir() {
		return nil, nil
	}
	axes, err := loops.ReadAxes(p.FS(), dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(axes))
	for i, a := range axes {
		names[i] = a.Name
	}
	return names, nil
}
