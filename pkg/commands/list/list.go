package list

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	Project *paths.Project
	// Categories to list, all of them (prefixed with their directory) when empty
	Categories []types.Category
	// All lists the files inside drop-in directories instead of their logical names
	All bool
	// Filter keeps entries matching every pattern: a substring, or a glob
	// when the pattern has glob characters
	Filter []string
	// Search collects the lines containing every term
	Search []string
	// Has keeps entries whose content refers to every term, per category
	Has []string
}

// List lists the configuration files of the project.
func List(opts ListOptions) (*types.ListResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "List").Int("categories", len(opts.Categories)).Msg("Executing command")

	categories := opts.Categories
	prefixed := len(categories) == 0
	if prefixed {
		categories = types.AllCategories()
	}

	for _, pattern := range opts.Filter {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid filter pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}

	result := &types.ListResult{Entries: []types.ListEntry{}}
	for _, c := range categories {
		names, err := listNames(opts.Project, c, opts.All)
		if err != nil {
			return nil, err
		}

		for _, name := range names {
			entry := types.ListEntry{
				Category: c,
				Name:     name,
				Path:     opts.Project.File(c, name),
			}
			if prefixed {
				entry.Prefix = c.DirName()
			}
			if !matchesFilter(entry.Display(), opts.Filter) {
				continue
			}

			if len(opts.Has) > 0 {
				ok, err := Has(opts.Project, c, name, opts.Has)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}

			if len(opts.Search) > 0 {
				if entry.Matches, err = search(opts.Project, entry.Path, opts.Search); err != nil {
					return nil, err
				}
			}
			result.Entries = append(result.Entries, entry)
		}
	}

	log.Info().Str("command", "List").Int("entries", len(result.Entries)).Msg("Command finished")
	return result, nil
}

func listNames(p *paths.Project, c types.Category, all bool) ([]string, error) {
	if !all {
		return p.List(c)
	}
	dir := p.Directory(c)
	if _, err := p.FS().Stat(dir); err != nil {
		return nil, nil
	}
	return lines.ListFilenames(p.FS(), dir)
}

func matchesFilter(display string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, "*?[{") {
			if ok, _ := doublestar.Match(pattern, display); !ok {
				return false
			}
			continue
		}
		if !strings.Contains(display, pattern) {
			return false
		}
	}
	return true
}

func search(p *paths.Project, path string, terms []string) ([]types.Line, error) {
	files, err := lines.Sources(p.FS(), []string{path})
	if err != nil {
		return nil, err
	}
	var matches []types.Line
	for _, f := range files {
		found, err := lines.MatchingLines(p.FS(), f, terms, false)
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	return matches, nil
}
