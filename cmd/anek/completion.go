package anek

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/list"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/spf13/cobra"
)

type completionFunc func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

// completeNames completes the names of a category. Comma separated
// values complete their last element.
func (g *globals) completeNames(c types.Category) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names, err := g.listNames(list.ListOptions{Categories: []types.Category{c}})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		for i, n := range names {
			names[i] = prefix + n
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFiles completes paths relative to .anek, for edit and show
func (g *globals) completeFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := g.listNames(list.ListOptions{All: true})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (g *globals) listNames(opts list.ListOptions) ([]string, error) {
	project, _, err := g.project()
	if err != nil {
		return nil, err
	}
	opts.Project = project
	result, err := list.List(opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(result.Entries))
	for i, e := range result.Entries {
		names[i] = e.Display()
	}
	return names, nil
}
