// pkg/commands/list/list_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory filesystem project
// PURPOSE: Test listing, filtering, searching and content filters

package list

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/testutil"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) *testutil.TestEnvironment {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Variable("host", "Host name of the server\nUsed by every command")
	env.Variable("port", "TCP port")
	env.Input("prod", "host=example.com", "port=443")
	env.WriteFile("inputs/prod.d/extra", "region=eu\n")
	env.Input("dev", "host=localhost")
	env.Command("ping", "ping {host}")
	env.Command("curl", "curl {host}:{port?\"80\"}")
	env.Pipeline("check", "ping", "curl")
	env.Batch("everywhere", "prod", "dev,prod")
	env.Loop("matrix", map[string][]string{"host": {"a", "b"}})
	env.Template("summary.md", "# {host}\n")
	return env
}

func displays(result *types.ListResult) []string {
	out := []string{}
	for _, e := range result.Entries {
		out = append(out, e.Display())
	}
	return out
}

func TestList_AllCategories(t *testing.T) {
	env := setupProject(t)

	result, err := List(ListOptions{Project: env.Project})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"variables/host", "variables/port",
		"inputs/dev", "inputs/prod",
		"commands/curl", "commands/ping",
		"templates/summary.md",
		"pipelines/check",
		"loops/matrix",
		"batch/everywhere",
	}, displays(result))
}

func TestList_SingleCategory(t *testing.T) {
	env := setupProject(t)

	tests := []struct {
		name     string
		opts     ListOptions
		expected []string
	}{
		{"inputs", ListOptions{Categories: []types.Category{types.Inputs}}, []string{"dev", "prod"}},
		{"inputs_all_files", ListOptions{Categories: []types.Category{types.Inputs}, All: true}, []string{"dev", "prod", "prod.d/extra"}},
		{"substring_filter", ListOptions{Filter: []string{"p"}}, []string{"variables/port", "inputs/dev", "inputs/prod", "commands/ping", "templates/summary.md", "pipelines/check", "loops/matrix"}},
		{"all_filters_must_match", ListOptions{Filter: []string{"p", "in"}}, []string{"inputs/dev", "inputs/prod", "commands/ping", "pipelines/check"}},
		{"glob_filter", ListOptions{Filter: []string{"commands/*"}}, []string{"commands/curl", "commands/ping"}},
		{"glob_with_braces", ListOptions{Filter: []string{"{batch,loops}/**"}}, []string{"loops/matrix", "batch/everywhere"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Project = env.Project
			result, err := List(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, displays(result))
		})
	}
}

func TestList_Search(t *testing.T) {
	env := setupProject(t)

	result, err := List(ListOptions{
		Project:    env.Project,
		Categories: []types.Category{types.Inputs},
		Search:     []string{"host"},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, []string{"host=localhost"}, types.Texts(result.Entries[0].Matches))
	assert.Equal(t, []string{"host=example.com"}, types.Texts(result.Entries[1].Matches))
}

func TestList_Has(t *testing.T) {
	env := setupProject(t)

	tests := []struct {
		name     string
		category types.Category
		terms    []string
		expected []string
	}{
		{"variables_by_description", types.Variables, []string{"server"}, []string{"host"}},
		{"inputs_by_key", types.Inputs, []string{"port"}, []string{"prod"}},
		{"inputs_by_drop_in_key", types.Inputs, []string{"region"}, []string{"prod"}},
		{"commands_by_variable", types.Commands, []string{"port"}, []string{"curl"}},
		{"commands_every_term", types.Commands, []string{"host", "port"}, []string{"curl"}},
		{"templates_by_variable", types.Templates, []string{"host"}, []string{"summary.md"}},
		{"pipelines_by_command", types.Pipelines, []string{"ping"}, []string{"check"}},
		{"batch_by_input", types.Batch, []string{"dev"}, []string{"everywhere"}},
		{"loops_by_axis", types.Loops, []string{"host"}, []string{"matrix"}},
		{"no_match", types.Commands, []string{"nothing"}, []string{}},
		{"variables_match_substrings", types.Variables, []string{"TCP"}, []string{"port"}},
		{"commands_match_whole_names", types.Commands, []string{"hos"}, []string{}},
		{"inputs_match_whole_keys", types.Inputs, []string{"regio"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := List(ListOptions{
				Project:    env.Project,
				Categories: []types.Category{tt.category},
				Has:        tt.terms,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, displays(result))
		})
	}
}

func TestHas_VariableFiles(t *testing.T) {
	env := setupProject(t)

	ok, err := Has(env.Project, types.Variables, "undocumented", []string{"x"})
	require.NoError(t, err, "a missing description is not an error")
	assert.False(t, ok)

	broken := filepath.Join(env.Project.Directory(types.Variables), "broken")
	require.NoError(t, env.FS.MkdirAll(broken, 0755))
	_, err = Has(env.Project, types.Variables, "broken", []string{"x"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestList_InvalidGlob(t *testing.T) {
	env := setupProject(t)

	_, err := List(ListOptions{Project: env.Project, Filter: []string{"[a-"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
