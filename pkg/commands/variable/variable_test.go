// pkg/commands/variable/variable_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory filesystem project
// PURPOSE: Test scanning, describing and updating variables

package variable

import (
	"strings"
	"testing"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/testutil"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) *testutil.TestEnvironment {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Variable("host", "Host name\nThe server to connect to\n")
	env.Variable("empty", "")
	env.Input("prod", "host=example.com", "port=443")
	env.WriteFile("inputs/prod.d/extra", "region=eu\n")
	env.Command("curl", "curl {host}:{port}/{path?\"\"} -H {header?}")
	return env
}

func TestVariable_Scan(t *testing.T) {
	tests := []struct {
		name     string
		opts     VariableOptions
		expected []string
	}{
		{"inputs", VariableOptions{ScanInputs: true}, []string{"port", "region"}},
		{"commands", VariableOptions{ScanCommands: true}, []string{"header", "path", "port"}},
		{"both", VariableOptions{ScanInputs: true, ScanCommands: true}, []string{"header", "path", "port", "region"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupProject(t)
			opts := tt.opts
			opts.Project = env.Project

			result, err := Variable(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.New)
			assert.Empty(t, result.Added)
		})
	}
}

func TestVariable_ScanAndAdd(t *testing.T) {
	env := setupProject(t)

	result, err := Variable(VariableOptions{Project: env.Project, ScanInputs: true, Add: true})
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Equal(t, "", env.ReadFile("variables/port"))
	assert.Equal(t, "", env.ReadFile("variables/region"))

	result, err = Variable(VariableOptions{Project: env.Project, ScanInputs: true})
	require.NoError(t, err)
	assert.Empty(t, result.New)
}

func TestVariable_ListAndDetails(t *testing.T) {
	env := setupProject(t)

	result, err := Variable(VariableOptions{Project: env.Project, List: true})
	require.NoError(t, err)
	assert.Equal(t, []types.VariableInfo{
		{Name: "empty"},
		{Name: "host", Summary: "Host name"},
	}, result.Infos)

	result, err = Variable(VariableOptions{Project: env.Project, Details: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"The server to connect to"}, result.Infos[1].Details)
}

func TestVariable_Info(t *testing.T) {
	env := setupProject(t)

	result, err := Variable(VariableOptions{Project: env.Project, Info: "host"})
	require.NoError(t, err)
	require.Len(t, result.Infos, 1)
	assert.Equal(t, "Host name", result.Infos[0].Summary)

	_, err = Variable(VariableOptions{Project: env.Project, Info: "hots"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "did you mean: host")
}

func TestVariable_Update(t *testing.T) {
	env := setupProject(t)
	target := env.Project.Root() + "/generated/{1}"

	var changes []variables.Change
	waited := false
	_, err := Variable(VariableOptions{
		Project:   env.Project,
		Update:    target,
		Stdin:     strings.NewReader("a::x=1\ny=2\nb::x=3\n"),
		OnChange:  func(c variables.Change) { changes = append(changes, c) },
		OnWaiting: func() { waited = true },
	})
	require.NoError(t, err)
	assert.True(t, waited)
	require.Len(t, changes, 3)

	data, err := env.FS.ReadFile(env.Project.Root() + "/generated/a")
	require.NoError(t, err)
	assert.Equal(t, "x=1\ny=2\n", string(data))
}

func TestVariable_InvalidCombinations(t *testing.T) {
	env := setupProject(t)

	tests := []struct {
		name string
		opts VariableOptions
	}{
		{"add_without_scan", VariableOptions{Add: true}},
		{"list_and_info", VariableOptions{List: true, Info: "host"}},
		{"update_without_stdin", VariableOptions{Update: "file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Project = env.Project
			_, err := Variable(opts)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
		})
	}
}
