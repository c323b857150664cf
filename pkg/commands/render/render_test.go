// pkg/commands/render/render_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory filesystem project
// PURPOSE: Test template rendering with clipper sections across jobs

package render

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/inputs"
	"github.com/arthur-debert/anek/pkg/output"
	"github.com/arthur-debert/anek/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseOptions(t *testing.T, env *testutil.TestEnvironment) RenderOptions {
	cfg, err := config.Default()
	require.NoError(t, err)
	return RenderOptions{Project: env.Project, Config: cfg}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		header string
		body   string
		footer string
	}{
		{"no_clipper", "a {x}\nb", "", "a {x}\nb", ""},
		{"header_and_body", "head\n----8<----\nbody", "head", "body", ""},
		{"all_sections", "head\n  ----8<----  \nbody\n----8<----\nfoot", "head", "body", "foot"},
		{"extra_clipper_stays_in_footer", "h\n----8<----\nb\n----8<----\nf\n----8<----\ng", "h", "b", "f\n----8<----\ng"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Split(tt.text)
			require.NoError(t, err)
			source := func(tmpl interface{ Source() string }) string { return tmpl.Source() }
			if tt.header == "" {
				assert.Nil(t, s.Header)
			} else {
				assert.Equal(t, tt.header, source(s.Header))
			}
			assert.Equal(t, tt.body, source(s.Body))
			if tt.footer == "" {
				assert.Nil(t, s.Footer)
			} else {
				assert.Equal(t, tt.footer, source(s.Footer))
			}
		})
	}
}

func TestRender_ClipperSections(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Loop("sizes", map[string][]string{"size": {"S", "M", "L"}})
	env.Template("table.md", "| sizes from {size} |\n----8<----\n| {size} | {LOOP_INDEX} |\n----8<----\nlast was {size}\n")

	opts := baseOptions(t, env)
	opts.File = "table.md"
	opts.Stored = true
	opts.Inputs = inputs.Options{Loop: "sizes"}

	result, err := Render(opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Jobs)
	assert.Equal(t, "| sizes from S |\n| S | 1 |\n| M | 2 |\n| L | 3 |\nlast was L\n", result.Output)
}

func TestRender_InlineWithJobHeaders(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Input("a", "name=alpha")
	env.Input("b", "name=beta")
	env.Batch("both", "a", "b")

	var out, errOut bytes.Buffer
	opts := baseOptions(t, env)
	opts.File = "hello {name}"
	opts.Inline = true
	opts.Inputs = inputs.Options{Batch: []string{"both"}}
	opts.Printer = output.New(&out, &errOut, false)

	result, err := Render(opts)
	require.NoError(t, err)
	assert.Equal(t, "hello alpha\nhello beta\n", result.Output)
	assert.Equal(t, "Job 1 [1 of 2]: a\nJob 2 [2 of 2]: b\n", errOut.String())
}

func TestRender_FilePath(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	path := env.Project.Root() + "/notes.md"
	require.NoError(t, env.FS.WriteFile(path, []byte("# {title}\n"), 0644))

	opts := baseOptions(t, env)
	opts.File = path
	opts.Inputs = inputs.Options{Overwrite: []string{"title=Report"}}

	result, err := Render(opts)
	require.NoError(t, err)
	assert.Equal(t, "# Report\n", result.Output)
}

func TestRender_NoJobsSkipsFooter(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Batch("one", "a")
	env.Input("a", "x=1")

	opts := baseOptions(t, env)
	opts.File = "h\n----8<----\n{x}\n----8<----\nf"
	opts.Inline = true
	opts.Inputs = inputs.Options{Batch: []string{"one"}, Select: "5"}

	result, err := Render(opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Jobs)
	assert.Empty(t, result.Output)
}

func TestRender_Errors(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Template("report", "x")

	tests := []struct {
		name string
		opts func(RenderOptions) RenderOptions
		code errors.ErrorCode
	}{
		{"no_file", func(o RenderOptions) RenderOptions { return o }, errors.ErrInvalidInput},
		{"missing_file", func(o RenderOptions) RenderOptions { o.File = "/nope/file"; return o }, errors.ErrFileAccess},
		{"missing_stored", func(o RenderOptions) RenderOptions { o.File = "reprot"; o.Stored = true; return o }, errors.ErrNotFound},
		{"missing_variable", func(o RenderOptions) RenderOptions { o.File = "{nope}"; o.Inline = true; return o }, errors.ErrTemplateRender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.opts(baseOptions(t, env)))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}
