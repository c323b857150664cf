// pkg/commands/run/run_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory filesystem project, recording executor
// PURPOSE: Test job orchestration of the run command

package run

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/inputs"
	"github.com/arthur-debert/anek/pkg/output"
	"github.com/arthur-debert/anek/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	commands []string
	dirs     []string
	codes    map[string]int
}

func (r *recordingExecutor) Run(_ context.Context, command, dir string) (int, error) {
	r.commands = append(r.commands, command)
	r.dirs = append(r.dirs, dir)
	return r.codes[command], nil
}

func (r *recordingExecutor) Capture(_ context.Context, command, _ string) (string, error) {
	return "captured(" + command + ")\n", nil
}

type fixture struct {
	env    *testutil.TestEnvironment
	exec   *recordingExecutor
	out    *bytes.Buffer
	errOut *bytes.Buffer
	opts   RunOptions
}

func newFixture(t *testing.T) *fixture {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	cfg, err := config.Default()
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	exec := &recordingExecutor{codes: map[string]int{}}
	return &fixture{
		env:    env,
		exec:   exec,
		out:    &out,
		errOut: &errOut,
		opts: RunOptions{
			Project:  env.Project,
			Config:   cfg,
			Executor: exec,
			Printer:  output.New(&out, &errOut, false),
		},
	}
}

func TestRun_ColorSizeScenario(t *testing.T) {
	f := newFixture(t)
	f.env.Loop("matrix", map[string][]string{
		"color": {"red", "blue"},
		"size":  {"S", "M", "L"},
	})
	f.env.Command("paint", "paint {color} {size}")

	opts := f.opts
	opts.Command = "paint"
	opts.Inputs = inputs.Options{Loop: "matrix", Select: "2,4-5"}
	opts.Pipable = true

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Jobs)
	assert.Equal(t, "paint red M\npaint blue S\npaint blue M\n", f.out.String())
	assert.Empty(t, f.errOut.String())
	assert.Empty(t, f.exec.commands)
}

func TestRun_ExecutesInProjectRoot(t *testing.T) {
	f := newFixture(t)
	f.env.Input("site", "host=example.com")
	f.env.Command("ping", "ping -c1 {host}")

	opts := f.opts
	opts.Command = "ping"
	opts.Inputs = inputs.Options{Inputs: []string{"site"}}

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"ping -c1 example.com"}, f.exec.commands)
	assert.Equal(t, []string{f.env.Project.Root()}, f.exec.dirs)
	assert.Equal(t, 1, result.Commands)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, "ping -c1 example.com\n", f.out.String())
	assert.Equal(t, "Job 1 [1 of 1]: site\nCommand (ping): "+output.Arrow+"\n", f.errOut.String())
}

func TestRun_DemoDoesNotExecute(t *testing.T) {
	f := newFixture(t)

	opts := f.opts
	opts.Command = "echo {ARG1}"
	opts.Inline = true
	opts.Demo = true
	opts.Inputs = inputs.Options{Args: []string{"hi"}}

	_, err := Run(opts)
	require.NoError(t, err)
	assert.Empty(t, f.exec.commands)
	assert.Equal(t, "echo hi\n", f.out.String())
	assert.Contains(t, f.errOut.String(), "Command (-T-): ")
}

func TestRun_Pipeline(t *testing.T) {
	f := newFixture(t)
	f.env.Batch("all", "a", "b")
	f.env.Input("a", "name=first")
	f.env.Input("b", "name=second")
	f.env.Command("build", "make {name}")
	f.env.Command("deploy", "ship {name} {target?\"local\"}")
	f.env.Pipeline("release", "build", "# comment", "deploy")

	opts := f.opts
	opts.Pipeline = "release"
	opts.Inputs = inputs.Options{Batch: []string{"all"}}

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"make first", "ship first local", "make second", "ship second local"}, f.exec.commands)
	assert.Equal(t, 2, result.Jobs)
	assert.Equal(t, 4, result.Commands)
}

func TestRun_NonZeroExitIsCounted(t *testing.T) {
	f := newFixture(t)
	f.env.Batch("all", "a", "b")
	f.env.Input("a", "v=1")
	f.env.Input("b", "v=2")
	f.env.Command("check", "test {v}")
	f.exec.codes["test 1"] = 3

	opts := f.opts
	opts.Command = "check"
	opts.Inputs = inputs.Options{Batch: []string{"all"}}

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, len(f.exec.commands))
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, f.errOut.String(), "Command (check) exited with status 3")
}

func TestRun_RenderFailureStops(t *testing.T) {
	f := newFixture(t)
	f.env.Batch("all", "a", "b")
	f.env.Input("a", "v=1")
	f.env.Input("b", "other=2")
	f.env.Command("show", "echo {v}")

	opts := f.opts
	opts.Command = "show"
	opts.Inputs = inputs.Options{Batch: []string{"all"}}

	result, err := Run(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
	assert.Equal(t, []string{"echo 1"}, f.exec.commands)
	assert.Equal(t, 2, result.Jobs)
}

func TestRun_SubCommands(t *testing.T) {
	f := newFixture(t)

	opts := f.opts
	opts.Command = "echo $(date +{fmt})"
	opts.Inline = true
	opts.Pipable = true
	opts.Inputs = inputs.Options{Overwrite: []string{"fmt=%Y"}}

	_, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, "echo captured(date +%Y)\n", f.out.String())
}

func TestRun_Check(t *testing.T) {
	f := newFixture(t)

	opts := f.opts
	opts.Command = "echo {ARG1}"
	opts.Inline = true
	opts.Check = true
	opts.Inputs = inputs.Options{Args: []string{"'unterminated"}}

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, f.exec.commands)
}

func TestRun_Errors(t *testing.T) {
	f := newFixture(t)
	f.env.Command("deploy", "ship")

	tests := []struct {
		name string
		opts func(RunOptions) RunOptions
		code errors.ErrorCode
	}{
		{"no_command", func(o RunOptions) RunOptions { return o }, errors.ErrInvalidInput},
		{"missing_command", func(o RunOptions) RunOptions { o.Command = "deplyo"; return o }, errors.ErrNotFound},
		{"missing_pipeline", func(o RunOptions) RunOptions { o.Pipeline = "nope"; return o }, errors.ErrNotFound},
		{"bad_template", func(o RunOptions) RunOptions { o.Command = "echo {"; o.Inline = true; return o }, errors.ErrTemplateParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.opts(f.opts))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}
