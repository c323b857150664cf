package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/rs/zerolog"

	anekerrors "github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
)

// DefaultProgram is used when no shell program is configured
const DefaultProgram = "sh"

// System runs commands as `<program> -c <command>`
type System struct {
	program string
	io      IO
	logger  zerolog.Logger
}

// NewSystem creates a system executor
func NewSystem(program string, stdio IO) *System {
	if program == "" {
		program = DefaultProgram
	}
	return &System{
		program: program,
		io:      stdio,
		logger:  logging.GetLogger("shell.system"),
	}
}

// Run implements Executor
func (s *System) Run(ctx context.Context, command, dir string) (int, error) {
	s.logger.Debug().
		Str("program", s.program).
		Str("command", command).
		Str("workingDir", dir).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, s.program, "-c", command)
	cmd.Dir = dir
	cmd.Stdin = s.io.Stdin
	cmd.Stdout = s.io.Stdout
	cmd.Stderr = s.io.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		s.logger.Debug().Int("exitCode", exitErr.ExitCode()).Str("command", command).Msg("Command exited with error")
		return exitErr.ExitCode(), nil
	}
	return -1, anekerrors.Wrapf(err, anekerrors.ErrCommandExecute, "failed to run %q with %s", command, s.program).
		WithDetail("command", command)
}

// Capture implements Executor
func (s *System) Capture(ctx context.Context, command, dir string) (string, error) {
	s.logger.Debug().Str("command", command).Str("workingDir", dir).Msg("Capturing command output")

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, s.program, "-c", command)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = s.io.Stderr

	if err := cmd.Run(); err != nil {
		return "", anekerrors.Wrapf(err, anekerrors.ErrCommandExecute, "command %q failed", command).
			WithDetail("command", command)
	}
	return stdout.String(), nil
}
