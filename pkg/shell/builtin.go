package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	anekerrors "github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
)

// Builtin interprets commands in-process with bash syntax
type Builtin struct {
	io     IO
	logger zerolog.Logger
}

// NewBuiltin creates a builtin executor
func NewBuiltin(stdio IO) *Builtin {
	return &Builtin{io: stdio, logger: logging.GetLogger("shell.builtin")}
}

// Run implements Executor
func (b *Builtin) Run(ctx context.Context, command, dir string) (int, error) {
	b.logger.Debug().Str("command", command).Str("workingDir", dir).Msg("Executing command")
	return b.run(ctx, command, dir, b.io.Stdout)
}

// Capture implements Executor
func (b *Builtin) Capture(ctx context.Context, command, dir string) (string, error) {
	var stdout bytes.Buffer
	code, err := b.run(ctx, command, dir, &stdout)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", anekerrors.Newf(anekerrors.ErrCommandExecute, "command %q exited with status %d", command, code).
			WithDetail("command", command)
	}
	return stdout.String(), nil
}

func (b *Builtin) run(ctx context.Context, command, dir string, stdout io.Writer) (int, error) {
	prog, err := parse(command)
	if err != nil {
		return -1, err
	}

	runner, err := interp.New(
		interp.StdIO(b.io.Stdin, stdout, b.io.Stderr),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.Dir(dir),
	)
	if err != nil {
		return -1, anekerrors.Wrap(err, anekerrors.ErrCommandExecute, "failed to create interpreter")
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return 0, nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status), nil
	}
	return -1, anekerrors.Wrapf(err, anekerrors.ErrCommandExecute, "failed to run %q", command).
		WithDetail("command", command)
}

func parse(command string) (*syntax.File, error) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	prog, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, anekerrors.Wrapf(err, anekerrors.ErrCommandSyntax, "invalid shell syntax in %q", command).
			WithDetail("command", command)
	}
	return prog, nil
}

// Validate checks that command is valid shell syntax without running it
func Validate(command string) error {
	_, err := parse(command)
	return err
}
