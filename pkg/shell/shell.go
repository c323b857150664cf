// Package shell runs rendered commands. The system executor spawns the
// configured shell program, the builtin executor interprets commands
// in-process. Both block until the command finishes, without timeout.
package shell

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/anek/pkg/config"
)

// Executor runs shell commands
type Executor interface {
	// Run executes command in dir with stdio attached and returns its exit
	// code. The error is reserved for commands that could not be started.
	Run(ctx context.Context, command, dir string) (int, error)
	// Capture executes command in dir and returns its standard output. A
	// non-zero exit is an error.
	Capture(ctx context.Context, command, dir string) (string, error)
}

// IO holds the streams commands are attached to
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdIO returns the process streams
func StdIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// New returns the executor selected by the configuration
func New(cfg config.ShellConfig, stdio IO) Executor {
	if cfg.Backend == config.BackendBuiltin {
		return NewBuiltin(stdio)
	}
	return NewSystem(cfg.Program, stdio)
}
