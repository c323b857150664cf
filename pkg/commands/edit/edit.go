package edit

import (
	"context"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/shell"
)

// EditOptions defines the options for the Edit command.
type EditOptions struct {
	Project *paths.Project
	// File is a path relative to the .anek directory
	File string
	// Editor is the editor command, arguments allowed
	Editor string
	// Open launches the editor; shell.Editor when nil
	Open    func(ctx context.Context, editor, path string) error
	Context context.Context
}

// Edit opens a configuration file in the editor and returns its path.
func Edit(opts EditOptions) (string, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Edit").Str("file", opts.File).Msg("Executing command")

	path, err := internal.ConfigFile(opts.Project, opts.File)
	if err != nil {
		return "", err
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	open := opts.Open
	if open == nil {
		open = func(ctx context.Context, editor, path string) error {
			return shell.Editor(ctx, editor, path, shell.StdIO())
		}
	}
	if err := open(ctx, opts.Editor, path); err != nil {
		return path, err
	}

	log.Info().Str("command", "Edit").Str("path", path).Msg("Command finished")
	return path, nil
}
