package show

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
)

// ShowOptions defines the options for the Show command.
type ShowOptions struct {
	Project *paths.Project
	// File is a path relative to the .anek directory, as listed by list
	File string
}

// Show reads a file of the configuration. Command files are flagged so
// they can be displayed as templates.
func Show(opts ShowOptions) (*types.ShowResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Show").Str("file", opts.File).Msg("Executing command")

	path, err := internal.ConfigFile(opts.Project, opts.File)
	if err != nil {
		return nil, err
	}
	data, err := opts.Project.FS().ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't open file %s", path).
			WithDetail("path", path)
	}

	result := &types.ShowResult{
		Path:      path,
		Content:   string(data),
		IsCommand: strings.HasPrefix(opts.File, types.Commands.DirName()+"/"),
	}
	if result.IsCommand {
		// Validates the template before it is displayed as one
		if _, err := internal.ReadTemplate(opts.Project.FS(), path); err != nil {
			return nil, err
		}
	}

	log.Info().Str("command", "Show").Str("path", path).Msg("Command finished")
	return result, nil
}
