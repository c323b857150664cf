package view

import (
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
)

// ViewOptions defines the options for the View command.
type ViewOptions struct {
	FileSystem types.FS
	// Start is the directory the configuration is searched from
	Start string
}

// View returns the root of the project containing Start.
func View(opts ViewOptions) (string, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "View").Str("start", opts.Start).Msg("Executing command")

	project, err := paths.Find(opts.FileSystem, opts.Start)
	if err != nil {
		return "", err
	}

	log.Info().Str("command", "View").Str("root", project.Root()).Msg("Command finished")
	return project.Root(), nil
}
