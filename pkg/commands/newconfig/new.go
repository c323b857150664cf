package newconfig

import (
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
)

// NewOptions defines the options for the New command.
type NewOptions struct {
	FileSystem types.FS
	// Path is the directory to create the configuration in
	Path string
	// Variables are names of empty variable files to create
	Variables []string
}

// New creates the .anek configuration and its category directories in
// Path, plus an empty file for each requested variable.
func New(opts NewOptions) (*types.NewResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "New").Str("path", opts.Path).Msg("Executing command")

	for _, v := range opts.Variables {
		if !template.ValidName(v) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid variable name %q", v).
				WithDetail("variable", v)
		}
	}

	if err := opts.FileSystem.MkdirAll(opts.Path, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", opts.Path).
			WithDetail("path", opts.Path)
	}
	project, err := paths.Create(opts.FileSystem, opts.Path)
	if err != nil {
		return nil, err
	}

	result := &types.NewResult{Root: project.Root(), Variables: []string{}}
	for _, v := range opts.Variables {
		path := project.File(types.Variables, v)
		if err := opts.FileSystem.WriteFile(path, nil, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", path).
				WithDetail("path", path)
		}
		result.Variables = append(result.Variables, path)
	}

	log.Info().Str("command", "New").Str("root", result.Root).Int("variables", len(result.Variables)).Msg("Command finished")
	return result, nil
}
