// Package export tabulates the values of chosen variables across jobs in
// one of several text formats.
package export

import (
	"context"
	"sort"
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/inputs"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
)

// ExportOptions defines the options for the Export command.
type ExportOptions struct {
	Project *paths.Project
	Config  *config.Config
	Inputs  inputs.Options
	// Vars are the exported variables, in column order
	Vars []string
	// Format is one of Formats(), "csv" when empty
	Format  string
	Shell   template.Capturer
	Context context.Context
}

// Row is the values of the exported variables for one job
type Row struct {
	Job    types.CommandInputs
	Values []string
}

// Export renders the chosen variables for every job
func Export(opts ExportOptions) (*types.ExportResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Export").Strs("vars", opts.Vars).Str("format", opts.Format).Msg("Executing command")

	format := opts.Format
	if format == "" {
		format = "csv"
	}
	encode, ok := encoders[format]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown export format %q, expected one of %s",
			format, strings.Join(Formats(), ", ")).WithDetail("format", format)
	}
	if len(opts.Vars) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no variables to export")
	}
	relevant := map[string]bool{}
	for _, v := range opts.Vars {
		if !template.ValidName(v) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid variable name %q", v)
		}
		relevant[v] = true
	}

	resolution, err := inputs.Resolve(opts.Project, opts.Inputs, relevant)
	if err != nil {
		return nil, err
	}
	renderOpts := internal.RenderOptions(opts.Context, opts.Project, opts.Config, opts.Shell)

	var rows []Row
	for {
		job, ok, err := resolution.Sequence.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		vars, err := resolution.Variables(job, renderOpts)
		if err != nil {
			return nil, err
		}
		row := Row{Job: job, Values: make([]string, len(opts.Vars))}
		for i, name := range opts.Vars {
			value, ok := vars[name]
			if !ok {
				return nil, errors.Newf(errors.ErrTemplateRender, "variable %s not defined for %s", name, job.Name).
					WithDetail("variable", name).
					WithDetail("job", job.Name)
			}
			row.Values[i] = value
		}
		rows = append(rows, row)
	}

	out, err := encode(opts.Vars, rows)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "couldn't encode %s", format)
	}

	log.Info().Str("command", "Export").Int("rows", len(rows)).Msg("Command finished")
	return &types.ExportResult{Output: out, Rows: len(rows)}, nil
}

// Formats lists the supported export formats
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
