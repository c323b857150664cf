package run

import (
	"context"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/inputs"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/output"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/shell"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
)

// RunOptions defines the options for the Run command.
type RunOptions struct {
	Project *paths.Project
	Config  *config.Config
	// Command is a command name, or an inline template when Inline is set
	Command string
	Inline  bool
	// Pipeline runs every command of pipelines/<name> instead of Command
	Pipeline string
	Inputs   inputs.Options
	// Demo prints the commands without running them
	Demo bool
	// Pipable prints only the rendered commands, implies Demo
	Pipable bool
	// Check validates the shell syntax of rendered commands without running them
	Check    bool
	Executor shell.Executor
	Printer  *output.Printer
	Context  context.Context
}

// Run renders the command (or every command of a pipeline) against each
// job and runs it in the project root. A render failure stops everything;
// a command exiting non-zero is reported and counted.
func Run(opts RunOptions) (*types.RunResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Run").Str("target", opts.Command).Str("pipeline", opts.Pipeline).Msg("Executing command")

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	commands, err := loadCommands(opts)
	if err != nil {
		return nil, err
	}
	templates := make([]*template.Template, len(commands))
	for i, c := range commands {
		templates[i] = c.Template
	}

	resolution, err := inputs.Resolve(opts.Project, opts.Inputs, internal.Relevant(templates...))
	if err != nil {
		return nil, err
	}
	renderOpts := internal.RenderOptions(ctx, opts.Project, opts.Config, opts.Executor)

	result := &types.RunResult{}
	total := resolution.Sequence.Len()
	for i := 1; ; i++ {
		job, ok, err := resolution.Sequence.Next()
		if err != nil {
			return result, err
		}
		if !ok {
			break
		}
		result.Jobs++

		if !opts.Pipable {
			opts.Printer.JobHeader(job.Index, i, total, job.Name)
		}
		vars, err := resolution.Variables(job, renderOpts)
		if err != nil {
			return result, err
		}
		jobOpts := renderOpts
		jobOpts.Variables = vars

		for _, c := range commands {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := runOne(ctx, opts, c, jobOpts, result); err != nil {
				return result, err
			}
		}
	}

	log.Info().Str("command", "Run").Int("jobs", result.Jobs).Int("commands", result.Commands).Int("failed", result.Failed).Msg("Command finished")
	return result, nil
}

func runOne(ctx context.Context, opts RunOptions, c internal.NamedTemplate, renderOpts template.RenderOptions, result *types.RunResult) error {
	log := logging.GetLogger("core.commands")

	rendered, err := c.Template.Render(renderOpts)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRender, "cannot render command %s", c.Name).
			WithDetail("command", c.Name)
	}
	result.Commands++

	if opts.Pipable {
		opts.Printer.Line(rendered)
		return nil
	}
	opts.Printer.Command(c.Name, rendered)

	if opts.Check {
		if err := shell.Validate(rendered); err != nil {
			result.Failed++
			opts.Printer.Warn("%v", err)
		}
		return nil
	}
	if opts.Demo {
		return nil
	}

	code, err := opts.Executor.Run(ctx, rendered, opts.Project.Root())
	if err != nil {
		return err
	}
	if code != 0 {
		result.Failed++
		log.Debug().Str("name", c.Name).Int("exitCode", code).Msg("Command failed")
		opts.Printer.Warn("Command (%s) exited with status %d", c.Name, code)
	}
	return nil
}

func loadCommands(opts RunOptions) ([]internal.NamedTemplate, error) {
	switch {
	case opts.Pipeline != "":
		return internal.LoadPipeline(opts.Project, opts.Pipeline)
	case opts.Command == "":
		return nil, errors.New(errors.ErrInvalidInput, "a command or --pipeline is required")
	case opts.Inline:
		c, err := internal.InlineCommand(opts.Command)
		if err != nil {
			return nil, err
		}
		return []internal.NamedTemplate{c}, nil
	default:
		c, err := internal.LoadCommand(opts.Project, opts.Command)
		if err != nil {
			return nil, err
		}
		return []internal.NamedTemplate{c}, nil
	}
}
