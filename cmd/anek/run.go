package anek

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/export"
	"github.com/arthur-debert/anek/pkg/commands/render"
	"github.com/arthur-debert/anek/pkg/commands/run"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/inputs"
	"github.com/arthur-debert/anek/pkg/shell"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/spf13/cobra"
)

// addInputFlags registers the flags selecting the jobs
func addInputFlags(g *globals, cmd *cobra.Command, opts *inputs.Options) {
	cmd.Flags().StringSliceVarP(&opts.Inputs, "input", "i", nil, MsgFlagInput)
	cmd.Flags().StringSliceVarP(&opts.Batch, "batch", "b", nil, MsgFlagBatch)
	cmd.Flags().StringVarP(&opts.Loop, "loop", "l", "", MsgFlagLoop)
	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", MsgFlagSelect)
	cmd.Flags().StringSliceVarP(&opts.Overwrite, "overwrite", "o", nil, MsgFlagOverwrite)
	cmd.MarkFlagsMutuallyExclusive("input", "batch", "loop")

	_ = cmd.RegisterFlagCompletionFunc("input", g.completeNames(types.Inputs))
	_ = cmd.RegisterFlagCompletionFunc("batch", g.completeNames(types.Batch))
	_ = cmd.RegisterFlagCompletionFunc("loop", g.completeNames(types.Loops))
}

// splitArgs separates the positional arguments from those after "--",
// which become ARG1..ARGn.
func splitArgs(cmd *cobra.Command, args []string) ([]string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func positional(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		pos, _ := splitArgs(cmd, args)
		if len(pos) != n {
			return errors.Newf(errors.ErrInvalidInput, "accepts %d arg(s) before --, received %d", n, len(pos))
		}
		return nil
	}
}

func (g *globals) stdio(cmd *cobra.Command) shell.IO {
	return shell.IO{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
}

func newRunCmd(g *globals) *cobra.Command {
	var (
		opts     run.RunOptions
		pipeline bool
	)
	cmd := &cobra.Command{
		Use:     "run <command|pipeline|template> [-- args...]",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    positional(1),
		GroupID: "run",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 || opts.Inline {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			if pipeline {
				return g.completeNames(types.Pipelines)(cmd, args, toComplete)
			}
			return g.completeNames(types.Commands)(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			project, cfg, err := g.project()
			if err != nil {
				return err
			}
			pos, rest := splitArgs(cmd, args)

			opts.Project = project
			opts.Config = cfg
			opts.Command = pos[0]
			if pipeline {
				opts.Command, opts.Pipeline = "", pos[0]
			}
			opts.Inputs.Args = rest
			opts.Executor = shell.New(cfg.Shell, g.stdio(cmd))
			opts.Printer = g.printer(cmd)
			opts.Context = cmd.Context()

			result, err := run.Run(opts)
			if err != nil {
				return err
			}
			if result.Failed > 0 {
				return errors.Newf(errors.ErrCommandExecute, MsgErrCommandsFailed, result.Failed, result.Commands)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.Inline, "template", "t", false, MsgFlagTemplate)
	cmd.Flags().BoolVarP(&pipeline, "pipeline", "p", false, MsgFlagPipeline)
	cmd.Flags().BoolVarP(&opts.Demo, "demo", "d", false, MsgFlagDemo)
	cmd.Flags().BoolVarP(&opts.Pipable, "pipable", "P", false, MsgFlagPipable)
	cmd.Flags().BoolVar(&opts.Check, "check", false, MsgFlagCheck)
	cmd.MarkFlagsMutuallyExclusive("template", "pipeline")
	addInputFlags(g, cmd, &opts.Inputs)
	return cmd
}

func newRenderCmd(g *globals) *cobra.Command {
	var (
		opts  render.RenderOptions
		watch bool
	)
	cmd := &cobra.Command{
		Use:     "render <file|template> [-- args...]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		Args:    positional(1),
		GroupID: "run",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if opts.Stored && len(args) == 0 {
				return g.completeNames(types.Templates)(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			project, cfg, err := g.project()
			if err != nil {
				return err
			}
			pos, rest := splitArgs(cmd, args)

			opts.Project = project
			opts.Config = cfg
			opts.File = pos[0]
			if !opts.Inline && !opts.Stored {
				opts.File = g.path(opts.File)
			}
			opts.Inputs.Args = rest
			opts.Shell = shell.New(cfg.Shell, g.stdio(cmd))
			printer := g.printer(cmd)
			opts.Printer = printer

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				opts.Context = ctx
				printer.Notice(MsgWatching)
				return render.Watch(opts, cmd.OutOrStdout(), func(err error) { printer.Error(err) })
			}

			opts.Context = cmd.Context()
			result, err := render.Render(opts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), result.Output)
			return err
		},
	}
	cmd.Flags().BoolVarP(&opts.Inline, "template", "t", false, MsgFlagTemplate)
	cmd.Flags().BoolVar(&opts.Stored, "stored", false, MsgFlagStored)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, MsgFlagWatch)
	cmd.MarkFlagsMutuallyExclusive("template", "stored")
	addInputFlags(g, cmd, &opts.Inputs)
	return cmd
}

func newExportCmd(g *globals) *cobra.Command {
	var opts export.ExportOptions
	cmd := &cobra.Command{
		Use:     "export --vars a,b [-- args...]",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		Example: MsgExportExample,
		Args:    positional(0),
		GroupID: "run",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, cfg, err := g.project()
			if err != nil {
				return err
			}
			_, rest := splitArgs(cmd, args)

			opts.Project = project
			opts.Config = cfg
			opts.Inputs.Args = rest
			opts.Shell = shell.New(cfg.Shell, g.stdio(cmd))
			opts.Context = cmd.Context()

			result, err := export.Export(opts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), result.Output)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&opts.Vars, "vars", nil, MsgFlagVars)
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "csv", formatUsage())
	_ = cmd.MarkFlagRequired("vars")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return export.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("vars", g.completeNames(types.Variables))
	addInputFlags(g, cmd, &opts.Inputs)
	return cmd
}

func formatUsage() string {
	return fmt.Sprintf(MsgFlagFormat, strings.Join(export.Formats(), ", "))
}
