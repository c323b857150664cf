package anek

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/anek/internal/version"
	"github.com/arthur-debert/anek/pkg/commands/edit"
	"github.com/arthur-debert/anek/pkg/commands/list"
	"github.com/arthur-debert/anek/pkg/commands/newconfig"
	"github.com/arthur-debert/anek/pkg/commands/show"
	"github.com/arthur-debert/anek/pkg/commands/variable"
	"github.com/arthur-debert/anek/pkg/commands/view"
	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/shell"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newNewCmd(g *globals) *cobra.Command {
	var vars []string
	cmd := &cobra.Command{
		Use:     "new [path]",
		Short:   MsgNewShort,
		Long:    MsgNewLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			result, err := newconfig.New(newconfig.NewOptions{
				FileSystem: g.fs,
				Path:       g.path(path),
				Variables:  vars,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), MsgCreated, result.Root)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&vars, "variables", nil, MsgFlagVariables)
	return cmd
}

func newVariableCmd(g *globals) *cobra.Command {
	var opts variable.VariableOptions
	cmd := &cobra.Command{
		Use:     "variable",
		Short:   MsgVariableShort,
		Long:    MsgVariableLong,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _, err := g.project()
			if err != nil {
				return err
			}
			printer := g.printer(cmd)

			opts.Project = project
			if opts.Update != "" {
				opts.Update = g.path(opts.Update)
				opts.Stdin = cmd.InOrStdin()
				opts.OnWaiting = func() { printer.Notice(MsgWaitingInput) }
				opts.OnChange = func(c variables.Change) { printer.Change(c) }
			}
			result, err := variable.Variable(opts)
			if err != nil {
				return err
			}

			for _, name := range result.New {
				printer.Linef(MsgNewVariable, printer.Style("Error", "New"), name)
			}
			for _, info := range result.Infos {
				printer.VariableInfo(info)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.ScanInputs, "scan-inputs", "s", false, "List the variables of input files without a variable file")
	cmd.Flags().BoolVarP(&opts.ScanCommands, "scan-commands", "S", false, "List the variables of commands without a variable file")
	cmd.Flags().BoolVarP(&opts.Add, "add", "a", false, "Create the variable files of the scanned variables")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "List the variables with their short description")
	cmd.Flags().BoolVarP(&opts.Details, "details", "d", false, "List the variables with their full description")
	cmd.Flags().StringVarP(&opts.Info, "info", "i", "", "Describe one variable")
	cmd.Flags().StringVarP(&opts.Update, "update", "u", "", "Update the file (or file template) from key=value lines on stdin")
	_ = cmd.RegisterFlagCompletionFunc("info", g.completeNames(types.Variables))
	return cmd
}

func newListCmd(g *globals) *cobra.Command {
	var (
		opts     list.ListOptions
		selected = map[types.Category]*bool{}
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _, err := g.project()
			if err != nil {
				return err
			}
			opts.Project = project
			opts.Categories = nil
			for _, c := range types.AllCategories() {
				if *selected[c] {
					opts.Categories = append(opts.Categories, c)
				}
			}

			result, err := list.List(opts)
			if err != nil {
				return err
			}

			printer := g.printer(cmd)
			for _, entry := range result.Entries {
				if entry.Prefix != "" {
					printer.Line(printer.Style("Muted", entry.Prefix) + "/" + entry.Name)
				} else {
					printer.Line(entry.Name)
				}
				for _, m := range entry.Matches {
					printer.Linef("%d: %s", m.Number, printer.Highlight(m.Text, opts.Search))
				}
			}
			return nil
		},
	}
	shorthands := map[types.Category]string{
		types.Variables: "V",
		types.Inputs:    "i",
		types.Commands:  "c",
		types.Pipelines: "p",
		types.Templates: "t",
		types.Loops:     "l",
		types.Batch:     "b",
	}
	for _, c := range types.AllCategories() {
		selected[c] = cmd.Flags().BoolP(c.DirName(), shorthands[c], false, "List "+c.DirName())
	}
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, MsgFlagAll)
	cmd.Flags().StringSliceVarP(&opts.Filter, "filter", "F", nil, MsgFlagFilter)
	cmd.Flags().StringSliceVarP(&opts.Search, "search", "s", nil, MsgFlagSearch)
	cmd.Flags().StringSliceVar(&opts.Has, "has", nil, MsgFlagHas)
	return cmd
}

func newEditCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:               "edit <file>",
		Short:             MsgEditShort,
		Long:              MsgEditLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "config",
		ValidArgsFunction: g.completeFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, cfg, err := g.project()
			if err != nil {
				return err
			}
			_, err = edit.Edit(edit.EditOptions{
				Project: project,
				File:    args[0],
				Editor:  cfg.EditorCommand(),
				Context: cmd.Context(),
				Open: func(ctx context.Context, editor, path string) error {
					fmt.Fprintf(cmd.OutOrStdout(), MsgEditing+"\n", editor, path)
					return shell.Editor(ctx, editor, path, shell.IO{
						Stdin:  cmd.InOrStdin(),
						Stdout: cmd.OutOrStdout(),
						Stderr: cmd.ErrOrStderr(),
					})
				},
			})
			return err
		},
	}
}

func newShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:               "show <file>",
		Short:             MsgShowShort,
		Long:              MsgShowLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "config",
		ValidArgsFunction: g.completeFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _, err := g.project()
			if err != nil {
				return err
			}
			result, err := show.Show(show.ShowOptions{Project: project, File: args[0]})
			if err != nil {
				return err
			}

			printer := g.printer(cmd)
			if result.IsCommand {
				t, err := template.Parse(strings.TrimSpace(result.Content))
				if err != nil {
					return err
				}
				printer.Line(printer.Template(t))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Content)
			if !strings.HasSuffix(result.Content, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func newViewCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "view",
		Short:   MsgViewShort,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := view.View(view.ViewOptions{FileSystem: g.fs, Start: g.path(".")})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		},
	}
}

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := g.project()
			if errors.IsErrorCode(err, errors.ErrConfigNotFound) {
				log.Debug().Msg("No project, printing user configuration")
				cfg, err = config.Load("")
			}
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "couldn't encode configuration")
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
