// Package anek is the command line interface of anek.
package anek

import (
	"io"
	"path/filepath"
	"time"

	"github.com/arthur-debert/anek/internal/version"
	"github.com/arthur-debert/anek/pkg/config"
	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/filesystem"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/output"
	"github.com/arthur-debert/anek/pkg/output/styles"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags and what commands load from them
type globals struct {
	verbosity int
	quiet     bool
	noColor   bool
	chdir     string

	fs  types.FS
	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globals{fs: filesystem.NewOS()})
}

func newRootCmd(g *globals) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "anek",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{
				Verbosity: g.verbosity,
				Console:   cmd.ErrOrStderr(),
				NoColor:   g.noColor,
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, MsgFlagQuiet)
	rootCmd.PersistentFlags().StringVarP(&g.chdir, "chdir", "C", ".", MsgFlagChdir)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)
	_ = rootCmd.MarkPersistentFlagDirname("chdir")

	rootCmd.AddGroup(&cobra.Group{ID: "run", Title: "RUN:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(g))
	rootCmd.AddCommand(newRenderCmd(g))
	rootCmd.AddCommand(newExportCmd(g))
	rootCmd.AddCommand(newNewCmd(g))
	rootCmd.AddCommand(newVariableCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newEditCmd(g))
	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newViewCmd(g))
	rootCmd.AddCommand(newReportCmd(g))
	rootCmd.AddCommand(newGraphCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := initTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// Execute runs the command line and returns the exit code. Errors are
// printed as "Error: <message>", followed unless --quiet by the start
// time and the time elapsed.
func Execute(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	g := &globals{fs: filesystem.NewOS()}
	rootCmd := newRootCmd(g)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteC()

	printer := g.printerFor(stdout, stderr)
	if err != nil {
		log.Debug().
			Str("code", string(errors.GetErrorCode(err))).
			Fields(errors.GetErrorDetails(err)).
			Msg("Command failed")
		printer.Error(err)
	}
	if g.showTiming(cmd) {
		printer.Timing(start, time.Since(start))
	}
	if err != nil {
		return 1
	}
	return 0
}

// showTiming reports whether the footer is printed after cmd
func (g *globals) showTiming(cmd *cobra.Command) bool {
	if g.quiet || (g.cfg != nil && !g.cfg.Output.Timing) {
		return false
	}
	if cmd == nil {
		return true
	}
	switch cmd.Name() {
	case "completion", "help", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return false
	}
	return true
}

// path resolves p against the --chdir directory
func (g *globals) path(p string) string {
	if filepath.IsAbs(p) || g.chdir == "" {
		return p
	}
	return filepath.Join(g.chdir, p)
}

// project finds the project from the --chdir directory and loads its
// configuration.
func (g *globals) project() (*paths.Project, *config.Config, error) {
	project, err := paths.Find(g.fs, g.path("."))
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(project.ConfigDir())
	if err != nil {
		return nil, nil, err
	}
	g.cfg = cfg
	if p := cfg.StylesPath(project.ConfigDir()); p != "" {
		if err := styles.LoadStyles(p); err != nil {
			return nil, nil, err
		}
	}
	return project, cfg, nil
}

// printer writes to the command's streams
func (g *globals) printer(cmd *cobra.Command) *output.Printer {
	return g.printerFor(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func (g *globals) printerFor(stdout, stderr io.Writer) *output.Printer {
	color := !g.noColor && output.DetectColor(stderr)
	if g.cfg != nil && !g.cfg.Output.Color {
		color = false
	}
	return output.New(stdout, stderr, color)
}
