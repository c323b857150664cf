package anek

import (
	"fmt"

	"github.com/arthur-debert/anek/pkg/cobrax/topics"
	"github.com/arthur-debert/anek/pkg/commands/graph"
	"github.com/arthur-debert/anek/pkg/commands/report"
	"github.com/spf13/cobra"
)

func newReportCmd(g *globals) *cobra.Command {
	var (
		filename   string
		toTerminal bool
	)
	cmd := &cobra.Command{
		Use:     "report",
		Short:   MsgReportShort,
		Long:    MsgReportLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, cfg, err := g.project()
			if err != nil {
				return err
			}
			if filename == "" {
				filename = cfg.Report.Filename
			}
			printer := g.printer(cmd)

			result, err := report.Report(report.ReportOptions{
				Project:  project,
				Filename: filename,
				Dir:      g.path("."),
				Write:    !toTerminal,
				OnGenerate: func(path string) {
					printer.Notice(MsgGenerating, path, project.ConfigDir())
				},
			})
			if err != nil {
				return err
			}
			if toTerminal {
				renderer := topics.NewGlamourRenderer()
				if !printer.Color() {
					renderer.Style = "notty"
				}
				fmt.Fprint(cmd.OutOrStdout(), renderer.Render(result.Content, report.Extension))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filename, "filename", "f", "", MsgFlagFilename)
	cmd.Flags().BoolVar(&toTerminal, "print", false, MsgFlagPrint)
	return cmd
}

func newGraphCmd(g *globals) *cobra.Command {
	var opts graph.GraphOptions
	cmd := &cobra.Command{
		Use:     "graph",
		Short:   MsgGraphShort,
		Long:    MsgGraphLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _, err := g.project()
			if err != nil {
				return err
			}
			opts.Project = project

			result, err := graph.Graph(opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Dot)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Pipelines, "pipelines", "p", nil, "Only include these pipelines")
	cmd.Flags().StringSliceVarP(&opts.Batches, "batches", "b", nil, "Only include these batch files")
	cmd.Flags().BoolVarP(&opts.RaiseNodes, "raise-nodes", "r", false, "Draw the nodes over the edges")
	cmd.Flags().BoolVarP(&opts.NoClusters, "no-clusters", "n", false, "Don't cluster the nodes by category")
	cmd.Flags().BoolVarP(&opts.URLs, "urls", "u", false, "Link the nodes to their files")
	return cmd
}
