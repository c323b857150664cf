// Package graph draws the configuration as a Graphviz digraph: one node
// per file, clustered by category, with edges from the parts of pipelines,
// commands, inputs and batches to the file that uses them.
package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/anek/pkg/commands/internal"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

// GraphOptions defines the options for the Graph command.
type GraphOptions struct {
	Project *paths.Project
	// Pipelines restricts the pipeline chains drawn, all when empty
	Pipelines []string
	// Batches restricts the batch chains drawn, all when empty
	Batches []string
	// RaiseNodes draws edges first so nodes stay on top
	RaiseNodes bool
	NoClusters bool
	// URLs links every node to its file
	URLs bool
}

var nodeColors = map[types.Category]string{
	types.Inputs:    "red",
	types.Pipelines: "blue",
	types.Batch:     "orange",
	types.Variables: "yellow",
	types.Commands:  "brown",
}

const defaultColor = "gray"

type dot struct {
	b     strings.Builder
	nodes int
	edges int
}

func (d *dot) line(format string, args ...interface{}) {
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteString("\n")
}

func (d *dot) chain(items []string, target, color string) {
	quoted := make([]string, 0, len(items)+1)
	for _, item := range items {
		quoted = append(quoted, strconv.Quote(item))
	}
	quoted = append(quoted, strconv.Quote(target))
	d.line("%s [color=%s]", strings.Join(quoted, " -> "), color)
	d.edges += len(items)
}

func (d *dot) edge(from, to, color string) {
	d.line("%s -> %s  [color=%s]", strconv.Quote(from), strconv.Quote(to), color)
	d.edges++
}

// Graph builds the DOT source of the project graph
func Graph(opts GraphOptions) (*types.GraphResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Graph").Msg("Executing command")

	p := opts.Project
	d := &dot{}
	d.line("digraph anek{")
	d.line("rank=LR;")
	d.line("overlap=prism; overlap_scaling=-3.5;")
	d.line("node [penwidth=2, shape=rectangle];")
	if opts.RaiseNodes {
		d.line("outputorder=edgesfirst")
	}

	for _, c := range types.AllCategories() {
		if err := nodes(d, p, c, opts); err != nil {
			return nil, err
		}
	}
	if err := pipelineEdges(d, p, opts.Pipelines); err != nil {
		return nil, err
	}
	if err := commandEdges(d, p); err != nil {
		return nil, err
	}
	if err := inputEdges(d, p); err != nil {
		return nil, err
	}
	if err := batchEdges(d, p, opts.Batches); err != nil {
		return nil, err
	}
	d.line("}")

	log.Info().Str("command", "Graph").Int("nodes", d.nodes).Int("edges", d.edges).Msg("Command finished")
	return &types.GraphResult{Dot: d.b.String(), Nodes: d.nodes, Edges: d.edges}, nil
}

func nodes(d *dot, p *paths.Project, c types.Category, opts GraphOptions) error {
	names, err := lines.ListProjectFilenames(p.FS(), p.Directory(c))
	if err != nil {
		return err
	}
	if !opts.NoClusters {
		d.line("subgraph cluster_%s {", c.DirName())
		d.line("label = %s;", c.DirName())
	}
	color, ok := nodeColors[c]
	if !ok {
		color = defaultColor
	}
	for _, name := range names {
		attrs := "color=" + color
		if opts.URLs {
			attrs += ",URL=" + strconv.Quote(p.ResolveExisting(c, name))
		}
		d.line("%s [%s]", strconv.Quote(name), attrs)
		d.nodes++
	}
	if !opts.NoClusters {
		d.line("}")
	}
	return nil
}

// listedLines returns the lines of each named file, every file of the
// category when names is empty.
func listedLines(p *paths.Project, c types.Category, names []string) ([]string, map[string][]string, error) {
	if len(names) == 0 {
		var err error
		if names, err = lines.ListFilenames(p.FS(), p.Directory(c)); err != nil {
			return nil, nil, err
		}
	}
	texts := make(map[string][]string, len(names))
	for _, name := range names {
		if !p.Exists(c, name) {
			return nil, nil, p.Missing(c, name)
		}
		read, err := lines.Merge(p.FS(), []string{p.File(c, name)})
		if err != nil {
			return nil, nil, err
		}
		texts[name] = types.Texts(read)
	}
	return names, texts, nil
}

// pipelineEdges chains the commands of each pipeline into it
func pipelineEdges(d *dot, p *paths.Project, only []string) error {
	names, texts, err := listedLines(p, types.Pipelines, only)
	if err != nil {
		return err
	}
	for _, name := range names {
		d.chain(texts[name], name, "blue")
	}
	return nil
}

// batchEdges chains the input lines of each batch into it
func batchEdges(d *dot, p *paths.Project, only []string) error {
	names, texts, err := listedLines(p, types.Batch, only)
	if err != nil {
		return err
	}
	for _, name := range names {
		d.chain(texts[name], name, "orange")
	}
	return nil
}

// commandEdges links every variable a command uses to the command
func commandEdges(d *dot, p *paths.Project) error {
	names, err := lines.ListFilenames(p.FS(), p.Directory(types.Commands))
	if err != nil {
		return err
	}
	for _, name := range names {
		t, err := internal.ReadTemplate(p.FS(), p.File(types.Commands, name))
		if err != nil {
			return err
		}
		vars := t.Variables()
		sort.Strings(vars)
		for _, v := range vars {
			d.edge(v, name, "yellow")
		}
	}
	return nil
}

// inputEdges links every key an input defines to the input
func inputEdges(d *dot, p *paths.Project) error {
	names, err := lines.ListProjectFilenames(p.FS(), p.Directory(types.Inputs))
	if err != nil {
		return err
	}
	for _, name := range names {
		read, err := lines.Merge(p.FS(), []string{p.File(types.Inputs, name)})
		if err != nil {
			return err
		}
		keys, err := variables.Keys(read)
		if err != nil {
			return err
		}
		for _, k := range keys {
			d.edge(k, name, "pink")
		}
	}
	return nil
}
