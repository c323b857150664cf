// Package inputs resolves the command line input options into the
// sequence of jobs a command, pipeline or template is rendered against.
//
// Exactly one source is used: batch files (one job per selected line),
// a loop (one job per selected combination, produced lazily) or direct
// inputs (a single job merging every named input).
package inputs

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/loops"
	"github.com/arthur-debert/anek/pkg/paths"
	"github.com/arthur-debert/anek/pkg/selection"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

// BatchSeparator splits the input names of a batch line
const BatchSeparator = ","

// Options are the input related flags shared by run, render and export
type Options struct {
	// Inputs are input names merged in order into a single job
	Inputs []string
	// Batch are batch file names, their lines concatenated
	Batch []string
	// Loop is a loop name, loops/<name>.d
	Loop string
	// Select is a selection expression for batch lines or loop combinations
	Select string
	// Overwrite are name=value entries applied on top of every job
	Overwrite []string
	// Args are positional arguments exposed as ARG1..ARGn
	Args []string
}

// Validate checks that at most one input source is used
func (o Options) Validate() error {
	sources := 0
	for _, used := range []bool{len(o.Inputs) > 0, len(o.Batch) > 0, o.Loop != ""} {
		if used {
			sources++
		}
	}
	if sources > 1 {
		return errors.New(errors.ErrInvalidInput, "only one of --input, --batch and --loop can be used")
	}
	return nil
}

// Sequence produces jobs one at a time
type Sequence interface {
	// Len is the number of jobs Next will produce
	Len() int
	// Next returns the next job, false when exhausted
	Next() (types.CommandInputs, bool, error)
}

// Resolution is a resolved job sequence and its overwrite map
type Resolution struct {
	Sequence  Sequence
	Overwrite types.VariableMap
}

// Resolve builds the job sequence. relevant restricts loop axes to the
// variables used by what is being rendered; nil keeps every axis.
func Resolve(project *paths.Project, opts Options, relevant map[string]bool) (*Resolution, error) {
	log := logging.GetLogger("core.inputs")

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sel, err := selection.Parse(opts.Select)
	if err != nil {
		return nil, err
	}
	overwrite, err := variables.Overwrites(opts.Args, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	var seq Sequence
	switch {
	case len(opts.Batch) > 0:
		log.Debug().Strs("batch", opts.Batch).Stringer("selection", sel).Msg("Resolving batch inputs")
		seq, err = batchSequence(project, opts.Batch, sel)
	case opts.Loop != "":
		log.Debug().Str("loop", opts.Loop).Stringer("selection", sel).Msg("Resolving loop inputs")
		seq, err = loopSequence(project, opts.Loop, sel, relevant, overwrite)
	default:
		log.Debug().Strs("inputs", opts.Inputs).Msg("Resolving direct inputs")
		var job types.CommandInputs
		job, err = readJob(project, 1, opts.Inputs)
		seq = &sliceSequence{jobs: []types.CommandInputs{job}}
	}
	if err != nil {
		return nil, err
	}

	return &Resolution{Sequence: seq, Overwrite: overwrite}, nil
}

// Variables returns the job's variables with the overwrites rendered
// against them and applied on top.
func (r *Resolution) Variables(job types.CommandInputs, opts template.RenderOptions) (types.VariableMap, error) {
	return variables.Apply(job.Variables, r.Overwrite, opts)
}

// readJob merges the named inputs into one job
func readJob(project *paths.Project, index int, names []string) (types.CommandInputs, error) {
	for _, name := range names {
		if !project.Exists(types.Inputs, name) {
			return types.CommandInputs{}, project.Missing(types.Inputs, name)
		}
	}

	files := project.Files(types.Inputs, names)
	read, err := lines.Merge(project.FS(), files)
	if err != nil {
		return types.CommandInputs{}, err
	}
	vars, err := variables.Parse(read)
	if err != nil {
		return types.CommandInputs{}, err
	}
	return types.CommandInputs{
		Index:     index,
		Name:      strings.Join(names, BatchSeparator),
		Files:     files,
		Variables: vars,
	}, nil
}

type batchEntry struct {
	index int
	names []string
}

// batchSequence concatenates the batch files, numbers their lines from 1,
// applies the selection and reads each line's inputs when pulled.
func batchSequence(project *paths.Project, batches []string, sel selection.Set) (Sequence, error) {
	var all []types.Line
	for _, b := range batches {
		if !project.Exists(types.Batch, b) {
			return nil, project.Missing(types.Batch, b)
		}
		read, err := lines.Merge(project.FS(), []string{project.File(types.Batch, b)})
		if err != nil {
			return nil, err
		}
		all = append(all, read...)
	}

	var entries []batchEntry
	for _, l := range lines.Renumber(all, 1) {
		if !sel.IsSelected(l.Number) {
			continue
		}
		var names []string
		for _, n := range strings.Split(l.Text, BatchSeparator) {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		entries = append(entries, batchEntry{index: l.Number, names: names})
	}
	return &batchSeq{project: project, entries: entries}, nil
}

type batchSeq struct {
	project *paths.Project
	entries []batchEntry
	pos     int
}

func (b *batchSeq) Len() int { return len(b.entries) }

func (b *batchSeq) Next() (types.CommandInputs, bool, error) {
	if b.pos >= len(b.entries) {
		return types.CommandInputs{}, false, nil
	}
	e := b.entries[b.pos]
	b.pos++
	job, err := readJob(b.project, e.index, e.names)
	if err != nil {
		return types.CommandInputs{}, false, err
	}
	return job, true, nil
}

func loopSequence(project *paths.Project, name string, sel selection.Set, relevant map[string]bool, overwrite types.VariableMap) (Sequence, error) {
	dir := project.File(types.Loops, name+lines.DropInSuffix)
	if _, err := project.FS().Stat(dir); err != nil {
		return nil, project.Missing(types.Loops, name)
	}
	axes, err := loops.ReadAxes(project.FS(), dir)
	if err != nil {
		return nil, err
	}
	expansion := loops.New(axes, loops.Options{Relevant: relevant, Overwrite: overwrite, Selection: sel})
	return &loopSeq{expansion: expansion, it: expansion.Iterator()}, nil
}

type loopSeq struct {
	expansion *loops.Expansion
	it        *loops.Iterator
}

func (l *loopSeq) Len() int { return l.expansion.Selected() }

func (l *loopSeq) Next() (types.CommandInputs, bool, error) {
	c, ok := l.it.Next()
	if !ok {
		return types.CommandInputs{}, false, nil
	}
	return types.CommandInputs{Index: c.Ordinal, Name: c.Label(), Variables: c.Variables()}, true, nil
}

type sliceSequence struct {
	jobs []types.CommandInputs
	pos  int
}

func (s *sliceSequence) Len() int { return len(s.jobs) }

func (s *sliceSequence) Next() (types.CommandInputs, bool, error) {
	if s.pos >= len(s.jobs) {
		return types.CommandInputs{}, false, nil
	}
	job := s.jobs[s.pos]
	s.pos++
	return job, true, nil
}

// Collect drains a sequence
func Collect(seq Sequence) ([]types.CommandInputs, error) {
	var out []types.CommandInputs
	for {
		job, ok, err := seq.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, job)
	}
}
