// Package loops expands a loop directory into the cartesian product of
// its variables' values.
//
// Each file of a loop directory is an axis: the file name is the variable
// and every meaningful line a candidate value, numbered from 1 (its slot).
// Axes are ordered by file name and the first axis varies slowest, like
// nested loops with the last axis innermost. Combinations are produced
// lazily by an odometer over axis indices, so large products are never
// materialized, and the total is computed arithmetically.
package loops

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/lines"
	"github.com/arthur-debert/anek/pkg/selection"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

// Value is one candidate value of an axis
type Value struct {
	// Slot is the 1-based position in the axis file, 0 for overwritten values
	Slot int
	Text string
}

// Axis is one loop variable with its candidate values
type Axis struct {
	Name   string
	Values []Value
}

// ReadAxes reads the axes of a loop directory, sorted by file name. Files
// without meaningful lines are skipped.
func ReadAxes(fs types.FS, dir string) ([]Axis, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't open loop directory %s", dir).
			WithDetail("path", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotADirectory, "loop %s is not a directory", dir).
			WithDetail("path", dir)
	}

	files, err := lines.ListFilesSorted(fs, dir)
	if err != nil {
		return nil, err
	}

	var axes []Axis
	for _, file := range files {
		finfo, err := fs.Stat(file)
		if err != nil || !finfo.Mode().IsRegular() {
			continue
		}
		read, err := lines.ReadRenumbered(fs, file, 1)
		if err != nil {
			return nil, err
		}
		if len(read) == 0 {
			continue
		}
		axis := Axis{Name: filepath.Base(file), Values: make([]Value, len(read))}
		for i, l := range read {
			axis.Values[i] = Value{Slot: l.Number, Text: l.Text}
		}
		axes = append(axes, axis)
	}
	return axes, nil
}

// Options control the expansion
type Options struct {
	// Relevant keeps only axes whose variable is in the set, nil keeps all
	Relevant map[string]bool
	// Overwrite collapses the named axes to a single value with slot 0
	Overwrite types.VariableMap
	// Selection restricts the produced ordinals
	Selection selection.Set
}

// Expansion is a prepared cartesian product
type Expansion struct {
	axes      []Axis
	selection selection.Set
}

// New filters and collapses the axes and prepares the product. Overwrites
// only apply to axes that survive the relevance filter.
func New(axes []Axis, opts Options) *Expansion {
	var kept []Axis
	for _, a := range axes {
		if opts.Relevant != nil && !opts.Relevant[a.Name] {
			continue
		}
		if v, ok := opts.Overwrite[a.Name]; ok {
			a = Axis{Name: a.Name, Values: []Value{{Slot: 0, Text: v}}}
		}
		kept = append(kept, a)
	}
	return &Expansion{axes: kept, selection: opts.Selection}
}

// Axes returns the axes taking part in the product
func (e *Expansion) Axes() []Axis { return e.axes }

// Count is the number of combinations before selection. With no axes the
// product is a single empty combination.
func (e *Expansion) Count() int {
	count := 1
	for _, a := range e.axes {
		count *= len(a.Values)
	}
	return count
}

// Selected is the number of combinations the iterator will produce
func (e *Expansion) Selected() int {
	return e.selection.CountWithin(e.Count())
}

// Iterator returns a fresh iterator over the selected combinations
func (e *Expansion) Iterator() *Iterator {
	return &Iterator{
		axes:      e.axes,
		selection: e.selection,
		index:     make([]int, len(e.axes)),
		total:     e.Count(),
	}
}

// Choice is the value picked for one axis
type Choice struct {
	Name  string
	Slot  int
	Value string
}

// Combination is one element of the product
type Combination struct {
	// Ordinal is the 1-based position in the unfiltered enumeration
	Ordinal int
	Choices []Choice
}

// Variables returns the combination's variables plus LOOP_INDEX
func (c Combination) Variables() types.VariableMap {
	m := make(types.VariableMap, len(c.Choices)+1)
	m[variables.LoopIndex] = strconv.Itoa(c.Ordinal)
	for _, ch := range c.Choices {
		m[ch.Name] = ch.Value
	}
	return m
}

// Label describes the combination as "name[slot]=value; " per axis
func (c Combination) Label() string {
	var b strings.Builder
	for _, ch := range c.Choices {
		fmt.Fprintf(&b, "%s[%d]=%s; ", ch.Name, ch.Slot, ch.Value)
	}
	return b.String()
}

// Iterator is a pull-based odometer over the product
type Iterator struct {
	axes      []Axis
	selection selection.Set
	index     []int
	ordinal   int
	total     int
}

// Next returns the next selected combination, false when exhausted
func (it *Iterator) Next() (Combination, bool) {
	for it.ordinal < it.total {
		if it.ordinal > 0 {
			it.advance()
		}
		it.ordinal++
		if !it.selection.IsSelected(it.ordinal) {
			continue
		}
		return it.current(), true
	}
	return Combination{}, false
}

// advance increments the index vector, last axis fastest
func (it *Iterator) advance() {
	for i := len(it.index) - 1; i >= 0; i-- {
		it.index[i]++
		if it.index[i] < len(it.axes[i].Values) {
			return
		}
		it.index[i] = 0
	}
}

func (it *Iterator) current() Combination {
	choices := make([]Choice, len(it.axes))
	for i, a := range it.axes {
		v := a.Values[it.index[i]]
		choices[i] = Choice{Name: a.Name, Slot: v.Slot, Value: v.Text}
	}
	return Combination{Ordinal: it.ordinal, Choices: choices}
}
