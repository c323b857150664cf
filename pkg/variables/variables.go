// Package variables parses key=value input lines into variable maps and
// builds the overwrite map from command line arguments.
package variables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
)

// Separator splits a variable name from its value
const Separator = "="

// LoopIndex is the variable holding a loop combination's ordinal
const LoopIndex = "LOOP_INDEX"

// Parse builds a variable map from key=value lines, later lines winning
func Parse(lines []types.Line) (types.VariableMap, error) {
	m := types.VariableMap{}
	if err := Into(lines, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Into adds the key=value lines to m, later lines winning
func Into(lines []types.Line, m types.VariableMap) error {
	for _, line := range lines {
		key, value, err := split(line)
		if err != nil {
			return err
		}
		m[key] = value
	}
	return nil
}

// Keys returns the sorted set of names defined by key=value lines
func Keys(lines []types.Line) ([]string, error) {
	seen := map[string]bool{}
	for _, line := range lines {
		key, _, err := split(line)
		if err != nil {
			return nil, err
		}
		seen[key] = true
	}
	return sortedKeys(seen), nil
}

func split(line types.Line) (string, string, error) {
	key, value, ok := strings.Cut(line.Text, Separator)
	if !ok || key == "" {
		err := errors.Newf(errors.ErrMalformedLine, "Invalid Line# %d: %q", line.Number, line.Text).
			WithDetail("line", line.Number).
			WithDetail("text", line.Text)
		if line.Source != "" {
			err.Message += " in " + line.Source
			err.WithDetail("path", line.Source)
		}
		return "", "", err
	}
	return key, value, nil
}

// Referenced returns the sorted set of variable names used by template
// lines. Every alternative of a fallback chain counts, literal fallbacks
// do not.
func Referenced(lines []types.Line) ([]string, error) {
	seen := map[string]bool{}
	for _, line := range lines {
		t, err := template.Parse(line.Text)
		if err != nil {
			if line.Source != "" {
				return nil, errors.Wrapf(err, errors.ErrTemplateParse, "line %d of %s", line.Number, line.Source).
					WithDetail("path", line.Source)
			}
			return nil, err
		}
		for _, v := range t.Variables() {
			seen[v] = true
		}
	}
	return sortedKeys(seen), nil
}

// CommandArgs maps positional arguments to ARG1..ARGn
func CommandArgs(args []string) types.VariableMap {
	m := make(types.VariableMap, len(args))
	for i, a := range args {
		m[fmt.Sprintf("ARG%d", i+1)] = a
	}
	return m
}

// Overwrites builds the overwrite map from positional arguments and
// name=value (or name:value) entries. Entries override arguments. Every
// ':' and '=' separates a segment; empty segments are kept, so "x=" sets x
// to the empty string.
func Overwrites(args []string, entries []string) (types.VariableMap, error) {
	log := logging.GetLogger("core.variables")

	m := CommandArgs(args)
	for _, entry := range entries {
		segments := splitOverwrite(entry)
		if segments[0] == "" {
			return nil, errors.Newf(errors.ErrInvalidOverwrite, "Invalid Variable in overwrite: %s", entry).
				WithDetail("overwrite", entry)
		}
		if len(segments) < 2 {
			return nil, errors.Newf(errors.ErrInvalidOverwrite, "Invalid Value in overwrite: %s", entry).
				WithDetail("overwrite", entry)
		}
		m[segments[0]] = segments[1]
		for _, unused := range segments[2:] {
			log.Warn().Str("overwrite", entry).Str("unused", unused).Msg("Unused data from --overwrite")
		}
	}
	return m, nil
}

func splitOverwrite(entry string) []string {
	var segments []string
	for _, part := range strings.Split(entry, ":") {
		segments = append(segments, strings.Split(part, "=")...)
	}
	return segments
}

// Apply renders each overwrite value as a template against vars and
// returns vars with the rendered overwrites on top. Overwrite values can
// therefore refer to the job's own variables.
func Apply(vars, overwrite types.VariableMap, opts template.RenderOptions) (types.VariableMap, error) {
	out := vars.Clone()
	if len(overwrite) == 0 {
		return out, nil
	}
	opts.Variables = vars
	for _, k := range overwrite.Keys() {
		rendered, err := template.RenderString(overwrite[k], opts)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidOverwrite, "cannot render overwrite %s", k).
				WithDetail("variable", k)
		}
		out[k] = rendered
	}
	return out, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
