// Package lines reads anek configuration files into meaningful lines.
//
// Blank lines and lines starting with '#' are dropped, the remaining
// lines are trimmed and keep their position in the source file (or a
// compacted position when renumbered). Several files, directories and
// ".d" drop-in directories can be merged into a single ordered sequence.
package lines

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/types"
)

// CommentPrefix starts a comment line
const CommentPrefix = "#"

// DropInSuffix is appended to a file name to form its drop-in sibling
const DropInSuffix = ".d"

// Read returns the meaningful lines of a file numbered by their original
// 1-based position, so gaps left by dropped lines are preserved.
func Read(fs types.FS, path string) ([]types.Line, error) {
	raw, err := readRaw(fs, path)
	if err != nil {
		return nil, err
	}

	var out []types.Line
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if !meaningful(text) {
			continue
		}
		out = append(out, types.Line{Number: i + 1, Text: text, Source: path})
	}
	return out, nil
}

// ReadRenumbered returns the meaningful lines of a file numbered
// sequentially from start, as if dropped lines never existed.
func ReadRenumbered(fs types.FS, path string, start int) ([]types.Line, error) {
	raw, err := readRaw(fs, path)
	if err != nil {
		return nil, err
	}

	var out []types.Line
	n := start
	for _, text := range raw {
		text = strings.TrimSpace(text)
		if !meaningful(text) {
			continue
		}
		out = append(out, types.Line{Number: n, Text: text, Source: path})
		n++
	}
	return out, nil
}

// Renumber returns a copy of lines numbered sequentially from start
func Renumber(in []types.Line, start int) []types.Line {
	out := make([]types.Line, len(in))
	for i, l := range in {
		l.Number = start + i
		out[i] = l
	}
	return out
}

func readRaw(fs types.FS, path string) ([]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "couldn't open input file %s", path).
			WithDetail("path", path)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}

func meaningful(text string) bool {
	return text != "" && !strings.HasPrefix(text, CommentPrefix)
}
