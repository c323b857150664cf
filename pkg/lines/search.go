package lines

import (
	"strings"

	"github.com/arthur-debert/anek/pkg/types"
)

// MatchingLines returns the lines of a file containing every pattern, or
// any of them when any is set. An empty pattern list matches every line.
func MatchingLines(fs types.FS, path string, patterns []string, any bool) ([]types.Line, error) {
	read, err := Read(fs, path)
	if err != nil {
		return nil, err
	}

	var out []types.Line
	for _, line := range read {
		if matches(line.Text, patterns, any) {
			out = append(out, line)
		}
	}
	return out, nil
}

func matches(text string, patterns []string, any bool) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		found := strings.Contains(text, p)
		if any && found {
			return true
		}
		if !any && !found {
			return false
		}
	}
	return !any
}
