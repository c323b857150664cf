// Package selection parses selection expressions restricting which
// ordinals of an enumeration are processed, e.g. "2,4-5".
package selection

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
)

// span is an inclusive range of ordinals
type span struct {
	from, to int
}

// Set is a parsed selection held as sorted, disjoint spans, so large ranges
// cost nothing. The empty set selects everything.
type Set struct {
	spans []span
}

// All returns the unrestricted selection
func All() Set {
	return Set{}
}

// Parse parses a comma separated list of positive integers and inclusive
// start-end ranges. Whitespace around tokens is ignored and the empty
// expression selects everything.
func Parse(expr string) (Set, error) {
	if strings.TrimSpace(expr) == "" {
		return Set{}, nil
	}

	var spans []span
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return Set{}, invalid(expr, "empty entry")
		}

		start, end, isRange := strings.Cut(token, "-")
		if !isRange {
			n, err := ordinal(expr, token)
			if err != nil {
				return Set{}, err
			}
			spans = append(spans, span{n, n})
			continue
		}

		from, err := ordinal(expr, strings.TrimSpace(start))
		if err != nil {
			return Set{}, err
		}
		to, err := ordinal(expr, strings.TrimSpace(end))
		if err != nil {
			return Set{}, err
		}
		if from > to {
			return Set{}, invalid(expr, "range "+token+" is reversed")
		}
		spans = append(spans, span{from, to})
	}
	return Set{spans: normalize(spans)}, nil
}

// normalize sorts spans and merges overlapping or adjacent ones
func normalize(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool { return spans[i].from < spans[j].from })
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.from <= last.to+1 {
			if s.to > last.to {
				last.to = s.to
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

func ordinal(expr, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, invalid(expr, "\""+token+"\" is not a positive integer")
	}
	return n, nil
}

func invalid(expr, reason string) error {
	return errors.Newf(errors.ErrInvalidSelection, "invalid selection %q: %s", expr, reason).
		WithDetail("selection", expr)
}

// IsSelected reports whether ordinal passes the filter
func (s Set) IsSelected(ordinal int) bool {
	return s.Empty() || s.contains(ordinal)
}

func (s Set) contains(ordinal int) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].to >= ordinal })
	return i < len(s.spans) && s.spans[i].from <= ordinal
}

// Len is the number of selected ordinals, 0 for the unrestricted set
func (s Set) Len() int {
	n := 0
	for _, sp := range s.spans {
		n += sp.to - sp.from + 1
	}
	return n
}

// Empty reports whether the set is unrestricted
func (s Set) Empty() bool {
	return len(s.spans) == 0
}

// CountWithin returns how many of the ordinals 1..total are selected
func (s Set) CountWithin(total int) int {
	if s.Empty() {
		return total
	}
	count := 0
	for _, sp := range s.spans {
		if sp.from > total {
			break
		}
		count += min(sp.to, total) - sp.from + 1
	}
	return count
}

// String is the normalized expression, "" for the unrestricted set
func (s Set) String() string {
	parts := make([]string, len(s.spans))
	for i, sp := range s.spans {
		if sp.from == sp.to {
			parts[i] = strconv.Itoa(sp.from)
		} else {
			parts[i] = strconv.Itoa(sp.from) + "-" + strconv.Itoa(sp.to)
		}
	}
	return strings.Join(parts, ",")
}
