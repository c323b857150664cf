package paths

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/arthur-debert/anek/pkg/types"
)

// MaxSuggestions caps the names returned by Suggest
const MaxSuggestions = 3

// maxTypoDistance is the edit distance under which a name counts as a typo
const maxTypoDistance = 2

// Suggest returns existing names of the category close to name, best
// match first.
func (p *Project) Suggest(c types.Category, name string) []string {
	candidates, err := p.List(c)
	if err != nil || len(candidates) == 0 {
		return nil
	}
	return suggest(name, candidates)
}

func suggest(name string, candidates []string) []string {
	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)

	seen := map[string]bool{}
	var out []string
	for _, r := range ranks {
		if r.Target == name {
			continue
		}
		seen[r.Target] = true
		out = append(out, r.Target)
	}

	// typos the subsequence match cannot catch
	var typos []string
	for _, c := range candidates {
		if seen[c] || c == name {
			continue
		}
		if fuzzy.LevenshteinDistance(name, c) <= maxTypoDistance {
			typos = append(typos, c)
		}
	}
	sort.SliceStable(typos, func(i, j int) bool {
		return fuzzy.LevenshteinDistance(name, typos[i]) < fuzzy.LevenshteinDistance(name, typos[j])
	})
	out = append(out, typos...)

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
