package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchMode selects how the global filter matches a row.
type SearchMode string

const (
	// SearchSmart requires every whitespace separated word of the filter to
	// appear somewhere in the row, ignoring case.
	SearchSmart SearchMode = "smart"
	// SearchFuzzy matches the filter as a fuzzy subsequence of the row text.
	SearchFuzzy SearchMode = "fuzzy"
)

// ParseSearchMode validates a mode name. The empty string selects smart.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchSmart:
		return SearchSmart, nil
	case SearchFuzzy:
		return SearchFuzzy, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (want smart or fuzzy)", s)
	}
}

func (g *Grid) text(id int) string {
	if g.rowText == nil {
		g.rowText = make([]string, len(g.ds.Rows))
		for i, row := range g.ds.Rows {
			g.rowText[i] = strings.ToLower(strings.Join(row, " "))
		}
	}
	return g.rowText[id]
}

// applyGlobal keeps the ids of candidates matching filter, preserving their
// order.
func (g *Grid) applyGlobal(candidates []int, filter string) []int {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return candidates
	}

	if g.search == SearchFuzzy {
		data := make([]string, len(candidates))
		for i, id := range candidates {
			data[i] = g.text(id)
		}
		matches := fuzzy.Find(strings.ToLower(filter), data)
		idx := make([]int, len(matches))
		for i, m := range matches {
			idx[i] = m.Index
		}
		sort.Ints(idx)
		out := make([]int, len(idx))
		for i, j := range idx {
			out[i] = candidates[j]
		}
		return out
	}

	words := strings.Fields(strings.ToLower(filter))
	out := candidates[:0]
	for _, id := range candidates {
		text := g.text(id)
		ok := true
		for _, w := range words {
			if !strings.Contains(text, w) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	return out
}
