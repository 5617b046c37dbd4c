package words

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultMaxWords is the number of highest-count words kept by [Normalize].
const DefaultMaxWords = 200

// WordWeight is a word and how often it occurs.
type WordWeight struct {
	Text  string `json:"text" yaml:"text" toml:"text"`
	Count int    `json:"count" yaml:"count" toml:"count"`
}

// NormalizeOptions controls deduplication in [Normalize].
type NormalizeOptions struct {
	// CaseSensitive keeps "Go" and "go" as separate words. When false, their
	// counts are merged and the most frequent spelling is displayed.
	CaseSensitive bool
	// MaxWords caps the result. Zero or negative means DefaultMaxWords.
	MaxWords int
}

// Normalize merges duplicate words, drops empty entries and entries with a
// count below 1, sorts by descending count and keeps at most MaxWords.
// Ties keep the order in which words first appeared.
func Normalize(ws []WordWeight, opts NormalizeOptions) []WordWeight {
	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	fold := cases.Fold()
	groups := make(map[string]*group)

	for _, w := range ws {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Count < 1 {
			continue
		}
		key := text
		if !opts.CaseSensitive {
			key = fold.String(text)
		}
		g, ok := groups[key]
		if !ok {
			g = &group{order: len(groups), spellings: make(map[string]*spelling)}
			groups[key] = g
		}
		g.add(text, w.Count)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	slices.SortFunc(ordered, func(a, b *group) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	if len(ordered) > maxWords {
		ordered = ordered[:maxWords]
	}

	out := make([]WordWeight, len(ordered))
	for i, g := range ordered {
		out[i] = WordWeight{Text: g.display(), Count: g.count}
	}
	return out
}

// group collects every spelling that folds to the same key.
type group struct {
	order     int
	count     int
	spellings map[string]*spelling
}

type spelling struct {
	order int
	count int
}

func (g *group) add(text string, n int) {
	g.count += n
	s, ok := g.spellings[text]
	if !ok {
		s = &spelling{order: len(g.spellings)}
		g.spellings[text] = s
	}
	s.count += n
}

// display returns the most frequent spelling, earliest first on ties.
func (g *group) display() string {
	var best string
	var bestS *spelling
	for text, s := range g.spellings {
		if bestS == nil || s.count > bestS.count || (s.count == bestS.count && s.order < bestS.order) {
			best, bestS = text, s
		}
	}
	return best
}

// Counts returns the smallest and largest count in ws. Both are zero for an
// empty list.
func Counts(ws []WordWeight) (lo, hi int) {
	for i, w := range ws {
		if i == 0 || w.Count < lo {
			lo = w.Count
		}
		if i == 0 || w.Count > hi {
			hi = w.Count
		}
	}
	return lo, hi
}
