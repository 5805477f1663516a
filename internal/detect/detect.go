// Package detect scans prompt text against an ordered catalog of
// sensitive-data patterns and returns non-overlapping match spans tagged
// with a category. It never mutates its input and keeps no state between
// calls, so a single Detector is safe to share across goroutines.
package detect

import "sort"

// Match is one accepted detection: where it is and what kind of data it is.
type Match struct {
	Span     Span
	Category Category
}

// Detector applies the pattern catalog to text.
type Detector struct {
	rules []Rule
}

// New returns a detector over the built-in catalog.
func New() *Detector {
	return &Detector{rules: catalog}
}

// Detect returns all sensitive-data matches in text, sorted by start offset
// and pairwise non-overlapping. An empty result means nothing was found.
//
// Candidates are sorted by start offset, longer match first on ties, then
// catalog order, and then swept left to right keeping only matches that do
// not overlap an already-accepted one. The tie-break keeps broad categories
// from claiming text a more specific earlier category already matched.
func (d *Detector) Detect(text string) []Match {
	type candidate struct {
		Match
		rule int
	}

	byteToRune := runeOffsets(text)

	var candidates []candidate
	for i, r := range d.rules {
		for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
			candidates = append(candidates, candidate{
				Match: Match{
					Span:     Span{Start: byteToRune[loc[0]], End: byteToRune[loc[1]]},
					Category: r.Category,
				},
				rule: i,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End > b.Span.End
		}
		return a.rule < b.rule
	})

	var accepted []Match
	maxEnd := 0
	for _, c := range candidates {
		if c.Span.Start < maxEnd {
			continue
		}
		accepted = append(accepted, c.Match)
		maxEnd = c.Span.End
	}
	return accepted
}

// runeOffsets maps every rune-start byte offset in text (plus len(text))
// to its rune offset. Pattern matches always begin and end on rune
// boundaries, so every offset the detector needs is present.
func runeOffsets(text string) map[int]int {
	m := make(map[int]int, len(text)+1)
	n := 0
	for i := range text {
		m[i] = n
		n++
	}
	m[len(text)] = n
	return m
}
