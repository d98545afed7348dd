// Package linkify finds catalog product mentions in assistant responses.
// Linking is a presentation-only transform: it runs on every render and
// its output is never persisted.
package linkify

import (
	"regexp"
	"sort"

	"vanity/internal/model"
)

// Segment is a run of text, tagged with the mentioned product's id when
// the run is a mention (0 means plain text).
type Segment struct {
	Text      string
	ProductID int
}

type span struct {
	start, end, productID int
}

// Annotate splits text into plain and mention segments. Matching is
// whole-word and case-insensitive. Candidate names are applied longest
// first and spans never overlap, so a longer name is never partially
// shadowed by a shorter one and no span is wrapped twice.
func Annotate(text string, products []model.Product) []Segment {
	spans := matchSpans(text, products)
	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}

	var out []Segment
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			out = append(out, Segment{Text: text[pos:s.start]})
		}
		out = append(out, Segment{Text: text[s.start:s.end], ProductID: s.productID})
		pos = s.end
	}
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}

// Mentions returns the products mentioned in text, ordered by first
// occurrence and deduplicated.
func Mentions(text string, products []model.Product) []model.Product {
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	seen := make(map[int]bool)
	var out []model.Product
	for _, s := range matchSpans(text, products) {
		if !seen[s.productID] {
			seen[s.productID] = true
			out = append(out, byID[s.productID])
		}
	}
	return out
}

// matchSpans returns the non-overlapping mention spans in text, sorted by
// start position.
func matchSpans(text string, products []model.Product) []span {
	// Longest names claim their spans first so "Elvive Shampoo" beats a
	// hypothetical product named "Shampoo" over the same characters.
	candidates := make([]model.Product, len(products))
	copy(candidates, products)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Name) > len(candidates[j].Name)
	})

	var spans []span
	for _, p := range candidates {
		if p.Name == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p.Name) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !overlaps(spans, loc[0], loc[1]) {
				spans = append(spans, span{start: loc[0], end: loc[1], productID: p.ID})
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
