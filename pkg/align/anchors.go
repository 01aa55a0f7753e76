package align

import (
	"strings"

	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// Span is a half-open range of token positions.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Anchor pairs a token of the shorter phrase with its best matching span of
// the longer phrase.
type Anchor struct {
	Index int  `json:"index" yaml:"index"`
	Span  Span `json:"span" yaml:"span"`
	Score int  `json:"score" yaml:"score"`
}

// MatchRatios compares every token of phrase1 with every contiguous span of
// phrase2, ignoring case and punctuation. It returns the best span for each
// token that matched anything, in token order, and the highest score seen
// overall. Ties keep the earliest span.
func MatchRatios(phrase1, phrase2 []string) (int, []Anchor) {
	var (
		best       []Anchor
		anchorRate int
	)

	for i, token := range phrase1 {
		folded := strings.ToLower(similarity.CleanString(token))
		top := Anchor{Index: i}

		for j1 := range phrase2 {
			for j2 := j1; j2 < len(phrase2); j2++ {
				span := strings.ToLower(similarity.CleanString(strings.Join(phrase2[j1:j2+1], " ")))
				score := similarity.Ratio(folded, span)

				if score > top.Score {
					top.Span = Span{Start: j1, End: j2 + 1}
					top.Score = score
				}
				if score >= anchorRate {
					anchorRate = score
				}
			}
		}

		if top.Score > 0 {
			best = append(best, top)
		}
	}
	return anchorRate, best
}

// SelectAnchors keeps the tokens whose best match scores the overall
// maximum, dropping any that would move backwards in either phrase. The
// result is non-decreasing in both the phrase1 index and the phrase2 span end.
func SelectAnchors(phrase1, phrase2 []string) (int, []Anchor) {
	anchorRate, best := MatchRatios(phrase1, phrase2)

	var (
		anchors []Anchor
		lastI   int
		lastEnd int
	)
	for _, m := range best {
		if m.Score != anchorRate {
			continue
		}
		if m.Index >= lastI && m.Span.End >= lastEnd {
			lastI, lastEnd = m.Index, m.Span.End
			anchors = append(anchors, m)
		}
	}
	return anchorRate, anchors
}
