package align

import (
	"fmt"
	"strings"

	"github.com/nationalarchives/ctd-nfs/pkg/annotate"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/outcome"
	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// CombineTwoPhrases tokenizes two variants and aligns them. components is
// the full list of raw variants for the field, used for majority counts.
func CombineTwoPhrases(a, b string, components []string) outcome.Outcome {
	return AlignTwoPhrases(Tokenize(a), Tokenize(b), components)
}

// AlignTwoPhrases aligns two token sequences and adds a note whenever
// material outside the anchors had to be filled in.
func AlignTwoPhrases(a, b []string, components []string) outcome.Outcome {
	res, filled := matchMatrix(a, b, components)
	if filled {
		res.Warn(constants.NoteOffsetVariations)
	}
	return res
}

// MatchMatrix aligns two token sequences around their anchors. The phrase
// with fewer characters is walked against the longer one. When no anchor
// clears the admissibility gate the phrases are returned side by side,
// longer first, separated by "/".
func MatchMatrix(a, b []string, components []string) outcome.Outcome {
	res, _ := matchMatrix(a, b, components)
	return res
}

func matchMatrix(a, b []string, components []string) (outcome.Outcome, bool) {
	phrase1, phrase2 := a, b
	if joinedLength(a) > joinedLength(b) {
		phrase1, phrase2 = b, a
	}

	anchorRate, anchors := SelectAnchors(phrase1, phrase2)
	if !similarity.RatioCheck(joinedLength(phrase1), anchorRate) {
		res := outcome.New(strings.Join(append(append(append([]string{}, phrase2...), constants.AlternativeSeparator), phrase1...), " "))
		res.Warn(fmt.Sprintf(constants.WarnNoAnchorFormat, strings.Join(phrase2, " "), strings.Join(phrase1, " ")))
		return res, false
	}

	w := &walker{
		phrase1:    phrase1,
		phrase2:    phrase2,
		components: components,
		res:        outcome.New(""),
	}
	for _, anchor := range anchors {
		w.walkTo(anchor)
	}
	w.finish()

	w.res.Value = strings.Join(w.pieces, " ")
	return w.res, w.filled
}

// walker emits the merged pieces of two phrases from left to right.
type walker struct {
	phrase1, phrase2 []string
	components       []string

	i, j   int
	pieces []string
	res    outcome.Outcome
	filled bool
}

func (w *walker) walkTo(anchor Anchor) {
	s1 := anchor.Index
	s2, e2 := max(anchor.Span.Start, w.j), anchor.Span.End

	// The span was consumed by an earlier anchor, so the phrase1 token has
	// nothing left to align with.
	if s2 >= e2 {
		for w.i <= s1 {
			w.extra1()
		}
		return
	}

	for w.i <= s1 && w.j <= e2 {
		switch {
		case w.i == s1 && w.j < s2:
			w.extra2(s2)
		case w.i < s1 && w.j == s2:
			w.extra1()
		case w.i == s1 && w.j == s2:
			w.anchor(s1, s2, e2)
		default:
			w.gap(s1, s2)
		}
	}
}

// extra2 wraps the phrase2 tokens before the anchor span.
func (w *walker) extra2(s2 int) {
	w.emitExtra(strings.Join(w.phrase2[w.j:s2], " "), w.phrase2, w.j)
	w.j = s2
}

// extra1 wraps the next phrase1 token.
func (w *walker) extra1() {
	w.emitExtra(w.phrase1[w.i], w.phrase1, w.i)
	w.i++
}

// emitExtra appends token as an uncertain reading. A trailing comma that the
// previous piece borrowed from this token is moved after the marker.
func (w *walker) emitExtra(token string, phrase []string, at int) {
	w.filled = true
	if n := len(w.pieces); n > 0 && at > 0 {
		last := w.pieces[n-1]
		if strings.HasSuffix(last, ",") && !strings.HasSuffix(phrase[at-1], ",") && strings.HasSuffix(token, ",") {
			w.pieces[n-1] = strings.TrimSuffix(last, ",")
			w.pieces = append(w.pieces, annotate.Mark(strings.TrimSuffix(token, ","))+",")
			return
		}
	}
	w.pieces = append(w.pieces, annotate.Mark(token))
}

func (w *walker) anchor(s1, s2, e2 int) {
	t1 := w.phrase1[s1]
	t2 := strings.Join(w.phrase2[s2:e2], " ")
	w.i, w.j = s1+1, e2

	if t1 == t2 {
		w.pieces = append(w.pieces, t1)
		return
	}
	merged := CombineTwoWords(t1, t2, TokenDistribution(w.components, t1, t2))
	w.res.Absorb(merged)
	w.pieces = append(w.pieces, merged.Value)
}

// gap reconciles the tokens both phrases have before the anchor.
func (w *walker) gap(s1, s2 int) {
	g1 := strings.Join(w.phrase1[w.i:s1], " ")
	g2 := strings.Join(w.phrase2[w.j:s2], " ")
	w.i, w.j = s1, s2
	w.filled = true

	g2 = InitialsReplace(strings.TrimSpace(g2), strings.TrimSpace(g1))
	g1 = InitialsReplace(strings.TrimSpace(g1), g2)
	w.merge(g1, g2, w.components)
}

// finish handles whatever follows the last anchor.
func (w *walker) finish() {
	if w.i >= len(w.phrase1) && w.j >= len(w.phrase2) {
		return
	}
	w.filled = true

	t1 := strings.Join(w.phrase1[w.i:], " ")
	t2 := strings.Join(w.phrase2[w.j:], " ")
	t2 = InitialsReplace(strings.TrimSpace(t2), strings.TrimSpace(t1))
	t1 = InitialsReplace(strings.TrimSpace(t1), t2)

	switch {
	case w.j == len(w.phrase2):
		w.pieces = append(w.pieces, annotate.Mark(t1))
	case w.i == len(w.phrase1):
		w.pieces = append(w.pieces, annotate.Mark(t2))
	default:
		w.merge(t1, t2, []string{t2, t1})
	}
}

// merge reconciles two segments through the token merger, recursing into
// the phrase aligner when they differ and either holds more than one token.
func (w *walker) merge(g1, g2 string, components []string) {
	var merged outcome.Outcome
	if g1 != g2 && (strings.Contains(g1, " ") || strings.Contains(g2, " ")) {
		merged = CombineTwoPhrases(g2, g1, components)
	} else {
		merged = CombineTwoWords(g1, g2, TokenDistribution(components, g2, g1))
	}
	w.res.Absorb(merged)
	w.pieces = append(w.pieces, merged.Value)
}

func joinedLength(tokens []string) int {
	return similarity.Length(strings.Join(tokens, ""))
}
