package align

import (
	"slices"
	"strings"

	"github.com/nationalarchives/ctd-nfs/pkg/annotate"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/outcome"
	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// CombineTwoWords reconciles two tokens into one annotated token.
//
// Tokens that differ only in case or punctuation collapse to the longer
// spelling. Otherwise the reading with more support in dist wins and the
// other is appended as "(minority?)". On a tie, similar tokens are merged
// character by character and dissimilar ones become "a/b(?)".
func CombineTwoWords(c1, c2 string, dist Distribution) outcome.Outcome {
	scores := similarity.Compare(c1, c2)

	if scores.Folded == constants.MaxScore {
		longer := c2
		if similarity.Length(c1) > similarity.Length(c2) {
			longer = c1
		}
		return outcome.New(similarity.PunctuatedTitle(longer))
	}

	res := outcome.New("")
	n1, n2 := dist.Count(c1), dist.Count(c2)

	var buf annotate.AlignmentBuffer
	switch {
	case n1 > n2:
		buf = annotate.NewBuffer(c1 + " " + annotate.Mark(c2))
	case n2 > n1:
		buf = annotate.NewBuffer(c2 + " " + annotate.Mark(c1))
	case similarity.RatioCheck(max(similarity.Length(c1), similarity.Length(c2)), scores.Raw):
		buf = mergeCharacters(c1, c2, scores, &res)
	default:
		alts := []string{c1, c2}
		slices.SortStableFunc(alts, func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
		buf = annotate.NewBuffer(strings.Join(alts, constants.AlternativeSeparator) + constants.UnknownMarker)
	}

	buf = annotate.CombineConnectedLetters(buf, c1)
	buf = annotate.CombineConnectedLetters(buf, c2)

	res.Value = buf.String()
	if scores.Caseless > scores.Raw {
		res.Value = similarity.PunctuatedTitle(res.Value)
	}
	return res
}

// mergeCharacters diffs two similar tokens and then restores any
// "(section?)" markers the inputs already carried. A section whose letters
// occur more than once in the merge cannot be placed and is reported as
// unresolved.
func mergeCharacters(c1, c2 string, scores similarity.Scores, res *outcome.Outcome) annotate.AlignmentBuffer {
	t1, t2 := c1, c2
	if strings.Contains(c1+c2, constants.UncertainClose) {
		t1, t2 = annotate.StripMarkers(c1), annotate.StripMarkers(c2)
	}
	if scores.Caseless > scores.Raw {
		t1, t2 = strings.ToLower(t1), strings.ToLower(t2)
	}

	buf := charDiff(t1, t2)

	for _, section := range annotate.UncertainChunks(c1 + c2) {
		if buf.Contains(section) {
			continue
		}
		cleaned := similarity.CleanString(section)
		current := buf.String()

		if strings.Count(current, cleaned) > 1 {
			res.MarkUnresolved(constants.WarnRepeatedSection)
			continue
		}

		for _, ctx := range annotate.Context(section, c1+"|"+c2) {
			current = reinstate(current, ctx, section, cleaned)
		}
		buf = annotate.NewBuffer(current)
	}
	return buf
}

// reinstate replaces the spelled-out letters of section, as found in ctx,
// with the section marker itself.
func reinstate(current string, ctx []string, section, cleaned string) string {
	if len(ctx) == 0 {
		return current
	}
	letters := strings.Split(cleaned, "")

	if slices.Contains(ctx, section) {
		spelled := append([]string{ctx[0]}, letters...)
		if len(ctx) > 2 {
			spelled = append(spelled, ctx[2:]...)
		}
		ctx = spelled
	}

	replacement := []string{ctx[0], section}
	if tail := len(letters) + 1; tail < len(ctx) {
		replacement = append(replacement, ctx[tail:]...)
	}

	from := strings.Join(withoutSeparator(ctx), "")
	to := strings.Join(withoutSeparator(replacement), "")
	if from == "" || !strings.Contains(current, from) {
		return current
	}
	return strings.ReplaceAll(current, from, to)
}

func withoutSeparator(chunks []string) []string {
	return slices.DeleteFunc(slices.Clone(chunks), func(c string) bool { return c == "|" })
}
