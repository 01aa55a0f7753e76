package reconcile

import (
	"slices"
	"strings"

	"github.com/nationalarchives/ctd-nfs/pkg/align"
	"github.com/nationalarchives/ctd-nfs/pkg/annotate"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/outcome"
	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// ReduceMultipleVariations merges three or more variants.
//
// Variants that score below the distinct threshold against every other
// member are set aside. The rest are merged greedily: the most similar pair
// is combined and replaced by the merged string until one value remains.
// Set-aside variants are appended as "/(a?/ b?)".
//
// components is the full list of raw variants, used for majority counts.
func ReduceMultipleVariations(components, set []string) outcome.Outcome {
	res := outcome.New("")
	res.Warn(constants.WarnMultipleVariations)

	var distinctValues, similar []string
	for i, c1 := range set {
		best := 0
		for j, c2 := range set {
			if i != j && c1 != c2 {
				best = max(best, similarity.Ratio(c1, c2))
			}
		}
		if best < constants.DistinctThreshold {
			distinctValues = append(distinctValues, c1)
		} else {
			similar = append(similar, c1)
		}
	}

	var mergedContext []string
	for len(similar) > 1 {
		a, b := bestPair(similar)
		first, second := similar[a], similar[b]

		pairContext := slices.Clone(mergedContext)
		for _, c := range components {
			if c == first || c == second {
				pairContext = append(pairContext, c)
			}
		}

		merged := align.CombineTwoPhrases(first, second, pairContext)
		res.Absorb(merged)

		for range pairContext {
			mergedContext = append(mergedContext, merged.Value)
		}

		similar = slices.DeleteFunc(similar, func(s string) bool { return s == first || s == second })
		if !slices.Contains(similar, merged.Value) {
			similar = append(similar, merged.Value)
		}
	}

	res.Value = annotate.CleanBrackets(strings.Join(similar, ""))
	if len(distinctValues) > 0 {
		res.Value += "/(" + strings.Join(distinctValues, "?/ ") + "?)"
	}
	return res
}

// bestPair returns the indexes of the two most similar members, earliest
// first. When nothing scores above zero the first two members are used.
func bestPair(similar []string) (int, int) {
	a, b, best := 0, 1, 0
	for i := range similar {
		for j := i + 1; j < len(similar); j++ {
			if score := similarity.Ratio(similar[i], similar[j]); score > best {
				a, b, best = i, j, score
			}
		}
	}
	return a, b
}
