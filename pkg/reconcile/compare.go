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

// VariantSet returns the variants that carry data, without duplicates, in
// the order they were first seen. Blank entries and entries equal to one of
// placeholders (after trimming) are dropped.
func VariantSet(variants, placeholders []string) []string {
	return distinct(Components(variants, placeholders))
}

// Components returns every variant that carries data, keeping duplicates.
// This is the context the token distribution is counted over.
func Components(variants, placeholders []string) []string {
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if isPlaceholder(v, placeholders) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isPlaceholder(v string, placeholders []string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || slices.Contains(placeholders, trimmed)
}

// compare dispatches one field's variants to the route its variant set
// calls for and returns the merged outcome.
func compare(variants, placeholders []string) (outcome.Outcome, Strategy) {
	components := Components(variants, placeholders)
	set := distinct(components)
	res := outcome.New("")

	var strategy Strategy
	folded := distinct(mapStrings(set, foldSpaceAndCase))
	if len(set) != len(folded) {
		caseless := distinct(mapStrings(set, strings.ToLower))

		switch {
		case len(set) != len(caseless) && len(folded) == len(caseless):
			set = distinct(mapStrings(set, similarity.PunctuatedTitle))
			strategy = StrategyCaseNormalised
		case len(caseless) == 2:
			aligned := alignCaseVariants(set, caseless, components)
			res.Absorb(aligned)
			set = []string{aligned.Value}
			strategy = StrategyCaseAligned
		default:
			res.MarkUnresolved(constants.WarnCaseVariants)
		}
	}

	switch len(set) {
	case 0:
		res.Value = ""
	case 1:
		res.Value = set[0]
	case 2:
		merged := align.CombineTwoPhrases(set[0], set[1], components)
		res.Absorb(merged)
		res.Value = merged.Value
		strategy = StrategyTwoPhrase
	default:
		reduced := ReduceMultipleVariations(components, set)
		res.Absorb(reduced)
		res.Value = reduced.Value
		strategy = StrategyMultiVariant
	}

	if strategy == "" {
		strategy = StrategyPassthrough
	}
	return res, strategy
}

// alignCaseVariants merges a variant set that folds to exactly two caseless
// readings. Each reading is represented by its longest cased form, title
// cased when it was seen in more than one casing.
func alignCaseVariants(set, caseless, components []string) outcome.Outcome {
	phrases := make([]string, 0, len(caseless))
	for _, uncased := range caseless {
		var forms []string
		for _, cased := range set {
			if strings.ToLower(cased) == uncased {
				forms = append(forms, cased)
			}
		}

		longest := forms[0]
		for _, f := range forms[1:] {
			if similarity.Length(f) > similarity.Length(longest) {
				longest = f
			}
		}
		if len(forms) > 1 {
			longest = similarity.PunctuatedTitle(longest)
		}
		phrases = append(phrases, longest)
	}

	res := align.MatchMatrix(align.Tokenize(phrases[0]), align.Tokenize(phrases[1]), components)
	res.Value = annotate.CleanBrackets(res.Value)
	return res
}

// unifyEquivalent replaces every variant with the first variant seen that
// has the same NFC form. No variant is rewritten into a form that was not
// in the input.
func unifyEquivalent(variants []string) []string {
	first := make(map[string]string, len(variants))
	out := make([]string, len(variants))
	for i, v := range variants {
		key := similarity.Normalize(v)
		if seen, ok := first[key]; ok {
			out[i] = seen
			continue
		}
		first[key] = v
		out[i] = v
	}
	return out
}

func foldSpaceAndCase(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

// distinct drops repeated values, keeping first-seen order.
func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
