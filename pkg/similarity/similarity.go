// Package similarity scores how alike two transcriptions are.
//
// Scores are on a 0-100 scale and use the normalised insertion/deletion
// distance: twice the longest common subsequence divided by the combined
// length. Three foldings are computed for every comparison (raw, caseless and
// caseless without punctuation) because the merger chooses between them.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/nationalarchives/ctd-nfs/pkg/constants"
)

// Ratio returns the similarity of a and b in [0, 100], rounded down. It is
// symmetric and Ratio(s, s) is always 100, including for the empty string.
func Ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return constants.MaxScore
	}
	if a == b {
		return constants.MaxScore
	}
	lcs := matchr.LongestCommonSubsequence(a, b)
	return 2 * lcs * constants.MaxScore / total
}

// Scores holds the three foldings of one comparison.
type Scores struct {
	Raw      int `json:"raw" yaml:"raw"`
	Caseless int `json:"caseless" yaml:"caseless"`
	Folded   int `json:"folded" yaml:"folded"`
}

// Compare scores a against b under every folding.
func Compare(a, b string) Scores {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return Scores{
		Raw:      Ratio(a, b),
		Caseless: Ratio(la, lb),
		Folded:   Ratio(CleanString(la), CleanString(lb)),
	}
}

// Folded scores a against b after lowering case and stripping punctuation.
func Folded(a, b string) int {
	return Ratio(CleanString(strings.ToLower(a)), CleanString(strings.ToLower(b)))
}

// RatioCheck reports whether score is high enough to treat two strings of
// the given length as the same value with noise. Short strings get a looser
// bar than long ones.
func RatioCheck(length, score int) bool {
	switch {
	case length < constants.ShortLength && score >= constants.ShortThreshold:
		return true
	case length < constants.MediumLength && score >= constants.MediumThreshold:
		return true
	case length >= constants.MediumLength && score >= constants.LongThreshold:
		return true
	default:
		return false
	}
}

// Threshold returns the minimum passing score for a string of the given length.
func Threshold(length int) int {
	switch {
	case length < constants.ShortLength:
		return constants.ShortThreshold
	case length < constants.MediumLength:
		return constants.MediumThreshold
	default:
		return constants.LongThreshold
	}
}
