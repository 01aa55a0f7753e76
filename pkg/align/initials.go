package align

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// InitialsReplace expands an initial at the start of phrase into the word of
// compare that begins with the same letter, so "F Thomas" compared with
// "Frank Thomas" becomes "Frank Thomas". A part counts as an initial when
// fewer than two characters remain after removing punctuation. Only an
// initial at the very start of phrase is replaced.
func InitialsReplace(phrase, compare string) string {
	for _, part := range strings.Split(phrase, " ") {
		initial := similarity.CleanString(part)
		if initial == "" || utf8.RuneCountInString(initial) > 1 {
			continue
		}

		for _, candidate := range strings.Split(compare, " ") {
			if candidate == "" {
				continue
			}
			first, _ := utf8.DecodeRuneInString(candidate)
			if !strings.EqualFold(string(first), initial) {
				continue
			}
			if startsWithWord(phrase, part) {
				phrase = candidate + phrase[len(part):]
			}
		}
	}
	return phrase
}

// startsWithWord reports whether phrase begins with part followed by
// whitespace or the end of the string.
func startsWithWord(phrase, part string) bool {
	if !strings.HasPrefix(phrase, part) {
		return false
	}
	if len(phrase) == len(part) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(phrase[len(part):])
	return unicode.IsSpace(next)
}
