package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctuation matches every rune that is neither a word character nor space.
var punctuation = runes.Predicate(func(r rune) bool {
	return !isWord(r) && !unicode.IsSpace(r)
})

// CleanString removes everything except word characters and whitespace.
func CleanString(s string) string {
	out, _, err := transform.String(runes.Remove(punctuation), s)
	if err != nil {
		return s
	}
	return out
}

// Normalize returns the NFC form of s.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// PunctuatedTitle capitalises the first letter of every whitespace-delimited
// run and lowercases any upper-case letter that directly follows a
// non-space character. "JOHN SMITH" and "john smith" both become
// "John Smith"; "(Ough?)" becomes "(ough?)".
func PunctuatedTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevSpace := true
	for _, r := range s {
		switch {
		case prevSpace && unicode.IsLower(r):
			r = unicode.ToUpper(r)
		case !prevSpace && unicode.IsUpper(r):
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		prevSpace = unicode.IsSpace(r)
	}
	return b.String()
}

// Length returns the number of characters in s.
func Length(s string) int {
	return len([]rune(s))
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
