package annotate

import (
	"slices"
	"strings"
)

// AlignmentBuffer is the in-progress output of a token merge, held as
// chunks. Every operation returns a new buffer; the receiver is never
// modified.
type AlignmentBuffer []string

// NewBuffer chunks s into a buffer.
func NewBuffer(s string) AlignmentBuffer {
	return AlignmentBuffer(Chunk(s))
}

// String joins the chunks back into text.
func (b AlignmentBuffer) String() string {
	return strings.Join(b, "")
}

// Contains reports whether chunk is one of the buffer's units.
func (b AlignmentBuffer) Contains(chunk string) bool {
	return slices.Contains(b, chunk)
}

// CombineConnectedLetters looks for a run of single-letter markers such as
// "(o?)(u?)" whose letters spell a substring of compare, and collapses the
// longest such substring into one marker, "(ou?)". Only the first run that
// yields a substring longer than one character is rewritten.
func CombineConnectedLetters(b AlignmentBuffer, compare string) AlignmentBuffer {
	text := b.String()

	for _, run := range markerRun.FindAllString(text, -1) {
		letters := []rune(StripMarkers(run))

		longest := ""
		for s := range letters {
			for e := s + 1; e <= len(letters); e++ {
				sub := string(letters[s:e])
				if len([]rune(sub)) > len([]rune(longest)) && strings.Contains(compare, sub) {
					longest = sub
				}
			}
		}

		if len([]rune(longest)) > 1 {
			var needle strings.Builder
			for _, r := range longest {
				needle.WriteString(Mark(string(r)))
			}
			return NewBuffer(strings.ReplaceAll(text, needle.String(), Mark(longest)))
		}
	}

	return slices.Clone(b)
}
