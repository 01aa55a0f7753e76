// Package annotate handles the uncertainty notation embedded in merged values.
//
// A merged value marks a minority or doubtful reading as "(text?)", an
// unrelated pair of alternatives as "a/b(?)", and leaves agreed text bare.
// This package splits such strings into units, collapses redundant markers,
// and locates a marked section inside its source phrase.
package annotate

import (
	"regexp"
	"slices"
	"strings"

	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

const word = `[\p{L}\p{N}_]`

var (
	// chunkPattern matches one unit: a "(word?)" group, a bare "(?)" or a single character.
	chunkPattern = regexp.MustCompile(`\(` + word + `+\?\)|\(\?\)|.`)

	// markerRun matches adjacent "(word?)" groups.
	markerRun = regexp.MustCompile(`(?:\(` + word + `+\?\))+`)

	// adjacentGroups matches the boundary between two neighbouring groups.
	adjacentGroups = regexp.MustCompile(`(?:\?)?\) \(`)

	// nestedGroup matches "((word?)?)".
	nestedGroup = regexp.MustCompile(`\(\((` + word + `+)\?\)\?\)`)

	markerChars = strings.NewReplacer("(", "", "?", "", ")", "")
)

// Chunk splits s into "(word?)" groups, bare "(?)" markers and single
// characters. Newlines are dropped.
func Chunk(s string) []string {
	return chunkPattern.FindAllString(s, -1)
}

// UncertainChunks returns only the chunks of s that carry a question mark.
func UncertainChunks(s string) []string {
	var out []string
	for _, c := range Chunk(s) {
		if strings.Contains(c, "?") {
			out = append(out, c)
		}
	}
	return out
}

// StripMarkers removes every bracket and question mark from s.
func StripMarkers(s string) string {
	return markerChars.Replace(s)
}

// Mark wraps s as an uncertain reading.
func Mark(s string) string {
	return "(" + s + "?)"
}

// CleanBrackets joins neighbouring uncertainty groups into one span and
// collapses doubly wrapped groups, repeating until nothing changes.
// Applying it twice gives the same result as applying it once.
func CleanBrackets(s string) string {
	for {
		next := adjacentGroups.ReplaceAllString(s, " ")
		for nestedGroup.MatchString(next) {
			next = nestedGroup.ReplaceAllString(next, "(${1}?)")
		}
		if next == s {
			return s
		}
		s = next
	}
}

// Context finds every place letterGroup occurs in the chunked phrase, either
// as a whole chunk or spelled out one character per chunk, and returns each
// occurrence with its neighbouring chunks.
func Context(letterGroup, phrase string) [][]string {
	chunks := Chunk(phrase)
	letters := strings.Split(similarity.CleanString(letterGroup), "")
	n := len(letters)

	var contexts [][]string
	for i, x := range chunks {
		start, end := 0, len(chunks)
		window := chunks[i:min(i+n, len(chunks))]

		if x == letterGroup {
			if i-1 > 0 {
				start = i - 1
			}
			if i+2 <= end {
				end = i + 2
			}
			contexts = append(contexts, slices.Clone(chunks[start:end]))
		}

		if slices.Equal(window, letters) {
			if i-1 > 0 {
				start = i - 1
			}
			if i+1+n <= end {
				end = i + 1 + n
			}
			contexts = append(contexts, slices.Clone(chunks[start:end]))
		}
	}
	return contexts
}
