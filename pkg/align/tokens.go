// Package align merges two readings of the same field.
//
// Two phrases are aligned token by token around anchor points, the
// strongest correspondences between a token of the shorter phrase and a run
// of tokens in the longer one. The material between anchors is reconciled by
// the token merger, which either agrees, defers to the majority reading,
// marks differing characters, or gives up and lists both alternatives.
package align

import (
	"strings"
)

// Distribution counts, for each token, how many variants contain it.
type Distribution map[string]int

// Count returns the count recorded for token, matching keys without regard
// to case.
func (d Distribution) Count(token string) int {
	lower := strings.ToLower(token)
	count := 0
	for k, v := range d {
		if strings.ToLower(k) == lower {
			count = v
		}
	}
	return count
}

// Tokenize splits a phrase on whitespace.
func Tokenize(phrase string) []string {
	return strings.Fields(phrase)
}

// TokenDistribution counts how many of components contain each token,
// comparing case-insensitively and by substring.
func TokenDistribution(components []string, tokens ...string) Distribution {
	dist := make(Distribution, len(tokens))
	for _, component := range components {
		lc := strings.ToLower(component)
		for _, token := range tokens {
			if strings.Contains(lc, strings.ToLower(token)) {
				dist[token]++
			}
		}
	}
	return dist
}

// PartDistribution counts every whitespace-delimited part across components.
func PartDistribution(components []string) Distribution {
	dist := make(Distribution)
	for _, component := range components {
		for _, part := range Tokenize(component) {
			dist[part]++
		}
	}
	return dist
}
