package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "Burroughs", "Burroughs", 100},
		{"both empty", "", "", 100},
		{"one empty", "abc", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"one letter dropped", "Burroughs", "Burroghs", 94},
		{"case matters", "SMITH", "smith", 0},
		{"half shared", "ab", "ac", 50},
		{"fraction rounds down", "abc", "abd", 66},
		{"unicode letters", "Müller", "Muller", 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity.Ratio(tt.a, tt.b))
			assert.Equal(t, tt.want, similarity.Ratio(tt.b, tt.a), "ratio must be symmetric")
		})
	}
}

func TestCompare(t *testing.T) {
	s := similarity.Compare("F. Thomas", "f thomas")
	assert.Less(t, s.Raw, s.Caseless)
	assert.Less(t, s.Caseless, s.Folded)
	assert.Equal(t, 100, s.Folded)
	assert.Equal(t, 100, similarity.Folded("Hill-Top", "hilltop"))
}

func TestRatioCheck(t *testing.T) {
	tests := []struct {
		name   string
		length int
		score  int
		want   bool
	}{
		{"short passes at 60", 3, 60, true},
		{"short fails below 60", 3, 59, false},
		{"medium needs 70", 4, 69, false},
		{"medium passes at 70", 7, 70, true},
		{"long needs 80", 8, 79, false},
		{"long passes at 80", 20, 80, true},
		{"perfect always passes", 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity.RatioCheck(tt.length, tt.score))
			assert.Equal(t, tt.want, tt.score >= similarity.Threshold(tt.length))
		})
	}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(ough?)", "ough"},
		{"c/o Mr S. Fluck,", "co Mr S Fluck"},
		{"Hill_Top", "Hill_Top"},
		{"Zoë's", "Zoës"},
		{"(?)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity.CleanString(tt.in))
		})
	}
}

func TestPunctuatedTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"JOHN SMITH", "John Smith"},
		{"john smith", "John Smith"},
		{"hill top farm", "Hill Top Farm"},
		{"HillTop Farm", "Hilltop Farm"},
		{"Burr(Ough?)s", "Burr(ough?)s"},
		{"o'NEILL", "O'neill"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity.PunctuatedTitle(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	decomposed := "Zoe\u0308"
	assert.Equal(t, "Zo\u00eb", similarity.Normalize(decomposed))
	assert.Equal(t, 100, similarity.Ratio(similarity.Normalize(decomposed), "Zo\u00eb"))
}
