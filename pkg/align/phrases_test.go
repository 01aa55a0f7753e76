package align_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalarchives/ctd-nfs/pkg/align"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
)

func TestMatchRatios(t *testing.T) {
	rate, best := align.MatchRatios(align.Tokenize("F Thomas"), align.Tokenize("Frank Thomas"))

	assert.Equal(t, 100, rate)
	require.Len(t, best, 2)
	assert.Equal(t, align.Anchor{Index: 0, Span: align.Span{Start: 0, End: 1}, Score: 33}, best[0])
	assert.Equal(t, align.Anchor{Index: 1, Span: align.Span{Start: 1, End: 2}, Score: 100}, best[1])
}

func TestSelectAnchors(t *testing.T) {
	tests := []struct {
		name    string
		phrase1 string
		phrase2 string
		rate    int
		want    []align.Anchor
	}{
		{
			name:    "single strongest anchor",
			phrase1: "F Thomas",
			phrase2: "Frank Thomas",
			rate:    100,
			want:    []align.Anchor{{Index: 1, Span: align.Span{Start: 1, End: 2}, Score: 100}},
		},
		{
			name:    "every exact token anchors",
			phrase1: "R Burroughs",
			phrase2: "R Burroughs",
			rate:    100,
			want: []align.Anchor{
				{Index: 0, Span: align.Span{Start: 0, End: 1}, Score: 100},
				{Index: 1, Span: align.Span{Start: 1, End: 2}, Score: 100},
			},
		},
		{
			name:    "backwards matches are dropped",
			phrase1: "Smith John",
			phrase2: "John Smith",
			rate:    100,
			want:    []align.Anchor{{Index: 0, Span: align.Span{Start: 1, End: 2}, Score: 100}},
		},
		{
			name:    "nothing in common",
			phrase1: "xyz",
			phrase2: "abc",
			rate:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, anchors := align.SelectAnchors(align.Tokenize(tt.phrase1), align.Tokenize(tt.phrase2))
			assert.Equal(t, tt.rate, rate)
			assert.Equal(t, tt.want, anchors)
		})
	}
}

func FuzzSelectAnchors(f *testing.F) {
	f.Add("R Burroughs", "R Burroghs")
	f.Add("Smith John Smith", "John Smith John")
	f.Add("a b a b", "b a b a")
	f.Fuzz(func(t *testing.T, a, b string) {
		p1, p2 := align.Tokenize(a), align.Tokenize(b)
		if len(p1) > 6 || len(p2) > 6 {
			t.Skip()
		}
		_, anchors := align.SelectAnchors(p1, p2)
		for k := 1; k < len(anchors); k++ {
			if anchors[k].Index < anchors[k-1].Index || anchors[k].Span.End < anchors[k-1].Span.End {
				t.Fatalf("anchors move backwards: %+v", anchors)
			}
		}
	})
}

func TestCombineTwoPhrases(t *testing.T) {
	tests := []struct {
		name       string
		a          string
		b          string
		components []string
		want       string
		warnings   []string
	}{
		{
			name:       "single character difference",
			a:          "R Burroughs",
			b:          "R Burroghs",
			components: []string{"R Burroughs", "R Burroghs"},
			want:       "R Burro(u?)ghs",
			warnings:   []string{constants.NoteOffsetVariations},
		},
		{
			name:       "initial expands to full name",
			a:          "F Thomas",
			b:          "Frank Thomas",
			components: []string{"F Thomas", "Frank Thomas"},
			want:       "Frank Thomas",
			warnings:   []string{constants.NoteOffsetVariations},
		},
		{
			name:       "identical phrases",
			a:          "Hayden Farm",
			b:          "Hayden Farm",
			components: []string{"Hayden Farm", "Hayden Farm"},
			want:       "Hayden Farm",
		},
		{
			name:       "extra trailing token is marked",
			a:          "Hayden Farm",
			b:          "Hayden Farm Lane",
			components: []string{"Hayden Farm", "Hayden Farm Lane"},
			want:       "Hayden Farm (Lane?)",
			warnings:   []string{constants.NoteOffsetVariations},
		},
		{
			name:       "trailing comma follows the marker",
			a:          "Parkside, Frizington, Cumberland",
			b:          "Parkside Farm, Frizington",
			components: []string{"Parkside, Frizington, Cumberland", "Parkside Farm, Frizington"},
			want:       "Parkside (Farm?), Frizington, (Cumberland?)",
			warnings:   []string{constants.NoteOffsetVariations},
		},
		{
			name:     "equal gap goes through the token merger",
			a:        "f thomas",
			b:        "frank thomas",
			want:     "Frank thomas",
			warnings: []string{constants.NoteOffsetVariations},
		},
		{
			name:       "distinct values are not merged",
			a:          "Hayden",
			b:          "Pilgrove",
			components: []string{"Hayden", "Pilgrove"},
			want:       "Pilgrove / Hayden",
			warnings:   []string{fmt.Sprintf(constants.WarnNoAnchorFormat, "Pilgrove", "Hayden")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := align.CombineTwoPhrases(tt.a, tt.b, tt.components)
			assert.Equal(t, tt.want, got.Value)
			if len(tt.warnings) == 0 {
				assert.Empty(t, got.Warnings)
			} else {
				assert.Equal(t, tt.warnings, got.Warnings.Sorted())
			}
		})
	}
}

func TestMatchMatrixHasNoNote(t *testing.T) {
	got := align.MatchMatrix(align.Tokenize("F Thomas"), align.Tokenize("Frank Thomas"), nil)

	assert.Equal(t, "Frank Thomas", got.Value)
	assert.False(t, got.Warnings.Has(constants.NoteOffsetVariations))
}

func TestAlignTwoPhrasesShorterFirst(t *testing.T) {
	ab := align.CombineTwoPhrases("Frank Thomas", "F Thomas", nil)
	ba := align.CombineTwoPhrases("F Thomas", "Frank Thomas", nil)

	assert.Equal(t, ab.Value, ba.Value)
}
