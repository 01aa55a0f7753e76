package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
)

type scoreRow struct {
	Pair     string   `json:"pair"`
	RawScore int      `json:"raw_score"`
	Notes    []string `json:"notes,omitempty"`
	hidden   string
}

func sampleData() output.Data {
	return output.Data{
		Title:   "Field review",
		Headers: []string{"Key", "Value"},
		Rows: [][]string{
			{"surname", "R Burro(u?)ghs"},
			{"farm", "Hayden/Pilgrove(?) Farm"},
		},
		Notes: []string{"1 field needs manual review"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Format
		wantErr bool
	}{
		{"table", output.FormatTable, false},
		{"JSON", output.FormatJSON, false},
		{"yaml", output.FormatYAML, false},
		{"markdown", output.FormatMarkdown, false},
		{"md", output.FormatMarkdown, false},
		{"", "", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatJSON).Format(&buf, scoreRow{Pair: "a/b", RawScore: 50}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "a/b", decoded["pair"])
	assert.EqualValues(t, 50, decoded["raw_score"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatYAML).Format(&buf, map[string]string{"surname": "Smith"}))
	assert.Equal(t, "surname: Smith\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, sampleData()))

	out := buf.String()
	assert.Contains(t, out, "R Burro(u?)ghs")
	assert.Contains(t, out, "Hayden/Pilgrove(?) Farm")
	assert.Contains(t, out, "1 field needs manual review")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a": 1}`, buf.String())
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatMarkdown).Format(&buf, sampleData()))

	out := buf.String()
	assert.Contains(t, out, "## Field review")
	assert.Contains(t, out, "R Burro(u?)ghs")
	assert.Contains(t, out, "- 1 field needs manual review")

	buf.Reset()
	err := output.NewFormatter(output.FormatMarkdown).Format(&buf, 42)
	assert.Error(t, err)
}

func TestToData(t *testing.T) {
	t.Run("slice of structs", func(t *testing.T) {
		got, ok := output.ToData([]scoreRow{{Pair: "a/b", RawScore: 50, Notes: []string{"x", "y"}}})
		require.True(t, ok)
		assert.Equal(t, []string{"Pair", "Raw Score", "Notes"}, got.Headers)
		assert.Equal(t, [][]string{{"a/b", "50", "x\ny"}}, got.Rows)
	})

	t.Run("single struct", func(t *testing.T) {
		got, ok := output.ToData(&scoreRow{Pair: "a/b", RawScore: 50})
		require.True(t, ok)
		assert.Equal(t, []string{"Property", "Value"}, got.Headers)
		assert.Equal(t, []string{"Raw Score", "50"}, got.Rows[1])
	})

	t.Run("unsupported", func(t *testing.T) {
		_, ok := output.ToData("text")
		assert.False(t, ok)
	})

	t.Run("data passes through", func(t *testing.T) {
		got, ok := output.ToData(sampleData())
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(got.Title, "Field"))
	})
}
