// Package compare provides the compare command.
package compare

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/align"
	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// AppContext defines the interface that the compare command needs from the app.
type AppContext interface {
	OutputFormat() output.Format
}

// Comparison reports how two readings score against each other and what
// merging them produces.
type Comparison struct {
	First      string   `json:"first" yaml:"first"`
	Second     string   `json:"second" yaml:"second"`
	Raw        int      `json:"raw" yaml:"raw"`
	Caseless   int      `json:"caseless" yaml:"caseless"`
	Folded     int      `json:"folded" yaml:"folded"`
	Length     int      `json:"length" yaml:"length"`
	Threshold  int      `json:"threshold" yaml:"threshold"`
	Admissible bool     `json:"admissible" yaml:"admissible"`
	Merged     string   `json:"merged" yaml:"merged"`
	Warnings   []string `json:"warnings" yaml:"warnings"`
}

// NewCommand creates the compare command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "compare A B",
		GroupID: "diagnostics",
		Short:   "Score and merge two readings",
		Long: `Compare prints the raw, caseless and caseless punctuation-free similarity
of two readings, whether they clear the admissibility threshold for their
length, and the value produced by aligning them.`,
		Example: `  nfsqa compare "R Burroughs" "R Burroghs"
  nfsqa compare "Hayden Farm" "Pilgrove Farm" --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.OutOrStdout(), app.OutputFormat(), args[0], args[1])
		},
	}
}

// Run compares a and b and writes the result to w.
func Run(w io.Writer, format output.Format, a, b string) error {
	return output.NewFormatter(format).Format(w, Compare(a, b))
}

// Compare scores and merges a and b.
func Compare(a, b string) Comparison {
	scores := similarity.Compare(a, b)
	length := max(similarity.Length(a), similarity.Length(b))
	merged := align.CombineTwoPhrases(a, b, []string{a, b})

	return Comparison{
		First:      a,
		Second:     b,
		Raw:        scores.Raw,
		Caseless:   scores.Caseless,
		Folded:     scores.Folded,
		Length:     length,
		Threshold:  similarity.Threshold(length),
		Admissible: similarity.RatioCheck(length, scores.Raw),
		Merged:     merged.Value,
		Warnings:   merged.Warnings.Sorted(),
	}
}
