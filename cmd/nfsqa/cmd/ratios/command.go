// Package ratios provides the ratios command, which shows how the
// admissibility threshold treats strings of growing length.
package ratios

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/nationalarchives/ctd-nfs/pkg/similarity"
)

// AppContext defines the interface that the ratios command needs from the app.
type AppContext interface {
	OutputFormat() output.Format
}

// Row is one step of the ratio table.
type Row struct {
	Length     int     `json:"length" yaml:"length"`
	First      string  `json:"first" yaml:"first"`
	Second     string  `json:"second" yaml:"second"`
	Ratio      int     `json:"ratio" yaml:"ratio"`
	PerLength  float64 `json:"ratio_per_length" yaml:"ratio_per_length"`
	Threshold  int     `json:"threshold" yaml:"threshold"`
	Admissible bool    `json:"admissible" yaml:"admissible"`
}

// NewCommand creates the ratios command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:     "ratios",
		GroupID: "diagnostics",
		Short:   "Show how similarity and the threshold change with length",
		Long: `Ratios grows a pair of strings that differ in one character out of every
three ("XAXX" against "XBXX", then "XAXXAXX" against "XBXXBXX" and so on)
and prints, at each length, their similarity, the similarity per character,
and whether the pair clears the admissibility threshold.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.OutOrStdout(), app.OutputFormat(), steps)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", constants.DefaultRatioSteps, "number of rows")

	return cmd
}

// Run writes a ratio table of the given number of steps to w.
func Run(w io.Writer, format output.Format, steps int) error {
	if steps < 1 {
		return errors.NewValidationError("steps", steps, "must be at least 1")
	}

	rows := Table(steps)
	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Format(w, rows)
	default:
		return formatter.Format(w, tableData(rows))
	}
}

// Table builds the ratio table.
func Table(steps int) []Row {
	first, second := "X", "X"
	rows := make([]Row, 0, steps)
	for range steps {
		first += "AXX"
		second += "BXX"

		length := similarity.Length(first)
		ratio := similarity.Ratio(first, second)
		rows = append(rows, Row{
			Length:     length,
			First:      first,
			Second:     second,
			Ratio:      ratio,
			PerLength:  float64(ratio) / float64(length),
			Threshold:  similarity.Threshold(length),
			Admissible: similarity.RatioCheck(length, ratio),
		})
	}
	return rows
}

func tableData(rows []Row) output.Data {
	data := output.Data{
		Headers: []string{"Length", "First", "Second", "Ratio", "Ratio/Length", "Threshold", "Admissible"},
		ColumnAlignment: []output.Align{
			output.AlignRight, output.AlignLeft, output.AlignLeft,
			output.AlignRight, output.AlignRight, output.AlignRight, output.AlignCenter,
		},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(r.Length),
			r.First,
			r.Second,
			strconv.Itoa(r.Ratio),
			fmt.Sprintf("%.2f", r.PerLength),
			strconv.Itoa(r.Threshold),
			strings.ToLower(strconv.FormatBool(r.Admissible)),
		})
	}
	return data
}
