// Package reconcile provides the reconcile command.
package reconcile

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/align"
	"github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/nationalarchives/ctd-nfs/pkg/fields"
	"github.com/nationalarchives/ctd-nfs/pkg/logging"
	"github.com/nationalarchives/ctd-nfs/pkg/metrics"
	engine "github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

// AppContext defines the interface that the reconcile command needs from the app.
type AppContext interface {
	Reconciler() (engine.Reconciler, error)
	Placeholders() []string
	Metrics() *metrics.Metrics
	Logger() *zerolog.Logger
	OutputFormat() output.Format
}

// Options holds the reconcile command flags.
type Options struct {
	Strict  bool
	Parts   bool
	Metrics string
}

// Report is the structured form of the command output.
type Report struct {
	RunID   string                        `json:"run_id" yaml:"run_id"`
	File    string                        `json:"file" yaml:"file"`
	Summary string                        `json:"summary" yaml:"summary"`
	Fields  []engine.FieldResult          `json:"fields" yaml:"fields"`
	Stats   engine.Statistics             `json:"stats" yaml:"stats"`
	Parts   map[string]align.Distribution `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// NewCommand creates the reconcile command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:     "reconcile FILE",
		GroupID: "core",
		Short:   "Merge the variants of every field in a variant file",
		Long: `Reconcile loads a variant file, a YAML or JSON mapping of field keys to
the list of their transcriptions, and merges each field into one value.

Entries that are blank or equal to a placeholder ("*" by default) mark a
source with no data and are ignored.`,
		Example: `  nfsqa reconcile record.yaml
  nfsqa reconcile record.json --format markdown > review.md
  nfsqa reconcile record.yaml --strict      # exit non-zero when review is needed
  nfsqa reconcile record.yaml --metrics /var/lib/node_exporter/nfsqa.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit with an error when any field needs manual review")
	cmd.Flags().BoolVar(&opts.Parts, "parts", false, "include the token distribution of each field")
	cmd.Flags().StringVar(&opts.Metrics, "metrics", "", "write Prometheus metrics for the run to this textfile")

	return cmd
}

// Run reconciles the variant file at path and writes the result to w.
func Run(ctx context.Context, app AppContext, w io.Writer, path string, opts Options) error {
	ctx = logging.WithFile(logging.WithLogger(ctx, app.Logger()), path)
	logger := logging.FromContext(ctx)

	input, err := fields.LoadFile(path)
	if err != nil {
		return err
	}
	logger.Debug().Int("fields", len(input)).Msg("Loaded variant file")

	r, err := app.Reconciler()
	if err != nil {
		return err
	}

	result, err := r.Reconcile(ctx, input)
	if err != nil {
		return err
	}

	report := Report{
		RunID:   result.Metadata.RunID,
		File:    path,
		Summary: result.Summary(),
		Fields:  result.Fields,
		Stats:   result.Metadata.Stats,
	}
	if opts.Parts {
		report.Parts = make(map[string]align.Distribution, len(input))
		for _, f := range input {
			report.Parts[f.Key] = align.PartDistribution(engine.Components(f.Variants, app.Placeholders()))
		}
	}

	if err := render(w, app.OutputFormat(), report); err != nil {
		return errors.WrapIO("write", "output", err)
	}

	if opts.Metrics != "" {
		if err := writeMetrics(app.Metrics(), opts.Metrics); err != nil {
			return err
		}
		logger.Debug().Str("path", opts.Metrics).Msg("Wrote metrics")
	}

	if keys := result.UnresolvedKeys(); opts.Strict && len(keys) > 0 {
		return errors.NewUnresolvedError(keys)
	}
	return nil
}

func writeMetrics(m *metrics.Metrics, path string) error {
	if m == nil {
		return errors.NewConfigError("metrics", "metrics are not enabled", nil)
	}
	if err := m.WriteTextfile(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func render(w io.Writer, format output.Format, report Report) error {
	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Format(w, report)
	default:
		return formatter.Format(w, tableData(report))
	}
}

func tableData(report Report) output.Data {
	headers := []string{"Key", "Value", "Strategy", "Review", "Warnings"}
	if report.Parts != nil {
		headers = append(headers, "Parts")
	}

	rows := make([][]string, 0, len(report.Fields))
	for _, f := range report.Fields {
		review := ""
		if f.Unresolved {
			review = "yes"
		}
		row := []string{f.Key, f.Value, f.Strategy.String(), review, strings.Join(f.Warnings, "\n")}
		if report.Parts != nil {
			row = append(row, formatParts(report.Parts[f.Key]))
		}
		rows = append(rows, row)
	}

	return output.Data{
		Title:   report.File,
		Headers: headers,
		Rows:    rows,
		Notes:   []string{report.Summary},
	}
}

// formatParts lists tokens by descending count, then alphabetically.
func formatParts(dist align.Distribution) string {
	tokens := slices.SortedFunc(maps.Keys(dist), func(a, b string) int {
		if c := cmp.Compare(dist[b], dist[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fmt.Sprintf("%s:%d", t, dist[t])
	}
	return strings.Join(parts, ", ")
}
