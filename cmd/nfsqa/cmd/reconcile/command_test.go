package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalarchives/ctd-nfs/internal/appcontext"
	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/align"
	"github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/nationalarchives/ctd-nfs/pkg/metrics"
	engine "github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

const record = `name:
  - R Burroughs
  - R Burroghs
surname:
  - Smith
  - "*"
place:
  - Hayden Farm
  - HaydenFarm
  - HAYDEN FARM
  - Haydon Farm
`

func writeRecord(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte(record), 0o600))
	return path
}

func runJSON(t *testing.T, opts Options) (Report, error) {
	t.Helper()
	var buf bytes.Buffer
	app := &appcontext.Mock{Format: output.FormatJSON}

	err := Run(context.Background(), app, &buf, writeRecord(t), opts)

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	return report, err
}

func TestRun_JSON(t *testing.T) {
	report, err := runJSON(t, Options{})
	require.NoError(t, err)

	require.Len(t, report.Fields, 3)
	assert.Equal(t, []string{"name", "surname", "place"}, []string{
		report.Fields[0].Key, report.Fields[1].Key, report.Fields[2].Key,
	})

	name := report.Fields[0]
	assert.Equal(t, "R Burro(u?)ghs", name.Value)
	assert.Equal(t, engine.StrategyTwoPhrase, name.Strategy)
	assert.False(t, name.Unresolved)

	surname := report.Fields[1]
	assert.Equal(t, "Smith", surname.Value)
	assert.Equal(t, engine.StrategyPassthrough, surname.Strategy)
	assert.Empty(t, surname.Warnings)

	place := report.Fields[2]
	assert.True(t, place.Unresolved)
	assert.Equal(t, engine.StrategyMultiVariant, place.Strategy)

	assert.Equal(t, 3, report.Stats.Fields)
	assert.Equal(t, 1, report.Stats.Unresolved)
	assert.Contains(t, report.Summary, "1 need manual review")
	assert.Nil(t, report.Parts)
	assert.Len(t, report.RunID, 26)
}

func TestRun_Strict(t *testing.T) {
	report, err := runJSON(t, Options{Strict: true})
	require.Error(t, err)
	assert.True(t, errors.IsUnresolved(err))

	var unresolved *errors.UnresolvedError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, []string{"place"}, unresolved.Keys)

	// the report is still written before the error is returned
	assert.Len(t, report.Fields, 3)
}

func TestRun_Parts(t *testing.T) {
	report, err := runJSON(t, Options{Parts: true})
	require.NoError(t, err)

	require.Contains(t, report.Parts, "name")
	assert.Equal(t, align.Distribution{"R": 2, "Burroughs": 1, "Burroghs": 1}, report.Parts["name"])
	assert.Equal(t, align.Distribution{"Smith": 1}, report.Parts["surname"])
}

func TestRun_Markdown(t *testing.T) {
	var buf bytes.Buffer
	app := &appcontext.Mock{Format: output.FormatMarkdown}

	require.NoError(t, Run(context.Background(), app, &buf, writeRecord(t), Options{Parts: true}))

	out := buf.String()
	assert.Contains(t, out, "R Burro(u?)ghs")
	assert.Contains(t, out, "two-phrase")
	assert.Contains(t, out, "R:2, Burroghs:1, Burroughs:1")
	assert.Contains(t, out, "Reconciled 3 field(s)")
}

func TestRun_Metrics(t *testing.T) {
	app := &appcontext.Mock{Format: output.FormatJSON, Collector: metrics.New()}
	path := filepath.Join(t.TempDir(), "nfsqa.prom")

	require.NoError(t, Run(context.Background(), app, &bytes.Buffer{}, writeRecord(t), Options{Metrics: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `nfsqa_fields_total{outcome="unresolved",strategy="multi-variant"} 1`)
	assert.Contains(t, string(data), `nfsqa_batches_total{status="ok"} 1`)
}

func TestRun_MetricsDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfsqa.prom")
	err := Run(context.Background(), &appcontext.Mock{Format: output.FormatJSON}, &bytes.Buffer{}, writeRecord(t), Options{Metrics: path})
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestRun_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := Run(context.Background(), &appcontext.Mock{}, &buf, filepath.Join(t.TempDir(), "absent.yaml"), Options{})
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestRun_ReconcilerError(t *testing.T) {
	app := &appcontext.Mock{
		ReconcilerFunc: func() (engine.Reconciler, error) {
			return nil, errors.NewConfigError("reconciler", "broken", nil)
		},
	}
	err := Run(context.Background(), app, &bytes.Buffer{}, writeRecord(t), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestFormatParts(t *testing.T) {
	tests := []struct {
		name string
		dist align.Distribution
		want string
	}{
		{"empty", align.Distribution{}, ""},
		{"by count", align.Distribution{"a": 1, "b": 3}, "b:3, a:1"},
		{"ties alphabetical", align.Distribution{"y": 2, "x": 2}, "x:2, y:2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatParts(tt.dist))
		})
	}
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	assert.Equal(t, "core", cmd.GroupID)
	assert.NotNil(t, cmd.Flags().Lookup("strict"))
	assert.NotNil(t, cmd.Flags().Lookup("parts"))
	assert.NotNil(t, cmd.Flags().Lookup("metrics"))
	assert.Error(t, cmd.Args(cmd, nil))
}
