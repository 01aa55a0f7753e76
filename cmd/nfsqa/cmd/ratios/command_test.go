package ratios

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalarchives/ctd-nfs/internal/appcontext"
	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/errors"
)

func TestTable(t *testing.T) {
	rows := Table(3)
	require.Len(t, rows, 3)

	tests := []struct {
		first, second string
		length        int
		ratio         int
		threshold     int
		admissible    bool
	}{
		{"XAXX", "XBXX", 4, 75, constants.MediumThreshold, true},
		{"XAXXAXX", "XBXXBXX", 7, 71, constants.MediumThreshold, true},
		{"XAXXAXXAXX", "XBXXBXXBXX", 10, 70, constants.LongThreshold, false},
	}

	for i, tt := range tests {
		t.Run(tt.first, func(t *testing.T) {
			row := rows[i]
			assert.Equal(t, tt.first, row.First)
			assert.Equal(t, tt.second, row.Second)
			assert.Equal(t, tt.length, row.Length)
			assert.Equal(t, tt.ratio, row.Ratio)
			assert.Equal(t, tt.threshold, row.Threshold)
			assert.Equal(t, tt.admissible, row.Admissible)
			assert.InDelta(t, float64(tt.ratio)/float64(tt.length), row.PerLength, 1e-9)
		})
	}
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(&buf, output.FormatJSON, 2))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Len(t, rows, 2)
	assert.Equal(t, 75, rows[0].Ratio)
}

func TestRun_InvalidSteps(t *testing.T) {
	err := Run(&bytes.Buffer{}, output.FormatTable, 0)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestTableData(t *testing.T) {
	data := tableData(Table(1))
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"4", "XAXX", "XBXX", "75", "18.75", "70", "true"}, data.Rows[0])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
}

func TestNewCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewCommand(&appcontext.Mock{Format: output.FormatJSON})
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--steps", "1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"first": "XAXX"`)
}
