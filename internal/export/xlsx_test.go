package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(sampleRecords(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	wantSheets := []string{
		"All Invoices",
		"High Confidence (80%+)",
		"Medium Confidence (50-79%)",
		"Low Confidence (<50%)",
		"Summary",
		"By Company",
		"By Month",
	}
	require.Len(t, f.Sheets, len(wantSheets))
	for i, name := range wantSheets {
		assert.Equal(t, name, f.Sheets[i].Name)
	}

	all := f.Sheet["All Invoices"]
	require.NotNil(t, all)
	// Header plus one row per record.
	assert.Len(t, all.Rows, 5)
	assert.Equal(t, "File Name", all.Rows[0].Cells[0].String())

	high := f.Sheet["High Confidence (80%+)"]
	require.NotNil(t, high)
	assert.Len(t, high.Rows, 3)

	low := f.Sheet["Low Confidence (<50%)"]
	require.NotNil(t, low)
	assert.Len(t, low.Rows, 2)
	assert.Equal(t, "scan0042.png", low.Rows[1].Cells[0].String())

	summary := f.Sheet["Summary"]
	require.NotNil(t, summary)
	metrics := make(map[string]string, len(summary.Rows))
	for _, row := range summary.Rows[1:] {
		metrics[row.Cells[0].String()] = row.Cells[1].String()
	}
	assert.Equal(t, "3", metrics["IPL Invoices"])
	assert.Equal(t, "1", metrics["Other Event Invoices"])
	assert.Equal(t, "1", metrics["Convenience Fee Invoices"])
}

func TestWriteXLSXEmptyRecordSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(nil, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	all := f.Sheet["All Invoices"]
	require.NotNil(t, all)
	assert.Len(t, all.Rows, 1)
}
