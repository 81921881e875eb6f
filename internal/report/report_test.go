package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkroam/pkroam/internal/report"
)

func sampleRows() []report.Row {
	return []report.Row{
		{Box: "P", Slot: 1, Species: 25, Nickname: "PIKA"},
		{Box: "1", Slot: 1, Species: 1, Nickname: "BULBA"},
	}
}

func TestExportXLSX_WritesNonEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, report.ExportXLSX(sampleRows(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_WritesNonEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, report.ExportPDF(sampleRows(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportXLSX_EmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, report.ExportXLSX(nil, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
