package xlmerge

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureRow describes one row of a test spreadsheet.
type fixtureRow struct {
	values []any
	height float64
	hidden bool
}

func plain(values ...any) fixtureRow {
	return fixtureRow{values: values}
}

// buildXLSX writes rows to the named sheet of a new workbook and returns its bytes.
// Nil values leave the cell empty.
func buildXLSX(t *testing.T, sheet string, rows ...fixtureRow) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		rowNum := i + 1
		for col, v := range row.values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
		if row.height > 0 {
			require.NoError(t, f.SetRowHeight(sheet, rowNum, row.height))
		}
		if row.hidden {
			require.NoError(t, f.SetRowVisible(sheet, rowNum, false))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// buildModel creates a workbook with one "Sheet1" holding the given rows.
func buildModel(name string, rows ...fixtureRow) *Workbook {
	wb := NewWorkbook(name)
	ws := wb.AddSheet("Sheet1")
	for _, r := range rows {
		row := ws.AppendRow(r.values)
		row.Height = r.height
		row.Hidden = r.hidden
	}
	return wb
}

// rowValues returns the values of every row of the sheet, header included.
func rowValues(t *testing.T, ws *Worksheet) [][]any {
	t.Helper()
	var out [][]any
	for _, r := range ws.Rows() {
		out = append(out, r.Values)
	}
	return out
}

// recordingListener collects merge notifications.
type recordingListener struct {
	cleared  []int
	appended []string
	skipped  []string
}

func (l *recordingListener) Cleared(removed int) { l.cleared = append(l.cleared, removed) }

func (l *recordingListener) SourceAppended(name string, rows, hidden int) {
	l.appended = append(l.appended, name)
}

func (l *recordingListener) SourceSkipped(name, reason string) {
	l.skipped = append(l.skipped, name+": "+reason)
}
