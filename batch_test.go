package xlmerge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch(t *testing.T, opts ...Option) *Batch {
	t.Helper()
	summary := buildXLSX(t, "Sheet1",
		plain("Code", "Amount"),
		plain("old-1", 1),
		plain("old-2", 2),
	)
	b, err := NewBatch(summary, opts...)
	require.NoError(t, err)
	return b
}

func TestNewBatch_ReadsSummaryHeaders(t *testing.T) {
	b := newTestBatch(t)
	assert.Equal(t, HeaderSequence{"Code", "Amount"}, b.Headers())
	assert.Equal(t, "Sheet1", b.Sheet())
}

func TestNewBatch_FatalSummaryErrors(t *testing.T) {
	t.Run("corrupt", func(t *testing.T) {
		_, err := NewBatch([]byte("nope"))
		var corrupt *CorruptWorkbookError
		require.ErrorAs(t, err, &corrupt)
		assert.Contains(t, err.Error(), "cannot load summary file")
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := NewBatch(buildXLSX(t, "Data", plain("Code")))
		var missing *MissingSheetError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("empty header", func(t *testing.T) {
		_, err := NewBatch(buildXLSX(t, "Sheet1", plain(nil), plain("data")))
		var empty *EmptyHeaderError
		require.ErrorAs(t, err, &empty)
	})
}

func TestBatch_Validate(t *testing.T) {
	b := newTestBatch(t, WithConcurrency(2))
	sources := []SourceFile{
		{Name: "north.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount"), plain("N", 1))},
		{Name: "extra.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount", "Extra"))},
		{Name: "nosheet.xlsx", Content: buildXLSX(t, "Data", plain("Code", "Amount"))},
		{Name: "broken.xlsx", Content: []byte("broken")},
		{Name: "north.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount"))},
	}

	results := b.Validate(sources)
	require.Len(t, results, 5)

	assert.True(t, results[0].Eligible())
	assert.Equal(t, "header count mismatch (expected 2, got 3)", results[1].Reason)
	assert.False(t, results[2].HasNominatedSheet)
	assert.Contains(t, results[3].Reason, "corrupt workbook")
	assert.Equal(t, "duplicate file name", results[4].Reason)

	for i, r := range results {
		assert.Equal(t, sources[i].Name, r.FileName)
	}

	res, ok := b.Result("north.xlsx")
	require.True(t, ok)
	assert.True(t, res.Eligible())
}

func TestBatch_Merge(t *testing.T) {
	b := newTestBatch(t)
	b.Validate([]SourceFile{
		{Name: "b.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount"), plain("B-1", 10), plain("B-2", 20))},
		{Name: "a.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount"), plain("A-1", 5))},
	})

	res, err := b.Merge([]string{"a.xlsx", "b.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Outcome.TotalRowsAdded)
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, res.Files)

	wb, err := Decode(res.Content)
	require.NoError(t, err)
	ws, _ := wb.Sheet("Sheet1")
	assert.Equal(t, [][]any{
		{"Code", "Amount"},
		{"A-1", 5.0},
		{"B-1", 10.0},
		{"B-2", 20.0},
	}, rowValues(t, ws))
}

func TestBatch_Merge_IsRepeatable(t *testing.T) {
	b := newTestBatch(t)
	b.Validate([]SourceFile{
		{Name: "a.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount"), plain("A-1", 5))},
	})

	first, err := b.Merge([]string{"a.xlsx"})
	require.NoError(t, err)
	second, err := b.Merge([]string{"a.xlsx"})
	require.NoError(t, err)

	assert.Equal(t, first.Outcome, second.Outcome)
	wb, err := Decode(second.Content)
	require.NoError(t, err)
	ws, _ := wb.Sheet("Sheet1")
	assert.Equal(t, 2, ws.RowCount())
}

func TestBatch_Merge_RejectsIneligibleSelection(t *testing.T) {
	b := newTestBatch(t)
	b.Validate([]SourceFile{
		{Name: "ok.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount"), plain("X", 1))},
		{Name: "extra.xlsx", Content: buildXLSX(t, "Sheet1", plain("Code", "Amount", "Extra"), plain("Y", 2, 3))},
	})

	_, err := b.Merge([]string{"ok.xlsx", "extra.xlsx"})
	require.ErrorIs(t, err, ErrNotEligible)
	assert.Contains(t, err.Error(), "header count mismatch")

	_, err = b.Merge([]string{"unknown.xlsx"})
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = b.Merge([]string{"ok.xlsx", "ok.xlsx"})
	assert.Error(t, err)
}

func TestBatch_Merge_PreservesHiddenRowsThroughBytes(t *testing.T) {
	for _, preserve := range []bool{true, false} {
		t.Run(fmt.Sprintf("preserve=%v", preserve), func(t *testing.T) {
			b := newTestBatch(t, WithPreserveHiddenRows(preserve))
			b.Validate([]SourceFile{{
				Name: "h.xlsx",
				Content: buildXLSX(t, "Sheet1",
					plain("Code", "Amount"),
					fixtureRow{values: []any{"H-1", 1}, hidden: true, height: 33},
					plain("H-2", 2),
				),
			}})

			res, err := b.Merge([]string{"h.xlsx"})
			require.NoError(t, err)

			wb, err := Decode(res.Content)
			require.NoError(t, err)
			ws, _ := wb.Sheet("Sheet1")
			row, _ := ws.Row(2)
			assert.Equal(t, preserve, row.Hidden)
			assert.Equal(t, 33.0, row.Height)

			if preserve {
				assert.Equal(t, 1, res.Outcome.HiddenRowsAdded)
			} else {
				assert.Zero(t, res.Outcome.HiddenRowsAdded)
			}
		})
	}
}

func TestBatch_Merge_EmptySelectionClearsSummary(t *testing.T) {
	b := newTestBatch(t)

	res, err := b.Merge(nil)
	require.NoError(t, err)

	wb, err := Decode(res.Content)
	require.NoError(t, err)
	ws, _ := wb.Sheet("Sheet1")
	assert.Equal(t, [][]any{{"Code", "Amount"}}, rowValues(t, ws))
}
