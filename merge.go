package xlmerge

// MergeOutcome counts what a merge added to the summary.
type MergeOutcome struct {
	TotalRowsAdded  int
	HiddenRowsAdded int
	SourcesMerged   int
	SourcesSkipped  int
}

// Merger clears a summary sheet and appends source rows below its header.
// It holds no per-merge state; a summary workbook must only be merged by one
// caller at a time.
type Merger struct {
	opts *Options
}

// NewMerger creates a Merger with the given options.
func NewMerger(opts ...Option) *Merger {
	return &Merger{opts: newOptions(opts)}
}

// Clear deletes every row below the header, bottom-up, and returns how many
// rows were removed. Row 1 is never touched.
func Clear(ws *Worksheet) int {
	removed := 0
	for i := ws.RowCount(); i > 1; i-- {
		if err := ws.DeleteRow(i); err != nil {
			break
		}
		removed++
	}
	return removed
}

// Merge empties the summary's nominated sheet and appends the data rows of
// each source in the given order. The summary is modified in place.
// A summary without the nominated sheet is an error; a source without it is skipped.
func (m *Merger) Merge(summary *Workbook, sources []*Workbook) (MergeOutcome, error) {
	ws, ok := summary.Sheet(m.opts.sheet)
	if !ok {
		return MergeOutcome{}, &MissingSheetError{Sheet: m.opts.sheet}
	}

	removed := Clear(ws)
	for _, l := range m.opts.listeners {
		l.Cleared(removed)
	}

	var out MergeOutcome
	for _, src := range sources {
		added, ok := m.Append(ws, src)
		if !ok {
			out.SourcesSkipped++
			continue
		}
		out.TotalRowsAdded += added.TotalRowsAdded
		out.HiddenRowsAdded += added.HiddenRowsAdded
		out.SourcesMerged++
	}
	return out, nil
}

// Append copies the data rows of src's nominated sheet onto the end of
// summary. It does not clear first, so calling it twice doubles the data.
// The boolean is false when src has no nominated sheet.
func (m *Merger) Append(summary *Worksheet, src *Workbook) (MergeOutcome, bool) {
	srcSheet, ok := src.Sheet(m.opts.sheet)
	if !ok {
		reason := (&MissingSheetError{Sheet: m.opts.sheet}).Error()
		for _, l := range m.opts.listeners {
			l.SourceSkipped(src.Name, reason)
		}
		return MergeOutcome{}, false
	}

	out := MergeOutcome{SourcesMerged: 1}
	for i := 2; i <= srcSheet.RowCount(); i++ {
		srcRow, _ := srcSheet.Row(i)
		if srcRow.IsEmpty() {
			continue
		}

		row := summary.AppendRow(srcRow.Values)
		if srcRow.Height > 0 {
			row.Height = srcRow.Height
		}
		if m.opts.preserveHiddenRows && srcRow.Hidden {
			row.Hidden = true
			out.HiddenRowsAdded++
		}
		out.TotalRowsAdded++
	}

	for _, l := range m.opts.listeners {
		l.SourceAppended(src.Name, out.TotalRowsAdded, out.HiddenRowsAdded)
	}
	return out, true
}
