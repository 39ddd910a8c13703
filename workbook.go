// Package xlmerge validates spreadsheets against a summary header row and
// merges their data rows into the summary.
package xlmerge

import "fmt"

// Workbook is the in-memory model of a decoded spreadsheet. It is owned by
// whoever decoded it and must not be shared across concurrent operations.
type Workbook struct {
	// Name identifies the workbook in results and listener callbacks (usually the file name).
	Name string

	order  []string
	sheets map[string]*Worksheet
}

// Worksheet holds the rows of a single sheet. Rows are 1-indexed.
type Worksheet struct {
	Name         string
	ColumnWidths map[int]float64 // 0-based column → width
	rows         []*Row
}

// Row holds the cell values of one row.
// A nil value is an absent cell; present values are string, float64, bool or time.Time.
type Row struct {
	Values []any
	Height float64 // 0 means no explicit height
	Hidden bool
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(name string) *Workbook {
	return &Workbook{
		Name:   name,
		sheets: make(map[string]*Worksheet),
	}
}

// AddSheet appends a new, empty sheet. Adding an existing name returns that sheet.
func (wb *Workbook) AddSheet(name string) *Worksheet {
	if ws, ok := wb.sheets[name]; ok {
		return ws
	}
	ws := &Worksheet{
		Name:         name,
		ColumnWidths: make(map[int]float64),
	}
	wb.sheets[name] = ws
	wb.order = append(wb.order, name)
	return ws
}

// Sheet looks up a sheet by exact, case-sensitive name.
func (wb *Workbook) Sheet(name string) (*Worksheet, bool) {
	ws, ok := wb.sheets[name]
	return ws, ok
}

// SheetNames returns sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.order))
	copy(names, wb.order)
	return names
}

// RowCount returns the number of rows, including the header row.
func (ws *Worksheet) RowCount() int {
	return len(ws.rows)
}

// Row returns the row at the 1-based index.
func (ws *Worksheet) Row(index int) (*Row, bool) {
	if index < 1 || index > len(ws.rows) {
		return nil, false
	}
	return ws.rows[index-1], true
}

// Rows returns the rows in order. The slice is a copy; the rows are not.
func (ws *Worksheet) Rows() []*Row {
	rows := make([]*Row, len(ws.rows))
	copy(rows, ws.rows)
	return rows
}

// AppendRow adds a row after the last one. The values slice is copied.
func (ws *Worksheet) AppendRow(values []any) *Row {
	row := &Row{Values: cloneValues(values)}
	ws.rows = append(ws.rows, row)
	return row
}

// InsertRow inserts a row at the 1-based index, shifting that row and all
// following rows down by one. index may be RowCount()+1 to append.
func (ws *Worksheet) InsertRow(index int, values []any) (*Row, error) {
	if index < 1 || index > len(ws.rows)+1 {
		return nil, fmt.Errorf("insert row %d in sheet %q: %w", index, ws.Name, ErrRowOutOfRange)
	}
	row := &Row{Values: cloneValues(values)}
	ws.rows = append(ws.rows, nil)
	copy(ws.rows[index:], ws.rows[index-1:])
	ws.rows[index-1] = row
	return row, nil
}

// DeleteRow removes the row at the 1-based index. Following rows move up by one.
func (ws *Worksheet) DeleteRow(index int) error {
	if index < 1 || index > len(ws.rows) {
		return fmt.Errorf("delete row %d in sheet %q: %w", index, ws.Name, ErrRowOutOfRange)
	}
	copy(ws.rows[index-1:], ws.rows[index:])
	ws.rows[len(ws.rows)-1] = nil
	ws.rows = ws.rows[:len(ws.rows)-1]
	return nil
}

// SetRowHeight sets an explicit height on the row at the 1-based index.
func (ws *Worksheet) SetRowHeight(index int, height float64) error {
	row, ok := ws.Row(index)
	if !ok {
		return fmt.Errorf("set height of row %d in sheet %q: %w", index, ws.Name, ErrRowOutOfRange)
	}
	if height < 0 {
		return fmt.Errorf("set height of row %d in sheet %q: negative height %v", index, ws.Name, height)
	}
	row.Height = height
	return nil
}

// SetRowHidden hides or shows the row at the 1-based index.
func (ws *Worksheet) SetRowHidden(index int, hidden bool) error {
	row, ok := ws.Row(index)
	if !ok {
		return fmt.Errorf("set visibility of row %d in sheet %q: %w", index, ws.Name, ErrRowOutOfRange)
	}
	row.Hidden = hidden
	return nil
}

// IsEmpty reports whether the row has no populated cell.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Values {
		if v != nil {
			return false
		}
	}
	return true
}

func cloneValues(values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	copy(out, values)
	return out
}
