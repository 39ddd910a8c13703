package xlmerge

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Decode reads an xlsx container into an in-memory Workbook.
func Decode(content []byte) (*Workbook, error) {
	return DecodeReader(bytes.NewReader(content))
}

// DecodeReader reads an xlsx container from r into an in-memory Workbook.
func DecodeReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &CorruptWorkbookError{Err: err}
	}
	defer f.Close()

	wb := NewWorkbook("")
	for _, sheet := range f.GetSheetList() {
		if err := readSheet(f, wb.AddSheet(sheet)); err != nil {
			return nil, &CorruptWorkbookError{Err: err}
		}
	}
	return wb, nil
}

// readSheet copies values, heights, visibility and column widths of one sheet.
func readSheet(f *excelize.File, ws *Worksheet) error {
	rows, err := f.Rows(ws.Name)
	if err != nil {
		return fmt.Errorf("read rows from sheet %q: %w", ws.Name, err)
	}
	defer rows.Close()

	maxCols := 0
	rowNum := 0
	for rows.Next() {
		rowNum++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("read row %d of sheet %q: %w", rowNum, ws.Name, err)
		}
		opts := rows.GetRowOpts()

		values := make([]any, len(cols))
		for colIdx, raw := range cols {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return err
			}
			cellType, err := f.GetCellType(ws.Name, cellName)
			if err != nil {
				return fmt.Errorf("read cell %s!%s: %w", ws.Name, cellName, err)
			}
			values[colIdx] = typedValue(raw, cellType)
		}
		if len(cols) > maxCols {
			maxCols = len(cols)
		}

		row := ws.AppendRow(nil)
		row.Values = values
		row.Height = opts.Height
		row.Hidden = opts.Hidden
	}
	if err := rows.Error(); err != nil {
		return fmt.Errorf("iterate rows of sheet %q: %w", ws.Name, err)
	}

	for col := 0; col < maxCols; col++ {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if w, err := f.GetColWidth(ws.Name, name); err == nil {
			ws.ColumnWidths[col] = w
		}
	}
	return nil
}

// dateLayouts are the ISO 8601 forms found in t="d" cells.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// typedValue converts a raw cell string to the model's value types.
func typedValue(raw string, cellType excelize.CellType) any {
	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	case excelize.CellTypeDate:
		// ISO 8601 text; an unparsable value stays text.
		for _, layout := range dateLayouts {
			if v, err := time.Parse(layout, raw); err == nil {
				return v
			}
		}
		return raw
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// Numbers are usually stored without a type attribute.
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
		return raw
	default:
		return raw
	}
}

// Encode writes the workbook as an xlsx container.
func Encode(wb *Workbook) ([]byte, error) {
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the workbook to w. Only what the model represents survives:
// cell values, row heights, hidden rows, column widths, sheet names and order.
func (wb *Workbook) Write(w io.Writer) error {
	if len(wb.order) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	for i, name := range wb.order {
		if i == 0 {
			if name != defaultSheet {
				if err := f.SetSheetName(defaultSheet, name); err != nil {
					return fmt.Errorf("rename sheet %q: %w", name, err)
				}
			}
			continue
		}
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	for _, name := range wb.order {
		if err := writeSheet(f, wb.sheets[name]); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, ws *Worksheet) error {
	for col, width := range ws.ColumnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ws.Name, name, name, width); err != nil {
			return fmt.Errorf("set width of column %s in sheet %q: %w", name, ws.Name, err)
		}
	}

	for idx, row := range ws.rows {
		rowNum := idx + 1
		for colIdx, v := range row.Values {
			if v == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ws.Name, cellName, v); err != nil {
				return fmt.Errorf("write cell %s!%s: %w", ws.Name, cellName, err)
			}
		}
		if row.Height > 0 {
			if err := f.SetRowHeight(ws.Name, rowNum, row.Height); err != nil {
				return fmt.Errorf("set height of row %d in sheet %q: %w", rowNum, ws.Name, err)
			}
		}
		if row.Hidden {
			if err := f.SetRowVisible(ws.Name, rowNum, false); err != nil {
				return fmt.Errorf("hide row %d in sheet %q: %w", rowNum, ws.Name, err)
			}
		}
	}
	return nil
}
