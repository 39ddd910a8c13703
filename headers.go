package xlmerge

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HeaderSequence is the ordered list of trimmed header names found in row 1.
type HeaderSequence []string

// String formats the sequence as ["A", "B"].
func (h HeaderSequence) String() string {
	quoted := make([]string, len(h))
	for i, s := range h {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ExtractHeaders reads row 1 of ws left to right. Absent cells are skipped,
// not treated as empty names, so a sparse header row compacts.
func ExtractHeaders(ws *Worksheet) (HeaderSequence, error) {
	var headers HeaderSequence
	if row, ok := ws.Row(1); ok {
		for _, v := range row.Values {
			if v == nil {
				continue
			}
			headers = append(headers, strings.TrimSpace(cellString(v)))
		}
	}
	if len(headers) == 0 {
		return nil, &EmptyHeaderError{Sheet: ws.Name}
	}
	return headers, nil
}

// HeadersEqual reports whether a and b have the same names in the same positions.
func HeadersEqual(a, b HeaderSequence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// firstMismatch returns the 0-based index of the first differing header, or -1.
func firstMismatch(a, b HeaderSequence) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// cellString renders a cell value the way it reads in the sheet.
func cellString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
