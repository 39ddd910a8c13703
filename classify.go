package xlmerge

import (
	"fmt"
)

// SourceFile is a candidate spreadsheet. The engine only borrows it for the
// duration of a call and never mutates or retains it.
type SourceFile struct {
	Name    string
	Content []byte
}

// ValidationResult is the verdict for one source file.
type ValidationResult struct {
	FileName          string
	HasNominatedSheet bool
	HeadersMatch      bool
	Reason            string // empty when the file passed
}

// Eligible reports whether the file may be merged.
func (r ValidationResult) Eligible() bool {
	return r.HasNominatedSheet && r.HeadersMatch
}

// String formats the result as "[OK] name" or "[INVALID] name: reason".
func (r ValidationResult) String() string {
	if r.Eligible() {
		return fmt.Sprintf("[OK] %s", r.FileName)
	}
	return fmt.Sprintf("[INVALID] %s: %s", r.FileName, r.Reason)
}

// Validate checks that wb has the nominated sheet and that its header row
// equals expected. The first failing check decides the reason.
func Validate(wb *Workbook, expected HeaderSequence, sheet string) ValidationResult {
	res := ValidationResult{FileName: wb.Name}

	ws, ok := wb.Sheet(sheet)
	if !ok {
		res.Reason = (&MissingSheetError{Sheet: sheet}).Error()
		return res
	}
	res.HasNominatedSheet = true

	headers, err := ExtractHeaders(ws)
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	if len(headers) != len(expected) {
		res.Reason = fmt.Sprintf("header count mismatch (expected %d, got %d)", len(expected), len(headers))
		return res
	}

	if !HeadersEqual(headers, expected) {
		i := firstMismatch(expected, headers)
		res.Reason = fmt.Sprintf("headers do not match summary (column %d: expected %q, got %q)",
			i+1, expected[i], headers[i])
		return res
	}

	res.HeadersMatch = true
	return res
}

// ValidateFile decodes src and validates it. A file that cannot be decoded is
// reported as ineligible rather than returned as an error.
func ValidateFile(src SourceFile, expected HeaderSequence, sheet string) ValidationResult {
	wb, err := Decode(src.Content)
	if err != nil {
		return ValidationResult{
			FileName: src.Name,
			Reason:   (&ValidationError{FileName: src.Name, Err: err}).Error(),
		}
	}
	wb.Name = src.Name
	return Validate(wb, expected, sheet)
}
