package xlmerge

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates a workbook without any worksheet, which cannot be encoded.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrRowOutOfRange indicates a row index outside the worksheet.
var ErrRowOutOfRange = errors.New("row index out of range")

// ErrNotEligible indicates a selected file that did not pass validation.
var ErrNotEligible = errors.New("file is not eligible for merge")

// CorruptWorkbookError reports bytes that are not a well-formed spreadsheet container.
type CorruptWorkbookError struct {
	Err error
}

func (e *CorruptWorkbookError) Error() string {
	return fmt.Sprintf("corrupt workbook: %v", e.Err)
}

func (e *CorruptWorkbookError) Unwrap() error {
	return e.Err
}

// MissingSheetError reports a nominated sheet that is absent from a workbook.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("missing sheet %q", e.Sheet)
}

// EmptyHeaderError reports a header row with no populated cells.
type EmptyHeaderError struct {
	Sheet string
}

func (e *EmptyHeaderError) Error() string {
	return fmt.Sprintf("header row of sheet %q is empty", e.Sheet)
}

// ValidationError wraps a per-file inspection failure. It never aborts a batch;
// the file is reported as ineligible with the error text as the reason.
type ValidationError struct {
	FileName string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %v", e.FileName, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
