package xlmerge

import (
	"fmt"
	"strings"
)

// DescribeResults returns a human-readable table of validation results:
// one line per file with sheet check, header check and status.
func DescribeResults(sheet string, results []ValidationResult) string {
	nameWidth := len("File")
	for _, r := range results {
		nameWidth = max(nameWidth, len(r.FileName))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %-10s  %-7s  %s\n", nameWidth, "File", "Has "+sheet, "Headers", "Status")
	invalid := 0
	for _, r := range results {
		status := "ready"
		if !r.Eligible() {
			status = r.Reason
			invalid++
		}
		fmt.Fprintf(&b, "%-*s  %-10s  %-7s  %s\n", nameWidth, r.FileName, mark(r.HasNominatedSheet), mark(r.HeadersMatch), status)
	}

	fmt.Fprintf(&b, "%d file(s), %d ready", len(results), len(results)-invalid)
	if invalid > 0 {
		fmt.Fprintf(&b, ", %d with validation issues", invalid)
	}
	b.WriteByte('\n')
	return b.String()
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

// String summarizes the outcome, e.g. "added 12 data rows from 3 file(s) (including 2 hidden rows)".
func (o MergeOutcome) String() string {
	s := fmt.Sprintf("added %d data rows from %d file(s)", o.TotalRowsAdded, o.SourcesMerged)
	if o.SourcesSkipped > 0 {
		s += fmt.Sprintf(", skipped %d", o.SourcesSkipped)
	}
	if o.HiddenRowsAdded > 0 {
		s += fmt.Sprintf(" (including %d hidden rows)", o.HiddenRowsAdded)
	}
	return s
}
