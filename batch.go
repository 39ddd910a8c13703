package xlmerge

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch validates a set of source files against one summary spreadsheet and
// merges a selection of the eligible ones into it.
type Batch struct {
	opts    *Options
	summary []byte
	headers HeaderSequence

	results map[string]ValidationResult
	sources map[string]SourceFile
}

// Result is the outcome of a successful Batch.Merge.
type Result struct {
	// Content is the encoded summary, ready to be persisted.
	Content []byte
	Outcome MergeOutcome
	// Files lists the merged file names in merge order.
	Files []string
}

// NewBatch decodes the summary and reads its header row. Any failure here is
// fatal for the whole batch since there is nothing to validate against.
func NewBatch(summary []byte, opts ...Option) (*Batch, error) {
	o := newOptions(opts)

	wb, err := Decode(summary)
	if err != nil {
		return nil, fmt.Errorf("cannot load summary file: %w", err)
	}
	ws, ok := wb.Sheet(o.sheet)
	if !ok {
		return nil, fmt.Errorf("cannot load summary file: %w", &MissingSheetError{Sheet: o.sheet})
	}
	headers, err := ExtractHeaders(ws)
	if err != nil {
		return nil, fmt.Errorf("cannot load summary file: %w", err)
	}

	return &Batch{
		opts:    o,
		summary: summary,
		headers: headers,
		results: make(map[string]ValidationResult),
		sources: make(map[string]SourceFile),
	}, nil
}

// Headers returns the summary's header row.
func (b *Batch) Headers() HeaderSequence {
	return b.headers
}

// Sheet returns the nominated sheet name.
func (b *Batch) Sheet() string {
	return b.opts.sheet
}

// Validate classifies every source against the summary headers and returns
// the results in input order. Sources are decoded concurrently. Each call
// replaces the results of the previous one.
func (b *Batch) Validate(sources []SourceFile) []ValidationResult {
	results := make([]ValidationResult, len(sources))
	first := make(map[string]int, len(sources))

	var g errgroup.Group
	g.SetLimit(b.opts.concurrency)
	for i, src := range sources {
		if _, dup := first[src.Name]; dup {
			results[i] = ValidationResult{FileName: src.Name, Reason: "duplicate file name"}
			continue
		}
		first[src.Name] = i
		g.Go(func() error {
			results[i] = ValidateFile(src, b.headers, b.opts.sheet)
			return nil
		})
	}
	_ = g.Wait()

	b.results = make(map[string]ValidationResult, len(first))
	b.sources = make(map[string]SourceFile, len(first))
	for name, i := range first {
		b.results[name] = results[i]
		if results[i].Eligible() {
			b.sources[name] = sources[i]
		}
	}
	return results
}

// Result returns the latest validation result for a file name.
func (b *Batch) Result(name string) (ValidationResult, bool) {
	res, ok := b.results[name]
	return res, ok
}

// Merge clears the summary and appends the selected files in the given order.
// Every selected name must have passed the latest Validate call; otherwise
// nothing is merged. The stored summary bytes are decoded afresh, so repeated
// merges start from the same state.
func (b *Batch) Merge(selected []string) (*Result, error) {
	seen := make(map[string]bool, len(selected))
	for _, name := range selected {
		if seen[name] {
			return nil, fmt.Errorf("file %q selected more than once", name)
		}
		seen[name] = true
		res, ok := b.results[name]
		if !ok {
			return nil, fmt.Errorf("%s: not validated: %w", name, ErrNotEligible)
		}
		if !res.Eligible() {
			return nil, fmt.Errorf("%s: %s: %w", name, res.Reason, ErrNotEligible)
		}
	}

	summary, err := Decode(b.summary)
	if err != nil {
		return nil, fmt.Errorf("cannot load summary file: %w", err)
	}

	sources := make([]*Workbook, 0, len(selected))
	for _, name := range selected {
		wb, err := Decode(b.sources[name].Content)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		wb.Name = name
		sources = append(sources, wb)
	}

	outcome, err := (&Merger{opts: b.opts}).Merge(summary, sources)
	if err != nil {
		return nil, err
	}

	content, err := Encode(summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	files := make([]string, len(selected))
	copy(files, selected)
	return &Result{Content: content, Outcome: outcome, Files: files}, nil
}
