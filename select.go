package xlmerge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// selectEnv is the variable set visible to selection expressions.
type selectEnv struct {
	Name         string `expr:"name"`
	Eligible     bool   `expr:"eligible"`
	HasSheet     bool   `expr:"hasSheet"`
	HeadersMatch bool   `expr:"headersMatch"`
	Reason       string `expr:"reason"`
}

// Select returns the names of eligible files for which expression is true,
// in the order of results. An empty expression selects every eligible file.
// Ineligible files are never selected, whatever the expression says.
//
// Example: `name startsWith "North" && not (name contains "draft")`.
func Select(results []ValidationResult, expression string) ([]string, error) {
	var names []string
	if strings.TrimSpace(expression) == "" {
		for _, r := range results {
			if r.Eligible() {
				names = append(names, r.FileName)
			}
		}
		return names, nil
	}

	program, err := expr.Compile(expression, expr.Env(selectEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile select expression %q: %w", expression, err)
	}

	for _, r := range results {
		if !r.Eligible() {
			continue
		}
		out, err := expr.Run(program, selectEnv{
			Name:         r.FileName,
			Eligible:     true,
			HasSheet:     r.HasNominatedSheet,
			HeadersMatch: r.HeadersMatch,
			Reason:       r.Reason,
		})
		if err != nil {
			return nil, fmt.Errorf("evaluate select expression %q for %s: %w", expression, r.FileName, err)
		}
		if ok, _ := out.(bool); ok {
			names = append(names, r.FileName)
		}
	}
	return names, nil
}

// SortByName orders results alphabetically by file name using locale-aware
// collation. The merge engine imposes no order of its own.
func SortByName(results []ValidationResult) {
	c := collate.New(language.Und)
	slices.SortStableFunc(results, func(a, b ValidationResult) int {
		return c.CompareString(a.FileName, b.FileName)
	})
}

// SortNames orders file names the same way SortByName does.
func SortNames(names []string) {
	c := collate.New(language.Und)
	slices.SortStableFunc(names, c.CompareString)
}
