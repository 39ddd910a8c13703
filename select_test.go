package xlmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectFixture() []ValidationResult {
	return []ValidationResult{
		{FileName: "North.xlsx", HasNominatedSheet: true, HeadersMatch: true},
		{FileName: "north-draft.xlsx", HasNominatedSheet: true, HeadersMatch: true},
		{FileName: "South.xlsx", HasNominatedSheet: true, HeadersMatch: true},
		{FileName: "Northwest.xlsx", HasNominatedSheet: true, Reason: "header count mismatch (expected 2, got 3)"},
	}
}

func TestSelect_EmptyExpressionSelectsEligible(t *testing.T) {
	names, err := Select(selectFixture(), "  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"North.xlsx", "north-draft.xlsx", "South.xlsx"}, names)
}

func TestSelect_Expression(t *testing.T) {
	names, err := Select(selectFixture(), `name startsWith "North"`)
	require.NoError(t, err)
	// Northwest.xlsx matches the expression but is not eligible.
	assert.Equal(t, []string{"North.xlsx"}, names)

	names, err = Select(selectFixture(), `not (name contains "draft")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"North.xlsx", "South.xlsx"}, names)

	names, err = Select(selectFixture(), `!eligible`)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSelect_InvalidExpression(t *testing.T) {
	_, err := Select(selectFixture(), `name startsWith`)
	assert.Error(t, err)

	_, err = Select(selectFixture(), `name`)
	assert.Error(t, err, "non-bool expression must be rejected")
}

func TestSortByName(t *testing.T) {
	results := []ValidationResult{
		{FileName: "b.xlsx"},
		{FileName: "C.xlsx"},
		{FileName: "a.xlsx"},
	}
	SortByName(results)

	var names []string
	for _, r := range results {
		names = append(names, r.FileName)
	}
	assert.Equal(t, []string{"a.xlsx", "b.xlsx", "C.xlsx"}, names)
}

func TestSortNames(t *testing.T) {
	names := []string{"Zeta.xlsx", "alpha.xlsx", "Beta.xlsx"}
	SortNames(names)
	assert.Equal(t, []string{"alpha.xlsx", "Beta.xlsx", "Zeta.xlsx"}, names)
}
