package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/graduate-roster/internal/csvparser"
	"github.com/ginjaninja78/graduate-roster/internal/roster"
)

func fixedOptions() ValidationOptions {
	opts := DefaultValidationOptions()
	opts.Now = func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }
	opts.Location = time.UTC
	return opts
}

func TestValidateTable_Clean(t *testing.T) {
	table := csvparser.Tokenize("Img,Full Name,Certification Date\n" +
		"a.png,ანა ბერიძე,1/15/2024\n" +
		"b.png,ლუკა,2/20/2024\n")

	result := NewValidatorWithOptions(roster.DefaultColumns(), fixedOptions()).ValidateTable(table)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.RowsValidated)
}

func TestValidateTable_MissingColumns(t *testing.T) {
	table := csvparser.Tokenize("Name,Date\nana,1/1/2024\n")

	result := Validate(table)
	assert.False(t, result.IsValid)
	assert.Equal(t, 3, result.ErrorCount)
	assert.Equal(t, 0, result.RowsValidated)
	require.Len(t, result.ByRule(RuleSchema), 3)
	assert.Equal(t, "[ERROR] Header: Required column 'Full Name' is missing", result.Errors[0].Error())
}

func TestValidateTable_RowNumbersCountTableRows(t *testing.T) {
	table := csvparser.Tokenize("Img,Full Name,Certification Date\n" +
		"a.png,\"ანა\nბერიძე\",someday\n" + // lines 2-3, row 2
		"\n" + // blank, dropped
		"b.png,,1/1/2024\n") // line 5, row 3

	result := NewValidatorWithOptions(roster.DefaultColumns(), fixedOptions()).ValidateTable(table)
	require.Equal(t, 2, result.RowsValidated)

	require.Len(t, result.ByRule(RuleDate), 1)
	assert.Equal(t, 2, result.ByRule(RuleDate)[0].RowNumber)
	require.Len(t, result.ByRule(RuleRequired), 1)
	assert.Equal(t, 3, result.ByRule(RuleRequired)[0].RowNumber)
}

func TestValidateTable_Warnings(t *testing.T) {
	table := csvparser.Tokenize("Img,Full Name,Certification Date\n" +
		"a.png,,1/15/2024\n" + // row 2: blank name
		"b.png,ნინო,someday\n" + // row 3: unreadable date
		"c.png,ლუკა,2/30/2024\n" + // row 4: rolls over
		"d.png,გიორგი,3/4/99\n" + // row 5: two-digit year
		"e.png,მარი,1/1/2030\n" + // row 6: future
		",ანა,1/15/2024\n" + // row 7: no image
		"f.png,ანა,1/15/2024\n") // row 8: duplicate of row 7

	result := NewValidatorWithOptions(roster.DefaultColumns(), fixedOptions()).ValidateTable(table)

	assert.True(t, result.IsValid, "warnings alone keep the feed valid")
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 7, result.WarningCount)
	assert.Equal(t, 7, result.RowsValidated)

	lines := func(rule string) []int {
		var out []int
		for _, e := range result.ByRule(rule) {
			out = append(out, e.RowNumber)
		}
		return out
	}
	assert.Equal(t, []int{2}, lines(RuleRequired))
	assert.Equal(t, []int{3}, lines(RuleDate))
	assert.Equal(t, []int{4}, lines(RuleDateRollover))
	assert.Equal(t, []int{5}, lines(RuleDateCentury))
	assert.Equal(t, []int{6}, lines(RuleDateFuture))
	assert.Equal(t, []int{7}, lines(RuleImage))
	assert.Equal(t, []int{8}, lines(RuleDuplicate))

	rollover := result.ByRule(RuleDateRollover)[0]
	assert.Equal(t, "[WARNING] Row 4, Field 'Certification Date': Date does not exist and is read as 2024-03-01 (value: '2/30/2024')",
		rollover.Error())
	assert.Equal(t, "Same name and date as row 7", result.ByRule(RuleDuplicate)[0].Message)
}

func TestValidateTable_WarningsAsErrors(t *testing.T) {
	opts := fixedOptions()
	opts.TreatWarningsAsErrors = true
	opts.RequireImage = false

	table := csvparser.Tokenize("Img,Full Name,Certification Date\n,ანა,1/15/2024\n,ნინო,x\n")
	result := NewValidatorWithOptions(roster.DefaultColumns(), opts).ValidateTable(table)

	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.WarningCount, "missing images are not reported")
	assert.Empty(t, result.ByRule(RuleImage))
}

func TestValidateTable_HeaderOnly(t *testing.T) {
	result := Validate(csvparser.Tokenize("Img,Full Name,Certification Date\n"))
	assert.True(t, result.IsValid)
	assert.Zero(t, result.RowsValidated)
}
