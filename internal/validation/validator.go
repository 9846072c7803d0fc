// =============================================================================
// Graduate Roster - Feed Validation
// =============================================================================
//
// This module checks a tokenized feed for problems the pipeline tolerates
// silently, so editors of the published sheet can fix them at the source:
//   - Missing required columns (fatal; the pipeline rejects the feed)
//   - Rows without a name (dropped by the pipeline)
//   - Certification dates that cannot be read (left out of grouped views)
//   - Dates that only parse by rolling over (2/30/2024 becomes March 1)
//   - Two-digit years (read as 19YY)
//   - Dates in the future
//   - Rows without an image
//   - Repeated name and date pairs
//
// ERROR HANDLING:
//   - Findings are collected, never returned as Go errors
//   - Each finding carries the table row number, column and offending value
//   - Missing columns are errors; everything else is a warning
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/graduate-roster/internal/roster"
	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity grades a finding.
type Severity string

const (
	// SeverityError means the feed cannot be used at all.
	SeverityError Severity = "error"

	// SeverityWarning means the feed works but a row loses data.
	SeverityWarning Severity = "warning"
)

// Rule names, stable for filtering and tests.
const (
	RuleSchema       = "schema"
	RuleRequired     = "required"
	RuleDate         = "date"
	RuleDateRollover = "date-rollover"
	RuleDateCentury  = "date-century"
	RuleDateFuture   = "date-future"
	RuleImage        = "image"
	RuleDuplicate    = "duplicate"
)

// ValidationError represents a single finding.
type ValidationError struct {
	Severity Severity

	// Field is the feed column the finding is about.
	Field string

	// Value is the offending cell value.
	Value string

	// Rule is the rule that was violated.
	Rule string

	// Message is a human-readable description.
	Message string

	// RowNumber is the 1-based position of the row in the tokenized table;
	// the header is row 1. Blank rows are already dropped and a quoted field
	// may span lines, so this is not always the line in the raw feed. Zero
	// for header findings.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("[%s] Header: %s", strings.ToUpper(string(e.Severity)), e.Message)
	}
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(string(e.Severity)),
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors (and, with
	// TreatWarningsAsErrors, no warnings).
	IsValid bool

	// Errors contains all findings, warnings included, in feed order.
	Errors []*ValidationError

	// ErrorCount is the number of errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// RowsValidated is the number of data rows checked.
	RowsValidated int
}

// ByRule returns the findings of one rule.
func (r *ValidationResult) ByRule(rule string) []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if e.Rule == rule {
			out = append(out, e)
		}
	}
	return out
}

func (r *ValidationResult) add(e *ValidationError, warningsAreErrors bool) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
		return
	}
	r.WarningCount++
	if warningsAreErrors {
		r.IsValid = false
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// TreatWarningsAsErrors makes any warning invalidate the feed.
	// Default: false
	TreatWarningsAsErrors bool

	// RequireImage reports rows without an image.
	// Default: true
	RequireImage bool

	// Now is the reference time for future dates. Default: time.Now
	Now func() time.Time

	// Location is where dates are constructed. Default: time.Local
	Location *time.Location
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		RequireImage: true,
		Now:          time.Now,
		Location:     time.Local,
	}
}

// Validator checks tokenized feeds.
type Validator struct {
	columns roster.Columns
	options ValidationOptions
}

// NewValidator creates a Validator with default options.
func NewValidator(cols roster.Columns) *Validator {
	return NewValidatorWithOptions(cols, DefaultValidationOptions())
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(cols roster.Columns, options ValidationOptions) *Validator {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	return &Validator{columns: cols, options: options}
}

// Validate checks table against the default columns.
func Validate(table types.Table) *ValidationResult {
	return NewValidator(roster.DefaultColumns()).ValidateTable(table)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// ValidateTable checks the header and every data row of table.
func (v *Validator) ValidateTable(table types.Table) *ValidationResult {
	result := &ValidationResult{IsValid: true, Errors: make([]*ValidationError, 0)}

	// A feed with no data rows is valid: the roster is simply empty.
	if len(table) < 2 {
		return result
	}

	idx, err := roster.MapColumns(table.Header(), v.columns)
	if err != nil {
		var schemaErr *roster.SchemaError
		if errors.As(err, &schemaErr) {
			for _, name := range schemaErr.Missing {
				result.add(&ValidationError{
					Severity: SeverityError,
					Field:    name,
					Rule:     RuleSchema,
					Message:  fmt.Sprintf("Required column '%s' is missing", name),
				}, v.options.TreatWarningsAsErrors)
			}
		}
		return result
	}

	seen := make(map[string]int)
	for i, row := range table[1:] {
		rowNumber := i + 2
		result.RowsValidated++
		for _, finding := range v.validateRow(row, idx, rowNumber, seen) {
			result.add(finding, v.options.TreatWarningsAsErrors)
		}
	}

	return result
}

// validateRow checks one data row. seen maps name+date to the first row it
// appeared on.
func (v *Validator) validateRow(row []string, idx roster.ColumnIndex, rowNumber int, seen map[string]int) []*ValidationError {
	var findings []*ValidationError
	warn := func(field, value, rule, message string) {
		findings = append(findings, &ValidationError{
			Severity:  SeverityWarning,
			Field:     field,
			Value:     value,
			Rule:      rule,
			Message:   message,
			RowNumber: rowNumber,
		})
	}

	name := strings.TrimSpace(roster.Cell(row, idx.FullName))
	if name == "" {
		warn(v.columns.FullName, "", RuleRequired, "Name is empty; the row is dropped")
		return findings
	}

	rawDate := roster.Cell(row, idx.CertificationDate)
	date := roster.ParseDateIn(rawDate, v.options.Location)
	if date == nil {
		warn(v.columns.CertificationDate, rawDate, RuleDate,
			"Not a month/day/year date; the record is left out of grouped views")
	} else {
		findings = append(findings, v.validateDate(rawDate, *date, rowNumber)...)
	}

	if v.options.RequireImage && strings.TrimSpace(roster.Cell(row, idx.Image)) == "" {
		warn(v.columns.Image, "", RuleImage, "Image is empty")
	}

	key := name + "\x00" + strings.TrimSpace(rawDate)
	if first, dup := seen[key]; dup {
		warn(v.columns.FullName, name, RuleDuplicate,
			fmt.Sprintf("Same name and date as row %d", first))
	} else {
		seen[key] = rowNumber
	}

	return findings
}

// validateDate checks a date that parsed.
func (v *Validator) validateDate(raw string, date time.Time, rowNumber int) []*ValidationError {
	var findings []*ValidationError
	warn := func(rule, message string) {
		findings = append(findings, &ValidationError{
			Severity:  SeverityWarning,
			Field:     v.columns.CertificationDate,
			Value:     raw,
			Rule:      rule,
			Message:   message,
			RowNumber: rowNumber,
		})
	}

	parts := strings.Split(raw, "/")
	month, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	day, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, _ := strconv.Atoi(strings.TrimSpace(parts[2]))

	if int(date.Month()) != month || date.Day() != day {
		warn(RuleDateRollover, fmt.Sprintf("Date does not exist and is read as %s", date.Format("2006-01-02")))
	}
	if year > 0 && year < 100 {
		warn(RuleDateCentury, fmt.Sprintf("Two-digit year is read as %d", date.Year()))
	}
	if date.After(v.options.Now()) {
		warn(RuleDateFuture, "Date is in the future")
	}

	return findings
}

