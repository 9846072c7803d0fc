// =============================================================================
// Graduate Roster - Column Mapper & Record Normalizer
// =============================================================================
//
// This module turns a tokenized feed into normalized Graduate records.
//
// PROCESS:
//   1. Locate the required columns in the header row (case-insensitive,
//      whitespace-trimmed, any order). Extra columns are ignored.
//   2. For each data row, read the mapped cells (missing cells read as "").
//   3. Drop rows whose name is blank.
//   4. Derive the transliterated name and the parsed certification date.
//
// =============================================================================

package roster

import (
	"strings"
	"time"

	"github.com/ginjaninja78/graduate-roster/internal/transliterate"
	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// =============================================================================
// COLUMN CONFIGURATION
// =============================================================================

// Columns names the header of each required feed column.
type Columns struct {
	FullName          string
	Image             string
	CertificationDate string
}

// DefaultColumns returns the column names used by the graduates feed.
func DefaultColumns() Columns {
	return Columns{
		FullName:          "Full Name",
		Image:             "Img",
		CertificationDate: "Certification Date",
	}
}

func (c Columns) names() []string {
	return []string{c.FullName, c.Image, c.CertificationDate}
}

// ColumnIndex holds the resolved position of each required column.
type ColumnIndex struct {
	FullName          int
	Image             int
	CertificationDate int
}

// normalizeHeader is the comparison form of a header cell.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// MapColumns resolves the required columns against a header row.
//
// RETURNS:
//   - The index of each required column. When a header appears twice the
//     first occurrence wins.
//   - A *SchemaError naming every missing column.
func MapColumns(header []string, cols Columns) (ColumnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := positions[normalizeHeader(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := ColumnIndex{
		FullName:          lookup(cols.FullName),
		Image:             lookup(cols.Image),
		CertificationDate: lookup(cols.CertificationDate),
	}

	if len(missing) > 0 {
		return ColumnIndex{}, &SchemaError{
			Header:   append([]string(nil), header...),
			Missing:  missing,
			Expected: cols.names(),
		}
	}
	return idx, nil
}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer builds Graduate records from a tokenized feed.
type Normalizer struct {
	columns  Columns
	location *time.Location
}

// NewNormalizer creates a Normalizer. Dates are constructed in loc; a nil
// loc means time.Local.
func NewNormalizer(cols Columns, loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{columns: cols, location: loc}
}

// Normalize uses the default columns and the local time zone.
func Normalize(table types.Table) ([]types.Graduate, error) {
	return NewNormalizer(DefaultColumns(), nil).Normalize(table)
}

// Normalize maps and normalizes every data row of table.
//
// RETURNS:
//   - The records in feed order. A table with fewer than two rows yields an
//     empty result and no error.
//   - A *SchemaError if a required column is missing. No records are
//     returned in that case.
func (n *Normalizer) Normalize(table types.Table) ([]types.Graduate, error) {
	if len(table) < 2 {
		return []types.Graduate{}, nil
	}

	idx, err := MapColumns(table.Header(), n.columns)
	if err != nil {
		return nil, err
	}

	graduates := make([]types.Graduate, 0, len(table)-1)
	for _, row := range table[1:] {
		name := strings.TrimSpace(Cell(row, idx.FullName))
		if name == "" {
			continue
		}

		img := Cell(row, idx.Image)
		rawDate := Cell(row, idx.CertificationDate)
		graduates = append(graduates, types.Graduate{
			FullNameSource:         name,
			FullNameTransliterated: transliterate.GeorgianToLatin(name),
			ImageReference:         img,
			ImageRaw:               img,
			CertificationDateRaw:   rawDate,
			CertificationDate:      ParseDateIn(rawDate, n.location),
		})
	}

	return graduates, nil
}

// Cell returns row[i], or "" when i is out of range. A short row reads as
// empty trailing fields.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
