// =============================================================================
// Graduate Roster - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - roster
//   - pipeline
//   - export
//   - server
//
// =============================================================================

package types

import "time"

// =============================================================================
// RAW TABLE
// =============================================================================

// Table is the tokenized form of the feed: an ordered list of rows, each an
// ordered list of trimmed fields. The first row is the header row.
type Table [][]string

// Header returns the first row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// =============================================================================
// GRADUATE RECORD
// =============================================================================

// Graduate is a normalized roster record.
type Graduate struct {
	// FullNameSource is the name as written in the feed (Georgian script).
	// Never empty: rows without a name are dropped during normalization.
	FullNameSource string `json:"fullNameKa" xml:"fullNameKa" csv:"full_name_ka"`

	// FullNameTransliterated is derived from FullNameSource and never
	// authored independently.
	FullNameTransliterated string `json:"fullNameLatin" xml:"fullNameLatin" csv:"full_name_latin"`

	// ImageReference names the image resource. After the presentation step
	// this holds a directly embeddable URL.
	ImageReference string `json:"img" xml:"img" csv:"img"`

	// ImageRaw keeps the feed value of the image column untouched.
	ImageRaw string `json:"-" xml:"-" csv:"-"`

	// CertificationDateRaw is the date text exactly as it appeared in the feed.
	CertificationDateRaw string `json:"certificationDateRaw" xml:"certificationDateRaw" csv:"certification_date_raw"`

	// CertificationDate is nil when the raw date could not be parsed.
	// Such records are excluded from grouped views.
	CertificationDate *time.Time `json:"certificationDate,omitempty" xml:"certificationDate,omitempty" csv:"-"`
}

// HasDate reports whether the record can take part in date grouping.
func (g Graduate) HasDate() bool {
	return g.CertificationDate != nil
}

// DisplayName picks the name to show for a locale: the source script for
// Georgian, the Latin transliteration for everything else.
func (g Graduate) DisplayName(locale string) string {
	if locale == "ka" {
		return g.FullNameSource
	}
	return g.FullNameTransliterated
}

// =============================================================================
// GROUPS
// =============================================================================

// Group is a bucket of graduates certified in the same calendar month.
type Group struct {
	// Key is the machine-sortable YEAR-MONTH key, e.g. "2024-02".
	Key string `json:"key" xml:"key,attr"`

	// Title is the human-readable month label in the active locale.
	Title string `json:"title" xml:"title,attr"`

	// Items are ordered newest certification date first.
	Items []Graduate `json:"items" xml:"graduate"`
}
