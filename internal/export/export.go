// =============================================================================
// Graduate Roster - Export Module
// =============================================================================
//
// This module writes a grouped roster to a file format for use outside the
// website: JSON for other services, XML for archival, XLSX for staff who
// work in spreadsheets, and CSV for re-import.
//
// All formats carry the same data: the dated records in display order
// (newest group first, newest record first within a group).
//
// =============================================================================

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatXML, FormatXLSX, FormatCSV}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (want one of json, xml, xlsx, csv)", s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string { return string(f) }

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the exported roster.
type Document struct {
	// Locale is the locale the titles were rendered in.
	Locale string `json:"locale"`

	// Title is the roster heading in that locale.
	Title string `json:"title"`

	// Groups are the month groups, newest first.
	Groups []types.Group `json:"groups"`
}

// Row is one flattened record for tabular formats.
type Row struct {
	GroupKey               string `csv:"group_key"`
	GroupTitle             string `csv:"group_title"`
	FullNameSource         string `csv:"full_name_ka"`
	FullNameTransliterated string `csv:"full_name_latin"`
	Image                  string `csv:"img"`
	CertificationDateRaw   string `csv:"certification_date_raw"`
	CertificationDate      string `csv:"certification_date"`
}

// rowHeader mirrors the csv tags of Row, for formats without struct tags.
var rowHeader = []string{
	"group_key", "group_title", "full_name_ka", "full_name_latin",
	"img", "certification_date_raw", "certification_date",
}

// isoDate is the layout of Row.CertificationDate.
const isoDate = "2006-01-02"

// Rows flattens the document's groups in display order.
func (d Document) Rows() []Row {
	var rows []Row
	for _, g := range d.Groups {
		for _, item := range g.Items {
			row := Row{
				GroupKey:               g.Key,
				GroupTitle:             g.Title,
				FullNameSource:         item.FullNameSource,
				FullNameTransliterated: item.FullNameTransliterated,
				Image:                  item.ImageReference,
				CertificationDateRaw:   item.CertificationDateRaw,
			}
			if item.CertificationDate != nil {
				row.CertificationDate = item.CertificationDate.Format(isoDate)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (r Row) values() []string {
	return []string{
		r.GroupKey, r.GroupTitle, r.FullNameSource, r.FullNameTransliterated,
		r.Image, r.CertificationDateRaw, r.CertificationDate,
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Write encodes doc to w in the given format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatXML:
		data, err := Generate(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatXLSX:
		return writeXLSX(w, doc)
	case FormatCSV:
		return writeCSV(w, doc)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func writeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
