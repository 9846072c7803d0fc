// =============================================================================
// Graduate Roster - XLSX Feed Reader
// =============================================================================
//
// This module reads a workbook downloaded from the spreadsheet that publishes
// the graduates feed, so the roster can be built or checked offline.
//
// SHEET STRUCTURE (Expected):
//
//   | Column A | Column B         | Column C           | ... |
//   |----------|------------------|--------------------|-----|
//   | Img      | Full Name        | Certification Date | ... |   <- header
//   | https:// | ანა ბერიძე       | 1/15/2024          | ... |
//
//   Column order does not matter; columns are found by header name later,
//   exactly as for the CSV feed.
//
// DATES:
//   Cells are read as displayed. A certification date stored as a date
//   cell must be formatted m/d/yyyy (or stored as text) to be read the
//   same way as in the CSV feed.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// =============================================================================
// READ OPTIONS
// =============================================================================

// ReadOptions controls how a workbook is read.
type ReadOptions struct {
	// Sheet is the worksheet to read.
	// Default: the first sheet
	Sheet string
}

// DefaultReadOptions returns the default options.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{}
}

// =============================================================================
// READ FUNCTIONS
// =============================================================================

// ReadTable reads the first sheet of the workbook at path.
func ReadTable(path string) (types.Table, error) {
	return ReadTableWithOptions(path, DefaultReadOptions())
}

// ReadTableWithOptions reads a sheet of the workbook at path.
//
// RETURNS:
//   - The sheet as a table: the header row first, every cell trimmed,
//     blank rows removed. Short rows are not padded.
//   - An error if the file cannot be opened or the sheet does not exist.
func ReadTableWithOptions(path string, options ReadOptions) (types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, options)
}

// ReadTableFrom reads a workbook from r.
func ReadTableFrom(r io.Reader, options ReadOptions) (types.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, options)
}

func readSheet(f *excelize.File, options ReadOptions) (types.Table, error) {
	sheetName := options.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("workbook has no sheet %q", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table := make(types.Table, 0, len(rows))
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
		}
		table = append(table, cells)
	}

	return table, nil
}

// isRowEmpty checks if a row has only blank cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
