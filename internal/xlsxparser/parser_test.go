package xlsxparser

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// writeWorkbook saves rows to a new workbook with a sheet named sheet.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "feed.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadTable(t *testing.T) {
	path := writeWorkbook(t, "Form Responses 1", [][]any{
		{"Img", " Full Name ", "Certification Date"},
		{"a.png", "ანა ბერიძე", "1/15/2024"},
		{"", "", ""},
		{"b.png", "  ლუკა  ", "2/20/2024"},
	})

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, types.Table{
		{"Img", "Full Name", "Certification Date"},
		{"a.png", "ანა ბერიძე", "1/15/2024"},
		{"b.png", "ლუკა", "2/20/2024"},
	}, table)
}

func TestReadTableWithOptions_Sheet(t *testing.T) {
	path := writeWorkbook(t, "Graduates", [][]any{{"Img", "Full Name", "Certification Date"}})

	table, err := ReadTableWithOptions(path, ReadOptions{Sheet: "Graduates"})
	require.NoError(t, err)
	assert.Len(t, table, 1)

	_, err = ReadTableWithOptions(path, ReadOptions{Sheet: "Missing"})
	assert.ErrorContains(t, err, `no sheet "Missing"`)
}

func TestReadTableFrom(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	row := []any{"Img", "Full Name"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &row))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	table, err := ReadTableFrom(&buf, DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, types.Table{{"Img", "Full Name"}}, table)
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorContains(t, err, "failed to open workbook")
}
