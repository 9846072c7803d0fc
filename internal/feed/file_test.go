package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/graduate-roster/internal/types"
)

func TestFileSource_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.csv")
	require.NoError(t, os.WriteFile(path, []byte("Img,Full Name\r\na.png,\"ანა, ბერიძე\"\r\n"), 0o644))

	src := FileSource{Path: path}
	assert.False(t, src.IsWorkbook())

	text, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "ანა")

	table, err := src.FetchTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Table{{"Img", "Full Name"}, {"a.png", "ანა, ბერიძე"}}, table)
}

func TestFileSource_Workbook(t *testing.T) {
	f := excelize.NewFile()
	header := []any{"Img", "Full Name", "Certification Date"}
	row := []any{"a.png", "ანა", "1/15/2024"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	path := filepath.Join(t.TempDir(), "feed.XLSX")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src := FileSource{Path: path}
	assert.True(t, src.IsWorkbook())

	table, err := src.FetchTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Table{
		{"Img", "Full Name", "Certification Date"},
		{"a.png", "ანა", "1/15/2024"},
	}, table)

	_, err = src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := FileSource{}.FetchTable(context.Background())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}.FetchTable(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.xlsx")}.FetchTable(context.Background())
	assert.ErrorIs(t, err, ErrTransport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSource{Path: "feed.csv"}.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
