package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/graduate-roster/internal/csvparser"
	"github.com/ginjaninja78/graduate-roster/internal/types"
	"github.com/ginjaninja78/graduate-roster/internal/xlsxparser"
)

// FileSetting names the local feed file setting in errors.
const FileSetting = "--file"

// FileSource reads a local copy of the feed: a CSV download, or an XLSX
// download of the publishing spreadsheet. The format follows the extension.
// A file that cannot be read is reported as a TransportError, like a failed
// download.
type FileSource struct {
	// Path is the local file.
	Path string

	// Sheet selects the worksheet of an XLSX file. Default: the first.
	Sheet string
}

// IsWorkbook reports whether the file is read as XLSX.
func (s FileSource) IsWorkbook() bool {
	ext := strings.ToLower(filepath.Ext(s.Path))
	return ext == ".xlsx" || ext == ".xlsm"
}

// Fetch returns the text of a CSV file. Workbooks have no text form; use
// FetchTable.
func (s FileSource) Fetch(ctx context.Context) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	if s.IsWorkbook() {
		return "", &ConfigurationError{Setting: FileSetting, Message: "workbooks can only be read as a table"}
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", &TransportError{URL: s.Path, Err: err}
	}
	return string(data), nil
}

// FetchTable returns the file as a table, tokenizing CSV text the same way
// as the downloaded feed.
func (s FileSource) FetchTable(ctx context.Context) (types.Table, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	if !s.IsWorkbook() {
		text, err := s.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return csvparser.Tokenize(text), nil
	}

	table, err := xlsxparser.ReadTableWithOptions(s.Path, xlsxparser.ReadOptions{Sheet: s.Sheet})
	if err != nil {
		return nil, &TransportError{URL: s.Path, Err: err}
	}
	return table, nil
}

func (s FileSource) check(ctx context.Context) error {
	if s.Path == "" {
		return &ConfigurationError{Setting: FileSetting, Message: "is empty"}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return nil
}
