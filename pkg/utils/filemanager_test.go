package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, time.January, 15, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		params map[string]string
		want   string
	}{
		{
			name:   "locale and timestamp",
			format: "graduates_{locale}_{timestamp}.{ext}",
			params: map[string]string{"locale": "en", "ext": "xlsx"},
			want:   "graduates_en_20240115_143022.xlsx",
		},
		{
			name:   "missing extension is appended",
			format: "roster_{date}",
			params: map[string]string{"ext": "json"},
			want:   "roster_20240115.json",
		},
		{
			name:   "path separators are flattened",
			format: "../{locale}.{ext}",
			params: map[string]string{"locale": "ka", "ext": "csv"},
			want:   ".._ka.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateOutputFileName(tt.format, tt.params, now))
		})
	}
}

func TestGenerateOutputFileName_UUID(t *testing.T) {
	name := GenerateOutputFileName("{uuid}.{ext}", map[string]string{"ext": "xml"})
	require.True(t, strings.HasSuffix(name, ".xml"))
	_, err := uuid.Parse(strings.TrimSuffix(name, ".xml"))
	assert.NoError(t, err)
}

func TestFileManager_WriteFile(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "out"))

	path, err := fm.WriteFile("a.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)
	assert.True(t, FileExists(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileManager_WriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(dir)

	_, err := fm.WriteFile("b.txt", func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return errors.New("encoder failed")
	})
	require.EqualError(t, err, "encoder failed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileManager_WriteFileRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "d.txt")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))
	fm := NewFileManager(dir)

	_, err := fm.WriteFile("d.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "replace")
		return err
	})
	require.ErrorIs(t, err, ErrFileExists)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestFileManager_TimestampSubdirs(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(root)
	fm.UseTimestampSubdirs = true
	fm.now = func() time.Time { return time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC) }

	path, err := fm.WriteFile("c.txt", func(io.Writer) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2024", "03", "05", "c.txt"), path)
}

func TestFileManager_WriteSummaryLog(t *testing.T) {
	fm := NewFileManager(t.TempDir())
	start := time.Date(2024, time.January, 15, 14, 30, 22, 0, time.UTC)

	path, err := fm.WriteSummaryLog(ExportSummary{
		RunID:      "run-1",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Second),
		Locale:     "en",
		Format:     "json",
		OutputFile: "graduates.json",
		Records:    4,
		Groups:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, "export_summary_json_20240115_143022.txt", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Run ID:         run-1")
	assert.Contains(t, string(data), "Duration:       2s")
	assert.Contains(t, string(data), "Groups:         2")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
}
