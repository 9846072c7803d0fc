package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/graduate-roster/internal/config"
)

const feedCSV = "Img,Full Name,Certification Date\n" +
	"a.png,ანა ბერიძე,1/15/2024\n" +
	"b.png,ლუკა,2/20/2024\n" +
	"c.png,ნინო,someday\n"

// setup isolates a command run: an empty working directory, a private
// preference file and an English environment.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvLocaleFile, filepath.Join(dir, "prefs.yaml"))
	t.Setenv(config.EnvFeedURL, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed.csv"), []byte(feedCSV), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	setup(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Graduate Roster")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestLocaleCommands(t *testing.T) {
	dir := setup(t)

	out, err := execute(t, "locale", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ka  ქართული")
	assert.Contains(t, out, "ru  Русский")

	out, err = execute(t, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "en (English)\n", out, "detected from LANG")

	out, err = execute(t, "locale", "set", "ru")
	require.NoError(t, err)
	assert.Equal(t, "ru (Русский)\n", out)
	assert.FileExists(t, filepath.Join(dir, "prefs.yaml"))

	out, err = execute(t, "locale", "get")
	require.NoError(t, err)
	assert.Equal(t, "ru (Русский)\n", out, "persisted choice wins over LANG")

	_, err = execute(t, "locale", "set", "fr")
	assert.ErrorContains(t, err, `unsupported locale "fr"`)
}

func TestFetchCommand(t *testing.T) {
	setup(t)

	out, err := execute(t, "fetch", "--file", "feed.csv", "--locale", "en", "--format", "text", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Graduates\n")
	assert.Contains(t, out, "February 2024\n")
	assert.Contains(t, out, "Luka")
	assert.Contains(t, out, "02/20/2024")
	assert.NotContains(t, out, "Nino", "undated records are not grouped")

	out, err = execute(t, "fetch", "--file", "feed.csv", "--locale", "ka", "--format", "text", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "ნინო")
	assert.Contains(t, out, "someday")
}

func TestFetchCommand_MissingFeedURL(t *testing.T) {
	setup(t)

	_, err := execute(t, "fetch", "--file", "", "--locale", "en", "--format", "text", "--limit", "0")
	assert.ErrorContains(t, err, "PUBLIC_GRADUATES_CSV_URL")
}

func TestExportCommand(t *testing.T) {
	dir := setup(t)
	outDir := filepath.Join(dir, "exports")

	out, err := execute(t, "export", "--file", "feed.csv", "--locale", "en",
		"--format", "json,csv", "--output", outDir, "--dry-run=false", "--summary=true")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetched 3 record(s) in 2 group(s)")
	assert.Contains(t, out, "✓ json")
	assert.Contains(t, out, "✓ csv")

	jsonFiles, err := filepath.Glob(filepath.Join(outDir, "graduates_en_*.json"))
	require.NoError(t, err)
	assert.Len(t, jsonFiles, 1)

	summaries, err := filepath.Glob(filepath.Join(outDir, "export_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestExportCommand_TimestampSubdirs(t *testing.T) {
	dir := setup(t)
	outDir := filepath.Join(dir, "dated")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.yaml"),
		[]byte("export:\n  timestamp_subdirs: true\n"), 0o644))

	_, err := execute(t, "--config", "roster.yaml", "export", "--file", "feed.csv", "--locale", "en",
		"--format", "json", "--output", outDir, "--dry-run=false", "--summary=false")
	require.NoError(t, err)

	now := time.Now()
	day := filepath.Join(outDir, fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%02d", now.Month()), fmt.Sprintf("%02d", now.Day()))
	files, err := filepath.Glob(filepath.Join(day, "graduates_en_*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	setup(t)
	_, err := execute(t, "export", "--file", "feed.csv", "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestValidateCommand(t *testing.T) {
	setup(t)

	out, err := execute(t, "validate", "--file", "feed.csv", "--strict=false")
	require.NoError(t, err)
	assert.Contains(t, out, "[WARNING] Row 4, Field 'Certification Date'")
	assert.Contains(t, out, "Rows checked: 3, errors: 0, warnings: 1")

	_, err = execute(t, "validate", "--file", "feed.csv", "--strict")
	assert.ErrorContains(t, err, "feed is not valid")
}
