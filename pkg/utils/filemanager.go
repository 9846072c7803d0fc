// =============================================================================
// Graduate Roster - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for exports:
//   - Output directory management
//   - Output file naming
//   - Writing export files without leaving partial files behind
//   - Run summary logs
//
// WRITE STRATEGY:
//   - Exports are written to a temporary file in the output directory
//   - The temporary file is renamed into place once the export succeeds
//   - A failed export removes its temporary file
//   - An existing file is never overwritten
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrFileExists is returned by WriteFile when the target name is taken.
var ErrFileExists = errors.New("output file already exists")

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for exports.
type FileManager struct {
	// OutputDir is the directory where export files are placed.
	OutputDir string

	// UseTimestampSubdirs writes into date-based subdirectories.
	// Example: output/2024/01/15/graduates_en.json
	UseTimestampSubdirs bool

	// now is replaced in tests.
	now func() time.Time
}

// NewFileManager creates a new FileManager writing into outputDir.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		now:       time.Now,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.outputDir(), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.outputDir(), err)
	}
	return nil
}

// outputDir is the directory a new file goes into.
func (fm *FileManager) outputDir() string {
	if !fm.UseTimestampSubdirs {
		return fm.OutputDir
	}
	now := time.Now()
	if fm.now != nil {
		now = fm.now()
	}
	return filepath.Join(
		fm.OutputDir,
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		fmt.Sprintf("%02d", now.Day()),
	)
}

// =============================================================================
// EXPORT WRITING
// =============================================================================

// WriteFile creates fileName in the output directory and fills it with
// write. The file only appears under its final name if write succeeds.
//
// RETURNS:
//   - The path of the written file.
//   - ErrFileExists if fileName is already present in the output directory.
//   - An error if the directory, the write or the rename fails.
func (fm *FileManager) WriteFile(fileName string, write func(io.Writer) error) (string, error) {
	if err := fm.EnsureDirectories(); err != nil {
		return "", err
	}

	dir := fm.outputDir()
	finalPath := filepath.Join(dir, fileName)
	if FileExists(finalPath) {
		return "", fmt.Errorf("%w: %s", ErrFileExists, finalPath)
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	// Removing a renamed file fails harmlessly.
	defer os.Remove(tmpPath)

	buffered := bufio.NewWriter(tmp)
	if err := write(buffered); err != nil {
		tmp.Close()
		return "", err
	}
	if err := buffered.Flush(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to flush %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", fileName, err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	return finalPath, nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {locale}    - Locale code, from params
//               {ext}       - File extension, from params
//   - params: A map of placeholder values (without braces).
//
// RETURNS:
//   - The generated file name. If params carries "ext" and the result does
//     not end in it, the extension is appended.
//
// EXAMPLE:
//   format: "graduates_{locale}_{timestamp}.{ext}"
//   params: {"locale": "en", "ext": "xlsx"}
//   output: "graduates_en_20240115_143022.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now())
}

func generateOutputFileName(format string, params map[string]string, now time.Time) string {
	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Path separators would escape the output directory.
	result = strings.NewReplacer("/", "_", `\`, "_").Replace(result)

	if ext := params["ext"]; ext != "" && !strings.HasSuffix(strings.ToLower(result), "."+strings.ToLower(ext)) {
		result += "." + ext
	}
	return result
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// ExportSummary describes one export run.
type ExportSummary struct {
	RunID      string
	StartTime  time.Time
	EndTime    time.Time
	Source     string
	Locale     string
	Format     string
	OutputFile string
	RowsRead   int
	Records    int
	Dropped    int
	Undated    int
	Groups     int
}

// WriteSummaryLog writes a run summary next to the export.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func (fm *FileManager) WriteSummaryLog(summary ExportSummary) (string, error) {
	name := fmt.Sprintf("export_summary_%s_%s.txt", summary.Format, summary.StartTime.Format("20060102_150405"))

	return fm.WriteFile(name, func(w io.Writer) error {
		duration := summary.EndTime.Sub(summary.StartTime)
		_, err := fmt.Fprintf(w, "Graduate Roster - Export Summary\n"+
			"================================================================================\n\n"+
			"Run Information:\n"+
			"  Run ID:         %s\n"+
			"  Start Time:     %s\n"+
			"  End Time:       %s\n"+
			"  Duration:       %s\n"+
			"  Source:         %s\n\n"+
			"Output:\n"+
			"  Locale:         %s\n"+
			"  Format:         %s\n"+
			"  File:           %s\n\n"+
			"Statistics:\n"+
			"  Rows Read:      %d\n"+
			"  Records:        %d\n"+
			"  Dropped:        %d\n"+
			"  Undated:        %d\n"+
			"  Groups:         %d\n\n"+
			"================================================================================\n"+
			"End of Summary\n",
			summary.RunID,
			summary.StartTime.Format("2006-01-02 15:04:05"),
			summary.EndTime.Format("2006-01-02 15:04:05"),
			duration,
			summary.Source,
			summary.Locale,
			summary.Format,
			summary.OutputFile,
			summary.RowsRead,
			summary.Records,
			summary.Dropped,
			summary.Undated,
			summary.Groups,
		)
		return err
	})
}
