// =============================================================================
// Graduate Roster - Export Command
// =============================================================================
//
// This file defines the 'export' command, which writes the grouped roster to
// files for use outside the website.
//
// COMMAND USAGE:
//   roster export [flags]
//
// FLAGS:
//   --format   : Comma-separated formats: json, xml, xlsx, csv (default json)
//   --locale   : Locale for group titles (default: detected)
//   --output   : Output directory (default: export.output_dir)
//   --dry-run  : Run the pipeline but write nothing
//   --summary  : Also write a summary log per export (default true)
//   --file     : Read a local CSV or XLSX copy of the feed
//
// PROCESSING PIPELINE:
//   1. Run the roster pipeline once
//   2. For each requested format (concurrently):
//      a. Name the file from export.file_name_format
//      b. Encode and write it
//      c. Write the summary log
//   3. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/graduate-roster/internal/export"
	"github.com/ginjaninja78/graduate-roster/internal/pipeline"
	"github.com/ginjaninja78/graduate-roster/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	exportFormats []string
	exportLocale  string
	exportOutput  string
	dryRun        bool
	writeSummary  bool
	exportFile    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the grouped roster to JSON, XML, XLSX or CSV files",
	Long: `The export command downloads the feed once and writes the dated records, in
display order, to one file per requested format in the output directory.

Each format is written independently; a failure in one does not affect the
others. Files only appear under their final name once fully written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVar(&exportFormats, "format", []string{"json"}, "Export formats: json, xml, xlsx, csv")
	exportCmd.Flags().StringVarP(&exportLocale, "locale", "l", "", "Locale for group titles (default: detected)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output directory (default: export.output_dir)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without writing files")
	exportCmd.Flags().BoolVar(&writeSummary, "summary", true, "Write a summary log next to each export")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Read a local CSV or XLSX copy of the feed")
}

// exportResult is the outcome of writing one format.
type exportResult struct {
	Format     export.Format
	OutputFile string
	Err        error
}

// =============================================================================
// MAIN EXPORT FUNCTION
// =============================================================================

func runExport(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	startTime := time.Now()

	formats := make([]export.Format, 0, len(exportFormats))
	seen := make(map[export.Format]bool)
	for _, f := range exportFormats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		if !seen[format] {
			seen[format] = true
			formats = append(formats, format)
		}
	}

	loc, err := localizerFor(appConfig, exportLocale)
	if err != nil {
		return err
	}

	res, err := newPipeline(appConfig, exportFile, nil).Run(cmd.Context(), loc)
	if err != nil {
		return err
	}

	doc := export.Document{
		Locale: loc.Locale().String(),
		Title:  loc.T("graduates.title"),
		Groups: res.Groups,
	}

	fmt.Fprintf(out, "Fetched %d record(s) in %d group(s)\n", res.Stats.Records, res.Stats.Groups)
	if dryRun {
		fmt.Fprintln(out, "Dry run: no files written.")
		return nil
	}

	outputDir := appConfig.Export.OutputDir
	if exportOutput != "" {
		outputDir = exportOutput
	}
	fm := utils.NewFileManager(outputDir)
	fm.UseTimestampSubdirs = appConfig.Export.TimestampSubdirs

	// =========================================================================
	// WRITE FORMATS CONCURRENTLY
	// =========================================================================

	var wg sync.WaitGroup
	results := make(chan exportResult, len(formats))

	for _, format := range formats {
		wg.Add(1)
		go func(format export.Format) {
			defer wg.Done()
			results <- writeExport(fm, format, doc, res, startTime)
		}(format)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []string
	for result := range results {
		if result.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", result.Format, result.Err))
			fmt.Fprintf(out, "  ✗ %s: %v\n", result.Format, result.Err)
			logger.Error("Export failed", zap.String("format", string(result.Format)), zap.Error(result.Err))
			continue
		}
		fmt.Fprintf(out, "  ✓ %s -> %s\n", result.Format, result.OutputFile)
		logger.Info("Export written",
			zap.String("run_id", res.RunID),
			zap.String("format", string(result.Format)),
			zap.String("file", result.OutputFile),
		)
	}

	fmt.Fprintf(out, "Time elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))

	if len(failed) > 0 {
		return fmt.Errorf("%d export(s) failed: %s", len(failed), strings.Join(failed, "; "))
	}
	return nil
}

// writeExport writes one format and, when enabled, its summary log.
func writeExport(fm *utils.FileManager, format export.Format, doc export.Document, res *pipeline.Result, start time.Time) exportResult {
	name := utils.GenerateOutputFileName(appConfig.Export.FileNameFormat, map[string]string{
		"locale": doc.Locale,
		"ext":    format.Extension(),
	})

	path, err := fm.WriteFile(name, func(w io.Writer) error {
		return export.Write(w, format, doc)
	})
	if err != nil {
		return exportResult{Format: format, Err: err}
	}

	if writeSummary {
		_, err = fm.WriteSummaryLog(utils.ExportSummary{
			RunID:      res.RunID,
			StartTime:  start,
			EndTime:    time.Now(),
			Source:     sourceName(exportFile),
			Locale:     doc.Locale,
			Format:     string(format),
			OutputFile: path,
			RowsRead:   res.Stats.RowsRead,
			Records:    res.Stats.Records,
			Dropped:    res.Stats.Dropped,
			Undated:    res.Stats.Undated,
			Groups:     res.Stats.Groups,
		})
		if err != nil {
			return exportResult{Format: format, OutputFile: path, Err: fmt.Errorf("summary log: %w", err)}
		}
	}

	return exportResult{Format: format, OutputFile: path}
}

// sourceName describes where the feed came from, for the summary log.
func sourceName(file string) string {
	if file != "" {
		return file
	}
	return appConfig.Feed.URL
}
