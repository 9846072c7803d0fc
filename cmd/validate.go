// =============================================================================
// Graduate Roster - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   roster validate [--file feed.csv] [--strict]
//
// Checks the published feed (or a local copy) and lists every row the
// pipeline would drop or leave out of grouped views. Exits non-zero when a
// required column is missing, or on any finding with --strict.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/graduate-roster/internal/csvparser"
	"github.com/ginjaninja78/graduate-roster/internal/pipeline"
	"github.com/ginjaninja78/graduate-roster/internal/roster"
	"github.com/ginjaninja78/graduate-roster/internal/types"
	"github.com/ginjaninja78/graduate-roster/internal/validation"
)

var (
	validateFile   string
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the feed for rows that lose data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		table, err := readTable(cmd.Context(), feedSource(appConfig, validateFile))
		if err != nil {
			return err
		}

		opts := validation.DefaultValidationOptions()
		opts.TreatWarningsAsErrors = validateStrict
		result := validation.NewValidatorWithOptions(roster.DefaultColumns(), opts).ValidateTable(table)

		for _, finding := range result.Errors {
			fmt.Fprintln(out, finding.Error())
		}
		fmt.Fprintf(out, "Rows checked: %d, errors: %d, warnings: %d\n",
			result.RowsValidated, result.ErrorCount, result.WarningCount)

		logger.Debug("Feed validated",
			zap.Int("rows", result.RowsValidated),
			zap.Int("errors", result.ErrorCount),
			zap.Int("warnings", result.WarningCount),
		)

		if !result.IsValid {
			return fmt.Errorf("feed is not valid")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "", "Validate a local CSV or XLSX copy instead of the configured feed")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as errors")
}

// readTable fetches and tokenizes the feed the same way the pipeline does.
func readTable(ctx context.Context, src pipeline.Source) (types.Table, error) {
	if ts, ok := src.(pipeline.TableSource); ok {
		return ts.FetchTable(ctx)
	}
	text, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return csvparser.Tokenize(text), nil
}
