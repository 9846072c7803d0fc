// =============================================================================
// Graduate Roster - Main Entry Point
// =============================================================================
//
// USAGE:
//   roster fetch      - Print the month-grouped roster
//   roster export     - Write the roster to JSON, XML, XLSX or CSV files
//   roster serve      - Serve the roster over HTTP
//   roster locale     - Show or change the remembered language
//   roster version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Feed parsing, normalization, grouping, i18n, export, HTTP
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/graduate-roster/cmd"
)

func main() {
	cmd.Execute()
}
