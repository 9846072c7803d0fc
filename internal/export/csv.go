package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// writeCSV writes one row per record with a header taken from Row's csv tags.
// An empty roster still gets the header line.
func writeCSV(w io.Writer, doc Document) error {
	rows := doc.Rows()
	if len(rows) == 0 {
		_, err := io.WriteString(w, strings.Join(rowHeader, ",")+"\n")
		return err
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	return nil
}
