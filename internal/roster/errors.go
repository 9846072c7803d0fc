package roster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is matched by every *SchemaError via errors.Is.
var ErrSchema = errors.New("feed schema mismatch")

// SchemaError reports a header row that lacks one or more required columns.
// It is fatal for the fetch: no records are returned alongside it.
type SchemaError struct {
	// Header is the header row exactly as it appeared in the feed.
	Header []string

	// Missing lists the required column names that were not found.
	Missing []string

	// Expected lists every required column name.
	Expected []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("CSV headers mismatch. Expected: %q. Got: %s (missing: %s)",
		strings.Join(e.Expected, ", "),
		strings.Join(e.Header, ", "),
		strings.Join(e.Missing, ", "),
	)
}

// Is lets errors.Is(err, ErrSchema) match.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
