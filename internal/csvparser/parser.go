// =============================================================================
// Graduate Roster - CSV Tokenizer
// =============================================================================
//
// This module turns the raw text of the graduates feed into a types.Table.
// It does not use encoding/csv: the feed is exported by a spreadsheet tool
// whose quoting is not always RFC 4180 clean, and the tokenizer has to be
// best-effort instead of rejecting the whole document.
//
// STATE MACHINE:
//   The tokenizer is a two-state machine, Unquoted and Quoted. Every input
//   rune is classified into an input class, and the pair (state, class)
//   selects a transition from the table below.
//
//   state     | quote         | escaped quote | comma      | newline   | CR   | other
//   ----------+---------------+---------------+------------+-----------+------+-------
//   Unquoted  | -> Quoted     | (n/a)         | end field  | end row   | skip | append
//   Quoted    | -> Unquoted   | append '"'    | append     | append    | skip | append
//
//   "escaped quote" is a doubled quote seen while in the Quoted state; it
//   consumes both runes.
//
// POST-PROCESSING:
//   - Every field is trimmed of surrounding whitespace.
//   - Pending content at end of input is flushed as a final row.
//   - Rows whose fields are all empty are dropped.
//
// =============================================================================

package csvparser

import (
	"strings"

	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// =============================================================================
// STATES AND INPUT CLASSES
// =============================================================================

// State is a tokenizer state.
type State int

const (
	// Unquoted is the state outside of a quoted section.
	Unquoted State = iota

	// Quoted is the state inside a quoted section, where separators are literal.
	Quoted
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Quoted {
		return "Quoted"
	}
	return "Unquoted"
}

// Class is the input class of a rune.
type Class int

const (
	ClassOther Class = iota
	ClassQuote
	ClassEscapedQuote
	ClassComma
	ClassNewline
	ClassCR
)

// Action is what the tokenizer does with the current rune.
type Action int

const (
	// ActionAppend appends the current rune to the field.
	ActionAppend Action = iota

	// ActionAppendQuote appends a single literal quote.
	ActionAppendQuote

	// ActionEndField closes the current field.
	ActionEndField

	// ActionEndRow closes the current field and the current row.
	ActionEndRow

	// ActionNone changes state only.
	ActionNone
)

// Transition is one entry of the transition table.
type Transition struct {
	Next   State
	Action Action
}

// transitions is the full transition table. Every (state, class) pair that
// classify can produce has an entry.
var transitions = map[State]map[Class]Transition{
	Unquoted: {
		ClassQuote:   {Next: Quoted, Action: ActionNone},
		ClassComma:   {Next: Unquoted, Action: ActionEndField},
		ClassNewline: {Next: Unquoted, Action: ActionEndRow},
		ClassCR:      {Next: Unquoted, Action: ActionNone},
		ClassOther:   {Next: Unquoted, Action: ActionAppend},
	},
	Quoted: {
		ClassQuote:        {Next: Unquoted, Action: ActionNone},
		ClassEscapedQuote: {Next: Quoted, Action: ActionAppendQuote},
		ClassComma:        {Next: Quoted, Action: ActionAppend},
		ClassNewline:      {Next: Quoted, Action: ActionAppend},
		ClassCR:           {Next: Quoted, Action: ActionNone},
		ClassOther:        {Next: Quoted, Action: ActionAppend},
	},
}

// Step looks up the transition for a state and input class.
// The second return value is false for pairs the table does not define.
func Step(state State, class Class) (Transition, bool) {
	t, ok := transitions[state][class]
	return t, ok
}

// classify maps the rune at position i to its input class. A doubled quote
// only counts as an escape inside a quoted section.
func classify(state State, runes []rune, i int) Class {
	switch runes[i] {
	case '"':
		if state == Quoted && i+1 < len(runes) && runes[i+1] == '"' {
			return ClassEscapedQuote
		}
		return ClassQuote
	case ',':
		return ClassComma
	case '\n':
		return ClassNewline
	case '\r':
		return ClassCR
	default:
		return ClassOther
	}
}

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize parses raw feed text into a table.
//
// PARAMETERS:
//   - text: The full CSV document.
//
// RETURNS:
//   - The tokenized table. Tokenize never fails: malformed quoting yields a
//     best-effort table.
func Tokenize(text string) types.Table {
	var (
		table types.Table
		row   []string
		field strings.Builder
		state = Unquoted
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		table = appendRow(table, row)
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		class := classify(state, runes, i)
		t, ok := Step(state, class)
		if !ok {
			// Unreachable with the current classifier; keep the rune.
			field.WriteRune(runes[i])
			continue
		}

		switch t.Action {
		case ActionAppend:
			field.WriteRune(runes[i])
		case ActionAppendQuote:
			field.WriteRune('"')
			i++
		case ActionEndField:
			endField()
		case ActionEndRow:
			endRow()
		}
		state = t.Next
	}

	// Flush a trailing row without a terminating newline.
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return table
}

// appendRow trims every field and appends the row unless it is blank.
func appendRow(table types.Table, row []string) types.Table {
	blank := true
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
		if row[i] != "" {
			blank = false
		}
	}
	if blank {
		return table
	}
	return append(table, row)
}
