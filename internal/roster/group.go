// =============================================================================
// Graduate Roster - Grouping & Ordering
// =============================================================================
//
// Dated records are bucketed by calendar month for display.
//
// ORDERING RULES:
//   1. Records are sorted once, newest certification date first. The sort is
//      stable, so records with equal dates keep their feed order.
//   2. Each record's group key is YYYY-MM taken from its own calendar date.
//   3. Groups are ordered by key, newest first. Plain string comparison is
//      correct because the key is fixed-width and zero-padded.
//
// Undated records never reach a group.
//
// =============================================================================

package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// TitleFormatter renders the display title of a month group. The grouping
// key never depends on it.
type TitleFormatter interface {
	MonthYear(t time.Time) string
}

// GroupKey returns the YYYY-MM key of t in t's own location.
func GroupKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Dated returns the records that have a certification date, in input order.
func Dated(records []types.Graduate) []types.Graduate {
	dated := make([]types.Graduate, 0, len(records))
	for _, g := range records {
		if g.HasDate() {
			dated = append(dated, g)
		}
	}
	return dated
}

// SortNewestFirst stably sorts dated records by certification date, newest
// first. Records without a date sort last.
func SortNewestFirst(records []types.Graduate) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].CertificationDate, records[j].CertificationDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

// GroupByMonth groups the dated records by certification month.
//
// PARAMETERS:
//   - records: Normalized records. Undated records are skipped.
//   - titles: Formats the group title. When nil the key is used as the title.
//
// RETURNS:
//   - Groups newest first, each with items newest first. Every dated record
//     appears in exactly one group.
func GroupByMonth(records []types.Graduate, titles TitleFormatter) []types.Group {
	dated := Dated(records)
	SortNewestFirst(dated)

	var groups []types.Group
	positions := make(map[string]int)
	for _, g := range dated {
		d := *g.CertificationDate
		key := GroupKey(d)

		i, ok := positions[key]
		if !ok {
			title := key
			if titles != nil {
				title = titles.MonthYear(d)
			}
			i = len(groups)
			positions[key] = i
			groups = append(groups, types.Group{Key: key, Title: title})
		}
		groups[i].Items = append(groups[i].Items, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key > groups[j].Key
	})

	return groups
}
