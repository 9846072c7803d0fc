package roster

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate parses an unpadded M/D/Y date in the local time zone.
// It returns nil for anything it cannot read; see ParseDateIn.
func ParseDate(s string) *time.Time {
	return ParseDateIn(s, time.Local)
}

// ParseDateIn parses an unpadded M/D/Y date in loc.
//
// Components are read strictly as month, day, year. The result is nil when
// there are fewer than three components, a component is not an integer, or a
// component is zero. Out-of-range values roll over the way time.Date
// normalizes them (2/30/2024 is March 1, 2024). Years 1 through 99 are
// read as 1901 through 1999.
func ParseDateIn(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, "/")
	if len(parts) < 3 {
		return nil
	}

	var n [3]int
	for i := range n {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v == 0 {
			return nil
		}
		n[i] = v
	}

	month, day, year := n[0], n[1], n[2]
	if year > 0 && year < 100 {
		year += 1900
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	return &t
}
