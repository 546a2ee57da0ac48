// Package expiry computes the TTL instant for an event from its
// string-encoded date. The store (and the background sweeper) honor
// the computed instant; nothing here deletes anything.
package expiry

import (
	"strconv"
	"strings"
	"time"
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Compute returns midnight-local of the day after the given date, or
// nil when the input is empty or unparseable. Accepted inputs: ISO
// 8601, and day/month/year or month/day/year triples with "/" or "-"
// separators. Ambiguous triples default to day-first unless the second
// component exceeds 12; two-digit years are promoted to the 2000s.
func Compute(dateValue string) *time.Time {
	day, ok := parseCalendarDate(strings.TrimSpace(dateValue))
	if !ok {
		return nil
	}
	next := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, time.Local)
	return &next
}

func parseCalendarDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	var sep string
	switch {
	case strings.Contains(s, "/"):
		sep = "/"
	case strings.Contains(s, "-"):
		sep = "-"
	default:
		return time.Time{}, false
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	var day, month, year int
	switch {
	case nums[0] > 12: // must be day/month/year
		day, month, year = nums[0], nums[1], nums[2]
	case nums[1] > 12: // must be month/day/year
		day, month, year = nums[1], nums[0], nums[2]
	default: // ambiguous, assume day/month/year
		day, month, year = nums[0], nums[1], nums[2]
	}

	if year < 100 {
		year += 2000
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}
