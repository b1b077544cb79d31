package record

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the formats accepted for OccurredOn, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// dateSeparators are the year/month separators used by dateLayouts
var dateSeparators = []string{"-", "/"}

// ParseDate parses a raw upstream date. Every temporal view in the core goes
// through this function so that a date skipped by grouping never shows up in
// an available-periods listing either.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PeriodPrefixes returns the prefixes every parsable date of the period
// starts with, once trimmed. Stores use them as a coarse prefilter; ParseDate
// stays authoritative. Without a year no prefix can be formed and nil is
// returned.
func PeriodPrefixes(year, month int) []string {
	if year <= 0 {
		return nil
	}
	prefixes := make([]string, 0, len(dateSeparators))
	for _, sep := range dateSeparators {
		if month > 0 {
			prefixes = append(prefixes, fmt.Sprintf("%04d%s%02d%s", year, sep, month, sep))
		} else {
			prefixes = append(prefixes, fmt.Sprintf("%04d%s", year, sep))
		}
	}
	return prefixes
}
