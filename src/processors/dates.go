package processors

import (
	"fmt"
	"time"

	"github.com/username/fundfolio/backend/src/models"
)

// Bucket keys are derived from UTC calendar fields only. Two timestamps on
// the same UTC day always produce the same key, no matter which timezone the
// fund API happened to serialize them in.

const (
	dayKeyFormat   = "2006-01-02"
	monthKeyFormat = "2006-01"
)

// timestampLayouts are tried in order when parsing ledger dates. The fund
// API emits RFC3339, but older rows carry date-only or space-separated
// variants.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-1-2",
}

// ParseTimestamp parses a ledger date string into a UTC instant. The second
// return value is false when the string does not parse; callers drop the row
// rather than failing.
func ParseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DayKey returns the YYYY-MM-DD bucket key of a ledger date, or ok=false
// when the date does not parse.
func DayKey(raw string) (string, bool) {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return "", false
	}
	return t.Format(dayKeyFormat), true
}

// MonthKey returns the YYYY-MM bucket key of a ledger date, or ok=false when
// the date does not parse.
func MonthKey(raw string) (string, bool) {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return "", false
	}
	return t.Format(monthKeyFormat), true
}

func dayKeyOf(t time.Time) string   { return t.UTC().Format(dayKeyFormat) }
func monthKeyOf(t time.Time) string { return t.UTC().Format(monthKeyFormat) }

// monthAbbreviations holds the month-abbreviation tables per locale. The
// locale only changes labels; bucket keys are locale-independent.
var monthAbbreviations = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"es": {"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"},
}

func monthAbbrev(month time.Month, locale string) string {
	table, ok := monthAbbreviations[locale]
	if !ok {
		table = monthAbbreviations["en"]
	}
	return table[month-1]
}

// FormatBucketLabel renders a bucket key as a human chart label: "Ene 05"
// for day buckets, "Ene 24" for month buckets. Unknown locales fall back to
// English. Malformed keys are returned as-is so a bad label never hides a
// data point.
func FormatBucketLabel(key string, granularity models.Granularity, locale string) string {
	switch granularity {
	case models.GranularityDay:
		t, err := time.Parse(dayKeyFormat, key)
		if err != nil {
			return key
		}
		return fmt.Sprintf("%s %02d", monthAbbrev(t.Month(), locale), t.Day())
	case models.GranularityMonth:
		t, err := time.Parse(monthKeyFormat, key)
		if err != nil {
			return key
		}
		return fmt.Sprintf("%s %02d", monthAbbrev(t.Month(), locale), t.Year()%100)
	default:
		return key
	}
}
