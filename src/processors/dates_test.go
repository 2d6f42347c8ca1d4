package processors

import (
	"testing"

	"github.com/username/fundfolio/backend/src/models"
)

func TestDayKeySameUTCDay(t *testing.T) {
	// Different wall clocks, same UTC calendar day.
	inputs := []string{
		"2025-03-09T00:00:01Z",
		"2025-03-09T23:59:59Z",
		"2025-03-09T20:00:00-03:00", // 23:00 UTC
		"2025-03-09",
	}
	want := "2025-03-09"
	for _, in := range inputs {
		key, ok := DayKey(in)
		if !ok {
			t.Fatalf("DayKey(%q) failed to parse", in)
		}
		if key != want {
			t.Errorf("DayKey(%q) = %q, want %q", in, key, want)
		}
	}
}

func TestDayKeyCrossesUTCMidnight(t *testing.T) {
	// 21:00-03:00 is already the next UTC day.
	key, ok := DayKey("2025-03-09T21:30:00-03:00")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if key != "2025-03-10" {
		t.Errorf("DayKey = %q, want 2025-03-10", key)
	}
}

func TestMonthKeySameUTCMonth(t *testing.T) {
	for _, in := range []string{"2024-02-01T00:00:00Z", "2024-02-29T23:00:00Z", "2024-02-15"} {
		key, ok := MonthKey(in)
		if !ok {
			t.Fatalf("MonthKey(%q) failed to parse", in)
		}
		if key != "2024-02" {
			t.Errorf("MonthKey(%q) = %q, want 2024-02", in, key)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2025-13-45", "12/31/2025"} {
		if _, ok := ParseTimestamp(in); ok {
			t.Errorf("ParseTimestamp(%q) unexpectedly succeeded", in)
		}
	}
}

func TestFormatBucketLabel(t *testing.T) {
	tests := []struct {
		key         string
		granularity models.Granularity
		locale      string
		want        string
	}{
		{"2024-01-05", models.GranularityDay, "en", "Jan 05"},
		{"2024-01-05", models.GranularityDay, "es", "Ene 05"},
		{"2025-12-09", models.GranularityDay, "es", "Dic 09"},
		{"2024-01", models.GranularityMonth, "en", "Jan 24"},
		{"2024-01", models.GranularityMonth, "es", "Ene 24"},
		{"2025-08", models.GranularityMonth, "en", "Aug 25"},
		// unknown locale falls back to English
		{"2024-01", models.GranularityMonth, "pt", "Jan 24"},
		// malformed key passes through
		{"bogus", models.GranularityDay, "en", "bogus"},
	}
	for _, tt := range tests {
		if got := FormatBucketLabel(tt.key, tt.granularity, tt.locale); got != tt.want {
			t.Errorf("FormatBucketLabel(%q, %q, %q) = %q, want %q",
				tt.key, tt.granularity, tt.locale, got, tt.want)
		}
	}
}
