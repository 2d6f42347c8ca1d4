package processors

import (
	"reflect"
	"testing"

	"github.com/username/fundfolio/backend/src/models"
)

func TestPortfolioLastBalanceOfDayWins(t *testing.T) {
	rows := []models.LedgerRow{
		{ID: "1", Date: "2025-06-10T09:00:00Z", Movement: "deposit", Amount: 100,
			PreviousBalance: fptr(0), NewBalance: fptr(100), Status: "completed"},
		{ID: "2", Date: "2025-06-10T18:00:00Z", Movement: "operating_result", Amount: 5,
			PreviousBalance: fptr(100), NewBalance: fptr(105), Status: "completed"},
		{ID: "3", Date: "2025-06-11T10:00:00Z", Movement: "operating_result", Amount: 2,
			PreviousBalance: fptr(105), NewBalance: fptr(107), Status: "completed"},
	}
	series, err := NewPortfolioProcessor().Build(rows, models.PortfolioRangeAll)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []models.PortfolioPoint{
		{Date: "2025-06-10", Total: 105},
		{Date: "2025-06-11", Total: 107},
	}
	if !reflect.DeepEqual(series.Points, want) {
		t.Errorf("points = %#v, want %#v", series.Points, want)
	}
}

func TestPortfolioSkipsPendingAndUnknownBalances(t *testing.T) {
	rows := []models.LedgerRow{
		{ID: "1", Date: "2025-06-10", Movement: "deposit", Amount: 100,
			PreviousBalance: fptr(0), NewBalance: fptr(100), Status: "completed"},
		{ID: "2", Date: "2025-06-11", Movement: "deposit", Amount: 50, Status: "pending"},
		{ID: "3", Date: "2025-06-12", Movement: "operating_result", Amount: 1,
			PreviousBalance: fptr(100), Status: "completed"}, // no new balance
		{ID: "4", Date: "2025-06-13", Movement: "operating_result", Amount: 2,
			PreviousBalance: fptr(100), NewBalance: fptr(102), Status: "completed"},
	}
	series, err := NewPortfolioProcessor().Build(rows, models.PortfolioRangeAll)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(series.Points) != 2 {
		t.Fatalf("expected 2 points, got %#v", series.Points)
	}
	for _, point := range series.Points {
		if point.Date == "2025-06-11" || point.Date == "2025-06-12" {
			t.Errorf("row without settled balance leaked into series: %#v", point)
		}
	}
}

func TestPortfolioSinglePointIsEmpty(t *testing.T) {
	rows := []models.LedgerRow{
		{ID: "1", Date: "2025-06-10", Movement: "deposit", Amount: 100,
			PreviousBalance: fptr(0), NewBalance: fptr(100), Status: "completed"},
	}
	series, err := NewPortfolioProcessor().Build(rows, models.PortfolioRangeAll)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if series.State != models.SeriesEmpty || len(series.Points) != 0 {
		t.Errorf("single-day ledger must yield the empty state, got %#v", series)
	}
}

func TestPortfolioNoValidRowsIsEmptyNotCrash(t *testing.T) {
	rows := []models.LedgerRow{
		{ID: "1", Date: "garbage", Movement: "deposit", Amount: 100,
			NewBalance: fptr(100), Status: "completed"},
		{ID: "2", Date: "also bad", Movement: "retiro", Amount: -10,
			NewBalance: fptr(90), Status: "completed"},
	}
	series, err := NewPortfolioProcessor().Build(rows, models.PortfolioRange1Y)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if series.State != models.SeriesEmpty {
		t.Errorf("state = %q, want empty", series.State)
	}
}

func TestPortfolioRangeWindowing(t *testing.T) {
	rows := []models.LedgerRow{
		{ID: "1", Date: "2024-06-15", Movement: "deposit", Amount: 100,
			PreviousBalance: fptr(0), NewBalance: fptr(100), Status: "completed"},
		{ID: "2", Date: "2025-03-01", Movement: "operating_result", Amount: 10,
			PreviousBalance: fptr(100), NewBalance: fptr(110), Status: "completed"},
		{ID: "3", Date: "2025-06-01", Movement: "operating_result", Amount: 10,
			PreviousBalance: fptr(110), NewBalance: fptr(120), Status: "completed"},
		{ID: "4", Date: "2025-06-10", Movement: "operating_result", Amount: 5,
			PreviousBalance: fptr(120), NewBalance: fptr(125), Status: "completed"},
	}
	p := NewPortfolioProcessor()

	tests := []struct {
		rng       models.PortfolioRange
		wantDates []string
	}{
		// 1M window anchored at 2025-06-10 keeps June points only.
		{models.PortfolioRange1M, []string{"2025-06-01", "2025-06-10"}},
		// 6M window reaches back past March.
		{models.PortfolioRange6M, []string{"2025-03-01", "2025-06-01", "2025-06-10"}},
		{models.PortfolioRangeAll, []string{"2024-06-15", "2025-03-01", "2025-06-01", "2025-06-10"}},
	}
	for _, tt := range tests {
		series, err := p.Build(rows, tt.rng)
		if err != nil {
			t.Fatalf("Build(%q) returned error: %v", tt.rng, err)
		}
		got := make([]string, 0, len(series.Points))
		for _, point := range series.Points {
			got = append(got, point.Date)
		}
		if !reflect.DeepEqual(got, tt.wantDates) {
			t.Errorf("Build(%q) dates = %v, want %v", tt.rng, got, tt.wantDates)
		}
	}
}

func TestPortfolioNarrowWindowFallsBackToFullSeries(t *testing.T) {
	// Both points predate the 7D window except the anchor itself; the
	// windowed result would have a single point, so the full series wins.
	rows := []models.LedgerRow{
		{ID: "1", Date: "2025-01-01", Movement: "deposit", Amount: 100,
			PreviousBalance: fptr(0), NewBalance: fptr(100), Status: "completed"},
		{ID: "2", Date: "2025-06-10", Movement: "operating_result", Amount: 5,
			PreviousBalance: fptr(100), NewBalance: fptr(105), Status: "completed"},
	}
	series, err := NewPortfolioProcessor().Build(rows, models.PortfolioRange7D)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(series.Points) != 2 {
		t.Errorf("expected fallback to the full 2-point series, got %#v", series.Points)
	}
}

func TestPortfolioUnknownRange(t *testing.T) {
	_, err := NewPortfolioProcessor().Build(nil, models.PortfolioRange("2Y"))
	if err == nil {
		t.Fatal("expected error for unknown range key")
	}
}

func TestPortfolioIdempotent(t *testing.T) {
	rows := []models.LedgerRow{
		{ID: "1", Date: "2025-06-10", Movement: "deposit", Amount: 100,
			PreviousBalance: fptr(0), NewBalance: fptr(100), Status: "completed"},
		{ID: "2", Date: "2025-06-11", Movement: "operating_result", Amount: 5,
			PreviousBalance: fptr(100), NewBalance: fptr(105), Status: "completed"},
	}
	p := NewPortfolioProcessor()
	first, err := p.Build(rows, models.PortfolioRange1M)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	second, err := p.Build(rows, models.PortfolioRange1M)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Build with identical inputs differed:\n%#v\n%#v", first, second)
	}
}
