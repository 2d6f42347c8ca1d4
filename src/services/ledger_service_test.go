package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// fakeFundClient counts ledger fetches so tests can assert cache behaviour.
type fakeFundClient struct {
	rows       []models.LedgerRow
	err        error
	fetchCalls int
}

func (f *fakeFundClient) FetchInvestorProfile(ctx context.Context, accountID string) (*models.InvestorProfile, error) {
	return &models.InvestorProfile{}, nil
}

func (f *fakeFundClient) FetchInvestorLedger(ctx context.Context, accountID string) ([]models.LedgerRow, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeFundClient) FetchWallets(ctx context.Context) ([]models.Wallet, error) {
	return []models.Wallet{}, nil
}

func (f *fakeFundClient) SubmitRequest(ctx context.Context, submission models.RequestSubmission) (*models.InvestorRequest, error) {
	return &models.InvestorRequest{}, nil
}

func fptr(v float64) *float64 {
	return &v
}

func sampleLedger() []models.LedgerRow {
	return []models.LedgerRow{
		{ID: "1", Date: "2025-11-03T10:00:00Z", Movement: "Depósito", Amount: 1000, PreviousBalance: fptr(0), NewBalance: fptr(1000), Status: "Completado"},
		{ID: "2", Date: "2025-11-04T10:00:00Z", Movement: "operating_result", Amount: 25, PreviousBalance: fptr(1000), NewBalance: fptr(1025), Status: "Completado"},
		{ID: "3", Date: "2025-12-01T10:00:00Z", Movement: "operating_result", Amount: -10, PreviousBalance: fptr(1025), NewBalance: fptr(1015), Status: "Completado"},
	}
}

func newTestLedgerService(client FundClient, now func() time.Time) LedgerService {
	return NewLedgerService(client, cache.New(5*time.Minute, 10*time.Minute), 5*time.Minute, now)
}

func TestGetLedger_CachesSnapshot(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	svc := newTestLedgerService(client, time.Now)

	for i := 0; i < 3; i++ {
		rows, err := svc.GetLedger(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("GetLedger call %d returned error: %v", i, err)
		}
		if len(rows) != 3 {
			t.Fatalf("GetLedger call %d returned %d rows, want 3", i, len(rows))
		}
	}

	if client.fetchCalls != 1 {
		t.Errorf("fund API fetched %d times, want 1 (snapshot should be cached)", client.fetchCalls)
	}
}

func TestGetLedger_EmptyAccountID(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	svc := newTestLedgerService(client, time.Now)

	if _, err := svc.GetLedger(context.Background(), ""); err == nil {
		t.Error("expected error for empty account ID, got nil")
	}
	if client.fetchCalls != 0 {
		t.Errorf("fund API fetched %d times for empty account ID, want 0", client.fetchCalls)
	}
}

func TestGetLedger_FetchErrorNotCached(t *testing.T) {
	client := &fakeFundClient{err: errors.New("upstream down")}
	svc := newTestLedgerService(client, time.Now)

	if _, err := svc.GetLedger(context.Background(), "acc-1"); err == nil {
		t.Fatal("expected fetch error, got nil")
	}

	client.err = nil
	client.rows = sampleLedger()
	rows, err := svc.GetLedger(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("GetLedger after recovery returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows after recovery, want 3", len(rows))
	}
	if client.fetchCalls != 2 {
		t.Errorf("fund API fetched %d times, want 2 (errors must not be cached)", client.fetchCalls)
	}
}

func TestInvalidateLedger_ForcesRefetch(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	svc := newTestLedgerService(client, time.Now)

	if _, err := svc.GetLedger(context.Background(), "acc-1"); err != nil {
		t.Fatalf("first GetLedger returned error: %v", err)
	}
	svc.InvalidateLedger("acc-1")
	if _, err := svc.GetLedger(context.Background(), "acc-1"); err != nil {
		t.Fatalf("second GetLedger returned error: %v", err)
	}

	if client.fetchCalls != 2 {
		t.Errorf("fund API fetched %d times, want 2 after invalidation", client.fetchCalls)
	}
}

func TestGetHistorySeries_DerivesFromSnapshot(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	svc := newTestLedgerService(client, time.Now)

	series, err := svc.GetHistorySeries(context.Background(), "acc-1", models.HistoryRangeAll, "es")
	if err != nil {
		t.Fatalf("GetHistorySeries returned error: %v", err)
	}
	if series.State != models.SeriesOK {
		t.Fatalf("series state = %q, want %q", series.State, models.SeriesOK)
	}
	// Deposit delta equals the deposited amount, so only the operating
	// results contribute gains: +25 in Nov, -10 in Dec.
	if series.Total != 15 {
		t.Errorf("series total = %v, want 15", series.Total)
	}
}

func TestGetHistorySeries_UnknownRange(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	svc := newTestLedgerService(client, time.Now)

	if _, err := svc.GetHistorySeries(context.Background(), "acc-1", models.HistoryRange("99D"), "en"); err == nil {
		t.Error("expected error for unknown history range, got nil")
	}
}

func TestGetOperatingSummary_UsesInjectedClock(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	clock := func() time.Time {
		return time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)
	}
	svc := newTestLedgerService(client, clock)

	summary, err := svc.GetOperatingSummary(context.Background(), "acc-1", "es")
	if err != nil {
		t.Fatalf("GetOperatingSummary returned error: %v", err)
	}
	if summary.State != models.SeriesOK {
		t.Fatalf("summary state = %q, want %q", summary.State, models.SeriesOK)
	}
	if len(summary.Months) != 2 {
		t.Fatalf("got %d months, want 2", len(summary.Months))
	}
	// Months are most-recent-first and the clock puts us inside 2025-12.
	if summary.Months[0].PeriodKey != "2025-12" || !summary.Months[0].IsCurrentPeriod {
		t.Errorf("first month = %+v, want current period 2025-12", summary.Months[0])
	}
	if summary.Months[0].Label != "al día de hoy" {
		t.Errorf("current month label = %q, want %q", summary.Months[0].Label, "al día de hoy")
	}
}

func TestGetPortfolioSeries_DerivesFromSnapshot(t *testing.T) {
	client := &fakeFundClient{rows: sampleLedger()}
	svc := newTestLedgerService(client, time.Now)

	series, err := svc.GetPortfolioSeries(context.Background(), "acc-1", models.PortfolioRangeAll)
	if err != nil {
		t.Fatalf("GetPortfolioSeries returned error: %v", err)
	}
	if series.State != models.SeriesOK {
		t.Fatalf("series state = %q, want %q", series.State, models.SeriesOK)
	}
	if len(series.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(series.Points))
	}
	if series.Points[2].Total != 1015 {
		t.Errorf("last point total = %v, want 1015", series.Points[2].Total)
	}
}
