package processors

import (
	"github.com/username/fundfolio/backend/src/models"
)

// HistoryProcessor builds the range-windowed gains series for the dashboard
// chart. Implementations are pure: same ledger and parameters, same output.
type HistoryProcessor interface {
	Build(rows []models.LedgerRow, rng models.HistoryRange, locale string) (models.HistorySeries, error)
}

// OperatingProcessor aggregates operating-result rows into per-month totals,
// treating the month containing "now" as a running total.
type OperatingProcessor interface {
	Aggregate(rows []models.LedgerRow, locale string) models.OperatingSummary
}

// PortfolioProcessor builds the one-point-per-day ending-balance series for
// the portfolio line chart, with client-side range windowing.
type PortfolioProcessor interface {
	Build(rows []models.LedgerRow, rng models.PortfolioRange) (models.PortfolioSeries, error)
}
