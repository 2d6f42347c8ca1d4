package models

import "time"

// LedgerRow represents a single entry of an investor's history as returned
// by the fund API. Balance fields are pointers because the fund omits them
// on rows that have not settled yet; "unknown" must stay distinguishable
// from zero all the way to the presentation layer.
type LedgerRow struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"` // ISO 8601; may be unparsable on legacy rows
	Movement        string   `json:"movement"`
	Amount          float64  `json:"amount"`
	PreviousBalance *float64 `json:"previousBalance"`
	NewBalance      *float64 `json:"newBalance"`
	Status          string   `json:"status"`
}

// MovementKind is the canonical movement taxonomy. Raw ledger labels come in
// Spanish and English spellings (plus the occasional typo) and are mapped to
// exactly one of these by the canonicalizer.
type MovementKind string

const (
	MovementDeposit            MovementKind = "deposit"
	MovementWithdrawal         MovementKind = "withdrawal"
	MovementOperatingResult    MovementKind = "operating_result"
	MovementReferralCommission MovementKind = "referral_commission"
	MovementOther              MovementKind = "other"
)

// StatusKind is the canonical settlement status of a ledger row.
type StatusKind string

const (
	StatusCompleted StatusKind = "completed"
	StatusPending   StatusKind = "pending"
	StatusOther     StatusKind = "other"
)

// SeriesState tells the caller how to render a derived view: "ok" has data,
// "empty" means not enough usable rows, "fallback" means the ledger carried
// no date-valid rows at all and a legacy static view should be shown instead.
type SeriesState string

const (
	SeriesOK       SeriesState = "ok"
	SeriesEmpty    SeriesState = "empty"
	SeriesFallback SeriesState = "fallback"
)

// HistoryRange selects the display window of the gains chart.
type HistoryRange string

const (
	HistoryRange7D  HistoryRange = "7D"
	HistoryRange30D HistoryRange = "30D"
	HistoryRangeYTD HistoryRange = "YTD"
	HistoryRangeAll HistoryRange = "ALL"
)

// PortfolioRange selects the display window of the balance line chart.
type PortfolioRange string

const (
	PortfolioRange7D  PortfolioRange = "7D"
	PortfolioRange1M  PortfolioRange = "1M"
	PortfolioRange3M  PortfolioRange = "3M"
	PortfolioRange6M  PortfolioRange = "6M"
	PortfolioRange1Y  PortfolioRange = "1Y"
	PortfolioRangeAll PortfolioRange = "ALL"
)

// Granularity is the bucketing unit of a derived series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// GainPoint is one bucket of the gains chart.
type GainPoint struct {
	BucketKey string  `json:"bucketKey"` // YYYY-MM-DD or YYYY-MM
	Label     string  `json:"label"`
	Gain      float64 `json:"gain"`
}

// HistorySeries is the derived gains chart for a selected range.
type HistorySeries struct {
	State       SeriesState `json:"state"`
	Granularity Granularity `json:"granularity"`
	Points      []GainPoint `json:"points"`
	Total       float64     `json:"total"`
}

// PortfolioPoint is one day of the ending-balance line chart.
type PortfolioPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Total float64 `json:"total"`
}

// PortfolioSeries is the derived ending-balance chart for a selected range.
type PortfolioSeries struct {
	State  SeriesState      `json:"state"`
	Points []PortfolioPoint `json:"points"`
}

// OperatingMonth is one calendar month of aggregated operating results.
// The month containing "now" is a running total, not a closed bucket.
type OperatingMonth struct {
	PeriodKey       string  `json:"periodKey"` // YYYY-MM
	Label           string  `json:"label"`
	AmountSum       float64 `json:"amountSum"`
	IsCurrentPeriod bool    `json:"isCurrentPeriod"`
}

// OperatingDay is one raw operating-result entry prepared for list display.
// DailyPct is nil when the row carries no usable previous balance.
type OperatingDay struct {
	Date     string   `json:"date"` // YYYY-MM-DD
	Amount   float64  `json:"amount"`
	DailyPct *float64 `json:"dailyPct,omitempty"`
}

// OperatingSummary is the derived operating-result view. Months is ordered
// most recent first for list display; Chart carries the same rows oldest
// first for charting.
type OperatingSummary struct {
	State  SeriesState      `json:"state"`
	Months []OperatingMonth `json:"months"`
	Chart  []OperatingMonth `json:"chart"`
	Days   []OperatingDay   `json:"days"`
}

// InvestorProfile is the fund API's snapshot of an investor's account.
type InvestorProfile struct {
	Balance         float64            `json:"balance"`
	TotalInvested   float64            `json:"totalInvested"`
	StrategyReturns map[string]float64 `json:"strategyReturns"`
	AsOf            string             `json:"asOf"`
}

// Wallet is a deposit destination published by the fund.
type Wallet struct {
	Network string `json:"network"`
	Address string `json:"address"`
	Icon    string `json:"icon"`
}

// RequestKind is the type of an investor request.
type RequestKind string

const (
	RequestDeposit    RequestKind = "DEPOSIT"
	RequestWithdrawal RequestKind = "WITHDRAWAL"
)

// RequestSubmission is the payload forwarded to the fund API when an
// investor asks for a deposit or withdrawal.
type RequestSubmission struct {
	AccountID string      `json:"accountId"`
	Kind      RequestKind `json:"kind"`
	Amount    float64     `json:"amount"`
	Method    string      `json:"method"`
	Address   string      `json:"address,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Reference string      `json:"reference"`
}

// InvestorRequest is a submitted request as recorded locally.
type InvestorRequest struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Kind      RequestKind `json:"kind"`
	Amount    float64     `json:"amount"`
	Method    string      `json:"method"`
	Address   string      `json:"address,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Reference string      `json:"reference"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
