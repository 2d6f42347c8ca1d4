package processors

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/fundfolio/backend/src/models"
)

// historyProcessor implements the HistoryProcessor interface.
type historyProcessor struct{}

// NewHistoryProcessor creates a new instance of HistoryProcessor.
func NewHistoryProcessor() HistoryProcessor {
	return &historyProcessor{}
}

// datedRow pairs a ledger row with its parsed timestamp so sorting and
// windowing never re-parse the date string.
type datedRow struct {
	row models.LedgerRow
	ts  time.Time
}

// Build derives the gains series for the selected range. Gain per row is the
// balance delta minus the investor-driven cash flow, so deposits and
// withdrawals move the balance without ever showing up as performance.
func (p *historyProcessor) Build(rows []models.LedgerRow, rng models.HistoryRange, locale string) (models.HistorySeries, error) {
	granularity := models.GranularityMonth
	if rng == models.HistoryRange7D || rng == models.HistoryRange30D {
		granularity = models.GranularityDay
	}

	dated := datedRows(rows)
	if len(dated) == 0 {
		// No row in the whole ledger has a parsable date. Older account
		// snapshots look like this; the caller shows the legacy static
		// series instead of a gains chart.
		return models.HistorySeries{State: models.SeriesFallback, Granularity: granularity, Points: []models.GainPoint{}}, nil
	}

	source := completedOnly(dated)
	if len(source) == 0 {
		// Nothing marked completed yet. Use every date-valid row rather
		// than rendering an empty chart; completed and non-completed rows
		// are never mixed.
		source = dated
	}

	end := source[len(source)-1].ts
	var start time.Time
	switch rng {
	case models.HistoryRange7D:
		start = end.AddDate(0, 0, -7)
	case models.HistoryRange30D:
		start = end.AddDate(0, 0, -30)
	case models.HistoryRangeYTD:
		start = time.Date(end.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case models.HistoryRangeAll:
		// no lower bound
	default:
		return models.HistorySeries{}, fmt.Errorf("unknown history range %q", rng)
	}

	buckets := make(map[string]float64)
	for _, d := range source {
		if rng != models.HistoryRangeAll && d.ts.Before(start) {
			continue
		}
		if d.ts.After(end) {
			continue
		}
		key := dayKeyOf(d.ts)
		if granularity == models.GranularityMonth {
			key = monthKeyOf(d.ts)
		}
		buckets[key] += rowGain(d.row)
	}

	if len(buckets) == 0 {
		return models.HistorySeries{State: models.SeriesEmpty, Granularity: granularity, Points: []models.GainPoint{}}, nil
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := models.HistorySeries{
		State:       models.SeriesOK,
		Granularity: granularity,
		Points:      make([]models.GainPoint, 0, len(keys)),
	}
	for _, key := range keys {
		gain := buckets[key]
		series.Points = append(series.Points, models.GainPoint{
			BucketKey: key,
			Label:     FormatBucketLabel(key, granularity, locale),
			Gain:      gain,
		})
		series.Total += gain
	}
	return series, nil
}

// rowGain isolates performance from investor cash movement: the balance
// delta of the row, minus the amount when the row is itself a deposit or
// withdrawal. Missing balances count as zero here (the row still moved the
// balance by an unknown amount we cannot attribute).
func rowGain(row models.LedgerRow) float64 {
	var prev, next float64
	if row.PreviousBalance != nil {
		prev = *row.PreviousBalance
	}
	if row.NewBalance != nil {
		next = *row.NewBalance
	}
	delta := next - prev

	switch ClassifyMovement(row.Movement) {
	case models.MovementDeposit, models.MovementWithdrawal:
		return delta - row.Amount
	default:
		return delta
	}
}

// datedRows drops rows with unparsable dates and returns the remainder
// sorted ascending by timestamp. The input slice is never reordered.
func datedRows(rows []models.LedgerRow) []datedRow {
	dated := make([]datedRow, 0, len(rows))
	for _, row := range rows {
		ts, ok := ParseTimestamp(row.Date)
		if !ok {
			continue
		}
		dated = append(dated, datedRow{row: row, ts: ts})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].ts.Equal(dated[j].ts) {
			return dated[i].row.ID < dated[j].row.ID
		}
		return dated[i].ts.Before(dated[j].ts)
	})
	return dated
}

func completedOnly(dated []datedRow) []datedRow {
	completed := make([]datedRow, 0, len(dated))
	for _, d := range dated {
		if ClassifyStatus(d.row.Status) == models.StatusCompleted {
			completed = append(completed, d)
		}
	}
	return completed
}
