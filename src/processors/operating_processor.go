package processors

import (
	"sort"
	"time"

	"github.com/username/fundfolio/backend/src/models"
	"github.com/username/fundfolio/backend/src/utils"
)

// asOfTodayLabels is the in-progress month label per locale. The current
// month is a running total, so it must not carry a closed-month label.
var asOfTodayLabels = map[string]string{
	"en": "as of today",
	"es": "al día de hoy",
}

// operatingProcessor implements the OperatingProcessor interface. The clock
// is injected so "current month" is deterministic under test.
type operatingProcessor struct {
	now func() time.Time
}

// NewOperatingProcessor creates a new instance of OperatingProcessor.
func NewOperatingProcessor(now func() time.Time) OperatingProcessor {
	if now == nil {
		now = time.Now
	}
	return &operatingProcessor{now: now}
}

// Aggregate groups operating-result rows into per-month sums. Status is not
// filtered: pending operating rows represent realized daily results that
// simply have not settled, and they count.
func (p *operatingProcessor) Aggregate(rows []models.LedgerRow, locale string) models.OperatingSummary {
	sums := make(map[string]float64)
	days := make([]models.OperatingDay, 0)

	for _, row := range rows {
		if ClassifyMovement(row.Movement) != models.MovementOperatingResult {
			continue
		}
		ts, ok := ParseTimestamp(row.Date)
		if !ok {
			continue
		}
		sums[monthKeyOf(ts)] += row.Amount

		day := models.OperatingDay{Date: dayKeyOf(ts), Amount: row.Amount}
		if row.PreviousBalance != nil && *row.PreviousBalance > 0 {
			pct := utils.RoundFloat(row.Amount / *row.PreviousBalance * 100, 4)
			day.DailyPct = &pct
		}
		days = append(days, day)
	}

	if len(sums) == 0 {
		return models.OperatingSummary{
			State:  models.SeriesEmpty,
			Months: []models.OperatingMonth{},
			Chart:  []models.OperatingMonth{},
			Days:   []models.OperatingDay{},
		}
	}

	currentKey := monthKeyOf(p.now())

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	chart := make([]models.OperatingMonth, 0, len(keys))
	for _, key := range keys {
		month := models.OperatingMonth{
			PeriodKey:       key,
			Label:           FormatBucketLabel(key, models.GranularityMonth, locale),
			AmountSum:       sums[key],
			IsCurrentPeriod: key == currentKey,
		}
		if month.IsCurrentPeriod {
			month.Label = asOfTodayLabel(locale)
		}
		chart = append(chart, month)
	}

	// List display wants most recent first; same rows, reversed.
	months := make([]models.OperatingMonth, len(chart))
	for i, month := range chart {
		months[len(chart)-1-i] = month
	}

	sort.SliceStable(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	return models.OperatingSummary{
		State:  models.SeriesOK,
		Months: months,
		Chart:  chart,
		Days:   days,
	}
}

func asOfTodayLabel(locale string) string {
	if label, ok := asOfTodayLabels[locale]; ok {
		return label
	}
	return asOfTodayLabels["en"]
}
