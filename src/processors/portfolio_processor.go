package processors

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/fundfolio/backend/src/models"
)

// portfolioProcessor implements the PortfolioProcessor interface.
type portfolioProcessor struct{}

// NewPortfolioProcessor creates a new instance of PortfolioProcessor.
func NewPortfolioProcessor() PortfolioProcessor {
	return &portfolioProcessor{}
}

// Build derives the one-point-per-day ending-balance series. Only completed
// rows with a known new balance contribute; when several land on the same
// UTC day, the chronologically last one wins.
func (p *portfolioProcessor) Build(rows []models.LedgerRow, rng models.PortfolioRange) (models.PortfolioSeries, error) {
	if !validPortfolioRange(rng) {
		return models.PortfolioSeries{}, fmt.Errorf("unknown portfolio range %q", rng)
	}

	type dayPoint struct {
		ts    time.Time
		total float64
	}
	byDay := make(map[string]dayPoint)
	for _, row := range rows {
		if ClassifyStatus(row.Status) != models.StatusCompleted || row.NewBalance == nil {
			continue
		}
		ts, ok := ParseTimestamp(row.Date)
		if !ok {
			continue
		}
		key := dayKeyOf(ts)
		if existing, seen := byDay[key]; seen && !ts.After(existing.ts) {
			continue
		}
		byDay[key] = dayPoint{ts: ts, total: *row.NewBalance}
	}

	// A single point cannot be charted meaningfully.
	if len(byDay) < 2 {
		return models.PortfolioSeries{State: models.SeriesEmpty, Points: []models.PortfolioPoint{}}, nil
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	full := make([]models.PortfolioPoint, 0, len(keys))
	for _, key := range keys {
		full = append(full, models.PortfolioPoint{Date: key, Total: byDay[key].total})
	}

	windowed := windowPoints(full, rng)
	if len(windowed) < 2 {
		// An under-determined window is worse than an over-wide one.
		windowed = full
	}
	return models.PortfolioSeries{State: models.SeriesOK, Points: windowed}, nil
}

// windowPoints applies the selected range anchored at the last point's day,
// using calendar arithmetic for month/year ranges.
func windowPoints(points []models.PortfolioPoint, rng models.PortfolioRange) []models.PortfolioPoint {
	if rng == models.PortfolioRangeAll {
		return points
	}
	anchor, err := time.Parse(dayKeyFormat, points[len(points)-1].Date)
	if err != nil {
		return points
	}

	var start time.Time
	switch rng {
	case models.PortfolioRange7D:
		start = anchor.AddDate(0, 0, -7)
	case models.PortfolioRange1M:
		start = anchor.AddDate(0, -1, 0)
	case models.PortfolioRange3M:
		start = anchor.AddDate(0, -3, 0)
	case models.PortfolioRange6M:
		start = anchor.AddDate(0, -6, 0)
	case models.PortfolioRange1Y:
		start = anchor.AddDate(-1, 0, 0)
	}
	startKey := start.Format(dayKeyFormat)

	windowed := make([]models.PortfolioPoint, 0, len(points))
	for _, point := range points {
		if point.Date >= startKey {
			windowed = append(windowed, point)
		}
	}
	return windowed
}

func validPortfolioRange(rng models.PortfolioRange) bool {
	switch rng {
	case models.PortfolioRange7D, models.PortfolioRange1M, models.PortfolioRange3M,
		models.PortfolioRange6M, models.PortfolioRange1Y, models.PortfolioRangeAll:
		return true
	}
	return false
}
