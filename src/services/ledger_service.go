package services

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/models"
	"github.com/username/fundfolio/backend/src/processors"
)

// ledgerServiceImpl implements the LedgerService interface. It caches the
// raw ledger snapshot per account and re-derives the chart views on every
// call; derivation is cheap and pure, only the fetch is worth caching.
type ledgerServiceImpl struct {
	fundClient FundClient
	cache      *cache.Cache
	cacheTTL   time.Duration

	historyProcessor   processors.HistoryProcessor
	operatingProcessor processors.OperatingProcessor
	portfolioProcessor processors.PortfolioProcessor
}

// NewLedgerService creates a new instance of LedgerService. The clock feeds
// the operating aggregator's current-month detection.
func NewLedgerService(fundClient FundClient, ledgerCache *cache.Cache, cacheTTL time.Duration, now func() time.Time) LedgerService {
	return &ledgerServiceImpl{
		fundClient: fundClient,
		cache:      ledgerCache,
		cacheTTL:   cacheTTL,

		historyProcessor:   processors.NewHistoryProcessor(),
		operatingProcessor: processors.NewOperatingProcessor(now),
		portfolioProcessor: processors.NewPortfolioProcessor(),
	}
}

func ledgerCacheKey(accountID string) string {
	return "ledger:" + accountID
}

func (s *ledgerServiceImpl) GetLedger(ctx context.Context, accountID string) ([]models.LedgerRow, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account ID is empty")
	}

	if cached, found := s.cache.Get(ledgerCacheKey(accountID)); found {
		if rows, ok := cached.([]models.LedgerRow); ok {
			logger.L.Debug("Ledger cache hit", "accountID", accountID, "rows", len(rows))
			return rows, nil
		}
	}

	rows, err := s.fundClient.FetchInvestorLedger(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger for account %s: %w", accountID, err)
	}
	logger.L.Info("Fetched ledger from fund API", "accountID", accountID, "rows", len(rows))

	s.cache.Set(ledgerCacheKey(accountID), rows, s.cacheTTL)
	return rows, nil
}

func (s *ledgerServiceImpl) GetHistorySeries(ctx context.Context, accountID string, rng models.HistoryRange, locale string) (models.HistorySeries, error) {
	rows, err := s.GetLedger(ctx, accountID)
	if err != nil {
		return models.HistorySeries{}, err
	}
	return s.historyProcessor.Build(rows, rng, locale)
}

func (s *ledgerServiceImpl) GetOperatingSummary(ctx context.Context, accountID string, locale string) (models.OperatingSummary, error) {
	rows, err := s.GetLedger(ctx, accountID)
	if err != nil {
		return models.OperatingSummary{}, err
	}
	return s.operatingProcessor.Aggregate(rows, locale), nil
}

func (s *ledgerServiceImpl) GetPortfolioSeries(ctx context.Context, accountID string, rng models.PortfolioRange) (models.PortfolioSeries, error) {
	rows, err := s.GetLedger(ctx, accountID)
	if err != nil {
		return models.PortfolioSeries{}, err
	}
	return s.portfolioProcessor.Build(rows, rng)
}

// InvalidateLedger drops the cached snapshot, e.g. right after a request
// submission changed the account.
func (s *ledgerServiceImpl) InvalidateLedger(accountID string) {
	s.cache.Delete(ledgerCacheKey(accountID))
}
