package services

import (
	"context"

	"github.com/username/fundfolio/backend/src/models"
)

// FundClient talks to the fund's backend API, the system that owns balances,
// the ledger, and request execution. This service only consumes it.
type FundClient interface {
	FetchInvestorProfile(ctx context.Context, accountID string) (*models.InvestorProfile, error)
	FetchInvestorLedger(ctx context.Context, accountID string) ([]models.LedgerRow, error)
	FetchWallets(ctx context.Context) ([]models.Wallet, error)
	SubmitRequest(ctx context.Context, submission models.RequestSubmission) (*models.InvestorRequest, error)
}

// LedgerService exposes the derived chart views over a cached ledger
// snapshot. All derivation is pure; the service only adds fetching and
// caching.
type LedgerService interface {
	GetLedger(ctx context.Context, accountID string) ([]models.LedgerRow, error)
	GetHistorySeries(ctx context.Context, accountID string, rng models.HistoryRange, locale string) (models.HistorySeries, error)
	GetOperatingSummary(ctx context.Context, accountID string, locale string) (models.OperatingSummary, error)
	GetPortfolioSeries(ctx context.Context, accountID string, rng models.PortfolioRange) (models.PortfolioSeries, error)
	InvalidateLedger(accountID string)
}

// RequestService validates and forwards deposit/withdrawal requests.
type RequestService interface {
	Submit(ctx context.Context, userID int64, accountID, email, username string, submission models.RequestSubmission) (*models.InvestorRequest, error)
	ListByUser(userID int64) ([]models.InvestorRequest, error)
}

// EmailService sends the portal's transactional email.
type EmailService interface {
	SendVerificationEmail(toEmail, username, token string) error
	SendPasswordResetEmail(toEmail, username, token string) error
	SendRequestReceivedEmail(toEmail, username string, request *models.InvestorRequest) error
}
