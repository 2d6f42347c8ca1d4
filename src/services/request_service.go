package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/model"
	"github.com/username/fundfolio/backend/src/models"
	"github.com/username/fundfolio/backend/src/security/validation"
)

// knownMethods are the payment rails the fund currently accepts.
var knownMethods = map[string]bool{
	"USDT-TRC20": true,
	"USDT-ERC20": true,
	"BTC":        true,
	"BANK":       true,
}

// requestServiceImpl implements the RequestService interface.
type requestServiceImpl struct {
	db            *sql.DB
	fundClient    FundClient
	ledgerService LedgerService
	emailService  EmailService
}

// NewRequestService creates a new instance of RequestService.
func NewRequestService(db *sql.DB, fundClient FundClient, ledgerService LedgerService, emailService EmailService) RequestService {
	return &requestServiceImpl{
		db:            db,
		fundClient:    fundClient,
		ledgerService: ledgerService,
		emailService:  emailService,
	}
}

// Submit validates a deposit/withdrawal request, forwards it to the fund
// API, records it locally, and notifies the investor by email. The cached
// ledger snapshot is invalidated so the next chart reflects the pending row.
func (s *requestServiceImpl) Submit(ctx context.Context, userID int64, accountID, email, username string, submission models.RequestSubmission) (*models.InvestorRequest, error) {
	if submission.Kind != models.RequestDeposit && submission.Kind != models.RequestWithdrawal {
		return nil, fmt.Errorf("invalid request kind %q", submission.Kind)
	}
	if submission.Amount <= 0 {
		return nil, fmt.Errorf("request amount must be positive, got %v", submission.Amount)
	}
	if !knownMethods[submission.Method] {
		return nil, fmt.Errorf("unknown request method %q", submission.Method)
	}

	submission.AccountID = accountID
	submission.Address = validation.CleanFreeText(submission.Address)
	submission.Notes = validation.CleanFreeText(submission.Notes)
	submission.Reference = uuid.NewString()

	accepted, err := s.fundClient.SubmitRequest(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("fund API rejected request: %w", err)
	}

	accepted.UserID = userID
	if err := model.CreateInvestorRequest(s.db, accepted); err != nil {
		// The fund accepted it; losing the local record must not fail the
		// submission from the investor's point of view.
		logger.L.Error("Failed to record accepted request locally",
			"userID", userID, "reference", accepted.Reference, "error", err)
	}

	s.ledgerService.InvalidateLedger(accountID)

	if err := s.emailService.SendRequestReceivedEmail(email, username, accepted); err != nil {
		logger.L.Warn("Failed to send request-received email",
			"userID", userID, "reference", accepted.Reference, "error", err)
	}

	logger.L.Info("Investor request submitted",
		"userID", userID, "kind", accepted.Kind, "amount", accepted.Amount, "reference", accepted.Reference)
	return accepted, nil
}

func (s *requestServiceImpl) ListByUser(userID int64) ([]models.InvestorRequest, error) {
	return model.ListInvestorRequestsByUser(s.db, userID)
}
