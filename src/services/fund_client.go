package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/models"
	"golang.org/x/net/publicsuffix"
)

// fundClientImpl implements the FundClient interface over the fund's REST
// API. The cookie jar keeps the fund's sticky-session cookie across calls.
type fundClientImpl struct {
	baseURL    string
	apiKey     string
	httpClient http.Client
}

// NewFundClient creates a new instance of the fund API client.
func NewFundClient(baseURL, apiKey string, timeout time.Duration) FundClient {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	return &fundClientImpl{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}
}

func (c *fundClientImpl) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build fund API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fund API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.L.Warn("Fund API returned non-success status",
			"method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("fund API %s %s returned status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode fund API response for %s: %w", path, err)
	}
	return nil
}

func (c *fundClientImpl) FetchInvestorProfile(ctx context.Context, accountID string) (*models.InvestorProfile, error) {
	var profile models.InvestorProfile
	if err := c.doJSON(ctx, http.MethodGet, "/investors/"+accountID+"/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *fundClientImpl) FetchInvestorLedger(ctx context.Context, accountID string) ([]models.LedgerRow, error) {
	var rows []models.LedgerRow
	if err := c.doJSON(ctx, http.MethodGet, "/investors/"+accountID+"/history", nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.LedgerRow{}
	}
	return rows, nil
}

func (c *fundClientImpl) FetchWallets(ctx context.Context) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := c.doJSON(ctx, http.MethodGet, "/wallets", nil, &wallets); err != nil {
		return nil, err
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}
	return wallets, nil
}

func (c *fundClientImpl) SubmitRequest(ctx context.Context, submission models.RequestSubmission) (*models.InvestorRequest, error) {
	var accepted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/requests", submission, &accepted); err != nil {
		return nil, err
	}

	status := accepted.Status
	if status == "" {
		status = "SUBMITTED"
	}
	return &models.InvestorRequest{
		Kind:      submission.Kind,
		Amount:    submission.Amount,
		Method:    submission.Method,
		Address:   submission.Address,
		Notes:     submission.Notes,
		Reference: submission.Reference,
		Status:    status,
	}, nil
}
