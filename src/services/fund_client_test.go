package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/username/fundfolio/backend/src/models"
)

func TestFetchInvestorLedger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/investors/acc-1/history" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.LedgerRow{
			{ID: "1", Date: "2025-11-03T10:00:00Z", Movement: "Depósito", Amount: 500, Status: "Completado"},
		})
	}))
	defer server.Close()

	client := NewFundClient(server.URL, "test-key", 5*time.Second)
	rows, err := client.FetchInvestorLedger(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("FetchInvestorLedger returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "1" || rows[0].Amount != 500 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestFetchInvestorLedger_NullBodyYieldsEmptySlice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	client := NewFundClient(server.URL, "", 5*time.Second)
	rows, err := client.FetchInvestorLedger(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("FetchInvestorLedger returned error: %v", err)
	}
	if rows == nil {
		t.Fatal("rows is nil, want empty slice")
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestFetchInvestorLedger_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewFundClient(server.URL, "", 5*time.Second)
	if _, err := client.FetchInvestorLedger(context.Background(), "acc-1"); err == nil {
		t.Error("expected error for upstream 500, got nil")
	}
}

func TestFetchWallets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wallets" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Wallet{
			{Network: "USDT-TRC20", Address: "TX123", Icon: "usdt"},
		})
	}))
	defer server.Close()

	client := NewFundClient(server.URL, "", 5*time.Second)
	wallets, err := client.FetchWallets(context.Background())
	if err != nil {
		t.Fatalf("FetchWallets returned error: %v", err)
	}
	if len(wallets) != 1 || wallets[0].Network != "USDT-TRC20" {
		t.Errorf("unexpected wallets: %+v", wallets)
	}
}

func TestSubmitRequest(t *testing.T) {
	var received models.RequestSubmission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/requests" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode submission: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "req-9", "status": "PENDING"})
	}))
	defer server.Close()

	client := NewFundClient(server.URL, "", 5*time.Second)
	submission := models.RequestSubmission{
		AccountID: "acc-1",
		Kind:      models.RequestDeposit,
		Amount:    250,
		Method:    "USDT-TRC20",
		Reference: "ref-1",
	}
	request, err := client.SubmitRequest(context.Background(), submission)
	if err != nil {
		t.Fatalf("SubmitRequest returned error: %v", err)
	}
	if received.AccountID != "acc-1" || received.Kind != models.RequestDeposit {
		t.Errorf("fund API received %+v", received)
	}
	if request.Status != "PENDING" {
		t.Errorf("request status = %q, want PENDING", request.Status)
	}
	if request.Reference != "ref-1" {
		t.Errorf("request reference = %q, want ref-1", request.Reference)
	}
}
