package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/username/fundfolio/backend/src/config"
	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/models"
	"github.com/username/fundfolio/backend/src/services"
	"github.com/username/fundfolio/backend/src/utils"
)

type PortfolioHandler struct {
	fundClient    services.FundClient
	ledgerService services.LedgerService
}

func NewPortfolioHandler(fundClient services.FundClient, ledgerService services.LedgerService) *PortfolioHandler {
	return &PortfolioHandler{
		fundClient:    fundClient,
		ledgerService: ledgerService,
	}
}

func (h *PortfolioHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	logger.L.Debug("Handling GetSummary", "userID", user.ID)

	profile, err := h.fundClient.FetchInvestorProfile(r.Context(), user.FundAccountID)
	if err != nil {
		logger.L.Error("Failed to fetch investor profile", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving profile: %v", err), http.StatusBadGateway)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *PortfolioHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	logger.L.Debug("Handling GetLedger", "userID", user.ID)

	rows, err := h.ledgerService.GetLedger(r.Context(), user.FundAccountID)
	if err != nil {
		logger.L.Error("Failed to fetch ledger", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving ledger: %v", err), http.StatusBadGateway)
		return
	}
	writeWithETag(w, r, rows)
}

func (h *PortfolioHandler) HandleGetHistorySeries(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	rng := models.HistoryRange(r.URL.Query().Get("range"))
	if rng == "" {
		rng = models.HistoryRangeAll
	}
	locale := requestLocale(r, config.Cfg.DefaultLocale)
	logger.L.Debug("Handling GetHistorySeries", "userID", user.ID, "range", rng, "locale", locale)

	series, err := h.ledgerService.GetHistorySeries(r.Context(), user.FundAccountID, rng, locale)
	if err != nil {
		if strings.Contains(err.Error(), "unknown history range") {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Failed to build history series", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error building history series: %v", err), http.StatusBadGateway)
		return
	}
	writeWithETag(w, r, series)
}

func (h *PortfolioHandler) HandleGetPortfolioSeries(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	rng := models.PortfolioRange(r.URL.Query().Get("range"))
	if rng == "" {
		rng = models.PortfolioRangeAll
	}
	logger.L.Debug("Handling GetPortfolioSeries", "userID", user.ID, "range", rng)

	series, err := h.ledgerService.GetPortfolioSeries(r.Context(), user.FundAccountID, rng)
	if err != nil {
		if strings.Contains(err.Error(), "unknown portfolio range") {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Failed to build portfolio series", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error building portfolio series: %v", err), http.StatusBadGateway)
		return
	}
	writeWithETag(w, r, series)
}

// writeWithETag sends data as JSON with an ETag, answering 304 when the
// client already holds the current representation.
func writeWithETag(w http.ResponseWriter, r *http.Request, data interface{}) {
	w.Header().Set("Cache-Control", "no-cache, private")

	currentETag, etagErr := utils.GenerateETag(data)
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		logger.L.Warn("Proceeding without ETag check", "error", etagErr)
	}

	utils.WriteJSON(w, http.StatusOK, data)
}
