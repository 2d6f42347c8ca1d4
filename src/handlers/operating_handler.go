package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/fundfolio/backend/src/config"
	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/services"
	"github.com/username/fundfolio/backend/src/utils"
)

type OperatingHandler struct {
	ledgerService services.LedgerService
}

func NewOperatingHandler(ledgerService services.LedgerService) *OperatingHandler {
	return &OperatingHandler{ledgerService: ledgerService}
}

// HandleGetMonthlySummary serves the per-month operating-result view: the
// descending list, the ascending chart rows, and the daily detail rows.
func (h *OperatingHandler) HandleGetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	locale := requestLocale(r, config.Cfg.DefaultLocale)
	logger.L.Debug("Handling GetMonthlySummary", "userID", user.ID, "locale", locale)

	summary, err := h.ledgerService.GetOperatingSummary(r.Context(), user.FundAccountID, locale)
	if err != nil {
		logger.L.Error("Failed to build operating summary", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error building operating summary: %v", err), http.StatusBadGateway)
		return
	}
	writeWithETag(w, r, summary)
}
