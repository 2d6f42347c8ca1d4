package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/services"
	"github.com/username/fundfolio/backend/src/utils"
)

type WalletHandler struct {
	fundClient services.FundClient
}

func NewWalletHandler(fundClient services.FundClient) *WalletHandler {
	return &WalletHandler{fundClient: fundClient}
}

// HandleGetWallets lists the fund's deposit wallets. Requires auth like
// everything else; the addresses are not public.
func (h *WalletHandler) HandleGetWallets(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	wallets, err := h.fundClient.FetchWallets(r.Context())
	if err != nil {
		logger.L.Error("Failed to fetch wallets", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving wallets: %v", err), http.StatusBadGateway)
		return
	}
	utils.WriteJSON(w, http.StatusOK, wallets)
}
