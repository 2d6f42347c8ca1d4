package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/fundfolio/backend/src/logger"
	"github.com/username/fundfolio/backend/src/models"
	"github.com/username/fundfolio/backend/src/services"
	"github.com/username/fundfolio/backend/src/utils"
)

type RequestHandler struct {
	requestService services.RequestService
}

func NewRequestHandler(requestService services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) HandleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var submission models.RequestSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accepted, err := h.requestService.Submit(r.Context(), user.ID, user.FundAccountID, user.Email, user.Username, submission)
	if err != nil {
		if strings.Contains(err.Error(), "invalid request kind") ||
			strings.Contains(err.Error(), "must be positive") ||
			strings.Contains(err.Error(), "unknown request method") {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Request submission failed", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error submitting request: %v", err), http.StatusBadGateway)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, accepted)
}

func (h *RequestHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := h.requestService.ListByUser(user.ID)
	if err != nil {
		logger.L.Error("Failed to list requests", "userID", user.ID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error listing requests: %v", err), http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.InvestorRequest{}
	}
	utils.WriteJSON(w, http.StatusOK, requests)
}
