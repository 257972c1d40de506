package http

import (
	"encoding/json"
	"net/http"

	"finance-advisor/domain"
	"finance-advisor/service"
)

type InvestmentHandler struct {
	service *service.InvestmentService
}

func NewInvestmentHandler(service *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

func (h *InvestmentHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.InvestmentPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.UserID == "" {
		input.UserID = UserFromContext(r.Context())
	}
	if input.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	result := h.service.PlanFor(r.Context(), input.UserID, input.Amount)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
