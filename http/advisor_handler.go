package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"finance-advisor/domain"
	"finance-advisor/service"
)

type AdvisorHandler struct {
	service *service.AdvisorService
}

func NewAdvisorHandler(service *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

func (h *AdvisorHandler) Advise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.AdvisorRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
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

	result := h.service.Advise(r.Context(), input)

	// Encode into a buffer first so a failure never follows a written header.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
