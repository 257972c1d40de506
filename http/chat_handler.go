package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finance-advisor/domain"
	"finance-advisor/service"
)

type ChatHandler struct {
	service *service.ChatService
}

func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.ChatRequest
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

	result, err := h.service.Reply(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrFinanceQuery) {
			http.Error(w, "finance queries belong on /advisor", http.StatusBadRequest)
			return
		}
		log.Printf("Error generating chat reply: %v", err)
		http.Error(w, "chat provider unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
