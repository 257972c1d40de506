package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-advisor/domain"
	"finance-advisor/routing"
	"finance-advisor/service"
)

func newChatHandler() *ChatHandler {
	return NewChatHandler(service.NewChatService(routing.Default(), nil))
}

func TestChatHandler_FinanceQueryRejected(t *testing.T) {
	handler := newChatHandler()

	body := []byte(`{"user_id": "u1", "query": "predict my budget"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBuffer(body))

	w := httptest.NewRecorder()
	handler.Chat(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for finance query, got %d", w.Code)
	}
}

func TestChatHandler_OKWithoutProvider(t *testing.T) {
	handler := newChatHandler()

	body := []byte(`{"user_id": "u1", "query": "hello there"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBuffer(body))

	w := httptest.NewRecorder()
	handler.Chat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out domain.ChatResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Provider != "none" {
		t.Errorf("expected provider none, got %q", out.Provider)
	}
}

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	handler := newChatHandler()

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
