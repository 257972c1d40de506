package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-advisor/domain"
	"finance-advisor/repository"
	"finance-advisor/routing"
	"finance-advisor/service"
)

func newAdvisorHandler() *AdvisorHandler {
	svc := service.NewAdvisorService(
		routing.Default(),
		repository.NewMemoryProfileRepository(),
		repository.NewMockCache(),
		repository.NewMemoryAdviceRepository(),
		nil,
	)
	return NewAdvisorHandler(svc)
}

func TestAdvisorHandler_OK(t *testing.T) {
	handler := newAdvisorHandler()

	body := []byte(`{"user_id": "u1", "query": "how can I save more"}`)

	req := httptest.NewRequest(http.MethodPost, "/advisor", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.Advise(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out domain.AdvisorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Route != domain.RouteFinance {
		t.Errorf("expected finance route, got %q", out.Route)
	}
	if n := len(out.SuggestedActions); n < 2 || n > 3 {
		t.Errorf("expected 2-3 actions, got %d", n)
	}
}

func TestAdvisorHandler_MethodNotAllowed(t *testing.T) {
	handler := newAdvisorHandler()

	req := httptest.NewRequest(http.MethodGet, "/advisor", nil)
	w := httptest.NewRecorder()

	handler.Advise(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestAdvisorHandler_BadRequest(t *testing.T) {
	handler := newAdvisorHandler()

	req := httptest.NewRequest(http.MethodPost, "/advisor", bytes.NewBuffer([]byte(`{invalid-json}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.Advise(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdvisorHandler_MissingUserID(t *testing.T) {
	handler := newAdvisorHandler()

	req := httptest.NewRequest(http.MethodPost, "/advisor", bytes.NewBuffer([]byte(`{"query": "budget help"}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.Advise(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdvisorHandler_UnsupportedMediaType(t *testing.T) {
	handler := newAdvisorHandler()

	req := httptest.NewRequest(http.MethodPost, "/advisor", bytes.NewBuffer([]byte(`user_id=u1`)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	handler.Advise(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}
