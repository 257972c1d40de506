package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeSupabase serves canned PostgREST rows per table.
func fakeSupabase(t *testing.T, tables map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") == "" {
			t.Errorf("missing apikey header on %s", r.URL.Path)
		}
		for table, rows := range tables {
			if r.URL.Path == "/rest/v1/"+table {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, rows)
				return
			}
		}
		http.NotFound(w, r)
	}))
}

func TestSupabaseProfile_AssemblesFromAnswers(t *testing.T) {
	srv := fakeSupabase(t, map[string]string{
		"users": `[{"id": "u1", "name": "Priya", "email": "priya@example.com"}]`,
		"user_questions": `[
			{"q_id": "income", "answer": "9000"},
			{"q_id": "savings_rate", "answer": "0.25"},
			{"q_id": "risk_tolerance", "answer": "4"}
		]`,
	})
	defer srv.Close()

	repo := NewSupabaseRepository(srv.URL, "test-key")

	profile, err := repo.Profile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Income != 9000 || profile.SavingsRate != 0.25 || profile.RiskLevel != 4 {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if profile.Name != "Priya" {
		t.Errorf("expected name from users row, got %q", profile.Name)
	}
}

func TestSupabaseProfile_MalformedAnswersFallBack(t *testing.T) {
	srv := fakeSupabase(t, map[string]string{
		"users": `[{"id": "u1", "name": "", "email": ""}]`,
		"user_questions": `[
			{"q_id": "income", "answer": "not-a-number"},
			{"q_id": "risk_tolerance", "answer": ""}
		]`,
	})
	defer srv.Close()

	repo := NewSupabaseRepository(srv.URL, "test-key")

	profile, err := repo.Profile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Income != 5000 || profile.RiskLevel != 3 {
		t.Errorf("expected default values for malformed answers, got %+v", profile)
	}
	if profile.Name != "User" {
		t.Errorf("expected default name, got %q", profile.Name)
	}
}

func TestSupabaseProfile_UnknownUser(t *testing.T) {
	srv := fakeSupabase(t, map[string]string{"users": `[]`})
	defer srv.Close()

	repo := NewSupabaseRepository(srv.URL, "test-key")

	_, err := repo.Profile(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSupabaseSummary_AggregatesTransactions(t *testing.T) {
	srv := fakeSupabase(t, map[string]string{
		"transactions": `[
			{"date": "2025-05-03", "amount": 120.50, "category": "groceries"},
			{"date": "2025-05-10", "amount": -80.25, "category": "dining"},
			{"date": "2025-05-20", "amount": 199.25, "category": "groceries"},
			{"date": "2025-04-15", "amount": 300, "category": "rent"},
			{"date": "2025-06-01", "amount": 50, "category": ""}
		]`,
	})
	defer srv.Close()

	repo := NewSupabaseRepository(srv.URL, "test-key")
	repo.now = func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	}

	summary, err := repo.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// May is the previous calendar month; amounts count as absolute values.
	if math.Abs(summary.LastMonthSpend-400.0) > 1e-9 {
		t.Errorf("expected last month spend 400, got %v", summary.LastMonthSpend)
	}
	if summary.TotalTransactions != 5 {
		t.Errorf("expected 5 transactions, got %d", summary.TotalTransactions)
	}
	if len(summary.TopCategories) != 4 {
		t.Fatalf("expected 4 categories, got %+v", summary.TopCategories)
	}
	if summary.TopCategories[0].Category != "groceries" || math.Abs(summary.TopCategories[0].Total-319.75) > 1e-9 {
		t.Errorf("unexpected top category: %+v", summary.TopCategories[0])
	}
	if summary.TopCategories[3].Category != "other" {
		t.Errorf("expected blank category mapped to other, got %+v", summary.TopCategories[3])
	}

	// Three distinct months: (300 + 400 + 50) / 3.
	if math.Abs(summary.AvgMonthlySpend-250.0) > 1e-9 {
		t.Errorf("expected avg monthly spend 250, got %v", summary.AvgMonthlySpend)
	}
}

func TestSupabaseSummary_NoTransactions(t *testing.T) {
	srv := fakeSupabase(t, map[string]string{"transactions": `[]`})
	defer srv.Close()

	repo := NewSupabaseRepository(srv.URL, "test-key")

	_, err := repo.Summary(context.Background(), "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSupabaseSelect_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	repo := NewSupabaseRepository(srv.URL, "test-key")

	_, err := repo.Profile(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error from non-200 response")
	}
}
