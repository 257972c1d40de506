package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"finance-advisor/domain"
)

const (
	transactionWindowDays = 90
	topCategoriesKept     = 5
)

// SupabaseRepository reads profile and transaction rows from a hosted
// PostgREST-style table API. It only issues filtered selects; all writes to
// these tables happen elsewhere in the system.
type SupabaseRepository struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	now        func() time.Time
}

func NewSupabaseRepository(baseURL, serviceKey string) *SupabaseRepository {
	return &SupabaseRepository{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

type userRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type questionRow struct {
	QID    string `json:"q_id"`
	Answer string `json:"answer"`
}

type transactionRow struct {
	Date     string      `json:"date"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
}

// Profile loads the user row plus onboarding answers and assembles the
// financial profile. Missing or malformed answers fall back to the default
// snapshot values field by field.
func (r *SupabaseRepository) Profile(ctx context.Context, userID string) (domain.FinancialProfile, error) {
	var users []userRow
	if err := r.selectRows(ctx, "users", url.Values{
		"id":     {"eq." + userID},
		"select": {"id,name,email"},
	}, &users); err != nil {
		return domain.FinancialProfile{}, err
	}
	if len(users) == 0 {
		return domain.FinancialProfile{}, ErrNotFound
	}

	var questions []questionRow
	if err := r.selectRows(ctx, "user_questions", url.Values{
		"user_id": {"eq." + userID},
		"select":  {"q_id,answer"},
	}, &questions); err != nil {
		return domain.FinancialProfile{}, err
	}

	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		answers[q.QID] = q.Answer
	}

	defaults := domain.DefaultProfile(userID)
	profile := domain.FinancialProfile{
		UserID:      userID,
		Income:      parseFloatOr(answers["income"], defaults.Income),
		SavingsRate: parseFloatOr(answers["savings_rate"], defaults.SavingsRate),
		RiskLevel:   parseIntOr(answers["risk_tolerance"], defaults.RiskLevel),
		Name:        users[0].Name,
		Email:       users[0].Email,
	}
	if profile.Name == "" {
		profile.Name = defaults.Name
	}
	return profile, nil
}

// Summary aggregates the last ~3 months of transactions: previous calendar
// month's spend, top category totals (descending, capped), transaction count
// and mean monthly spend. Amounts are summed as decimals and converted to
// float only at the boundary.
func (r *SupabaseRepository) Summary(ctx context.Context, userID string) (domain.SpendingSummary, error) {
	since := r.now().AddDate(0, 0, -transactionWindowDays).Format("2006-01-02")

	var rows []transactionRow
	if err := r.selectRows(ctx, "transactions", url.Values{
		"user_id": {"eq." + userID},
		"date":    {"gte." + since},
		"select":  {"date,amount,category"},
	}, &rows); err != nil {
		return domain.SpendingSummary{}, err
	}
	if len(rows) == 0 {
		return domain.SpendingSummary{}, ErrNotFound
	}

	lastMonthStart, lastMonthEnd := previousMonthBounds(r.now())

	lastMonthSpend := decimal.Zero
	categoryTotals := map[string]decimal.Decimal{}
	monthTotals := map[string]decimal.Decimal{}

	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount.String())
		if err != nil {
			continue
		}
		amount = amount.Abs()

		day, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}

		if !day.Before(lastMonthStart) && day.Before(lastMonthEnd) {
			lastMonthSpend = lastMonthSpend.Add(amount)
		}
		category := row.Category
		if category == "" {
			category = "other"
		}
		categoryTotals[category] = categoryTotals[category].Add(amount)
		monthKey := day.Format("2006-01")
		monthTotals[monthKey] = monthTotals[monthKey].Add(amount)
	}

	cats := make([]domain.CategoryTotal, 0, len(categoryTotals))
	for name, total := range categoryTotals {
		t, _ := total.Float64()
		cats = append(cats, domain.CategoryTotal{Category: name, Total: t})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Total != cats[j].Total {
			return cats[i].Total > cats[j].Total
		}
		return cats[i].Category < cats[j].Category
	})
	if len(cats) > topCategoriesKept {
		cats = cats[:topCategoriesKept]
	}

	avg := decimal.Zero
	if len(monthTotals) > 0 {
		for _, total := range monthTotals {
			avg = avg.Add(total)
		}
		avg = avg.Div(decimal.NewFromInt(int64(len(monthTotals))))
	}

	spend, _ := lastMonthSpend.Float64()
	avgSpend, _ := avg.Float64()
	return domain.SpendingSummary{
		LastMonthSpend:    spend,
		TopCategories:     cats,
		TotalTransactions: len(rows),
		AvgMonthlySpend:   avgSpend,
	}, nil
}

// selectRows issues a filtered select against one table and decodes the row
// collection. An empty result is not an error here; callers decide.
func (r *SupabaseRepository) selectRows(ctx context.Context, table string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", r.baseURL, table, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", r.serviceKey)
	req.Header.Set("Authorization", "Bearer "+r.serviceKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("supabase: select %s failed (status %d): %s", table, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// previousMonthBounds returns [first day of last month, first day of this
// month) in the reference time's location.
func previousMonthBounds(ref time.Time) (time.Time, time.Time) {
	firstOfThisMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return firstOfThisMonth.AddDate(0, -1, 0), firstOfThisMonth
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
