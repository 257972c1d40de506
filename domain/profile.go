package domain

// FinancialProfile is a read-only snapshot of a user's financial situation,
// sourced from the profile store at the start of a request.
type FinancialProfile struct {
	UserID      string  `json:"user_id"`
	Income      float64 `json:"income"`
	SavingsRate float64 `json:"savings_rate"`
	RiskLevel   int     `json:"risk_level"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
}

// DefaultProfile is the fallback snapshot used when the profile store is
// unavailable or has no row for the user.
func DefaultProfile(userID string) FinancialProfile {
	return FinancialProfile{
		UserID:      userID,
		Income:      5000.0,
		SavingsRate: 0.12,
		RiskLevel:   3,
		Name:        "User",
		Email:       "",
	}
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SpendingSummary aggregates a user's recent transactions. TopCategories is
// sorted descending by total and holds at most the five largest categories.
type SpendingSummary struct {
	LastMonthSpend    float64         `json:"last_month_spend"`
	TopCategories     []CategoryTotal `json:"top_categories"`
	TotalTransactions int             `json:"total_transactions"`
	AvgMonthlySpend   float64         `json:"avg_monthly_spend"`
}

// DefaultSummary mirrors DefaultProfile's fallback behavior.
func DefaultSummary() SpendingSummary {
	return SpendingSummary{
		LastMonthSpend: 2200.0,
		TopCategories: []CategoryTotal{
			{Category: "groceries", Total: 520.0},
			{Category: "dining", Total: 310.0},
			{Category: "utilities", Total: 260.0},
		},
		TotalTransactions: 0,
		AvgMonthlySpend:   2200.0,
	}
}
