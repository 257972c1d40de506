package domain

type InvestmentOption struct {
	Name        string `json:"name"`
	Returns     string `json:"returns"`
	Description string `json:"description"`
}

// InvestmentPlan is the recommendation table for one risk level (1-5).
type InvestmentPlan struct {
	Level      int                `json:"level"`
	Label      string             `json:"label"`
	ShortTerm  []InvestmentOption `json:"short_term"`
	MediumTerm []InvestmentOption `json:"medium_term"`
	LongTerm   []InvestmentOption `json:"long_term"`
}

type InvestmentPlanRequest struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// InvestmentPlanResult pairs the plan for the user's risk level with a
// suggested split of the requested amount across horizons.
type InvestmentPlanResult struct {
	UserID     string             `json:"user_id"`
	Amount     float64            `json:"amount"`
	Plan       InvestmentPlan     `json:"plan"`
	Allocation map[string]float64 `json:"allocation"`
}
