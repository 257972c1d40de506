package domain

// AdviceItem is one suggested action with its expected monthly impact in the
// profile's currency. Value object, never mutated after creation.
type AdviceItem struct {
	Action          string  `json:"action"`
	Rationale       string  `json:"rationale"`
	EstimatedImpact float64 `json:"estimated_impact"`
}

// AdvisorResult is the advisory bundle produced for one request.
// SuggestedActions always holds exactly 2 or 3 items and Explanations is
// never empty.
type AdvisorResult struct {
	Forecast         map[string][]float64 `json:"forecast"`
	Explanations     []string             `json:"explanations"`
	SuggestedActions []AdviceItem         `json:"suggested_actions"`
}

type AdvisorRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

type AdvisorResponse struct {
	UserID string      `json:"user_id"`
	Route  RouteTarget `json:"route"`
	Rule   *string     `json:"rule"`
	Query  string      `json:"query"`
	AdvisorResult
}

type ChatRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
	// IncludeContext adds a short anonymized finance summary to the prompt.
	IncludeContext bool `json:"include_context"`
}

type ChatResponse struct {
	UserID   string      `json:"user_id"`
	Route    RouteTarget `json:"route"`
	Rule     *string     `json:"rule"`
	Provider string      `json:"provider"`
	Reply    string      `json:"reply"`
}
