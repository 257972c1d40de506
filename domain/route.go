package domain

// RouteTarget identifies the pipeline a user query is dispatched to.
type RouteTarget string

const (
	RouteFinance RouteTarget = "finance"
	RouteChat    RouteTarget = "chat"
)

// RoutingDecision is the serializable outcome of classifying one query.
// Rule is nil when the default target applied.
type RoutingDecision struct {
	Target RouteTarget `json:"target"`
	Rule   *string     `json:"rule"`
}
