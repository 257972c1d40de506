package service

const (
	// TargetSavingsRate is the savings rate the saving theme steers toward.
	TargetSavingsRate = 0.20

	// Category thresholds for the expense-reduction theme.
	DiningThreshold    = 200.0
	GroceriesThreshold = 300.0
	UtilitiesThreshold = 100.0

	// Lower thresholds used by the category top-up pass.
	DiningTopUpThreshold    = 150.0
	GroceriesTopUpThreshold = 200.0

	// Action count bounds enforced by the final normalization step.
	MinActions = 2
	MaxActions = 3

	// TopCategoriesConsidered caps how many categories the rules inspect.
	TopCategoriesConsidered = 3

	// ForecastHistoryMonths and ForecastMonths size the synthetic spending
	// history and the projection horizon.
	ForecastHistoryMonths = 6
	ForecastMonths        = 3

	// RawResponseExplanationLimit bounds the raw AI text inserted as an
	// explanation when parsing fails.
	RawResponseExplanationLimit = 200
)

// Fixed fallback strings. The synthesizer contract requires at least one
// explanation and 2-3 actions regardless of input.
const (
	FallbackExplanation = "Analyzing your financial data to provide personalized advice."
	FallbackRationale   = "AI-generated recommendation"
)
