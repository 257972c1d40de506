package service

import (
	"fmt"
	"math"
	"strings"

	"finance-advisor/domain"
)

// roundTo2Decimals rounds a monetary value to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// adviceContext carries the figures a theme handler works with plus the
// explanations and actions accumulated so far.
type adviceContext struct {
	query   string
	profile domain.FinancialProfile
	summary domain.SpendingSummary

	income       float64
	lastSpend    float64
	savingsRate  float64
	transactions int
	avgSpend     float64
	forecast     map[string][]float64

	explanations []string
	actions      []domain.AdviceItem
}

func (c *adviceContext) explain(format string, args ...any) {
	c.explanations = append(c.explanations, fmt.Sprintf(format, args...))
}

func (c *adviceContext) act(action, rationale string, impact float64) {
	c.actions = append(c.actions, domain.AdviceItem{
		Action:          action,
		Rationale:       rationale,
		EstimatedImpact: impact,
	})
}

func (c *adviceContext) topCategories() []domain.CategoryTotal {
	cats := c.summary.TopCategories
	if len(cats) > TopCategoriesConsidered {
		cats = cats[:TopCategoriesConsidered]
	}
	return cats
}

// theme is one mutually exclusive query intent. Themes are evaluated in
// order and only the first whose keywords match fires; the priority order is
// load-bearing ("spending" belongs to pattern-analysis, not saving).
type theme struct {
	name     string
	keywords []string
	apply    func(c *adviceContext)
}

func (t theme) matches(queryLower string) bool {
	for _, k := range t.keywords {
		if strings.Contains(queryLower, k) {
			return true
		}
	}
	return false
}

// AdviceGenerator produces deterministic rule-based advice from a query and
// a profile/summary snapshot. Stateless after construction and safe for
// concurrent use.
type AdviceGenerator struct {
	themes  []theme
	general theme
}

func NewAdviceGenerator() *AdviceGenerator {
	return &AdviceGenerator{
		themes: []theme{
			{name: "saving", keywords: []string{"save", "saving"}, apply: applySavingTheme},
			{name: "budgeting", keywords: []string{"budget", "budgeting"}, apply: applyBudgetingTheme},
			{name: "expense-reduction", keywords: []string{"expense", "reduce", "cut"}, apply: applyExpenseTheme},
			{name: "pattern-analysis", keywords: []string{"pattern", "analyze", "spending"}, apply: applyPatternTheme},
			{name: "goal-setting", keywords: []string{"goal", "target"}, apply: applyGoalTheme},
		},
		general: theme{name: "general", apply: applyGeneralTheme},
	}
}

// Generate runs the first matching theme, the category top-up pass, and the
// final normalization. Identical inputs always yield identical output; it
// never fails on missing or zero-valued fields.
func (g *AdviceGenerator) Generate(query string, profile domain.FinancialProfile, summary domain.SpendingSummary) domain.AdvisorResult {
	c := &adviceContext{
		query:        query,
		profile:      profile,
		summary:      summary,
		income:       profile.Income,
		lastSpend:    summary.LastMonthSpend,
		savingsRate:  profile.SavingsRate,
		transactions: summary.TotalTransactions,
		avgSpend:     summary.AvgMonthlySpend,
		forecast:     Forecast(summary.LastMonthSpend),
	}

	selected := g.general
	queryLower := strings.ToLower(query)
	for _, t := range g.themes {
		if t.matches(queryLower) {
			selected = t
			break
		}
	}
	selected.apply(c)

	topUpFromCategories(c)

	return domain.AdvisorResult{
		Forecast:         c.forecast,
		Explanations:     normalizeExplanations(c.explanations),
		SuggestedActions: NormalizeActions(c.actions, c.lastSpend),
	}
}

func applySavingTheme(c *adviceContext) {
	savingsPct := 0.0
	if c.income > 0 {
		savingsPct = (c.income - c.lastSpend) / c.income * 100
	}
	c.explain("Based on your current spending of ₹%.0f/month and income of ₹%.0f, you're saving %.1f%% of your income.",
		c.lastSpend, c.income, savingsPct)

	if c.savingsRate < TargetSavingsRate {
		needed := math.Max(0.0, TargetSavingsRate-c.savingsRate)
		est := roundTo2Decimals(c.income * needed)

		c.act("Automate savings transfers on payday",
			fmt.Sprintf("Transfer ₹%.0f monthly to reach 20%% savings rate", est), est)
		c.act("Review and cancel unused subscriptions",
			"Identify recurring charges you don't actively use", roundTo2Decimals(c.lastSpend*0.05))
		// 6 months of the transfer target approximates an emergency fund.
		c.act("Create a dedicated emergency fund account",
			"Separate savings account prevents accidental spending", est*6)
	}
}

func applyBudgetingTheme(c *adviceContext) {
	c.explain("Your current monthly spending is ₹%.0f. A good budget allocates 50%% to needs, 30%% to wants, and 20%% to savings.",
		c.lastSpend)

	needs := c.income * 0.5
	wants := c.income * 0.3
	savings := c.income * 0.2

	if c.lastSpend > needs {
		c.act("Implement 50/30/20 budget rule",
			fmt.Sprintf("Allocate ₹%.0f to needs, ₹%.0f to wants, ₹%.0f to savings", needs, wants, savings),
			roundTo2Decimals(c.lastSpend-needs))
	}
	c.act("Use envelope budgeting method",
		"Allocate cash for each category to prevent overspending", roundTo2Decimals(c.lastSpend*0.1))
	c.act("Set up budget alerts and reminders",
		"Notifications help you stay within category limits", roundTo2Decimals(c.lastSpend*0.05))
}

func applyExpenseTheme(c *adviceContext) {
	names := make([]string, 0, TopCategoriesConsidered)
	for _, cat := range c.topCategories() {
		names = append(names, cat.Category)
	}
	c.explain("Your top spending categories are: %s", strings.Join(names, ", "))

	added := 0
	for _, cat := range c.topCategories() {
		switch {
		case cat.Category == "dining" && cat.Total > DiningThreshold:
			c.act("Reduce dining out by 50%",
				"Cook at home more often and limit restaurant visits to weekends",
				roundTo2Decimals(0.5*cat.Total))
			added++
		case cat.Category == "groceries" && cat.Total > GroceriesThreshold:
			c.act("Optimize grocery shopping",
				"Plan meals weekly, use store brands, and avoid impulse purchases",
				roundTo2Decimals(0.15*cat.Total))
			added++
		case cat.Category == "utilities" && cat.Total > UtilitiesThreshold:
			c.act("Reduce utility costs",
				"Use energy-efficient appliances and optimize usage patterns",
				roundTo2Decimals(0.1*cat.Total))
			added++
		}
	}

	if added < 2 {
		c.act("Negotiate bills and subscriptions",
			"Contact service providers to negotiate lower rates or switch plans",
			roundTo2Decimals(c.lastSpend*0.08))
		added++
	}
	if added < 3 {
		c.act("Implement the 24-hour rule for non-essential purchases",
			"Wait 24 hours before buying items over ₹500 to avoid impulse spending",
			roundTo2Decimals(c.lastSpend*0.06))
	}
}

func applyPatternTheme(c *adviceContext) {
	c.explain("You have %d transactions with an average monthly spend of ₹%.0f", c.transactions, c.avgSpend)

	if baseline := c.forecast["baseline"]; len(baseline) > 0 {
		history := syntheticHistory(c.lastSpend, ForecastHistoryMonths)
		delta := baseline[len(baseline)-1] - history[len(history)-1]
		trend := "decreasing"
		if delta > 0 {
			trend = "increasing"
		}
		c.explain("Spending trend shows %s pattern: projected change of ₹%.0f next quarter", trend, math.Abs(delta))
	}

	if c.lastSpend > c.income*0.8 {
		c.act("Reduce spending to below 80% of income",
			"Maintaining 20% savings rate is crucial for financial health",
			roundTo2Decimals(c.lastSpend-c.income*0.8))
	}
	c.act("Use spending analytics to identify trends",
		"Monthly pattern analysis helps predict and control future spending",
		roundTo2Decimals(c.lastSpend*0.08))
	c.act("Compare spending month-over-month",
		"Tracking changes helps identify areas where spending is growing unexpectedly",
		roundTo2Decimals(c.lastSpend*0.05))
}

func applyGoalTheme(c *adviceContext) {
	c.explain("With your current savings rate of %.1f%%, you're on track for financial goals", c.savingsRate*100)

	monthlySavings := c.income * c.savingsRate
	c.act("Set specific financial goals",
		fmt.Sprintf("With ₹%.0f/month savings, you can achieve goals faster with clear targets", monthlySavings),
		monthlySavings)
	c.act("Use SMART goal framework (Specific, Measurable, Achievable, Relevant, Time-bound)",
		"Clear goals with deadlines increase success rate by 30%", monthlySavings*1.3)
	c.act("Break large goals into smaller milestones",
		"Achieving small wins boosts motivation and momentum", monthlySavings*0.5)
}

func applyGeneralTheme(c *adviceContext) {
	c.explain("Based on your financial profile: ₹%.0f income, ₹%.0f monthly spending, %.1f%% savings rate",
		c.income, c.lastSpend, c.savingsRate*100)

	if c.savingsRate < 0.15 {
		c.act("Increase emergency fund",
			"Build 3-6 months of expenses as emergency savings", roundTo2Decimals(c.lastSpend*3))
	}
	c.act("Review and optimize your spending categories",
		"Regular review of top spending categories helps identify savings opportunities",
		roundTo2Decimals(c.lastSpend*0.1))
	c.act("Track expenses daily for better awareness",
		"Daily tracking increases financial awareness and reduces unnecessary spending",
		roundTo2Decimals(c.lastSpend*0.07))
}

// topUpFromCategories adds at most one extra action per category, at lower
// thresholds than the expense theme, skipping categories an existing action
// already references.
func topUpFromCategories(c *adviceContext) {
	if len(c.actions) >= MaxActions {
		return
	}
	for _, cat := range c.topCategories() {
		switch {
		case cat.Category == "dining" && cat.Total > DiningTopUpThreshold && !actionsReference(c.actions, "dining", "meal"):
			c.act("Meal prep on weekends",
				"Prepare 3-4 meals in advance to reduce dining costs", roundTo2Decimals(0.2*cat.Total))
		case cat.Category == "groceries" && cat.Total > GroceriesTopUpThreshold && !actionsReference(c.actions, "grocery"):
			c.act("Use grocery store apps for deals",
				"Digital coupons and loyalty programs can save 10-15%", roundTo2Decimals(0.1*cat.Total))
		}
		if len(c.actions) >= MaxActions {
			break
		}
	}
}

// actionsReference reports whether any existing action title contains one of
// the given words, case-insensitively.
func actionsReference(actions []domain.AdviceItem, words ...string) bool {
	for _, a := range actions {
		title := strings.ToLower(a.Action)
		for _, w := range words {
			if strings.Contains(title, w) {
				return true
			}
		}
	}
	return false
}

func normalizeExplanations(explanations []string) []string {
	if len(explanations) == 0 {
		return []string{FallbackExplanation}
	}
	return explanations
}

// NormalizeActions is the single place the 2-3 action invariant is enforced:
// pad with the fixed generic actions up to MinActions, then cap at
// MaxActions. Applied after every candidate source (rules, top-up, external
// overlay) has contributed.
func NormalizeActions(actions []domain.AdviceItem, lastMonthSpend float64) []domain.AdviceItem {
	if len(actions) < MinActions {
		actions = append(actions, domain.AdviceItem{
			Action:          "Track expenses daily for one week",
			Rationale:       "Understanding spending patterns is the first step to improvement",
			EstimatedImpact: roundTo2Decimals(0.05 * lastMonthSpend),
		})
	}
	if len(actions) < MaxActions {
		actions = append(actions, domain.AdviceItem{
			Action:          "Set up automatic bill payments",
			Rationale:       "Prevents late fees and helps with budgeting consistency",
			EstimatedImpact: roundTo2Decimals(0.02 * lastMonthSpend),
		})
	}
	if len(actions) > MaxActions {
		actions = actions[:MaxActions]
	}
	return actions
}
