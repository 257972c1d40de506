package service

import (
	"context"
	"fmt"
	"strings"

	"finance-advisor/domain"
)

// GenerationRequest is the small parameter set every text-generation
// provider accepts.
type GenerationRequest struct {
	Prompt      string
	System      string
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// TextGenerator produces a text block from a prompt within a bounded
// timeout. Implementations return an error on timeout, network failure or a
// non-success upstream status; callers treat any error as "enrichment
// absent" and fall through to rule-based output.
type TextGenerator interface {
	// Name identifies the provider in responses and logs.
	Name() string
	// Enabled reports whether the provider has the credentials to run.
	Enabled() bool
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

const advisorSystemInstruction = "You are a professional financial advisor. Analyze the user's financial situation and provide " +
	"clear, actionable advice with EXACTLY 2-3 actionable recommendations. " +
	"Format your response as: 'EXPLANATION: [your analysis in 1-2 sentences]' " +
	"followed by 2-3 actions, each on a new line as: " +
	"'ACTION: [action title] - RATIONALE: [explanation] - IMPACT: ₹[amount]/month' " +
	"Use Indian Rupees (₹) for currency. Make sure to provide 2-3 distinct recommendations."

const chatSystemInstruction = "You are a helpful financial assistant. Provide clear, concise answers in " +
	"2-3 sentences maximum. Focus on key points only."

// buildAdvisorPrompt assembles the financial context the enrichment call
// receives alongside the user's question.
func buildAdvisorPrompt(query string, profile domain.FinancialProfile, summary domain.SpendingSummary) string {
	cats := summary.TopCategories
	if len(cats) > TopCategoriesConsidered {
		cats = cats[:TopCategoriesConsidered]
	}
	catParts := make([]string, 0, len(cats))
	for _, cat := range cats {
		catParts = append(catParts, fmt.Sprintf("%s (₹%.2f)", cat.Category, cat.Total))
	}

	return fmt.Sprintf(`User Financial Profile:
- Monthly Income: ₹%.2f
- Last Month Spending: ₹%.2f
- Current Savings Rate: %.1f%%
- Top Spending Categories: %s

User Question: %s

Please provide personalized financial advice with EXACTLY 2-3 actionable recommendations based on this information.
Format each recommendation as: ACTION: [title] - RATIONALE: [explanation] - IMPACT: ₹[amount]/month`,
		profile.Income, summary.LastMonthSpend, profile.SavingsRate*100,
		strings.Join(catParts, ", "), query)
}
