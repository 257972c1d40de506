package service

import (
	"context"
	"log"

	"finance-advisor/domain"
	"finance-advisor/repository"
)

// investmentPlans maps risk level (1-5) to the fixed recommendation table.
var investmentPlans = map[int]domain.InvestmentPlan{
	1: {
		Level: 1,
		Label: "Conservative - No Risk",
		ShortTerm: []domain.InvestmentOption{
			{Name: "Savings Account", Returns: "3-4% p.a.", Description: "Bank savings with instant liquidity"},
			{Name: "Fixed Deposit (3-6 months)", Returns: "5-7% p.a.", Description: "Safe bank FD with guaranteed returns"},
		},
		MediumTerm: []domain.InvestmentOption{
			{Name: "Fixed Deposit (1-3 years)", Returns: "6-8% p.a.", Description: "Higher returns with locked period"},
			{Name: "Post Office Schemes", Returns: "7-8% p.a.", Description: "Government-backed safe investments"},
		},
		LongTerm: []domain.InvestmentOption{
			{Name: "PPF (Public Provident Fund)", Returns: "7-8% p.a.", Description: "15-year govt scheme with tax benefits"},
			{Name: "NSC (National Savings Certificate)", Returns: "7-8% p.a.", Description: "5-year govt savings scheme"},
		},
	},
	2: {
		Level: 2,
		Label: "Low Risk",
		ShortTerm: []domain.InvestmentOption{
			{Name: "Liquid Funds", Returns: "4-6% p.a.", Description: "Mutual fund with high liquidity"},
			{Name: "Ultra Short Duration Funds", Returns: "5-7% p.a.", Description: "Low-risk debt mutual funds"},
		},
		MediumTerm: []domain.InvestmentOption{
			{Name: "Short Duration Debt Funds", Returns: "6-8% p.a.", Description: "Moderate returns with low risk"},
			{Name: "Corporate FDs", Returns: "7-9% p.a.", Description: "Higher returns than bank FDs"},
		},
		LongTerm: []domain.InvestmentOption{
			{Name: "Debt Mutual Funds", Returns: "8-10% p.a.", Description: "Long-term debt investments"},
			{Name: "RD (Recurring Deposit)", Returns: "6-7% p.a.", Description: "Regular monthly savings"},
		},
	},
	3: {
		Level: 3,
		Label: "Balanced - Moderate Risk",
		ShortTerm: []domain.InvestmentOption{
			{Name: "Arbitrage Funds", Returns: "6-8% p.a.", Description: "Lower risk equity funds"},
			{Name: "Balanced Advantage Funds", Returns: "8-10% p.a.", Description: "Dynamic asset allocation"},
		},
		MediumTerm: []domain.InvestmentOption{
			{Name: "Hybrid Funds (Balanced)", Returns: "10-12% p.a.", Description: "Mix of equity and debt"},
			{Name: "Index Funds", Returns: "10-14% p.a.", Description: "Track market indices like Nifty 50"},
			{Name: "Gold Bonds/ETFs", Returns: "8-10% p.a.", Description: "Investment in digital gold"},
		},
		LongTerm: []domain.InvestmentOption{
			{Name: "Balanced Mutual Funds", Returns: "11-13% p.a.", Description: "Long-term balanced portfolio"},
			{Name: "ELSS (Tax Saving Funds)", Returns: "12-15% p.a.", Description: "3-year lock with tax benefits"},
			{Name: "NPS (National Pension System)", Returns: "10-12% p.a.", Description: "Retirement planning with tax benefits"},
		},
	},
	4: {
		Level: 4,
		Label: "Growth - Moderate-High Risk",
		ShortTerm: []domain.InvestmentOption{
			{Name: "Large Cap Equity Funds", Returns: "10-12% p.a.", Description: "Investment in top companies"},
			{Name: "Sectoral Funds", Returns: "10-15% p.a.", Description: "Focused on specific sectors"},
		},
		MediumTerm: []domain.InvestmentOption{
			{Name: "Multi Cap Funds", Returns: "12-16% p.a.", Description: "Diversified across market caps"},
			{Name: "Focused Equity Funds", Returns: "13-17% p.a.", Description: "Concentrated portfolio of stocks"},
			{Name: "Blue Chip Stocks", Returns: "12-18% p.a.", Description: "Direct investment in top companies"},
		},
		LongTerm: []domain.InvestmentOption{
			{Name: "Diversified Equity Funds", Returns: "14-18% p.a.", Description: "Long-term wealth creation"},
			{Name: "Flexi Cap Funds", Returns: "14-18% p.a.", Description: "Flexible market cap allocation"},
			{Name: "SIP in Equity Funds", Returns: "15-20% p.a.", Description: "Systematic investment for long term"},
		},
	},
	5: {
		Level: 5,
		Label: "Aggressive - High Risk",
		ShortTerm: []domain.InvestmentOption{
			{Name: "Mid & Small Cap Funds", Returns: "12-20% p.a.", Description: "Higher volatility and returns"},
			{Name: "Thematic Funds", Returns: "10-25% p.a.", Description: "Sector-specific high-risk funds"},
		},
		MediumTerm: []domain.InvestmentOption{
			{Name: "Small Cap Funds", Returns: "15-25% p.a.", Description: "High growth potential with risk"},
			{Name: "Emerging Markets Equity", Returns: "15-30% p.a.", Description: "Investment in growth markets"},
		},
		LongTerm: []domain.InvestmentOption{
			{Name: "Small Cap Equity Funds", Returns: "18-30% p.a.", Description: "Maximum growth potential"},
			{Name: "International Equity Funds", Returns: "15-25% p.a.", Description: "Global market exposure"},
		},
	},
}

// horizonWeights is the suggested amount split per risk level, keyed by
// short_term/medium_term/long_term.
var horizonWeights = map[int][3]float64{
	1: {0.5, 0.3, 0.2},
	2: {0.4, 0.3, 0.3},
	3: {0.3, 0.3, 0.4},
	4: {0.2, 0.3, 0.5},
	5: {0.1, 0.3, 0.6},
}

// InvestmentService looks up the fixed plan table for a user's risk level.
type InvestmentService struct {
	profiles repository.ProfileRepository
}

func NewInvestmentService(profiles repository.ProfileRepository) *InvestmentService {
	return &InvestmentService{profiles: profiles}
}

// PlanFor returns the plan for the user's risk level plus a suggested
// allocation of the requested amount. An unknown or out-of-range risk level
// clamps to the moderate plan; a failed profile load uses the default
// snapshot.
func (s *InvestmentService) PlanFor(ctx context.Context, userID string, amount float64) domain.InvestmentPlanResult {
	profile := domain.DefaultProfile(userID)
	if s.profiles != nil {
		loaded, err := s.profiles.Profile(ctx, userID)
		if err == nil {
			profile = loaded
		} else {
			log.Printf("investments: loading profile for %s: %v (using default)", userID, err)
		}
	}

	level := profile.RiskLevel
	if level < 1 || level > 5 {
		level = 3
	}
	if amount < 0 {
		amount = 0
	}

	weights := horizonWeights[level]
	return domain.InvestmentPlanResult{
		UserID: userID,
		Amount: amount,
		Plan:   investmentPlans[level],
		Allocation: map[string]float64{
			"short_term":  roundTo2Decimals(amount * weights[0]),
			"medium_term": roundTo2Decimals(amount * weights[1]),
			"long_term":   roundTo2Decimals(amount * weights[2]),
		},
	}
}
