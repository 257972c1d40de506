package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"finance-advisor/domain"
	"finance-advisor/repository"
	"finance-advisor/routing"
)

const (
	snapshotCacheTTL  = 5 * time.Minute
	enrichmentTimeout = 15 * time.Second
)

// AdvisorService assembles advisory responses: it loads profile/summary
// snapshots (with fixed fallbacks), routes the query, generates rule-based
// advice and overlays a best-effort parse of the external AI response.
//
// Every failure inside the optional paths is contained here; Advise always
// returns a well-formed result with 2-3 actions and at least one
// explanation.
type AdvisorService struct {
	router    *routing.Router
	profiles  repository.ProfileRepository
	cache     repository.CacheRepository
	history   repository.AdviceRepository
	generator *AdviceGenerator
	textgen   TextGenerator

	// parse is the response-parser seam; tests stub it to exercise the
	// unparseable fallback.
	parse func(raw string) (ParsedAdvice, error)
}

func NewAdvisorService(
	router *routing.Router,
	profiles repository.ProfileRepository,
	cache repository.CacheRepository,
	history repository.AdviceRepository,
	textgen TextGenerator,
) *AdvisorService {
	return &AdvisorService{
		router:    router,
		profiles:  profiles,
		cache:     cache,
		history:   history,
		generator: NewAdviceGenerator(),
		textgen:   textgen,
		parse: func(raw string) (ParsedAdvice, error) {
			return ParseAdvisorResponse(raw), nil
		},
	}
}

// Advise produces the advisory bundle for one request. It has no fatal
// error class: snapshot loads fall back to defaults and enrichment failures
// degrade to pure rule-based output.
func (s *AdvisorService) Advise(ctx context.Context, req domain.AdvisorRequest) domain.AdvisorResponse {
	profile := s.loadProfile(ctx, req.UserID)
	summary := s.loadSummary(ctx, req.UserID)

	decision := s.router.Decision(req.Query)

	result := s.generator.Generate(req.Query, profile, summary)

	if raw := s.fetchEnrichment(ctx, req.Query, profile, summary); raw != "" {
		result = s.overlayResponse(result, raw, summary.LastMonthSpend)
	}

	s.saveHistory(ctx, req, decision, result)

	return domain.AdvisorResponse{
		UserID:        req.UserID,
		Route:         decision.Target,
		Rule:          decision.Rule,
		Query:         req.Query,
		AdvisorResult: result,
	}
}

func (s *AdvisorService) loadProfile(ctx context.Context, userID string) domain.FinancialProfile {
	cacheKey := "advisor:profile:" + userID
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var profile domain.FinancialProfile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			return profile
		}
	}

	if s.profiles != nil {
		profile, err := s.profiles.Profile(ctx, userID)
		if err == nil {
			s.cacheSet(ctx, cacheKey, profile)
			return profile
		}
		log.Printf("advisor: loading profile for %s: %v (using default)", userID, err)
	}
	return domain.DefaultProfile(userID)
}

func (s *AdvisorService) loadSummary(ctx context.Context, userID string) domain.SpendingSummary {
	cacheKey := "advisor:summary:" + userID
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var summary domain.SpendingSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return summary
		}
	}

	if s.profiles != nil {
		summary, err := s.profiles.Summary(ctx, userID)
		if err == nil {
			s.cacheSet(ctx, cacheKey, summary)
			return summary
		}
		log.Printf("advisor: loading summary for %s: %v (using default)", userID, err)
	}
	return domain.DefaultSummary()
}

func (s *AdvisorService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	return s.cache.Get(ctx, key)
}

func (s *AdvisorService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), snapshotCacheTTL); err != nil {
		log.Printf("advisor: caching %s: %v", key, err)
	}
}

// fetchEnrichment performs the single best-effort text-generation call.
// Any failure returns "", which callers treat as enrichment absent.
func (s *AdvisorService) fetchEnrichment(ctx context.Context, query string, profile domain.FinancialProfile, summary domain.SpendingSummary) string {
	if s.textgen == nil || !s.textgen.Enabled() {
		return ""
	}

	genCtx, cancel := context.WithTimeout(ctx, enrichmentTimeout)
	defer cancel()

	raw, err := s.textgen.Generate(genCtx, GenerationRequest{
		Prompt:      buildAdvisorPrompt(query, profile, summary),
		System:      advisorSystemInstruction,
		MaxTokens:   600,
		Temperature: 0.7,
		TopP:        0.8,
		TopK:        20,
	})
	if err != nil {
		log.Printf("advisor: enrichment call failed, using rule-based advice: %v", err)
		return ""
	}
	return raw
}

// overlayResponse merges the parsed external response onto the rule-based
// result. Parsed explanations are prepended; parsed actions replace the
// rule-based ones, topped up from the rule-based list to keep 2-3 actions
// with parsed actions always first. An unparseable response leaves the
// rule-based output intact and prepends the truncated raw text instead.
func (s *AdvisorService) overlayResponse(result domain.AdvisorResult, raw string, lastMonthSpend float64) domain.AdvisorResult {
	parsed, err := s.parse(raw)
	if err != nil {
		log.Printf("advisor: parsing AI response: %v", err)
		insight := fmt.Sprintf("AI Insight: %s...", truncateRunes(raw, RawResponseExplanationLimit))
		result.Explanations = append([]string{insight}, result.Explanations...)
		return result
	}

	if len(parsed.Explanations) > 0 {
		result.Explanations = append(parsed.Explanations, result.Explanations...)
	}

	if len(parsed.Actions) > 0 {
		ruleActions := result.SuggestedActions
		combined := parsed.Actions
		if len(combined) > MaxActions {
			combined = combined[:MaxActions]
		}
		if len(combined) < MinActions {
			need := MinActions - len(combined)
			if need > len(ruleActions) {
				need = len(ruleActions)
			}
			combined = append(combined, ruleActions[:need]...)
		} else if len(combined) < MaxActions && len(ruleActions) > 0 {
			combined = append(combined, ruleActions[0])
		}
		result.SuggestedActions = combined
	}

	result.Explanations = normalizeExplanations(result.Explanations)
	result.SuggestedActions = NormalizeActions(result.SuggestedActions, lastMonthSpend)
	return result
}

func (s *AdvisorService) saveHistory(ctx context.Context, req domain.AdvisorRequest, decision domain.RoutingDecision, result domain.AdvisorResult) {
	if s.history == nil {
		return
	}
	err := s.history.Save(ctx, repository.AdviceRecord{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Query:     req.Query,
		Route:     string(decision.Target),
		Result:    result,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("advisor: saving history for %s: %v", req.UserID, err)
	}
}

func truncateRunes(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
