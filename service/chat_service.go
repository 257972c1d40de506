package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"finance-advisor/domain"
	"finance-advisor/routing"
)

// ErrFinanceQuery is returned when a chat request carries a query the
// router classifies as finance; those belong on the advisor endpoint.
var ErrFinanceQuery = errors.New("query routed to finance advisor")

const (
	chatTimeout       = 15 * time.Second
	chatMaxReplyRunes = 500

	chatUnavailableReply = "I apologize, but the AI service is currently unavailable. " +
		"Please configure an AI provider to enable chat functionality."
)

// ChatService proxies general (non-finance) queries to the text-generation
// provider.
type ChatService struct {
	router  *routing.Router
	textgen TextGenerator
}

func NewChatService(router *routing.Router, textgen TextGenerator) *ChatService {
	return &ChatService{router: router, textgen: textgen}
}

// Reply answers a chat query. Finance-routed queries are rejected with
// ErrFinanceQuery. A missing provider degrades to a fixed unavailable
// message rather than an error; an upstream failure is surfaced so the
// handler can map it.
func (s *ChatService) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	decision := s.router.Decision(req.Query)
	if decision.Target != domain.RouteChat {
		return domain.ChatResponse{}, ErrFinanceQuery
	}

	resp := domain.ChatResponse{
		UserID: req.UserID,
		Route:  decision.Target,
		Rule:   decision.Rule,
	}

	if s.textgen == nil || !s.textgen.Enabled() {
		resp.Provider = "none"
		resp.Reply = chatUnavailableReply
		return resp, nil
	}

	prompt := req.Query
	if req.IncludeContext {
		prompt = fmt.Sprintf("%s\n\nUser question: %s", anonymizedContextSummary(), req.Query)
	}

	genCtx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	reply, err := s.textgen.Generate(genCtx, GenerationRequest{
		Prompt:      prompt,
		System:      chatSystemInstruction,
		MaxTokens:   150,
		Temperature: 0.7,
		TopP:        0.8,
		TopK:        20,
	})
	if err != nil {
		log.Printf("chat: generation failed: %v", err)
		return domain.ChatResponse{}, fmt.Errorf("chat: generating reply: %w", err)
	}

	if len([]rune(reply)) > chatMaxReplyRunes {
		reply = truncateRunes(reply, chatMaxReplyRunes) + "..."
	}

	resp.Provider = s.textgen.Name()
	resp.Reply = reply
	return resp, nil
}

// anonymizedContextSummary is the short finance context optionally included
// in chat prompts. Deliberately generic: no user figures leave the advisor
// path.
func anonymizedContextSummary() string {
	return "User has typical monthly expenses across groceries, dining, and utilities; " +
		"focus on budgeting and savings improvements."
}
