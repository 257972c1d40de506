package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finance-advisor/domain"
	"finance-advisor/routing"
)

func TestReply_RejectsFinanceQueries(t *testing.T) {
	svc := NewChatService(routing.Default(), &stubGenerator{enabled: true})

	_, err := svc.Reply(context.Background(), domain.ChatRequest{UserID: "u1", Query: "how much did I spend"})
	if !errors.Is(err, ErrFinanceQuery) {
		t.Fatalf("expected ErrFinanceQuery, got %v", err)
	}
}

func TestReply_NoProviderDegradesToFixedMessage(t *testing.T) {
	svc := NewChatService(routing.Default(), nil)

	resp, err := svc.Reply(context.Background(), domain.ChatRequest{UserID: "u1", Query: "tell me a joke"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Provider != "none" {
		t.Errorf("expected provider none, got %q", resp.Provider)
	}
	if !strings.Contains(resp.Reply, "currently unavailable") {
		t.Errorf("expected unavailable message, got %q", resp.Reply)
	}
}

func TestReply_ProxiesToProvider(t *testing.T) {
	gen := &stubGenerator{enabled: true, reply: "Hello there!"}
	svc := NewChatService(routing.Default(), gen)

	resp, err := svc.Reply(context.Background(), domain.ChatRequest{UserID: "u1", Query: "what is compounding"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != "Hello there!" || resp.Provider != "stub" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Route != domain.RouteChat || resp.Rule != nil {
		t.Errorf("unexpected routing fields: %+v", resp)
	}
	if gen.lastReq.MaxTokens != 150 {
		t.Errorf("expected chat max tokens 150, got %d", gen.lastReq.MaxTokens)
	}
}

func TestReply_IncludeContextPrefixesPrompt(t *testing.T) {
	gen := &stubGenerator{enabled: true, reply: "ok"}
	svc := NewChatService(routing.Default(), gen)

	_, err := svc.Reply(context.Background(), domain.ChatRequest{UserID: "u1", Query: "any tips", IncludeContext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gen.lastReq.Prompt, "typical monthly expenses") {
		t.Errorf("expected context prefix in prompt, got %q", gen.lastReq.Prompt)
	}
	if !strings.Contains(gen.lastReq.Prompt, "User question: any tips") {
		t.Errorf("expected question in prompt, got %q", gen.lastReq.Prompt)
	}
}

func TestReply_TruncatesLongReplies(t *testing.T) {
	gen := &stubGenerator{enabled: true, reply: strings.Repeat("a", 600)}
	svc := NewChatService(routing.Default(), gen)

	resp, err := svc.Reply(context.Background(), domain.ChatRequest{UserID: "u1", Query: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := strings.Repeat("a", 500) + "..."; resp.Reply != want {
		t.Errorf("expected truncated reply of %d runes, got %d", len(want), len(resp.Reply))
	}
}

func TestReply_ProviderErrorSurfaces(t *testing.T) {
	gen := &stubGenerator{enabled: true, err: errors.New("upstream boom")}
	svc := NewChatService(routing.Default(), gen)

	_, err := svc.Reply(context.Background(), domain.ChatRequest{UserID: "u1", Query: "hi"})
	if err == nil {
		t.Fatal("expected error from provider failure")
	}
}
