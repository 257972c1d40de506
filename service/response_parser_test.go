package service

import "testing"

func TestParseAdvisorResponse_FullFormat(t *testing.T) {
	raw := "EXPLANATION: You are overspending on dining.\n" +
		"ACTION: Cook at home - RATIONALE: Restaurants cost more - IMPACT: ₹1500/month\n" +
		"ACTION: Cancel subscriptions - RATIONALE: Unused services - IMPACT: ₹299.50/month\n"

	parsed := ParseAdvisorResponse(raw)

	if len(parsed.Explanations) != 1 || parsed.Explanations[0] != "You are overspending on dining." {
		t.Fatalf("unexpected explanations: %v", parsed.Explanations)
	}
	if len(parsed.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(parsed.Actions))
	}

	first := parsed.Actions[0]
	if first.Action != "Cook at home" || first.Rationale != "Restaurants cost more" || first.EstimatedImpact != 1500 {
		t.Errorf("unexpected first action: %+v", first)
	}
	if parsed.Actions[1].EstimatedImpact != 299.50 {
		t.Errorf("expected impact 299.50, got %.2f", parsed.Actions[1].EstimatedImpact)
	}
}

func TestParseAdvisorResponse_Garbage(t *testing.T) {
	parsed := ParseAdvisorResponse("garbage no prefixes")

	if len(parsed.Explanations) != 0 || len(parsed.Actions) != 0 {
		t.Fatalf("expected empty parse, got %+v", parsed)
	}
}

func TestParseAdvisorResponse_TrailingActionFlushed(t *testing.T) {
	// The last action has no following ACTION line to trigger a flush.
	raw := "ACTION: Final action - RATIONALE: Last one - IMPACT: ₹10/month"

	parsed := ParseAdvisorResponse(raw)

	if len(parsed.Actions) != 1 {
		t.Fatalf("expected trailing action to be flushed, got %d actions", len(parsed.Actions))
	}
	if parsed.Actions[0].Action != "Final action" {
		t.Errorf("unexpected action: %+v", parsed.Actions[0])
	}
}

func TestParseAdvisorResponse_MissingFieldsDefault(t *testing.T) {
	parsed := ParseAdvisorResponse("ACTION: Bare action")

	if len(parsed.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(parsed.Actions))
	}
	a := parsed.Actions[0]
	if a.Rationale != FallbackRationale {
		t.Errorf("expected fallback rationale, got %q", a.Rationale)
	}
	if a.EstimatedImpact != 0 {
		t.Errorf("expected zero impact, got %.2f", a.EstimatedImpact)
	}
}

func TestParseAdvisorResponse_UnparsableImpact(t *testing.T) {
	parsed := ParseAdvisorResponse("ACTION: Do it - RATIONALE: because - IMPACT: lots of money")

	if len(parsed.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(parsed.Actions))
	}
	if parsed.Actions[0].EstimatedImpact != 0 {
		t.Errorf("expected 0 for unparsable impact, got %.2f", parsed.Actions[0].EstimatedImpact)
	}
}

func TestParseAdvisorResponse_CurrencyStripping(t *testing.T) {
	cases := map[string]float64{
		"ACTION: A - IMPACT: ₹500/month": 500,
		"ACTION: A - IMPACT: $42.50":     42.50,
		"ACTION: A - IMPACT: 12":         12,
	}
	for raw, want := range cases {
		parsed := ParseAdvisorResponse(raw)
		if len(parsed.Actions) != 1 || parsed.Actions[0].EstimatedImpact != want {
			t.Errorf("raw %q: expected impact %.2f, got %+v", raw, want, parsed.Actions)
		}
	}
}

func TestParseAdvisorResponse_HyphenInRationale(t *testing.T) {
	// Known limitation: the "-" split truncates a rationale containing a
	// literal hyphen. This must not crash or drop the action.
	parsed := ParseAdvisorResponse("ACTION: Cut costs - RATIONALE: trim day-to-day expenses - IMPACT: ₹100/month")

	if len(parsed.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(parsed.Actions))
	}
	a := parsed.Actions[0]
	if a.Rationale != "trim day" {
		t.Errorf("expected truncated rationale %q, got %q", "trim day", a.Rationale)
	}
	if a.EstimatedImpact != 100 {
		t.Errorf("expected impact 100, got %.2f", a.EstimatedImpact)
	}
}

func TestParseAdvisorResponse_InterleavedLines(t *testing.T) {
	raw := "Some preamble the model added\n" +
		"EXPLANATION: First insight\n" +
		"ACTION: One - RATIONALE: r1 - IMPACT: ₹1/month\n" +
		"noise line\n" +
		"EXPLANATION: Second insight\n" +
		"ACTION: Two - RATIONALE: r2 - IMPACT: ₹2/month\n"

	parsed := ParseAdvisorResponse(raw)

	if len(parsed.Explanations) != 2 {
		t.Fatalf("expected 2 explanations, got %v", parsed.Explanations)
	}
	if len(parsed.Actions) != 2 || parsed.Actions[0].Action != "One" || parsed.Actions[1].Action != "Two" {
		t.Fatalf("unexpected actions: %+v", parsed.Actions)
	}
}
