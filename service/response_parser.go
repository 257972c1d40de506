package service

import (
	"strconv"
	"strings"

	"finance-advisor/domain"
)

// ParsedAdvice is the tagged result of parsing an external advisory text
// block. Both slices may be empty when the block carried no recognized
// lines.
type ParsedAdvice struct {
	Explanations []string
	Actions      []domain.AdviceItem
}

const (
	explanationPrefix = "EXPLANATION:"
	actionPrefix      = "ACTION:"
	rationalePrefix   = "RATIONALE:"
	impactPrefix      = "IMPACT:"
)

// ParseAdvisorResponse parses the line-oriented format
//
//	EXPLANATION: <text>
//	ACTION: <title> - RATIONALE: <text> - IMPACT: ₹<amount>/month
//
// best-effort. Unrecognized lines are ignored, an unparsable impact defaults
// to 0.0 and a missing rationale to a fixed placeholder. An ACTION line
// flushes the previously accumulated action; the trailing action is flushed
// after the loop.
//
// Known limitation: ACTION lines are split on "-", so a rationale containing
// a literal hyphen is truncated at it. The extra fragments carry no
// sub-prefix and are dropped; the line still parses without error.
func ParseAdvisorResponse(raw string) ParsedAdvice {
	var parsed ParsedAdvice

	var current *domain.AdviceItem
	flush := func() {
		if current == nil {
			return
		}
		if current.Rationale == "" {
			current.Rationale = FallbackRationale
		}
		parsed.Actions = append(parsed.Actions, *current)
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, explanationPrefix):
			parsed.Explanations = append(parsed.Explanations,
				strings.TrimSpace(strings.TrimPrefix(line, explanationPrefix)))

		case strings.HasPrefix(line, actionPrefix):
			flush()
			parts := strings.Split(strings.TrimPrefix(line, actionPrefix), "-")
			current = &domain.AdviceItem{Action: strings.TrimSpace(parts[0])}
			for _, part := range parts[1:] {
				part = strings.TrimSpace(part)
				switch {
				case strings.HasPrefix(part, rationalePrefix):
					current.Rationale = strings.TrimSpace(strings.TrimPrefix(part, rationalePrefix))
				case strings.HasPrefix(part, impactPrefix):
					current.EstimatedImpact = parseImpact(strings.TrimPrefix(part, impactPrefix))
				}
			}
		}
	}
	flush()

	return parsed
}

// parseImpact strips currency symbols and the "/month" suffix before the
// numeric parse; anything unparsable is 0.
func parseImpact(s string) float64 {
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "/month", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}
