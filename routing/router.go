// Package routing classifies free-text user queries into route targets using
// an ordered list of named predicate rules with a default fallback.
//
// All routing is deterministic: given the same query and rule list, the same
// target is always returned. Rules are evaluated in registration order and
// the first match wins, so order is significant.
package routing

import (
	"log"
	"strings"

	"finance-advisor/domain"
)

// Predicate reports whether a query matches a rule. Implementations must
// treat an empty query as non-matching and must not panic; a panicking
// predicate is treated as a non-match.
type Predicate func(query string) bool

// Rule is one named routing rule.
type Rule struct {
	Name      string
	Predicate Predicate
	Target    domain.RouteTarget
}

// Router maps a query string to a route target. It is immutable after Build
// and safe for concurrent use.
type Router struct {
	rules  []Rule
	fallbk domain.RouteTarget
}

// Builder accumulates rules before the router is built. Not safe for
// concurrent use; registration happens once at startup.
type Builder struct {
	rules  []Rule
	fallbk domain.RouteTarget
}

// NewBuilder creates a builder with the given default target.
func NewBuilder(fallback domain.RouteTarget) *Builder {
	return &Builder{fallbk: fallback}
}

// Rule appends a rule to the end of the evaluation order. Names are not
// required to be unique; when two rules share a name the earlier one still
// wins for queries matching both.
func (b *Builder) Rule(name string, predicate Predicate, target domain.RouteTarget) *Builder {
	b.rules = append(b.rules, Rule{Name: name, Predicate: predicate, Target: target})
	return b
}

// Build freezes the rule list into an immutable router.
func (b *Builder) Build() *Router {
	rules := make([]Rule, len(b.rules))
	copy(rules, b.rules)
	return &Router{rules: rules, fallbk: b.fallbk}
}

// financeKeywords is the built-in keyword set for the finance-keywords rule.
var financeKeywords = []string{"how much", "save", "spend", "budget", "predict", "graph"}

// Default returns a router with the built-in finance-keywords rule registered
// first and chat as the fallback target.
func Default() *Router {
	return NewBuilder(domain.RouteChat).
		Rule("finance-keywords", ContainsAny(financeKeywords), domain.RouteFinance).
		Build()
}

// ContainsAny builds a predicate that matches when the query contains any of
// the given keywords, case-insensitively. Substring containment, not word
// boundaries: "spendthrift" matches "spend".
func ContainsAny(keywords []string) Predicate {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(query string) bool {
		if query == "" {
			return false
		}
		q := strings.ToLower(query)
		for _, k := range lowered {
			if strings.Contains(q, k) {
				return true
			}
		}
		return false
	}
}

// Route returns the target of the first rule whose predicate matches, or the
// default target when none do.
func (r *Router) Route(query string) domain.RouteTarget {
	target, _, _ := r.RouteWithReason(query)
	return target
}

// RouteWithReason is Route plus the name of the rule that fired. matched is
// false when the default target applied.
func (r *Router) RouteWithReason(query string) (target domain.RouteTarget, rule string, matched bool) {
	for _, rl := range r.rules {
		if evaluate(rl, query) {
			return rl.Target, rl.Name, true
		}
	}
	return r.fallbk, "", false
}

// Decision returns the routing outcome in its serializable form.
func (r *Router) Decision(query string) domain.RoutingDecision {
	target, rule, matched := r.RouteWithReason(query)
	d := domain.RoutingDecision{Target: target}
	if matched {
		d.Rule = &rule
	}
	return d
}

// evaluate runs a predicate, degrading a panic to a non-match. A broken rule
// must not take down the surrounding request.
func evaluate(rl Rule, query string) (matched bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("routing: rule %q panicked: %v", rl.Name, rec)
			matched = false
		}
	}()
	if rl.Predicate == nil {
		return false
	}
	return rl.Predicate(query)
}
