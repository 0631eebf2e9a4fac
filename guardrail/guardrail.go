// Package guardrail validates generated responses before they are released to
// the caller. Validation is pure: no state, no logging, no side effects. A
// failed Result is a soft outcome consumed by the agent pipeline, never an
// error: conversations degrade to a fallback response instead of crashing.
package guardrail

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinResponseLength is the minimum trimmed length of an acceptable response.
	MinResponseLength = 3
	// MaxResponseMultiplier approximates characters per token when deriving the
	// maximum acceptable response length from a token budget.
	MaxResponseMultiplier = 4
)

// Result is the outcome of validating a single response. Reason is empty when
// Valid is true.
type Result struct {
	Valid  bool
	Reason string
}

type denyPattern struct {
	name string
	re   *regexp.Regexp
}

// denylist is a fixed keyword screen over hacking/fraud vocabulary. It is a
// heuristic, not a semantic classifier, and makes no completeness guarantee.
var denylist = []denyPattern{
	{"hacking", regexp.MustCompile(`(?i)\bhack(?:ing|ed|er)?\b`)},
	{"phishing", regexp.MustCompile(`(?i)\bphish(?:ing|er)?\b`)},
	{"malware", regexp.MustCompile(`(?i)\bmalware\b`)},
	{"fraud", regexp.MustCompile(`(?i)\bfraud(?:ulent)?\b`)},
	{"scam", regexp.MustCompile(`(?i)\bscam(?:ming|mer)?\b`)},
	{"credential theft", regexp.MustCompile(`(?i)\bsteal(?:ing)?\s+(?:passwords?|credentials)\b`)},
}

// Validator checks responses against length bounds and the denylist.
// It is immutable after construction and safe for concurrent use.
type Validator struct {
	minLength int
	maxChars  int
}

// NewValidator derives length bounds from the configured token budget.
func NewValidator(maxTokens int) *Validator {
	return &Validator{
		minLength: MinResponseLength,
		maxChars:  maxTokens * MaxResponseMultiplier,
	}
}

// Validate checks a candidate response. It fails on responses that are too
// short, exceed the length budget, or match a denylist pattern.
func (v *Validator) Validate(response string) Result {
	if len(strings.TrimSpace(response)) < v.minLength {
		return Result{Reason: "response is too short"}
	}
	if len(response) > v.maxChars {
		return Result{Reason: fmt.Sprintf("response exceeds maximum length of %d characters", v.maxChars)}
	}
	for _, p := range denylist {
		if p.re.MatchString(response) {
			return Result{Reason: fmt.Sprintf("harmful content: %s", p.name)}
		}
	}
	return Result{Valid: true}
}
