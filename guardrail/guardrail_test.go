package guardrail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_TooShort(t *testing.T) {
	v := NewValidator(1000)

	for _, response := range []string{"", "Hi", "  a  ", "\t\n"} {
		res := v.Validate(response)
		assert.False(t, res.Valid, "response %q should fail", response)
		assert.Contains(t, res.Reason, "short")
	}
}

func TestValidate_TooLong(t *testing.T) {
	v := NewValidator(10)

	res := v.Validate(strings.Repeat("x", 41))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "exceed")

	// Exactly at the budget passes.
	res = v.Validate(strings.Repeat("x", 40))
	assert.True(t, res.Valid)
}

func TestValidate_Denylist(t *testing.T) {
	v := NewValidator(1000)

	tests := []struct {
		response string
		pattern  string
	}{
		{"Here is how to hack the system.", "hacking"},
		{"HACKING tutorials are available.", "hacking"},
		{"This looks like a phishing attempt.", "phishing"},
		{"Install this malware now.", "malware"},
		{"That would be fraud.", "fraud"},
		{"Classic scammer behavior.", "scam"},
		{"You could steal passwords this way.", "credential theft"},
	}
	for _, tt := range tests {
		res := v.Validate(tt.response)
		assert.False(t, res.Valid, "response %q should fail", tt.response)
		assert.Contains(t, res.Reason, "harmful content: "+tt.pattern)
	}
}

func TestValidate_WordBoundaries(t *testing.T) {
	v := NewValidator(1000)

	// Substring occurrences inside larger words do not trigger the screen.
	for _, response := range []string{
		"The hackathon starts tomorrow.",
		"Shackleton crossed the Antarctic.",
		"Scampi is a seafood dish.",
	} {
		res := v.Validate(response)
		assert.True(t, res.Valid, "response %q should pass: %s", response, res.Reason)
	}
}

func TestValidate_Passes(t *testing.T) {
	v := NewValidator(1000)

	res := v.Validate("This is fine.")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Reason)
}
