// Package tool implements auxiliary agent tools with schema metadata and
// consistent error handling. Tool failures represent usage errors (bad
// arguments, impossible operations) and are always propagated to the caller,
// unlike content guardrail failures which the agent pipeline absorbs.
package tool

import "fmt"

// Error codes carried by ToolError.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeDivisionByZero   = "DIVISION_BY_ZERO"
)

// Tool is the interface for structured agent capabilities.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a JSON-schema-like parameter map
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	Description() string

	// Parameters returns a JSON-schema-like description of the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with the given arguments.
	Call(args map[string]any) (any, error)
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// numberArg extracts a float64 argument, accepting ints for convenience.
func numberArg(tool string, args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, NewToolError(tool, fmt.Sprintf("missing required argument %q", key), CodeValidationError)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, NewToolError(tool, fmt.Sprintf("argument %q must be a number", key), CodeValidationError)
	}
}

// stringArg extracts a required string argument.
func stringArg(tool string, args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", NewToolError(tool, fmt.Sprintf("missing required argument %q", key), CodeValidationError)
	}
	s, ok := v.(string)
	if !ok {
		return "", NewToolError(tool, fmt.Sprintf("argument %q must be a string", key), CodeValidationError)
	}
	return s, nil
}
