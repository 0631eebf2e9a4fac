package tool

// Supported arithmetic operations.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

// Calculator performs basic arithmetic. Division by zero and unknown
// operations are usage errors surfaced as *ToolError.
type Calculator struct{}

var _ Tool = (*Calculator)(nil)

// NewCalculator constructs a Calculator.
func NewCalculator() *Calculator { return &Calculator{} }

// Name implements Tool.
func (c *Calculator) Name() string { return "calculator" }

// Description implements Tool.
func (c *Calculator) Description() string { return "Perform basic arithmetic operations" }

// Parameters implements Tool.
func (c *Calculator) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{
				"type": "string",
				"enum": []string{OpAdd, OpSubtract, OpMultiply, OpDivide},
			},
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"operation", "a", "b"},
	}
}

// Call implements Tool. The result payload echoes the operation and operands
// alongside the computed value.
func (c *Calculator) Call(args map[string]any) (any, error) {
	op, err := stringArg(c.Name(), args, "operation")
	if err != nil {
		return nil, err
	}
	a, err := numberArg(c.Name(), args, "a")
	if err != nil {
		return nil, err
	}
	b, err := numberArg(c.Name(), args, "b")
	if err != nil {
		return nil, err
	}

	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return nil, NewToolError(c.Name(), "division by zero", CodeDivisionByZero)
		}
		result = a / b
	default:
		return nil, NewToolError(c.Name(), "invalid operation: "+op, CodeInvalidOperation)
	}

	return map[string]any{
		"operation": op,
		"operands":  []float64{a, b},
		"result":    result,
	}, nil
}
