package tool

// Weather returns canned weather data for a location. Mock implementation,
// no outbound calls.
type Weather struct{}

var _ Tool = (*Weather)(nil)

// NewWeather constructs a Weather tool.
func NewWeather() *Weather { return &Weather{} }

// Name implements Tool.
func (w *Weather) Name() string { return "get_weather" }

// Description implements Tool.
func (w *Weather) Description() string { return "Get weather for a location" }

// Parameters implements Tool.
func (w *Weather) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{"type": "string"},
		},
		"required": []string{"location"},
	}
}

// Call implements Tool.
func (w *Weather) Call(args map[string]any) (any, error) {
	location, err := stringArg(w.Name(), args, "location")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"location":    location,
		"temperature": 72,
		"conditions":  "Partly cloudy",
		"note":        "Mock data",
	}, nil
}
