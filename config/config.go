// Package config supplies the typed LLM configuration consumed by agents and
// provider generators. Values are sourced from environment variables (with a
// best-effort .env load for local runs) and validated before any agent is
// constructed, so a bad configuration fails fast at startup instead of at the
// first generation call.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Provider identifies an LLM provider.
type Provider string

const (
	// ProviderOpenAI targets the OpenAI API.
	ProviderOpenAI Provider = "openai"
	// ProviderAzureOpenAI targets an Azure OpenAI deployment.
	ProviderAzureOpenAI Provider = "azure_openai"
	// ProviderAnthropic targets the Anthropic Messages API.
	ProviderAnthropic Provider = "anthropic"
)

func (p Provider) valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAzureOpenAI, ProviderAnthropic:
		return true
	}
	return false
}

// Config carries provider selection and generation parameters.
type Config struct {
	Provider Provider `envconfig:"LLM_PROVIDER" default:"openai"`
	// APIKey authenticates against the selected provider. Bound to
	// OPENAI_API_KEY; Load falls back to ANTHROPIC_API_KEY for the
	// anthropic provider.
	APIKey      string   `envconfig:"OPENAI_API_KEY"`
	Model       string   `envconfig:"LLM_MODEL" default:"gpt-4"`
	Temperature float64  `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	MaxTokens   int      `envconfig:"LLM_MAX_TOKENS" default:"1000"`

	// Azure OpenAI specific fields.
	AzureEndpoint   string `envconfig:"AZURE_OPENAI_ENDPOINT"`
	AzureDeployment string `envconfig:"AZURE_OPENAI_DEPLOYMENT"`
	APIVersion      string `envconfig:"AZURE_OPENAI_API_VERSION" default:"2024-02-15-preview"`

	// Fallback configuration used when the primary provider fails.
	FallbackProvider Provider `envconfig:"LLM_FALLBACK_PROVIDER"`
	FallbackModel    string   `envconfig:"LLM_FALLBACK_MODEL"`

	// EnableTokenTracking toggles token usage accounting for cost monitoring.
	EnableTokenTracking bool `envconfig:"LLM_ENABLE_TOKEN_TRACKING" default:"true"`
}

// Default returns the baseline configuration used when no environment is set.
func Default() Config {
	return Config{
		Provider:            ProviderOpenAI,
		Model:               "gpt-4",
		Temperature:         0.7,
		MaxTokens:           1000,
		APIVersion:          "2024-02-15-preview",
		EnableTokenTracking: true,
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; a missing file is not an error.
// The returned configuration is already validated.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	if cfg.APIKey == "" && cfg.Provider == ProviderAnthropic {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field bounds and provider consistency. It returns a
// *ConfigurationError describing the first offending field.
func (c Config) Validate() error {
	if !c.Provider.valid() {
		return &ConfigurationError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", c.Provider)}
	}
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return &ConfigurationError{Field: "temperature", Message: fmt.Sprintf("must be within [0.0, 2.0], got %g", c.Temperature)}
	}
	if c.MaxTokens <= 0 {
		return &ConfigurationError{Field: "max_tokens", Message: fmt.Sprintf("must be greater than zero, got %d", c.MaxTokens)}
	}
	if c.Provider == ProviderAzureOpenAI {
		if c.AzureEndpoint == "" {
			return &ConfigurationError{Field: "azure_endpoint", Message: "required for the azure_openai provider"}
		}
		if c.AzureDeployment == "" {
			return &ConfigurationError{Field: "azure_deployment", Message: "required for the azure_openai provider"}
		}
	}
	if c.FallbackProvider != "" && !c.FallbackProvider.valid() {
		return &ConfigurationError{Field: "fallback_provider", Message: fmt.Sprintf("unknown provider %q", c.FallbackProvider)}
	}
	return nil
}

// ConfigurationError reports a missing or out-of-bounds configuration field.
// Construction of an agent with an invalid configuration fails with this error.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}
