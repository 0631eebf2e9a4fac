package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
}

func TestValidate_TemperatureBounds(t *testing.T) {
	for _, temp := range []float64{-0.1, 2.1, 100} {
		cfg := Default()
		cfg.Temperature = temp

		err := cfg.Validate()
		require.Error(t, err)

		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "temperature", cerr.Field)
	}

	// Boundary values are accepted.
	for _, temp := range []float64{0.0, 2.0} {
		cfg := Default()
		cfg.Temperature = temp
		assert.NoError(t, cfg.Validate())
	}
}

func TestValidate_MaxTokens(t *testing.T) {
	cfg := Default()
	cfg.MaxTokens = 0

	var cerr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "max_tokens", cerr.Field)

	cfg.MaxTokens = -5
	require.ErrorAs(t, cfg.Validate(), &cerr)
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Provider = "bedrock"

	var cerr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "provider", cerr.Field)
}

func TestValidate_AzureRequiresEndpointAndDeployment(t *testing.T) {
	cfg := Default()
	cfg.Provider = ProviderAzureOpenAI

	var cerr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "azure_endpoint", cerr.Field)

	cfg.AzureEndpoint = "https://example.openai.azure.com"
	require.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "azure_deployment", cerr.Field)

	cfg.AzureDeployment = "gpt-4"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_FallbackProvider(t *testing.T) {
	cfg := Default()
	cfg.FallbackProvider = "nope"

	var cerr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "fallback_provider", cerr.Field)

	cfg.FallbackProvider = ProviderAnthropic
	cfg.FallbackModel = "claude-3-5-sonnet-20241022"
	assert.NoError(t, cfg.Validate())
}

func TestConfigurationError_Message(t *testing.T) {
	err := &ConfigurationError{Field: "max_tokens", Message: "must be greater than zero, got 0"}
	assert.Contains(t, err.Error(), "max_tokens")
	assert.Contains(t, err.Error(), "configuration error")
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TEMPERATURE", "1.2")
	t.Setenv("LLM_MAX_TOKENS", "500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.InDelta(t, 1.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 500, cfg.MaxTokens)
}

func TestLoad_AnthropicKeyFallback(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant-test", cfg.APIKey)

	// An explicit OPENAI_API_KEY still wins; the fallback only fills a gap.
	t.Setenv("OPENAI_API_KEY", "sk-openai-test")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-openai-test", cfg.APIKey)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "-1")

	_, err := Load()
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "max_tokens", cerr.Field)
}
