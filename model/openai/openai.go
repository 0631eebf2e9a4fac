// Package openai implements model.Generator using the OpenAI Chat Completions
// API. It also serves Azure OpenAI deployments via a custom base URL, avoiding
// a separate Azure client stack.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/parleyhq/parley/config"
	"github.com/parleyhq/parley/model"
)

// Options configure the OpenAI generator. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	APIKey      string
	// BaseURL overrides the API endpoint, e.g. for Azure OpenAI deployments.
	BaseURL string
}

// Generator wraps the OpenAI Chat Completions API behind model.Generator.
type Generator struct {
	client openai.Client
	opts   Options
}

var _ model.Generator = (*Generator)(nil)

// New creates a generator using the official client.
func New(optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &Generator{client: openai.NewClient(clientOpts...), opts: opts}
}

// NewFromConfig derives generator options from the application configuration.
// For the azure_openai provider the deployment name becomes the model and the
// Azure endpoint becomes the base URL.
func NewFromConfig(cfg config.Config) *Generator {
	return New(func(o *Options) {
		o.Model = cfg.Model
		o.Temperature = cfg.Temperature
		o.MaxTokens = int64(cfg.MaxTokens)
		o.APIKey = cfg.APIKey
		if cfg.Provider == config.ProviderAzureOpenAI {
			o.BaseURL = cfg.AzureEndpoint
			o.Model = cfg.AzureDeployment
		}
	})
}

// Generate implements model.Generator via a non-streaming chat completion.
func (g *Generator) Generate(ctx context.Context, system string, history []model.Message, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, m := range history {
		switch m.Role {
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               g.opts.Model,
		Temperature:         openai.Float(g.opts.Temperature),
		MaxCompletionTokens: openai.Int(g.opts.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
