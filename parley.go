// Package parley provides a high-level façade over the conversational agent
// core, wiring configuration, logging, generation and the HTTP surface. Most
// applications interact with this package by:
//  1. Creating a Parley via New() (optionally overriding config, logger or
//     generator)
//  2. Constructing agents with NewAgent() or serving them via Handler()
//
// All defaults are safe for local development: configuration comes from the
// environment, generation is the deterministic pattern generator, and logging
// uses the plain single-line format.
package parley

import (
	"fmt"
	"net/http"

	"github.com/parleyhq/parley/agent"
	"github.com/parleyhq/parley/config"
	"github.com/parleyhq/parley/correlation"
	"github.com/parleyhq/parley/httpapi"
	"github.com/parleyhq/parley/logging"
	"github.com/parleyhq/parley/model"
	"github.com/parleyhq/parley/model/anthropic"
	"github.com/parleyhq/parley/model/openai"
	"github.com/parleyhq/parley/session"
)

// Options configure the Parley instance.
type Options struct {
	// Config overrides environment-loaded configuration.
	Config *config.Config
	// Logger defaults to a plain-format stdout logger.
	Logger logging.Logger
	// Generator defaults to the local PatternGenerator. Use
	// ProviderGenerator to wire a real provider from the configuration.
	Generator model.Generator
	// SystemPrompt applied to every agent built by this instance.
	SystemPrompt string
	// Name given to agents built by this instance.
	Name string
	// AllowedOrigins for the HTTP surface. Defaults to ["*"].
	AllowedOrigins []string
}

// Parley aggregates the configured building blocks and the conversation
// registry.
type Parley struct {
	opts     Options
	cfg      config.Config
	registry *session.Registry
}

// New creates a Parley instance. Without an explicit Config the environment is
// loaded and validated; an invalid environment fails construction.
func New(optFns ...func(o *Options)) (*Parley, error) {
	opts := Options{Name: "ConversationalAgent"}
	for _, fn := range optFns {
		fn(&opts)
	}

	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(nil)
	}
	if opts.Generator == nil {
		opts.Generator = model.NewPatternGenerator()
	}

	return &Parley{opts: opts, cfg: cfg, registry: session.NewRegistry()}, nil
}

// Config returns the effective configuration.
func (p *Parley) Config() config.Config { return p.cfg }

// Logger returns the configured logger.
func (p *Parley) Logger() logging.Logger { return p.opts.Logger }

// Registry returns the conversation registry shared with the HTTP surface.
func (p *Parley) Registry() *session.Registry { return p.registry }

// NewAgent builds a chat agent with the instance's configuration, logger and
// generator. Additional options may override any of them per agent.
func (p *Parley) NewAgent(optFns ...func(o *agent.Options)) (*agent.Chat, error) {
	base := func(o *agent.Options) {
		o.SystemPrompt = p.opts.SystemPrompt
		o.Generator = p.opts.Generator
		o.Logger = p.opts.Logger
	}
	return agent.NewChat(p.opts.Name, p.cfg, append([]func(o *agent.Options){base}, optFns...)...)
}

// Handler returns the HTTP handler serving conversations from the registry.
func (p *Parley) Handler() http.Handler {
	factory := func(scope *correlation.Scope) (*agent.Chat, error) {
		return p.NewAgent(func(o *agent.Options) { o.Scope = scope })
	}
	return httpapi.NewHandler(factory, func(o *httpapi.Options) {
		o.Logger = p.opts.Logger
		o.Registry = p.registry
		if len(p.opts.AllowedOrigins) > 0 {
			o.AllowedOrigins = p.opts.AllowedOrigins
		}
	})
}

// ProviderGenerator builds the generator selected by the configuration's
// provider field. Use with the Generator option to serve real completions
// instead of the pattern generator.
func ProviderGenerator(cfg config.Config) (model.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderAzureOpenAI:
		return openai.NewFromConfig(cfg), nil
	case config.ProviderAnthropic:
		return anthropic.NewFromConfig(cfg), nil
	default:
		return nil, &config.ConfigurationError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
}
