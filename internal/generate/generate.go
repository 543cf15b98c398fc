// Package generate runs the plan pipeline: pick a provider adapter from the
// configuration, send the request, pull the JSON object out of the reply and
// validate it into a plan.
package generate

import (
	"context"
	"strings"

	"github.com/Protocol-Lattice/repoforge/internal/config"
	"github.com/Protocol-Lattice/repoforge/internal/plan"
	"github.com/Protocol-Lattice/repoforge/internal/provider"
)

// Generate asks the configured provider to plan repositories for the given
// request. There are no retries: every failure surfaces immediately with its
// typed error.
func Generate(ctx context.Context, cfg config.Config, request string) (*plan.Plan, error) {
	caller, err := newCaller(cfg)
	if err != nil {
		return nil, err
	}
	return run(ctx, caller, cfg.Model, request)
}

// run is the provider-independent tail of the pipeline.
func run(ctx context.Context, caller provider.Caller, model, request string) (*plan.Plan, error) {
	raw, err := caller.Call(ctx, provider.Request{
		Model:  model,
		System: systemPrompt,
		User:   userContent(request),
	})
	if err != nil {
		return nil, err
	}
	data, err := plan.Extract(raw)
	if err != nil {
		return nil, err
	}
	return plan.Decode(data)
}

// newCaller maps the configured provider tag to an adapter. The tag is
// normalized first, and an empty tag means openrouter.
func newCaller(cfg config.Config) (provider.Caller, error) {
	tag := config.Provider(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	if tag == "" {
		tag = config.ProviderOpenRouter
	}

	switch tag {
	case config.ProviderOpenRouter, config.ProviderOpenAI, config.ProviderOpenAICompat:
		key := cfg.KeyFor(tag)
		if key == "" {
			return nil, &provider.MissingCredentialError{Provider: tag}
		}
		return provider.NewOpenAI(config.EffectiveBaseURL(tag, cfg.BaseURL), key, cfg.HTTPReferer, cfg.XTitle), nil

	case config.ProviderAnthropic:
		key := cfg.KeyFor(tag)
		if key == "" {
			return nil, &provider.MissingCredentialError{Provider: tag}
		}
		base := cfg.AnthropicBaseURL
		if base == "" {
			base = config.AnthropicBaseURL
		}
		return provider.NewAnthropic(base, key), nil

	case config.ProviderGoogle:
		key := cfg.KeyFor(tag)
		if key == "" {
			return nil, &provider.MissingCredentialError{Provider: tag}
		}
		base := cfg.GoogleBaseURL
		if base == "" {
			base = config.GoogleBaseURL
		}
		return provider.NewGemini(base, key), nil
	}

	return nil, &provider.UnknownProviderError{Tag: string(tag)}
}
