// Package provider normalizes three LLM wire protocols into one contract:
// given a model, a system prompt and user text, return the raw response
// text or fail. Provider APIs disagree on where the system instruction
// goes, how credentials travel, and what shape the response has; the
// adapters absorb all three asymmetries.
package provider

import (
	"context"
	"fmt"

	"github.com/Protocol-Lattice/repoforge/internal/config"
)

// Request is one generation request, identical across providers.
type Request struct {
	Model  string
	System string
	User   string
}

// Caller is the capability every adapter implements.
type Caller interface {
	Call(ctx context.Context, req Request) (string, error)
}

const (
	// requestTemperature keeps plan output deterministic-ish across providers.
	requestTemperature = 0.2

	// maxErrorBody bounds how much of a provider response body may appear in
	// an error message. Full bodies can be huge and may echo request data.
	maxErrorBody = 400
)

// MissingCredentialError reports that no API key is configured for the
// selected provider. The message never contains key material.
type MissingCredentialError struct {
	Provider config.Provider
}

func (e *MissingCredentialError) Error() string {
	switch e.Provider {
	case config.ProviderAnthropic:
		return "missing Anthropic API key; run `repoforge config` to configure one"
	case config.ProviderGoogle:
		return "missing Gemini API key; run `repoforge config` to configure one"
	default:
		return "missing API key; run `repoforge config` to configure one"
	}
}

// UnknownProviderError reports an unrecognized provider tag.
type UnknownProviderError struct {
	Tag string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %q", e.Tag)
}

// HTTPError reports a non-success provider response. Body is already
// truncated to maxErrorBody characters when the error is built.
type HTTPError struct {
	Name       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Name, e.StatusCode, e.Body)
}

// truncate bounds s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
