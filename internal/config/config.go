package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Provider selects which adapter family handles generation requests.
type Provider string

const (
	ProviderOpenRouter   Provider = "openrouter"
	ProviderOpenAI       Provider = "openai"
	ProviderOpenAICompat Provider = "openai_compat"
	ProviderAnthropic    Provider = "anthropic"
	ProviderGoogle       Provider = "google"
)

// Canonical endpoints for the well-known providers.
const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	OpenAIBaseURL     = "https://api.openai.com/v1"
	AnthropicBaseURL  = "https://api.anthropic.com"
	GoogleBaseURL     = "https://generativelanguage.googleapis.com"
)

// Config is the on-disk configuration for repoforge.
//
// NOTE: this file contains API keys. Always keep it chmod 0600.
type Config struct {
	Provider Provider `json:"provider"`
	Model    string   `json:"model"`

	// BaseURL is the OpenAI-compatible chat-completions endpoint used by the
	// openrouter, openai and openai_compat providers.
	BaseURL          string `json:"base_url"`
	AnthropicBaseURL string `json:"anthropic_base_url,omitempty"`
	GoogleBaseURL    string `json:"google_base_url,omitempty"`

	// APIKey is the generic credential. The dedicated per-provider keys take
	// precedence when set; when empty, APIKey is used in their place.
	APIKey          string `json:"api_key"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	GoogleAPIKey    string `json:"google_api_key,omitempty"`

	// Optional OpenRouter attribution headers, omitted from requests when empty.
	HTTPReferer string `json:"http_referer,omitempty"`
	XTitle      string `json:"x_title,omitempty"`
}

// Default returns the configuration used before the user has run
// `repoforge config`.
func Default() Config {
	return Config{
		Provider:         ProviderOpenRouter,
		Model:            "openai/gpt-4o-mini",
		BaseURL:          OpenRouterBaseURL,
		AnthropicBaseURL: AnthropicBaseURL,
		GoogleBaseURL:    GoogleBaseURL,
		XTitle:           "repoforge",
	}
}

// DefaultModel returns the model identifier suggested for p.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	case ProviderGoogle:
		return "gemini-1.5-flash"
	default:
		return "openai/gpt-4o-mini"
	}
}

// DefaultPath returns the default config location:
//
//	~/.repoforge/config.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "repoforge.config.json"
	}
	return filepath.Join(home, ".repoforge", "config.json")
}

// Load reads the config at path. A missing file, an unreadable file or one
// that does not parse all yield the defaults: configuration can never stop
// the tool from starting.
func Load(path string) Config {
	b, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		slog.Debug("config file unreadable, falling back to defaults", "path", path, "err", err)
		return Default()
	}
	return cfg
}

// Save writes cfg to path, creating the parent directory with owner-only
// permissions.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	// Write atomically.
	tmp := path + ".tmp"
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// KeyFor returns the credential used for p: the dedicated key when set,
// otherwise the generic APIKey.
func (c Config) KeyFor(p Provider) string {
	switch p {
	case ProviderOpenAI:
		if c.OpenAIAPIKey != "" {
			return c.OpenAIAPIKey
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey != "" {
			return c.AnthropicAPIKey
		}
	case ProviderGoogle:
		if c.GoogleAPIKey != "" {
			return c.GoogleAPIKey
		}
	}
	return c.APIKey
}

// EffectiveBaseURL resolves the chat-completions endpoint for p. The stored
// URL wins unless it is empty or clearly belongs to the other well-known
// provider, in which case the canonical default is substituted.
func EffectiveBaseURL(p Provider, stored string) string {
	stored = strings.TrimSpace(stored)
	switch p {
	case ProviderOpenAI:
		if stored == "" || strings.Contains(stored, "openrouter.ai") {
			return OpenAIBaseURL
		}
	case ProviderOpenRouter:
		if stored == "" || strings.Contains(stored, "api.openai.com") {
			return OpenRouterBaseURL
		}
	default:
		if stored == "" {
			return OpenRouterBaseURL
		}
	}
	return stored
}

// Redact masks a credential for display. Short keys are masked entirely;
// longer keys keep the first three and last four characters.
func Redact(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}
