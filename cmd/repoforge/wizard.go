package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Protocol-Lattice/repoforge/internal/config"
)

var providerChoices = []config.Provider{
	config.ProviderOpenRouter,
	config.ProviderOpenAI,
	config.ProviderAnthropic,
	config.ProviderGoogle,
	config.ProviderOpenAICompat,
}

// runWizard walks through provider, endpoint, model and credentials, then
// saves the whole record. Current values are offered as defaults, secrets
// are typed hidden and never echoed back unredacted.
func runWizard(path string) error {
	cfg := config.Load(path)
	previous := cfg.Provider
	in := bufio.NewReader(os.Stdin)

	fmt.Printf("Config file: %s\n\n", path)

	cfg.Provider = promptProvider(in, cfg.Provider)

	switch cfg.Provider {
	case config.ProviderAnthropic:
		cfg.AnthropicBaseURL = prompt(in, "anthropic_base_url", orDefault(cfg.AnthropicBaseURL, config.AnthropicBaseURL))
	case config.ProviderGoogle:
		cfg.GoogleBaseURL = prompt(in, "google_base_url", orDefault(cfg.GoogleBaseURL, config.GoogleBaseURL))
	default:
		// The suggestion swaps to the canonical endpoint when the stored URL
		// is empty or belongs to the other well-known provider.
		cfg.BaseURL = prompt(in, "base_url (OpenAI-compatible)", config.EffectiveBaseURL(cfg.Provider, cfg.BaseURL))
	}

	modelDefault := cfg.Model
	if cfg.Provider != previous {
		// Do not carry a model string over to a provider that cannot serve it.
		modelDefault = config.DefaultModel(cfg.Provider)
	}
	cfg.Model = prompt(in, "model", modelDefault)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		cfg.OpenAIAPIKey = promptSecret(in, "openai_api_key", cfg.OpenAIAPIKey)
	case config.ProviderAnthropic:
		cfg.AnthropicAPIKey = promptSecret(in, "anthropic_api_key", cfg.AnthropicAPIKey)
	case config.ProviderGoogle:
		cfg.GoogleAPIKey = promptSecret(in, "google_api_key", cfg.GoogleAPIKey)
	default:
		cfg.APIKey = promptSecret(in, "api_key", cfg.APIKey)
	}

	cfg.HTTPReferer = prompt(in, "http_referer (optional)", cfg.HTTPReferer)
	cfg.XTitle = prompt(in, "x_title (optional)", cfg.XTitle)

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("\nSaved.\n")
	fmt.Printf("provider: %s\n", cfg.Provider)
	fmt.Printf("model: %s\n", cfg.Model)
	fmt.Printf("api_key: %s\n", orDefault(config.Redact(cfg.KeyFor(cfg.Provider)), "(empty)"))
	return nil
}

// showConfig prints the full record, keys redacted.
func showConfig(w io.Writer, path string) error {
	cfg := config.Load(path)

	fmt.Fprintf(w, "config file: %s\n\n", path)
	fmt.Fprintf(w, "provider:           %s\n", cfg.Provider)
	fmt.Fprintf(w, "model:              %s\n", cfg.Model)
	fmt.Fprintf(w, "base_url:           %s\n", cfg.BaseURL)
	fmt.Fprintf(w, "anthropic_base_url: %s\n", cfg.AnthropicBaseURL)
	fmt.Fprintf(w, "google_base_url:    %s\n", cfg.GoogleBaseURL)
	fmt.Fprintf(w, "api_key:            %s\n", orDefault(config.Redact(cfg.APIKey), "(empty)"))
	fmt.Fprintf(w, "openai_api_key:     %s\n", orDefault(config.Redact(cfg.OpenAIAPIKey), "(empty)"))
	fmt.Fprintf(w, "anthropic_api_key:  %s\n", orDefault(config.Redact(cfg.AnthropicAPIKey), "(empty)"))
	fmt.Fprintf(w, "google_api_key:     %s\n", orDefault(config.Redact(cfg.GoogleAPIKey), "(empty)"))
	fmt.Fprintf(w, "http_referer:       %s\n", cfg.HTTPReferer)
	fmt.Fprintf(w, "x_title:            %s\n", cfg.XTitle)
	return nil
}

func promptProvider(in *bufio.Reader, current config.Provider) config.Provider {
	for {
		raw := prompt(in, "provider (openrouter/openai/anthropic/google/openai_compat)", string(current))
		p := config.Provider(strings.ToLower(strings.TrimSpace(raw)))
		for _, choice := range providerChoices {
			if p == choice {
				return p
			}
		}
		fmt.Println("provider must be one of: openrouter/openai/anthropic/google/openai_compat")
	}
}

// prompt reads one line, returning def on blank input or EOF.
func prompt(in *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// promptSecret shows the current value redacted and reads a replacement
// without echo. Blank keeps the current value, "-" clears it.
func promptSecret(in *bufio.Reader, label, current string) string {
	fmt.Printf("current %s: %s\n", label, orDefault(config.Redact(current), "(empty)"))
	fmt.Printf("%s (leave blank to keep, '-' to clear): ", label)

	var raw string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err == nil {
			raw = string(b)
		}
	} else {
		raw, _ = in.ReadString('\n')
	}

	switch v := strings.TrimSpace(raw); v {
	case "":
		return current
	case "-":
		return ""
	default:
		return v
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
