// Package evaluator implements the external evaluation capability: LLM
// providers that review an already-redacted prompt and return structured
// issues plus a corrected prompt. Providers are deliberately thin HTTP
// clients; everything the pipeline relies on (redaction, scoring, merge
// order) happens outside this package, so a misbehaving provider can only
// degrade results, never corrupt them.
package evaluator

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/promptsec/promptval/internal/validate"
)

// Options selects and tunes a provider.
type Options struct {
	Provider    string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

const defaultTimeout = 60 * time.Second

// New builds an evaluator for the named provider. Provider API keys come
// from the conventional environment variables (OPENAI_API_KEY,
// XAI_API_KEY, ANTHROPIC_API_KEY, GOOGLE_API_KEY); a missing key is an
// error here, not at call time.
func New(opts Options) (validate.Evaluator, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	switch opts.Provider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("evaluator: OPENAI_API_KEY not set")
		}
		return newOpenAICompatible("openai", "https://api.openai.com", key, opts, client), nil

	case "openai_compatible":
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("evaluator: openai_compatible requires a base URL")
		}
		return newOpenAICompatible("openai_compatible", opts.BaseURL, os.Getenv("OPENAI_API_KEY"), opts, client), nil

	case "xai":
		// OpenAI-compatible dialect served from the xAI endpoint.
		key := os.Getenv("XAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("evaluator: XAI_API_KEY not set")
		}
		base := opts.BaseURL
		if base == "" {
			base = os.Getenv("XAI_BASE_URL")
		}
		if base == "" {
			base = "https://api.x.ai"
		}
		if opts.Model == "" {
			opts.Model = "grok-2-latest"
		}
		return newOpenAICompatible("xai", base, key, opts, client), nil

	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("evaluator: ANTHROPIC_API_KEY not set")
		}
		return newAnthropic(key, opts, client), nil

	case "gemini":
		key := os.Getenv("GOOGLE_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("evaluator: GOOGLE_API_KEY not set")
		}
		return newGemini(key, opts, client), nil
	}

	return nil, fmt.Errorf("evaluator: unknown provider %q", opts.Provider)
}

// userPrompt wraps the redacted text the way every provider sends it.
func userPrompt(text string) string {
	return "PROMPT TO REVIEW (PII-REDACTED):\n" + text + "\n\nRespond with JSON only."
}
