package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is one of the Provider* names. Empty means explanations
	// come from templates only.
	Provider string

	APIKey string

	// Model is a full model ID or a short alias such as "claude-haiku".
	// Empty selects the provider default.
	Model string

	// BaseURL overrides the endpoint for OpenAI-compatible providers.
	BaseURL string

	// Timeout bounds one explanation including retries.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderMock:       "mock",
}

// keyEnv lists the standard API key variable of each provider, in the
// order Discover probes them.
var keyEnv = []struct {
	provider string
	env      string
}{
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DefaultRetry is three attempts with exponential backoff from one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// WithDefaults fills in the model, timeout and retry policy, and picks up
// the provider's standard API key variable when APIKey is empty.
func (c Config) WithDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = DefaultRetry()
	}
	if c.APIKey == "" {
		for _, k := range keyEnv {
			if k.provider == c.Provider {
				c.APIKey = os.Getenv(k.env)
			}
		}
	}
	return c
}

// Discover returns a config for the first provider whose standard API key
// variable is set. ok is false when none is.
func Discover() (cfg Config, ok bool) {
	for _, k := range keyEnv {
		if key := os.Getenv(k.env); key != "" {
			return Config{Provider: k.provider, APIKey: key}.WithDefaults(), true
		}
	}
	return Config{}, false
}

// Validate reports a missing key or an unknown provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("%s provider needs an API key (set llm.api-key or MATHDRILL_LLM_API_KEY)", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
