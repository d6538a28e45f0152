package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the explanation backend.
type Config struct {
	// Provider is one of "gemini", "openai", "openrouter", "anthropic", "mock".
	Provider string `yaml:"provider" validate:"omitempty,oneof=gemini openai openrouter anthropic mock"`

	Gemini     ProviderConfig `yaml:"gemini"`
	OpenAI     ProviderConfig `yaml:"openai"`
	OpenRouter ProviderConfig `yaml:"openrouter"`
	Anthropic  ProviderConfig `yaml:"anthropic"`

	Retry RetryConfig `yaml:"retry"`

	// Timeout bounds one explanation request including retries.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// ProviderConfig holds the credentials and model for one backend.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" validate:"gte=1,lte=10"`
	InitialWait time.Duration `yaml:"initial_wait" validate:"gte=0"`
	MaxWait     time.Duration `yaml:"max_wait" validate:"gte=0"`
	Multiplier  float64       `yaml:"multiplier" validate:"gte=1"`
}

// DefaultConfig returns the defaults. Gemini is the default backend.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp"},
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ApplyEnv overlays CIRCUITZ_* environment variables onto c.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("CIRCUITZ_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}
	applyProviderEnv(&c.Gemini, "GEMINI")
	applyProviderEnv(&c.OpenAI, "OPENAI")
	applyProviderEnv(&c.OpenRouter, "OPENROUTER")
	applyProviderEnv(&c.Anthropic, "ANTHROPIC")
}

func applyProviderEnv(pc *ProviderConfig, name string) {
	if k := os.Getenv("CIRCUITZ_" + name + "_API_KEY"); k != "" {
		pc.APIKey = k
	}
	if m := os.Getenv("CIRCUITZ_" + name + "_MODEL"); m != "" {
		pc.Model = m
	}
	if u := os.Getenv("CIRCUITZ_" + name + "_BASE_URL"); u != "" {
		pc.BaseURL = u
	}
}

// Discover fills in the first backend whose standard API key variable is
// set (Gemini, OpenAI, Anthropic, OpenRouter) when c has no usable key.
// It reports whether a usable backend is configured afterwards.
func (c *Config) Discover() bool {
	if c.Validate() == nil {
		return true
	}
	candidates := []struct {
		provider string
		env      string
		target   *ProviderConfig
	}{
		{"gemini", "GEMINI_API_KEY", &c.Gemini},
		{"openai", "OPENAI_API_KEY", &c.OpenAI},
		{"anthropic", "ANTHROPIC_API_KEY", &c.Anthropic},
		{"openrouter", "OPENROUTER_API_KEY", &c.OpenRouter},
	}
	for _, cand := range candidates {
		if k := os.Getenv(cand.env); k != "" {
			c.Provider = cand.provider
			cand.target.APIKey = k
			return true
		}
	}
	return false
}

// Active returns the settings of the selected backend.
func (c Config) Active() ProviderConfig {
	switch c.Provider {
	case "gemini":
		return c.Gemini
	case "openai":
		return c.OpenAI
	case "openrouter":
		return c.OpenRouter
	case "anthropic":
		return c.Anthropic
	}
	return ProviderConfig{}
}

// Validate checks that the selected backend has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock":
		return nil
	case "gemini", "openai", "openrouter", "anthropic":
		if c.Active().APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
