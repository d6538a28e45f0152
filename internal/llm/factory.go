package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/circuitz/internal/store"
)

// NewProvider builds the configured backend and wraps it so that calls go
// caller -> retry -> logging -> backend. repo may be nil, in which case
// events are only written to the process logger.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, cfg.Provider, repo), cfg.Retry), nil
}
