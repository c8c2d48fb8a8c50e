package llm

import (
	"context"
	"fmt"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig, opts ...Option) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	switch cfg.GetProvider() {
	case "mistral":
		return NewMistral(cfg.GetMistralAPIKey(), cfg.GetModel(), opts...), nil
	case "openai":
		return NewOpenAI(cfg.GetOpenAIAPIKey(), cfg.GetModel(), opts...), nil
	case "anthropic":
		return NewAnthropic(cfg.GetAnthropicAPIKey(), cfg.GetModel(), opts...), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), cfg.GetModel(), opts...), nil
	case "ollama":
		return NewOllama(cfg.GetOllamaBaseURL(), cfg.GetModel(), opts...), nil
	case "custom":
		return NewCustomOpenAI(cfg.GetCustomOpenAIBaseURL(), cfg.GetCustomOpenAIAPIKey(), cfg.GetModel(), opts...), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
