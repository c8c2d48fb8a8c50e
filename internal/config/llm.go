package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"mistral"`
	Model    string `env:"LLM_MODEL" envDefault:"mistral-large-latest"`

	MistralAPIKey    string `env:"MISTRAL_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func LoadLLMConfig() (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the selected provider has the credentials it needs.
func (c LLMConfig) Validate() error {
	var missing string
	switch c.Provider {
	case "mistral":
		if c.MistralAPIKey == "" {
			missing = "MISTRAL_API_KEY"
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			missing = "OPENAI_API_KEY"
		}
	case "openrouter":
		if c.OpenRouterAPIKey == "" {
			missing = "OPENROUTER_API_KEY"
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			missing = "ANTHROPIC_API_KEY"
		}
	case "ollama":
		if c.OllamaBaseURL == "" {
			missing = "OLLAMA_BASE_URL"
		}
	case "custom":
		if c.CustomOpenAIBaseURL == "" {
			missing = "CUSTOM_OPENAI_BASE_URL"
		}
	default:
		return fmt.Errorf("unknown llm provider: %s", c.Provider)
	}

	if missing != "" {
		return fmt.Errorf("%s is required for provider %s", missing, c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	return nil
}

func (c LLMConfig) GetModel() string               { return c.Model }
func (c LLMConfig) GetProvider() string            { return c.Provider }
func (c LLMConfig) GetMistralAPIKey() string       { return c.MistralAPIKey }
func (c LLMConfig) GetAnthropicAPIKey() string     { return c.AnthropicAPIKey }
func (c LLMConfig) GetOpenAIAPIKey() string        { return c.OpenAIAPIKey }
func (c LLMConfig) GetOpenRouterAPIKey() string    { return c.OpenRouterAPIKey }
func (c LLMConfig) GetOllamaBaseURL() string       { return c.OllamaBaseURL }
func (c LLMConfig) GetCustomOpenAIBaseURL() string { return c.CustomOpenAIBaseURL }
func (c LLMConfig) GetCustomOpenAIAPIKey() string  { return c.CustomOpenAIAPIKey }
