package installer

import (
	"github.com/StackOverflowed512/flyer-agent/internal/config"
	"github.com/StackOverflowed512/flyer-agent/pkg/env"
)

// defaultModels is what the model prompt offers for each provider.
var defaultModels = map[string]string{
	"mistral":    "mistral-large-latest",
	"anthropic":  "claude-sonnet-4-5",
	"openai":     "gpt-4o-mini",
	"openrouter": "mistralai/mistral-large",
	"ollama":     "llama3.1",
}

// InstallState collects the answers. Its env tags mirror the runtime config
// so the result can be rendered straight into a .env file.
type InstallState struct {
	LLM      config.LLMConfig
	SMTP     config.SMTPConfig
	Telegram config.TelegramConfig

	EnableTelegram bool `env:"FLYER_ENABLE_TELEGRAM"`
}

func NewInstallState() *InstallState {
	return &InstallState{
		LLM: config.LLMConfig{
			Provider: "mistral",
			Model:    defaultModels["mistral"],
		},
		SMTP: config.SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
	}
}

// SetProvider switches provider and resets the model to that provider's default.
func (s *InstallState) SetProvider(provider string) {
	s.LLM.Provider = provider
	s.LLM.Model = defaultModels[provider]
}

func (s *InstallState) Render() (string, error) {
	return env.MarshalEnv(s)
}
