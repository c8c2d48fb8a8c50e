package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep asks for one value. Steps whose skip func returns true complete
// without rendering.
type InputStep struct {
	prompt      string
	placeholder string
	secret      bool
	optional    bool
	skip        func(state *InstallState) bool
	initial     func(state *InstallState) string
	apply       func(state *InstallState, value string)

	input   textinput.Model
	started bool
	missing bool
}

func (s *InputStep) Init() tea.Cmd {
	return nil
}

func (s *InputStep) start(state *InstallState) {
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 48
	s.input.Placeholder = s.placeholder
	if s.secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '*'
	}
	if s.initial != nil {
		s.input.SetValue(s.initial(state))
	}
	s.started = true
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}
	if !s.started {
		s.start(state)
		return s, textinput.Blink
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(s.input.Value())
		if value == "" && !s.optional {
			s.missing = true
			return s, nil
		}
		s.apply(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	if !s.started {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(s.prompt)
	if s.optional {
		b.WriteString(" (optional, press enter to skip)")
	}
	b.WriteString(":\n\n" + s.input.View() + "\n\n")
	if s.missing {
		b.WriteString(errorStyle.Render("A value is required.") + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}

func providerIs(names ...string) func(*InstallState) bool {
	return func(state *InstallState) bool {
		for _, n := range names {
			if state.LLM.Provider == n {
				return true
			}
		}
		return false
	}
}

func not(fn func(*InstallState) bool) func(*InstallState) bool {
	return func(state *InstallState) bool { return !fn(state) }
}

func NewAPIKeyStep() Step {
	return &InputStep{
		prompt: "Enter the provider API key",
		secret: true,
		skip:   providerIs("ollama", "custom"),
		apply: func(state *InstallState, value string) {
			switch state.LLM.Provider {
			case "mistral":
				state.LLM.MistralAPIKey = value
			case "anthropic":
				state.LLM.AnthropicAPIKey = value
			case "openai":
				state.LLM.OpenAIAPIKey = value
			case "openrouter":
				state.LLM.OpenRouterAPIKey = value
			}
		},
	}
}

func NewOllamaURLStep() Step {
	return &InputStep{
		prompt:      "Enter the Ollama base URL",
		placeholder: "http://localhost:11434",
		skip:        not(providerIs("ollama")),
		initial:     func(*InstallState) string { return "http://localhost:11434" },
		apply: func(state *InstallState, value string) {
			state.LLM.OllamaBaseURL = value
		},
	}
}

func NewCustomURLStep() Step {
	return &InputStep{
		prompt:      "Enter the OpenAI-compatible base URL",
		placeholder: "https://llm.example.com",
		skip:        not(providerIs("custom")),
		apply: func(state *InstallState, value string) {
			state.LLM.CustomOpenAIBaseURL = value
		},
	}
}

func NewCustomKeyStep() Step {
	return &InputStep{
		prompt:   "Enter the API key for the custom endpoint",
		secret:   true,
		optional: true,
		skip:     not(providerIs("custom")),
		apply: func(state *InstallState, value string) {
			state.LLM.CustomOpenAIAPIKey = value
		},
	}
}

func NewModelStep() Step {
	return &InputStep{
		prompt:  "Enter the model name",
		initial: func(state *InstallState) string { return state.LLM.Model },
		apply: func(state *InstallState, value string) {
			state.LLM.Model = value
		},
	}
}

func NewSenderEmailStep() Step {
	return &InputStep{
		prompt:      "Enter the address flyers are sent from",
		placeholder: "flyers@example.com",
		optional:    true,
		apply: func(state *InstallState, value string) {
			state.SMTP.Sender = value
		},
	}
}

func NewSenderPasswordStep() Step {
	return &InputStep{
		prompt: "Enter the SMTP password (an app password for Gmail)",
		secret: true,
		skip:   func(state *InstallState) bool { return state.SMTP.Sender == "" },
		apply: func(state *InstallState, value string) {
			state.SMTP.Password = value
		},
	}
}

func NewTelegramTokenStep() Step {
	return &InputStep{
		prompt:      "Enter the Telegram bot token",
		placeholder: "123456789:ABCDEF...",
		secret:      true,
		skip:        func(state *InstallState) bool { return !state.EnableTelegram },
		apply: func(state *InstallState, value string) {
			state.Telegram.Token = value
		},
	}
}
