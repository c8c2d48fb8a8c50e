package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// ChoiceStep is a single-select menu.
type ChoiceStep struct {
	prompt  string
	choices []choice
	cursor  int
	apply   func(state *InstallState, value string)
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		s.apply(state, s.choices[s.cursor].value)
		return nil, nil
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("> %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

func NewProviderStep() Step {
	return &ChoiceStep{
		prompt: "Select the model provider:",
		choices: []choice{
			{"Mistral", "mistral"},
			{"Anthropic", "anthropic"},
			{"OpenAI", "openai"},
			{"OpenRouter", "openrouter"},
			{"Ollama (local)", "ollama"},
			{"Custom OpenAI-compatible", "custom"},
		},
		apply: func(state *InstallState, value string) {
			state.SetProvider(value)
		},
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		prompt: "Where should visitors chat?",
		choices: []choice{
			{"Web page only", "web"},
			{"Web page and Telegram", "telegram"},
		},
		apply: func(state *InstallState, value string) {
			state.EnableTelegram = value == "telegram"
		},
	}
}
