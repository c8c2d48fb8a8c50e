package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enter() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msgs to the wizard model, preceded by the nextMsg each step receives on entry.
func drive(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	step := func(msg tea.Msg) {
		prev := m.currentStep
		next, _ := m.Update(msg)
		m = next.(model)
		for m.currentStep != prev && m.currentStep < len(m.steps) {
			prev = m.currentStep
			next, _ = m.Update(nextMsg{})
			m = next.(model)
		}
	}
	step(nextMsg{})
	for _, msg := range msgs {
		step(msg)
	}
	return m
}

func TestWizard_MistralWebOnly(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{Runtime: dir, Flyers: filepath.Join(dir, "flyers")}

	m := drive(t, initialModel(paths),
		// provider: Mistral, then its API key
		enter(),
		typeText("mk-123"), enter(),
		// default model
		enter(),
		typeText("flyers@example.com"), enter(),
		typeText("app pass"), enter(),
		// web only
		enter(),
	)

	require.Equal(t, len(m.steps), m.currentStep, "wizard should have finished")

	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "mistral", vars["LLM_PROVIDER"])
	assert.Equal(t, "mistral-large-latest", vars["LLM_MODEL"])
	assert.Equal(t, "mk-123", vars["MISTRAL_API_KEY"])
	assert.Equal(t, "flyers@example.com", vars["SENDER_EMAIL"])
	assert.Equal(t, "app pass", vars["SENDER_PASSWORD"])
	assert.Equal(t, "465", vars["SMTP_PORT"])
	assert.NotContains(t, vars, "TELEGRAM_TOKEN")
	assert.NotContains(t, vars, "FLYER_ENABLE_TELEGRAM")

	entries, err := os.ReadDir(paths.Flyers)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWizard_OllamaWithTelegram(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{Runtime: dir, Flyers: filepath.Join(dir, "flyers")}

	down := tea.KeyMsg{Type: tea.KeyDown}
	m := drive(t, initialModel(paths),
		// provider: Ollama, default base URL, default model
		down, down, down, down, enter(),
		enter(),
		enter(),
		// no sender, so the password step is skipped
		enter(),
		// web and Telegram
		down, enter(),
		typeText("123:abc"), enter(),
	)

	require.Equal(t, len(m.steps), m.currentStep)

	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "ollama", vars["LLM_PROVIDER"])
	assert.Equal(t, "llama3.1", vars["LLM_MODEL"])
	assert.Equal(t, "http://localhost:11434", vars["OLLAMA_BASE_URL"])
	assert.Equal(t, "true", vars["FLYER_ENABLE_TELEGRAM"])
	assert.Equal(t, "123:abc", vars["TELEGRAM_TOKEN"])
	assert.NotContains(t, vars, "SENDER_PASSWORD")
}

func TestInputStep_RequiresValue(t *testing.T) {
	state := NewInstallState()
	var step Step = NewAPIKeyStep()

	step, _ = step.Update(nextMsg{}, state, 80, 24)
	require.NotNil(t, step)

	step, _ = step.Update(enter(), state, 80, 24)
	require.NotNil(t, step, "empty required input must not complete")
	assert.Contains(t, step.View(state), "A value is required.")
}

func TestSaveEnv_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("X=1\n"), 0600))

	err := SaveEnv(dir, NewInstallState())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already exists"))
}

func TestSetProviderResetsModel(t *testing.T) {
	state := NewInstallState()
	state.SetProvider("openai")
	assert.Equal(t, "gpt-4o-mini", state.LLM.Model)

	state.SetProvider("custom")
	assert.Empty(t, state.LLM.Model)
}
