// Package installer is the interactive first-run setup that writes the runtime .env.
package installer

import (
	"errors"
	"fmt"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("installation interrupted")

// Step is one screen of the wizard. Update returns nil when the step is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

type Paths struct {
	Runtime string
	Flyers  string
}

func getSteps(paths Paths) []Step {
	return []Step{
		NewProviderStep(),
		NewAPIKeyStep(),
		NewOllamaURLStep(),
		NewCustomURLStep(),
		NewCustomKeyStep(),
		NewModelStep(),
		NewSenderEmailStep(),
		NewSenderPasswordStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewSaveEnvStep(paths.Runtime),
		NewFlyersStep(paths.Flyers, core.DefaultCatalog()),
	}
}

type nextMsg struct{}

type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func initialModel(paths Paths) model {
	return model{
		steps: getSteps(paths),
		state: NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	return m.advance()
}

// advance feeds the current step a nextMsg so steps that skip or do
// background work move on without a keypress.
func (m model) advance() tea.Cmd {
	if m.currentStep >= len(m.steps) {
		return tea.Quit
	}
	return tea.Batch(m.steps[m.currentStep].Init(), func() tea.Msg { return nextMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if next == nil {
		m.currentStep++
		return m, m.advance()
	}
	m.steps[m.currentStep] = next
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up "+core.AppName) + "\n\n" + m.steps[m.currentStep].View(m.state)
}

func RunWizard(paths Paths) (*InstallState, error) {
	p := tea.NewProgram(initialModel(paths), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting {
		return nil, ErrInterrupted
	}
	if final.currentStep < len(final.steps) {
		return nil, fmt.Errorf("installation stopped at step %d", final.currentStep+1)
	}
	return final.state, nil
}
