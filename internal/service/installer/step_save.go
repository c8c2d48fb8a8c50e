package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/flyer"
	tea "github.com/charmbracelet/bubbletea"
)

// SaveEnvStep writes the collected configuration to <runtime>/.env.
type SaveEnvStep struct {
	runtimePath string
	err         error
}

func NewSaveEnvStep(runtimePath string) Step {
	return &SaveEnvStep{runtimePath: runtimePath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return nil
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}
	if s.err = SaveEnv(s.runtimePath, state); s.err != nil {
		return s, nil
	}
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Saving configuration...\n"
}

// SaveEnv refuses to overwrite an existing .env.
func SaveEnv(runtimePath string, state *InstallState) error {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := state.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content), 0600)
}

// FlyersStep seeds the flyers directory with placeholder flyers for every product.
type FlyersStep struct {
	dir     string
	catalog *core.Catalog
	err     error
}

func NewFlyersStep(dir string, catalog *core.Catalog) Step {
	return &FlyersStep{dir: dir, catalog: catalog}
}

func (s *FlyersStep) Init() tea.Cmd {
	return nil
}

func (s *FlyersStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}
	if s.err = os.MkdirAll(s.dir, 0755); s.err != nil {
		return s, nil
	}
	for _, p := range s.catalog.Products() {
		if _, s.err = flyer.WritePlaceholder(s.dir, p); s.err != nil {
			return s, nil
		}
	}
	return nil, nil
}

func (s *FlyersStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Preparing flyers directory...\n"
}
