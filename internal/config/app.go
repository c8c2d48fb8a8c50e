package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const defaultPort = 10000

type AppConfig struct {
	RuntimePath string `env:"FLYER_RUNTIME_PATH" envDefault:".flyer-agent"`

	// HTTP transport. PORT is honoured for platforms that inject it.
	Port         int `env:"FLYER_PORT"`
	PlatformPort int `env:"PORT"`

	// Storage. DatabaseURL selects Postgres, otherwise SQLite at DBPath.
	DatabaseURL string `env:"FLYER_DATABASE_URL"`
	DBPath      string `env:"FLYER_DB_PATH"`
	FlyersDir   string `env:"FLYER_FLYERS_DIR"`

	// Transport Flags
	EnableTelegram bool `env:"FLYER_ENABLE_TELEGRAM" envDefault:"false"`

	// Context Management
	ContextWindowSize int `env:"FLYER_CONTEXT_WINDOW_SIZE" envDefault:"30"`
	MaxPromptTokens   int `env:"FLYER_MAX_PROMPT_TOKENS" envDefault:"0"`

	// Events
	NATSURL   string `env:"NATS_URL"`
	NATSToken string `env:"NATS_TOKEN"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.ContextWindowSize < 0 || c.MaxPromptTokens < 0 {
		return nil, fmt.Errorf("context window and prompt token budget must not be negative")
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return resolveRuntimePath(c.RuntimePath)
}

func (c AppConfig) GetPort() int {
	switch {
	case c.Port > 0:
		return c.Port
	case c.PlatformPort > 0:
		return c.PlatformPort
	default:
		return defaultPort
	}
}

func (c AppConfig) GetAddr() string {
	return fmt.Sprintf(":%d", c.GetPort())
}

func (c AppConfig) GetDatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.GetRuntimePath(), "customers.db")
}

func (c AppConfig) GetFlyersDir() string {
	if c.FlyersDir != "" {
		return c.FlyersDir
	}
	return filepath.Join(c.GetRuntimePath(), "flyers")
}

func (c AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) UsePostgres() bool {
	return c.DatabaseURL != ""
}
