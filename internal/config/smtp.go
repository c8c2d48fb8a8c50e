package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"465"`
	Sender   string `env:"SENDER_EMAIL"`
	Password string `env:"SENDER_PASSWORD"`
}

func LoadSMTPConfig() (*SMTPConfig, error) {
	c := &SMTPConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.Sender = unquote(c.Sender)
	c.Password = unquote(c.Password)
	return c, nil
}

// HasCredentials reports whether delivery can be attempted at all.
func (c SMTPConfig) HasCredentials() bool {
	return c.Sender != "" && c.Password != ""
}

// unquote strips one pair of surrounding double quotes left by hand-edited .env files.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
