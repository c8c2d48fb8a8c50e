package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StackOverflowed512/flyer-agent/internal/config"
	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	gomail "github.com/wneessen/go-mail"
)

var ErrMissingCredentials = errors.New("smtp sender credentials are not configured")

const sendTimeout = 30 * time.Second

// SMTP delivers mail over implicit TLS with PLAIN auth, the way Gmail app passwords expect.
type SMTP struct {
	cfg *config.SMTPConfig
}

func NewSMTP(cfg *config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(ctx context.Context, m core.Mail) error {
	if !s.cfg.HasCredentials() {
		return ErrMissingCredentials
	}

	msg, err := s.buildMessage(m)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Sender),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	log.FromCtx(ctx).Debug().
		Str("to", m.To).
		Str("host", s.cfg.Host).
		Int("attachments", len(m.Attachments)).
		Msg("mail sent")
	return nil
}

func (s *SMTP) buildMessage(m core.Mail) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetDate()

	msg.SetBodyString(gomail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, m.HTML)
	}

	for _, path := range m.Attachments {
		msg.AttachFile(path)
	}
	return msg, nil
}
