package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, messages []Message) (Message, error)
}

type FlyerSender interface {
	SendFlyer(ctx context.Context, email string, product ProductID) bool
}

type Mail struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []string
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}
