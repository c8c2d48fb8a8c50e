// Package events publishes intake events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/nats-io/nats.go"
)

type publisher interface {
	Publish(subject string, data []byte) error
}

type NATSPublisher struct {
	conn *nats.Conn
	pub  publisher
}

func NewNATSPublisher(ctx context.Context, url, token string) (*NATSPublisher, error) {
	logger := log.FromCtx(ctx)

	opts := []nats.Option{
		nats.Name("flyer-agent"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info().Msg("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	logger.Info().Str("url", url).Msg("nats publisher ready")
	return &NATSPublisher{conn: nc, pub: nc}, nil
}

// Publish sends payload as JSON. NATS buffers while reconnecting, so this does not block.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := p.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	log.FromCtx(ctx).Debug().Str("subject", subject).Int("bytes", len(data)).Msg("event published")
	return nil
}

// Close flushes buffered events before disconnecting.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
