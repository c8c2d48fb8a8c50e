// Package assistant produces the assistant's reply for one exchange.
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/StackOverflowed512/flyer-agent/pkg/retry"
)

const (
	HighTrafficReply       = "I'm experiencing high traffic at the moment. Please try again in a few minutes."
	ConnectionTroubleReply = "I'm sorry, I'm having trouble connecting to my brain right now. Please try again later."
)

var errEmptyReply = errors.New("model returned an empty reply")

type Client struct {
	provider     core.AIProvider
	systemPrompt string
	retrier      *retry.Retrier
	budget       *Budget
}

type Option func(*clientOptions)

type clientOptions struct {
	retryConfig *retry.Config
	retryOpts   []retry.Option
	budget      *Budget
}

// WithRetryConfig replaces the default schedule of 3 attempts, 1s*2^n backoff and 0.5s jitter.
func WithRetryConfig(cfg *retry.Config) Option {
	return func(o *clientOptions) {
		o.retryConfig = cfg
	}
}

func WithRetryOptions(opts ...retry.Option) Option {
	return func(o *clientOptions) {
		o.retryOpts = append(o.retryOpts, opts...)
	}
}

func WithBudget(b *Budget) Option {
	return func(o *clientOptions) {
		o.budget = b
	}
}

func NewClient(provider core.AIProvider, catalog *core.Catalog, opts ...Option) *Client {
	o := &clientOptions{retryConfig: retry.NewDefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}

	// Only capacity refusals are worth another attempt.
	retryOpts := append([]retry.Option{retry.WithRetryable(func(err error) bool {
		return errors.Is(err, core.ErrCapacityExceeded)
	})}, o.retryOpts...)

	return &Client{
		provider:     provider,
		systemPrompt: SystemPrompt(catalog),
		retrier:      retry.NewRetrier(o.retryConfig, retryOpts...),
		budget:       o.budget,
	}
}

// Reply never fails: provider errors degrade to fixed user-safe texts.
func (c *Client) Reply(ctx context.Context, message string, history []core.Message) string {
	logger := log.FromCtx(ctx)
	messages := c.budget.Fit(ctx, c.buildMessages(message, history))

	var reply string
	attempts := 0
	err := c.retrier.Do(ctx, func() error {
		attempts++
		msg, err := c.provider.Chat(ctx, messages)
		if err != nil {
			return err
		}
		if strings.TrimSpace(msg.Content) == "" {
			return errEmptyReply
		}
		reply = msg.Content
		return nil
	})

	switch {
	case err == nil:
		return reply
	case errors.Is(err, core.ErrCapacityExceeded):
		logger.Warn().Err(err).Int("attempts", attempts).Msg("model capacity exceeded")
		return HighTrafficReply
	default:
		logger.Error().Err(err).Int("attempts", attempts).Msg("failed to get model reply")
		return ConnectionTroubleReply
	}
}

func (c *Client) buildMessages(message string, history []core.Message) []core.Message {
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: c.systemPrompt})
	for _, m := range history {
		messages = append(messages, core.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, core.Message{Role: core.RoleUser, Content: message})
	return messages
}
