// Package telegram runs the intake conversation over a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	failedReply    = "Sorry, something went wrong. Please try again."
)

type Chatter interface {
	Chat(ctx context.Context, message string, history []core.Message) (intake.Result, error)
}

// SessionStore keeps each chat's transcript. The intake core is stateless,
// so the bot owns the history it sends with every message.
type SessionStore interface {
	core.MessagesRepository
	ClearMessages(ctx context.Context, sessionID string) error
}

type Bot struct {
	bot    *tele.Bot
	sender *sender
	chat   Chatter
	store  SessionStore
	window int
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	chat Chatter,
	store SessionStore,
	window int,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		sender: newSender(b),
		chat:   chat,
		store:  store,
		window: window,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) requestCtx(c tele.Context) context.Context {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	return log.With(ctx, func(l zerolog.Context) zerolog.Context {
		return l.Int64("chat_id", c.Chat().ID)
	})
}

// handleStart resets the transcript and greets the visitor.
func (b *Bot) handleStart(c tele.Context) error {
	ctx := b.requestCtx(c)
	greeting, err := b.reset(ctx, sessionID(c.Chat().ID))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to reset session")
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), greeting)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := b.requestCtx(c)
	_ = c.Notify(tele.Typing)

	reply := b.respond(ctx, sessionID(c.Chat().ID), c.Text())
	return b.sender.sendMarkdown(ctx, c.Chat(), reply)
}

func (b *Bot) reset(ctx context.Context, session string) (string, error) {
	if err := b.store.ClearMessages(ctx, session); err != nil {
		return core.Greeting, err
	}
	greeting := core.Message{Role: core.RoleAssistant, Content: core.Greeting}
	return core.Greeting, b.store.AddMessage(ctx, session, greeting)
}

// respond runs one exchange against the stored transcript and records both turns.
func (b *Bot) respond(ctx context.Context, session, text string) string {
	logger := log.FromCtx(ctx)

	history, err := b.store.GetMessages(ctx, session, b.window)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load transcript")
		return failedReply
	}
	if len(history) == 0 {
		history = []core.Message{{Role: core.RoleAssistant, Content: core.Greeting}}
		if err := b.store.AddMessage(ctx, session, history[0]); err != nil {
			logger.Warn().Err(err).Msg("failed to store greeting")
		}
	}

	res, err := b.chat.Chat(ctx, text, history)
	if err != nil {
		logger.Error().Err(err).Msg("chat exchange failed")
		return failedReply
	}

	for _, msg := range []core.Message{
		{Role: core.RoleUser, Content: text},
		{Role: core.RoleAssistant, Content: res.Response},
	} {
		if err := b.store.AddMessage(ctx, session, msg); err != nil {
			logger.Warn().Err(err).Msg("failed to store turn")
		}
	}
	return res.Response
}
