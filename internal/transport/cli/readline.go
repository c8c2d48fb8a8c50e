// Package cli runs the intake conversation in a terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/chzyer/readline"
)

const failedReply = "Sorry, something went wrong. Please try again."

type Chatter interface {
	Chat(ctx context.Context, message string, history []core.Message) (intake.Result, error)
}

type ReadLine struct {
	chat    Chatter
	rl      *readline.Instance
	history []core.Message
}

func NewReadLine(chat Chatter, runtimePath string) (*ReadLine, error) {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		chat:    chat,
		rl:      rl,
		history: []core.Message{{Role: core.RoleAssistant, Content: core.Greeting}},
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	log.FromCtx(ctx).Debug().Msg("terminal chat started")
	fmt.Fprintf(r.rl.Stdout(), "assistant> %s\n", core.Greeting)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		fmt.Fprintf(r.rl.Stdout(), "assistant> %s\n", r.exchange(ctx, line))
	}
}

// exchange sends one line with the transcript so far and records both turns on success.
func (r *ReadLine) exchange(ctx context.Context, line string) string {
	res, err := r.chat.Chat(ctx, line, r.history)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("chat exchange failed")
		return failedReply
	}

	r.history = append(r.history,
		core.Message{Role: core.RoleUser, Content: line},
		core.Message{Role: core.RoleAssistant, Content: res.Response},
	)
	return res.Response
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
