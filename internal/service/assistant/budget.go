package assistant

import (
	"context"
	"sync"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/pkoukk/tiktoken-go"
)

// Rough per-message framing cost of chat formats.
const perMessageTokens = 4

// Budget drops the oldest history turns until a prompt fits MaxTokens.
// The system prompt and the newest user message are always kept.
type Budget struct {
	maxTokens int
	count     func(string) (int, error)
}

func NewBudget(maxTokens int) *Budget {
	return &Budget{
		maxTokens: maxTokens,
		count:     tiktokenCount,
	}
}

var (
	encoding     *tiktoken.Tiktoken
	encodingErr  error
	encodingOnce sync.Once
)

func tiktokenCount(text string) (int, error) {
	encodingOnce.Do(func() {
		encoding, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	if encodingErr != nil {
		return 0, encodingErr
	}
	return len(encoding.Encode(text, nil, nil)), nil
}

// Fit expects messages as [system, history..., user].
func (b *Budget) Fit(ctx context.Context, messages []core.Message) []core.Message {
	if b == nil || b.maxTokens <= 0 || len(messages) <= 2 {
		return messages
	}

	sizes := make([]int, len(messages))
	total := 0
	for i, m := range messages {
		n, err := b.count(m.Content)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("token counting unavailable, prompt not trimmed")
			return messages
		}
		sizes[i] = n + perMessageTokens
		total += sizes[i]
	}

	// Drop from the oldest history turn forward.
	first := 1
	last := len(messages) - 1
	for total > b.maxTokens && first < last {
		total -= sizes[first]
		first++
	}

	if first == 1 {
		return messages
	}

	log.FromCtx(ctx).Debug().
		Int("dropped", first-1).
		Int("tokens", total).
		Msg("trimmed history to fit prompt budget")

	out := make([]core.Message, 0, len(messages)-first+1)
	out = append(out, messages[0])
	out = append(out, messages[first:]...)
	return out
}
