package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
)

const anthropicMaxTokens = 4096

type Anthropic struct {
	baseProvider
}

func NewAnthropic(apiKey, model string, opts ...Option) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider("https://api.anthropic.com", apiKey, model, opts...),
	}
}

type anthropicRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system,omitempty"`
	Messages  []core.Message `json:"messages"`
}

func (a *Anthropic) Chat(ctx context.Context, messages []core.Message) (core.Message, error) {
	payload := anthropicRequest{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
	}

	// The system prompt travels outside the message list.
	var system []string
	for _, m := range messages {
		if m.Role == core.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		payload.Messages = append(payload.Messages, core.Message{Role: m.Role, Content: m.Content})
	}
	payload.System = strings.Join(system, "\n\n")

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return core.Message{}, err
	}
	if len(result.Content) == 0 {
		return core.Message{}, fmt.Errorf("empty response content")
	}

	var text strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	return core.Message{Role: core.RoleAssistant, Content: text.String()}, nil
}
