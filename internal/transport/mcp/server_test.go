package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/extract"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatter struct {
	history []core.Message
	err     error
}

func (s *stubChatter) Chat(_ context.Context, message string, history []core.Message) (intake.Result, error) {
	s.history = history
	return intake.Result{Response: "reply to " + message}, s.err
}

type stubSender struct {
	ok      bool
	email   string
	product core.ProductID
}

func (s *stubSender) SendFlyer(_ context.Context, email string, product core.ProductID) bool {
	s.email, s.product = email, product
	return s.ok
}

func call(args map[string]any) mcpproto.CallToolRequest {
	req := mcpproto.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcpproto.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcpproto.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func newTestServer(chat Chatter, sender core.FlyerSender) *Server {
	return NewServer(chat, extract.Default(), sender, core.DefaultCatalog())
}

func TestHandleChat(t *testing.T) {
	chat := &stubChatter{}
	s := newTestServer(chat, &stubSender{})

	res, err := s.handleChat(context.Background(), call(map[string]any{
		"message": "hi",
		"history": []any{map[string]any{"role": "assistant", "content": core.Greeting}},
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "reply to hi", resultText(t, res))
	assert.Equal(t, []core.Message{{Role: core.RoleAssistant, Content: core.Greeting}}, chat.history)
}

func TestHandleChat_FailureIsToolError(t *testing.T) {
	s := newTestServer(&stubChatter{err: errors.New("db down")}, &stubSender{})

	res, err := s.handleChat(context.Background(), call(map[string]any{"message": "hi"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.NotContains(t, resultText(t, res), "db down")
}

func TestHandleExtract(t *testing.T) {
	s := newTestServer(&stubChatter{}, &stubSender{})

	res, err := s.handleExtract(context.Background(), call(map[string]any{
		"history": []any{
			map[string]any{"role": "user", "content": "my name is jane, reach me at jane@example.com"},
		},
	}))
	require.NoError(t, err)

	var data core.CustomerData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &data))
	assert.Equal(t, "Jane", data.Name)
	assert.Equal(t, "jane@example.com", data.Email)
}

func TestHandleSendFlyer(t *testing.T) {
	sender := &stubSender{ok: true}
	s := newTestServer(&stubChatter{}, sender)

	res, err := s.handleSendFlyer(context.Background(), call(map[string]any{
		"email":   "jane@example.com",
		"product": "ppe",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, core.ProductPPEDetection, sender.product)
	assert.Equal(t, "jane@example.com", sender.email)
}

func TestHandleSendFlyer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		sendOK bool
	}{
		{"missing email", map[string]any{"product": "ppe"}, true},
		{"unknown product", map[string]any{"email": "a@b.co", "product": "toaster"}, true},
		{"delivery failed", map[string]any{"email": "a@b.co", "product": "PPE-Detection"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubChatter{}, &stubSender{ok: tt.sendOK})
			res, err := s.handleSendFlyer(context.Background(), call(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}
