package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addrConfig string

func (a addrConfig) GetAddr() string { return string(a) }

type fakeChatter struct {
	result  intake.Result
	err     error
	panics  bool
	message string
	history []core.Message
}

func (f *fakeChatter) Chat(_ context.Context, message string, history []core.Message) (intake.Result, error) {
	if f.panics {
		panic("boom")
	}
	f.message = message
	f.history = history
	return f.result, f.err
}

func newTestServer(t *testing.T, chat Chatter) *Server {
	t.Helper()
	srv, err := NewServer(context.Background(), addrConfig(":0"), chat)
	require.NoError(t, err)
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestChatEndpoint(t *testing.T) {
	chat := &fakeChatter{result: intake.Result{Response: "Hi Jane, which product interests you?"}}
	srv := newTestServer(t, chat)

	body := `{"message":"my name is jane","history":[{"role":"assistant","content":"Hello!"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp chatResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Hi Jane, which product interests you?", resp.Response)

	assert.Equal(t, "my name is jane", chat.message)
	assert.Equal(t, []core.Message{{Role: core.RoleAssistant, Content: "Hello!"}}, chat.history)
}

func TestChatEndpoint_MissingHistory(t *testing.T) {
	chat := &fakeChatter{result: intake.Result{Response: "ok"}}
	srv := newTestServer(t, chat)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, chat.history)
	assert.Empty(t, chat.history)
}

func TestChatEndpoint_BadJSON(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":`))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoint_ErrorHidesCause(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{err: errors.New("database exploded at 10.0.0.3")})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi","history":[]}`))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, internalErrorDetail, resp.Detail)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestChatEndpoint_PanicRecovered(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{panics: true})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestIndexServesGreeting(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "How can I help you with your business requirements today?")
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/static/chat.js", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fetch(\"/chat\"")
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
