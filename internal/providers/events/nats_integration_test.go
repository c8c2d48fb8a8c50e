//go:build integration

package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_Publish(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}

	ctx := context.Background()
	p, err := NewNATSPublisher(ctx, url, os.Getenv("NATS_TOKEN"))
	require.NoError(t, err)
	defer p.Close()

	received := make(chan *nats.Msg, 1)
	sub, err := p.conn.ChanSubscribe("flyer.test.>", received)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, p.conn.Flush())

	require.NoError(t, p.Publish(ctx, "flyer.test.ping", map[string]string{"message": "hello"}))

	select {
	case msg := <-received:
		var got map[string]string
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "hello", got["message"])
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
