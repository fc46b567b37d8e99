package sse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Broadcast(map[string]string{"type": "created"})

	select {
	case data := <-ch:
		var payload map[string]string
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, "created", payload["type"])
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.Count())

	cancel()
	assert.Equal(t, 0, hub.Count())

	// broadcasting with no subscribers must not panic
	hub.Broadcast("still fine")
}

func TestHubSkipsSlowConsumer(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	// fill the buffer past capacity; extra events are dropped, not blocking
	for i := 0; i < 300; i++ {
		hub.Broadcast(i)
	}
	assert.Equal(t, 128, len(ch))
}

func TestHubLifecycleHooks(t *testing.T) {
	hub := NewHub()
	subs := 0
	hub.OnSubscribe = func() { subs++ }
	hub.OnUnsubscribe = func() { subs-- }

	_, cancel := hub.Subscribe()
	assert.Equal(t, 1, subs)
	cancel()
	assert.Equal(t, 0, subs)
}
