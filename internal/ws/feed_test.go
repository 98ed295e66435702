package ws

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHubBroadcast(t *testing.T) {
	hub := NewFeedHub()
	c := &Client{Send: make(chan []byte, 1)}
	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(map[string]interface{}{"type": "donation", "reference": "TXN123"})

	select {
	case msg := <-c.Send:
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &payload))
		assert.Equal(t, "donation", payload["type"])
		assert.Equal(t, "TXN123", payload["reference"])
	default:
		t.Fatal("expected a broadcast message")
	}

	c.Close()
	assert.Equal(t, 0, hub.ClientCount())
}

func TestFeedHubDropsWhenClientIsFull(t *testing.T) {
	hub := NewFeedHub()
	c := &Client{Send: make(chan []byte, 1)}
	hub.Register(c)

	hub.Broadcast(map[string]string{"n": "1"})
	hub.Broadcast(map[string]string{"n": "2"}) // buffer full, dropped

	assert.Len(t, c.Send, 1)
}

// Dashboards disconnect whenever they like, including mid-webhook. A close
// racing a broadcast must never panic the broadcaster.
func TestBroadcastDuringClose(t *testing.T) {
	hub := NewFeedHub()
	clients := make([]*Client, 64)
	for i := range clients {
		clients[i] = &Client{Send: make(chan []byte, 1)}
		hub.Register(clients[i])
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.Broadcast(map[string]string{"type": "donation"})
		}
	}()
	go func() {
		defer wg.Done()
		for _, c := range clients {
			c.Close()
		}
	}()
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}

func TestClientCloseIsIdempotent(t *testing.T) {
	hub := NewFeedHub()
	c := &Client{Send: make(chan []byte, 1)}
	hub.Register(c)
	c.Close()
	c.Close() // second close must not panic
	assert.Equal(t, 0, hub.ClientCount())
}
