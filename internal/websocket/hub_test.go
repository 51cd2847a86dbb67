package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
)

func newTestClient(hub *Hub, userID uint) *Client {
	return &Client{
		Hub:    hub,
		UserID: userID,
		Send:   make(chan []byte, 8),
	}
}

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == want
	}, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastReachesAllSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := newTestClient(hub, 7)
	c2 := newTestClient(hub, 7)
	hub.Register(c1)
	hub.Register(c2)
	waitForClientCount(t, hub, 2)

	order := &model.Order{ID: 42, Status: model.OrderStatusPending, TotalAmount: 61, CustomerName: "Customer"}
	hub.BroadcastOrderEvent("order_placed", order)

	for _, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.Send:
			var event OrderEvent
			require.NoError(t, json.Unmarshal(raw, &event))
			assert.Equal(t, "order_placed", event.Type)
			assert.Equal(t, uint(42), event.OrderID)
		case <-time.After(time.Second):
			t.Fatal("expected an order event on every session")
		}
	}
}

// A session can be unregistered twice when the slow-consumer drop
// races the read pump's deferred unregister. The second unregister
// must be a no-op, not a double close that panics the hub loop.
func TestHub_DoubleUnregisterIsHarmless(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := newTestClient(hub, 7)
	c2 := newTestClient(hub, 7)
	hub.Register(c1)
	hub.Register(c2)
	waitForClientCount(t, hub, 2)

	hub.Unregister(c1)
	waitForClientCount(t, hub, 1)
	hub.Unregister(c1)

	// The surviving session still receives events after the hub has
	// digested the duplicate unregister
	order := &model.Order{ID: 43, Status: model.OrderStatusPending, TotalAmount: 45, CustomerName: "Customer"}
	hub.BroadcastOrderEvent("order_placed", order)

	select {
	case raw := <-c2.Send:
		var event OrderEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, uint(43), event.OrderID)
	case <-time.After(time.Second):
		t.Fatal("expected the surviving session to keep receiving events")
	}

	// The dropped session's channel was closed exactly once
	_, open := <-c1.Send
	assert.False(t, open)
	assert.Equal(t, 1, hub.ClientCount())
}
