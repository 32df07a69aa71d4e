package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newRegisteredClient(t *testing.T, hub *Hub, restaurantID string) *Client {
	t.Helper()

	client := NewClient(hub, nil, restaurantID)
	hub.register <- client

	// Registration is confirmed by the welcome message.
	select {
	case data := <-client.send:
		var msg Message
		assert.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "welcome", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for welcome message")
	}

	return client
}

func TestHub_ConcurrentSnapshotsReachEveryBoard(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newRegisteredClient(t, hub, "restaurant-1")

	const senders = 32
	var wg sync.WaitGroup
	wg.Add(senders)
	for i := 0; i < senders; i++ {
		go func() {
			defer wg.Done()
			hub.SendKitchenSnapshot("restaurant-1", []string{"order"})
		}()
	}
	wg.Wait()

	for i := 0; i < senders; i++ {
		select {
		case data := <-client.send:
			var msg Message
			assert.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, "orders_snapshot", msg.Type)
			assert.Equal(t, kitchenRoom("restaurant-1"), msg.RoomID)
		case <-time.After(time.Second):
			t.Fatalf("received only %d of %d snapshots", i, senders)
		}
	}
}

func TestHub_SnapshotScopedToRestaurantRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	boardA := newRegisteredClient(t, hub, "restaurant-a")
	boardB := newRegisteredClient(t, hub, "restaurant-b")

	hub.SendKitchenSnapshot("restaurant-a", []string{"order"})

	select {
	case data := <-boardA.send:
		var msg Message
		assert.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, kitchenRoom("restaurant-a"), msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("board A never received its snapshot")
	}

	select {
	case <-boardB.send:
		t.Fatal("board B received another restaurant's snapshot")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowClientEvicted(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newRegisteredClient(t, hub, "restaurant-1")

	// Stall the client by filling its buffer.
	for i := 0; i < cap(client.send); i++ {
		client.send <- []byte("backlog")
	}

	hub.SendKitchenSnapshot("restaurant-1", []string{"order"})

	assert.Eventually(t, func() bool {
		hub.mutex.RLock()
		defer hub.mutex.RUnlock()
		return !hub.clients[client]
	}, time.Second, 10*time.Millisecond, "slow client was never evicted")

	// Eviction closes the send channel once the backlog is drained.
	drained := 0
	for range client.send {
		drained++
	}
	assert.Equal(t, cap(client.send), drained)

	// A snapshot after eviction must be a no-op, not a panic.
	hub.SendKitchenSnapshot("restaurant-1", []string{"order"})
}
