package websocket

import (
	"testing"
	"time"
)

func waitForConnectedUsers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectedUsers() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("connected users = %d, want %d", hub.ConnectedUsers(), want)
}

func TestHubConnectedUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Two tabs for user 1, one for user 2: two connected users, not three
	tab1 := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 1)}
	tab2 := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 1)}
	other := &Client{Hub: hub, UserID: 2, Send: make(chan []byte, 1)}

	hub.Register <- tab1
	hub.Register <- tab2
	hub.Register <- other
	waitForConnectedUsers(t, hub, 2)

	// User 1 stays connected while one tab remains
	hub.Unregister <- tab1
	waitForConnectedUsers(t, hub, 2)

	hub.Unregister <- tab2
	waitForConnectedUsers(t, hub, 1)
}

func TestHubPushReachesAllUserConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	tab1 := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 1)}
	tab2 := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 1)}
	hub.Register <- tab1
	hub.Register <- tab2
	waitForConnectedUsers(t, hub, 1)

	hub.Push(7, &Message{Type: "notification", Timestamp: time.Now()})

	for _, client := range []*Client{tab1, tab2} {
		select {
		case payload := <-client.Send:
			if len(payload) == 0 {
				t.Error("empty push payload")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("push did not reach every connection of the user")
		}
	}
}
