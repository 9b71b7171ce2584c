package integration

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"groupchat/internal/server"
	"groupchat/test/testhelpers"
)

// TestGracefulShutdown verifies that an idle hub shuts down cleanly.
func TestGracefulShutdown(t *testing.T) {
	hub := server.NewHub()
	go hub.Run()

	time.Sleep(50 * time.Millisecond)

	if err := hub.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Hub shutdown failed: %v", err)
	}
}

// TestGracefulShutdownWithClients verifies that active connections are torn
// down during shutdown and that all hub goroutines drain within the timeout.
func TestGracefulShutdownWithClients(t *testing.T) {
	ts, hub := testhelpers.StartChatServer(t)

	const numClients = 5
	conns := make([]*websocket.Conn, 0, numClients)

	for i := 0; i < numClients; i++ {
		conn := testhelpers.DialRoom(t, ts, "lobby")
		testhelpers.Join(t, conn, "client")
		conns = append(conns, conn)
	}

	if err := hub.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Hub shutdown with clients failed: %v", err)
	}

	for _, conn := range conns {
		if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatalf("Failed to set read deadline: %v", err)
		}
		// Drain whatever was in flight; the stream must end in an error
		// once the server side is gone.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

// TestShutdownIsIdempotentEnough verifies that a second shutdown call
// returns promptly instead of hanging.
func TestShutdownIsIdempotentEnough(t *testing.T) {
	hub := server.NewHub()
	go hub.Run()
	time.Sleep(20 * time.Millisecond)

	if err := hub.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("First shutdown failed: %v", err)
	}
	if err := hub.Shutdown(2 * time.Second); err != nil {
		t.Errorf("Second shutdown failed: %v", err)
	}
}
