// Package unit contains unit tests for individual components of the
// groupchat server.
//
// These tests exercise exported behavior in isolation, without real network
// connections. The chat core itself (registry, rooms, sessions) is tested
// in-package next to its implementation.
package unit

import (
	"testing"
	"time"

	"groupchat/internal/server"
)

// TestNewHub verifies that NewHub returns a hub whose channels are usable.
func TestNewHub(t *testing.T) {
	hub := server.NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.GetRegisterChan() == nil {
		t.Error("Register channel is nil")
	}
	if hub.GetUnregisterChan() == nil {
		t.Error("Unregister channel is nil")
	}
}

// TestHubRunAndShutdown verifies that a running hub shuts down cleanly when
// no clients are connected.
func TestHubRunAndShutdown(t *testing.T) {
	hub := server.NewHub()
	go hub.Run()

	time.Sleep(20 * time.Millisecond)

	if err := hub.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Hub shutdown failed: %v", err)
	}
}

// TestHubIgnoresNilRegistration verifies that registering a nil client is
// skipped rather than crashing the event loop.
func TestHubIgnoresNilRegistration(t *testing.T) {
	hub := server.NewHub()
	go hub.Run()

	select {
	case hub.GetRegisterChan() <- nil:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Failed to send nil registration")
	}

	if err := hub.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Hub shutdown failed after nil registration: %v", err)
	}
}

// TestNewClient verifies that a client can be constructed without a live
// connection and carries a session bound to the requested room.
func TestNewClient(t *testing.T) {
	hub := server.NewHub()
	registry := server.NewRegistry()

	client := server.NewClient(nil, hub, registry, "lobby", "127.0.0.1:12345")

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	session := client.Session()
	if session == nil {
		t.Fatal("Client session is nil")
	}
	if session.Room() != registry.Get("lobby") {
		t.Error("Client session is not bound to the requested room")
	}
	if session.Name() != "" {
		t.Errorf("New session should start unnamed, got %q", session.Name())
	}
}
