// Package server exposes the HTTP handlers: WebSocket upgrades into chat
// rooms, a health check, and the built-in test page.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// Handler bundles the components a request needs: the hub that supervises
// connections and the registry that resolves room names. Both are injected so
// tests can stand up an isolated instance.
type Handler struct {
	hub      *Hub
	registry *Registry
}

// NewHandler creates the HTTP handler set for the given hub and registry.
func NewHandler(hub *Hub, registry *Registry) *Handler {
	return &Handler{hub: hub, registry: registry}
}

// ChatHandler upgrades GET /chat/{room} requests to WebSocket, binds a client
// and session to the room named in the path, and registers it with the hub.
// The room name is an opaque key; referencing a new name creates the room.
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return
	}

	roomName := r.PathValue("room")
	if roomName == "" {
		http.Error(w, "Room name is required.", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, h.hub, h.registry, roomName, r.RemoteAddr)
	log.Printf("Created chat in %q for %s", roomName, r.RemoteAddr)

	// Register the client with the hub; the hub launches the pump goroutines.
	h.hub.register <- client
}

// HealthHandler provides a simple health check endpoint that returns server
// status as plain text.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Groupchat server is running!")
}
