// Package server coordinates connection registration, pump goroutine
// lifecycle, and shutdown for the chat service via the Hub type.
package server

import (
	"context"
	"log"
	"sync"
	"time"
)

// Hub supervises the set of live WebSocket connections. It owns each client's
// pump goroutines and is the only place a client's send queue is closed.
// Message routing is not a hub concern: chat fan-out happens inside rooms,
// through each member's session.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewHub creates a Hub ready to supervise connections. Call Run in its own
// goroutine before registering clients.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// GetRegisterChan returns the channel used for registering new clients.
func (h *Hub) GetRegisterChan() chan<- *Client {
	return h.register
}

// GetUnregisterChan returns the channel used for unregistering clients.
func (h *Hub) GetUnregisterChan() chan<- *Client {
	return h.unregister
}

// Run is the hub's event loop. It launches the read and write pumps for each
// registered client and tears clients down when they unregister or when the
// hub shuts down. It runs until Shutdown is called.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			if client == nil {
				log.Printf("Received nil client registration; skipping")
				continue
			}

			h.mutex.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Client registered from %s (session %s). Total clients: %d",
				client.addr, client.session.ID(), clientCount)

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			h.mutex.Lock()
			_, known := h.clients[client]
			if known {
				delete(h.clients, client)
			}
			clientCount := len(h.clients)
			h.mutex.Unlock()

			if known {
				client.closeSend()
				log.Printf("Client unregistered from %s. Total clients: %d", client.addr, clientCount)
			}
		}
	}
}

// drop unregisters a client, falling back to a direct teardown when the hub's
// event loop has already stopped so pumps never block on a dead channel.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
		c.closeSend()
	}
}

// shutdownClients closes every active connection so the pumps drain out.
func (h *Hub) shutdownClients() {
	log.Println("Shutting down all client connections...")

	h.mutex.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		if client.conn == nil {
			continue
		}
		if err := client.conn.Close(); err != nil && !isExpectedCloseError(err) {
			log.Printf("Error closing client connection from %s: %v", client.addr, err)
		}
	}

	log.Printf("Closed %d client connections", len(clients))
}

// Shutdown stops the hub and waits for the pump goroutines to finish, or for
// the timeout to pass.
func (h *Hub) Shutdown(timeout time.Duration) error {
	log.Println("Initiating hub shutdown...")

	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		log.Println("Hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
