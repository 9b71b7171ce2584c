// Package server manages individual WebSocket connections, pairing each one
// with a chat Session and pumping frames between the socket and the rooms.
package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait      = 60 * time.Second
	pingInterval  = 54 * time.Second
	writeWait     = 10 * time.Second
	sendQueueSize = 256
)

var errClientGone = fmt.Errorf("client connection is gone")

// Client owns one WebSocket connection. It feeds inbound frames to its
// Session, and its buffered send queue is the capability the session hands to
// rooms for outbound delivery. The queue is closed exactly once, by the hub,
// when the client unregisters.
type Client struct {
	conn    *websocket.Conn
	session *Session
	hub     *Hub
	addr    string
	send    chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a client for an upgraded connection and binds a fresh
// Session for the named room to it.
func NewClient(conn *websocket.Conn, hub *Hub, registry *Registry, roomName, addr string) *Client {
	cfg := currentConfig()
	if conn != nil {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}

	c := &Client{
		conn: conn,
		hub:  hub,
		addr: addr,
		send: make(chan []byte, sendQueueSize),
	}
	c.session = NewSession(c.enqueue, registry, roomName)
	return c
}

// Session returns the chat session driven by this connection.
func (c *Client) Session() *Session {
	return c.session
}

// enqueue is the session's send capability: it queues one payload for the
// write pump. It fails once the client has unregistered or when the queue is
// full; the session discards that failure, so a slow or dead client just
// stops receiving.
func (c *Client) enqueue(payload []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return errClientGone
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return fmt.Errorf("send queue full for %s", c.addr)
	}
}

// closeSend marks the client gone and closes its queue. Only the hub calls
// this, once, during unregistration.
func (c *Client) closeSend() {
	c.mu.Lock()
	alreadyClosed := c.closed
	c.closed = true
	c.mu.Unlock()

	if !alreadyClosed {
		close(c.send)
	}
}

// readPump reads frames until the connection dies, handing each payload to
// the session. On exit it runs the session's close transition exactly once,
// while the rest of the room can still hear the departure note, and then
// unregisters from the hub.
func (c *Client) readPump() {
	defer func() {
		c.session.HandleClose()
		c.hub.drop(c)
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			log.Printf("Error closing connection in readPump: %v", err)
		}
	}()

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Error setting read deadline for %s: %v", c.addr, err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadEnd(err)
			return
		}

		if err := c.session.HandleMessage(raw); err != nil {
			// Fatal to this one payload only; the connection stays open.
			log.Printf("Rejected message from %s: %v", c.addr, err)
		}
	}
}

// logReadEnd classifies the error that ended the read loop.
func (c *Client) logReadEnd(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		log.Printf("Message from %s exceeded the configured size limit", c.addr)
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure):
		log.Printf("Client %s disconnected: %v", c.addr, err)
	case errors.Is(err, io.EOF), isExpectedCloseError(err):
		log.Printf("Client %s connection closed: %v", c.addr, err)
	default:
		log.Printf("WebSocket read error from %s: %v", c.addr, err)
	}
}

// writePump drains the send queue onto the socket and keeps the connection
// alive with periodic pings. It exits when the queue is closed or a write
// fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			log.Printf("Error closing connection in writePump: %v", err)
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Error setting write deadline for %s: %v", c.addr, err)
				return
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil && !isExpectedCloseError(err) {
					log.Printf("Error writing close message to %s: %v", c.addr, err)
				}
				return
			}
			// One frame per payload: receivers parse each frame as a
			// single JSON message.
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Printf("Error writing message to %s: %v", c.addr, err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Error setting write deadline for ping to %s: %v", c.addr, err)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error writing ping message to %s: %v", c.addr, err)
				return
			}
		}
	}
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
