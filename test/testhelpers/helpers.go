// Package testhelpers provides common utilities for testing the groupchat
// server.
//
// It contains reusable helpers shared across unit and integration tests:
// standing up a complete chat server on an ephemeral port, dialing rooms over
// WebSocket, driving the chat protocol, and asserting on HTTP responses.
package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"groupchat/internal/server"
)

// readTimeout bounds every protocol read so a missing message fails the test
// instead of hanging it.
const readTimeout = 2 * time.Second

// StartChatServer stands up a full chat stack (registry, hub, routes) on an
// httptest server, allows the test server's own URL as a WebSocket origin,
// and registers cleanup for all of it.
func StartChatServer(t *testing.T) (*httptest.Server, *server.Hub) {
	t.Helper()

	hub := server.NewHub()
	go hub.Run()

	registry := server.NewRegistry()
	handler := server.NewHandler(hub, registry)
	ts := httptest.NewServer(handler.Routes())

	server.SetConfig(&server.Config{AllowedOrigins: []string{ts.URL}})

	t.Cleanup(func() {
		ts.Close()
		_ = hub.Shutdown(5 * time.Second)
		server.SetConfig(nil)
	})

	return ts, hub
}

// WebSocketURL converts a test server's base URL into the WebSocket URL for a
// room.
func WebSocketURL(ts *httptest.Server, room string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/chat/" + room
}

// DialRoom connects a WebSocket client to the named room, presenting the test
// server's own URL as origin, and registers cleanup for the connection.
func DialRoom(t *testing.T, ts *httptest.Server, room string) *websocket.Conn {
	t.Helper()

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	headers := http.Header{}
	headers.Set("Origin", ts.URL)

	conn, resp, err := dialer.Dial(WebSocketURL(ts, room), headers)
	if resp != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial room %q: %v", room, err)
	}

	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// Join sends the join command with the given display name.
func Join(t *testing.T, conn *websocket.Conn, name string) {
	t.Helper()
	SendCommand(t, conn, map[string]string{"type": "join", "name": name})
}

// SendCommand marshals and sends one protocol message.
func SendCommand(t *testing.T, conn *websocket.Conn, msg map[string]string) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("Failed to send %v: %v", msg, err)
	}
}

// ReadMessage reads one protocol message, failing the test if none arrives
// within the read timeout.
func ReadMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	return msg
}

// ExpectMessage reads one message and asserts its type tag.
func ExpectMessage(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()

	msg := ReadMessage(t, conn)
	if msg["type"] != msgType {
		t.Fatalf("Expected message of type %q, got %v", msgType, msg)
	}
	return msg
}

// ExpectNoMessage asserts that nothing arrives within the timeout. The
// connection is not usable for further reads afterwards.
func ExpectNoMessage(t *testing.T, conn *websocket.Conn, timeout time.Duration) {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("Expected no message, but received one")
	}
	if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
		return
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return
	}
	t.Fatalf("Unexpected error while waiting for absence of message: %v", err)
}

// MakeRequest creates and executes an HTTP request with a 5-second timeout,
// failing the test on any transport error.
func MakeRequest(t *testing.T, method, url string) *http.Response {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(method, url, http.NoBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

// AssertStatusCode checks if the HTTP response has the expected status code.
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status code %d, got %d", expected, resp.StatusCode)
	}
}

// AssertContentType checks if the HTTP response has the expected Content-Type.
func AssertContentType(t *testing.T, resp *http.Response, expected string) {
	t.Helper()
	contentType := resp.Header.Get("Content-Type")
	if contentType != expected {
		t.Errorf("Expected content type %s, got %s", expected, contentType)
	}
}

// CreateJSONMessage creates a JSON-encoded protocol message.
func CreateJSONMessage(fields map[string]string) ([]byte, error) {
	return json.Marshal(fields)
}
