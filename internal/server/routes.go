// Package server wires the HTTP handlers into a ServeMux.
package server

import "net/http"

// Routes configures and returns an HTTP ServeMux with all application routes:
// health check, per-room WebSocket endpoint, and the test page.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/chat/{room}", h.ChatHandler)
	mux.HandleFunc("/test/{room}", TestPageHandler)
	return mux
}
