// Package server provides the Registry, the process-wide mapping from room
// names to live Room instances.
package server

import "sync"

// Registry resolves room names to Room instances, creating a room the first
// time a name is referenced. Rooms are never removed, even once empty; the
// registry grows with the number of distinct room names seen over the life of
// the process. A Registry is constructed once at startup and handed to the
// WebSocket handler rather than held as a package global, so tests can run
// against a fresh instance.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Get returns the room with the given name, creating it on first reference.
// Concurrent first lookups of the same name resolve to a single Room instance;
// the name is otherwise treated as an opaque key.
func (reg *Registry) Get(name string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[name]
	if !ok {
		room = newRoom(name)
		reg.rooms[name] = room
	}
	return room
}
