// Package server implements Room, the broadcast domain that owns the live
// membership set for one named chat channel.
package server

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Room holds the members of one named channel and fans messages out to them.
// Membership is a set: joining twice is a no-op, as is leaving when not a
// member. The member set is the only state shared across connection
// goroutines, so every read and write of it goes through the mutex; delivery
// itself happens on a snapshot taken under the lock, so a join or leave racing
// with an in-flight broadcast may or may not be reflected in that broadcast.
type Room struct {
	name    string
	mu      sync.RWMutex
	members map[*Session]struct{}
}

func newRoom(name string) *Room {
	return &Room{
		name:    name,
		members: make(map[*Session]struct{}),
	}
}

// Name returns the room's registry key.
func (r *Room) Name() string {
	return r.name
}

// Join adds a session to the member set. Re-joining is a no-op.
func (r *Room) Join(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[s] = struct{}{}
}

// Leave removes a session from the member set if present.
func (r *Room) Leave(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, s)
}

// Members returns a snapshot of the current member set.
func (r *Room) Members() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.members)
}

// FindMember looks up a current member by display name, case-insensitively.
func (r *Room) FindMember(name string) (*Session, bool) {
	return lo.Find(r.Members(), func(s *Session) bool {
		return strings.EqualFold(s.Name(), name)
	})
}

// Broadcast delivers a message to every current member, including whichever
// member originated it. The payload is serialized once; a failed delivery to
// one member never prevents delivery to the rest.
func (r *Room) Broadcast(msg Outgoing) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Dropping undeliverable broadcast in room %q: %v", r.name, err)
		return
	}
	for _, member := range r.Members() {
		member.Send(payload)
	}
}

// DirectMessage delivers a message to one session only, bypassing membership;
// the target does not have to be a current member.
func (r *Room) DirectMessage(target *Session, msg Outgoing) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Dropping undeliverable direct message in room %q: %v", r.name, err)
		return
	}
	target.Send(payload)
}
