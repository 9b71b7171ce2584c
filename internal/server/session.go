// Package server implements Session, the per-connection protocol state
// machine that decodes inbound frames and calls into the session's room.
package server

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SendFunc is the outbound send capability the transport hands to a session.
// It delivers one pre-serialized payload to this session's own client and may
// fail if the underlying connection is gone.
type SendFunc func(payload []byte) error

// Session is one client's presence in a room: its connection-send capability,
// its mutable display name, and the room it resolved at construction time. A
// session starts unjoined (empty name, not a room member) and becomes joined
// when the client sends a join command. The transport drives it through
// HandleMessage for each inbound payload and HandleClose exactly once when the
// connection ends.
//
// The display name is read by other sessions' goroutines during listings and
// private-message targeting, so it sits behind its own lock; everything else
// is either immutable after construction or owned by this session alone.
type Session struct {
	id   uuid.UUID
	room *Room
	send SendFunc

	mu   sync.RWMutex
	name string
}

// NewSession creates a session bound to the named room, resolving the room
// through the registry exactly once.
func NewSession(send SendFunc, registry *Registry, roomName string) *Session {
	return &Session{
		id:   uuid.New(),
		room: registry.Get(roomName),
		send: send,
	}
}

// ID returns the session's unique identifier, used for logging.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Room returns the room this session was bound to at construction.
func (s *Session) Room() *Room {
	return s.room
}

// Name returns the session's current display name; empty until joined.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *Session) setName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// Send delivers one serialized payload to this session's client. A transport
// failure is deliberately discarded here: one unreachable recipient must not
// abort a broadcast to the rest of a room or crash the sender's handling.
func (s *Session) Send(payload []byte) {
	_ = s.send(payload)
}

// HandleMessage parses one inbound payload and dispatches it. The returned
// error is scoped to this payload alone: ErrProtocol for malformed or
// unrecognized messages, ErrUnknownTarget for a private message to nobody.
func (s *Session) HandleMessage(raw []byte) error {
	var msg Incoming
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	switch msg.Type {
	case TypeJoin:
		s.handleJoin(msg.Name)
	case TypeChat:
		s.handleChat(msg.Text)
	case TypeJoke:
		s.handleJoke()
	case TypeList:
		s.handleListingMembers()
	case TypePrivate:
		return s.handlePrivateMessage(msg.Text)
	case TypeNameChange:
		s.handleNameChange(msg.Text)
	default:
		return fmt.Errorf("%w: %s", ErrProtocol, msg.Type)
	}
	return nil
}

// handleJoin records the display name, adds the session to its room, and
// announces the arrival to everyone in it.
func (s *Session) handleJoin(name string) {
	s.setName(name)
	s.room.Join(s)
	s.room.Broadcast(newNote(fmt.Sprintf("%s joined %q.", name, s.room.Name())))
}

// handleChat broadcasts a chat line attributed to this session.
func (s *Session) handleChat(text string) {
	s.room.Broadcast(newChat(s.Name(), text))
}

// handleJoke sends a randomly drawn joke back to this session only.
func (s *Session) handleJoke() {
	s.room.DirectMessage(s, newJoke(randomJoke()))
}

// handleListingMembers replies with one listing message per current member.
func (s *Session) handleListingMembers() {
	for _, member := range s.room.Members() {
		s.room.DirectMessage(s, newMemberListing(member.Name()))
	}
}

// handlePrivateMessage parses "/priv <target> <body...>": the command token is
// already spent, the second token names the target (matched against members
// case-insensitively) and the rest is the body. Names are matched purely by
// position in the whitespace split; there is no further validation.
func (s *Session) handlePrivateMessage(text string) error {
	parts := strings.Fields(text)

	var target, body string
	if len(parts) > 1 {
		target = parts[1]
	}
	if len(parts) > 2 {
		body = strings.Join(parts[2:], " ")
	}

	to, ok := s.room.FindMember(target)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	s.room.DirectMessage(to, newPrivate(s.Name(), body))
	return nil
}

// handleNameChange takes the second token of "/name <newName>" as the new
// display name (trailing tokens are ignored) and announces the rename under
// the old name.
func (s *Session) handleNameChange(text string) {
	parts := strings.Fields(text)

	var newName string
	if len(parts) > 1 {
		newName = parts[1]
	}

	oldName := s.Name()
	s.setName(newName)
	s.room.Broadcast(newNote(fmt.Sprintf("%s has changed username to: %q.", oldName, newName)))
}

// HandleClose removes the session from its room and announces the exit. The
// transport calls it exactly once, when the connection ends; if the client
// never joined, the note simply carries an empty name.
func (s *Session) HandleClose() {
	s.room.Leave(s)
	s.room.Broadcast(newNote(fmt.Sprintf("%s left %s.", s.Name(), s.room.Name())))
}
