// Package server defines the wire message shapes exchanged between clients
// and the chat service, both inbound commands and outbound notifications.
package server

// Inbound message types accepted by a session.
const (
	TypeJoin       = "join"
	TypeChat       = "chat"
	TypeJoke       = "joke"
	TypeList       = "list"
	TypePrivate    = "pm"
	TypeNameChange = "namechange"
)

// Incoming is the envelope for all client-to-server messages. The Type field
// selects the command; Name is only meaningful for "join" and Text carries the
// chat text or the raw slash-command line depending on the command. Unknown
// fields in the payload are ignored.
type Incoming struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// Outgoing is the closed set of server-to-client messages. Each variant
// carries its own type tag so clients can dispatch on it.
type Outgoing interface {
	outgoing()
}

// Note is a room-wide announcement (joins, leaves, renames).
type Note struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Chat is a chat line broadcast to a room, attributed to a member.
type Chat struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Joke is delivered only to the member that asked for one.
type Joke struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MemberListing names one current room member; a listing request produces one
// of these per member rather than a single batched list.
type MemberListing struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Private is a direct message between two members.
type Private struct {
	Type string `json:"type"`
	From string `json:"from"`
	Text string `json:"text"`
}

func (Note) outgoing()          {}
func (Chat) outgoing()          {}
func (Joke) outgoing()          {}
func (MemberListing) outgoing() {}
func (Private) outgoing()       {}

func newNote(text string) Note {
	return Note{Type: "note", Text: text}
}

func newChat(name, text string) Chat {
	return Chat{Type: TypeChat, Name: name, Text: text}
}

func newJoke(text string) Joke {
	return Joke{Type: TypeJoke, Text: text}
}

func newMemberListing(name string) MemberListing {
	return MemberListing{Type: TypeList, Text: name}
}

func newPrivate(from, text string) Private {
	return Private{Type: TypePrivate, From: from, Text: text}
}
