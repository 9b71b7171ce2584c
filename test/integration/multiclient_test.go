package integration

import (
	"fmt"
	"testing"

	"github.com/gorilla/websocket"

	"groupchat/test/testhelpers"
)

// TestManyClientsInOneRoom verifies that a broadcast reaches every member of
// a well-populated room.
func TestManyClientsInOneRoom(t *testing.T) {
	ts, _ := testhelpers.StartChatServer(t)

	const numClients = 5
	conns := make([]*websocket.Conn, 0, numClients)

	// Join one client at a time, draining the join note from everyone
	// already connected so each connection's read stream stays predictable.
	for i := 0; i < numClients; i++ {
		conn := testhelpers.DialRoom(t, ts, "big")
		testhelpers.Join(t, conn, fmt.Sprintf("user-%d", i))
		conns = append(conns, conn)

		for _, member := range conns {
			note := testhelpers.ExpectMessage(t, member, "note")
			if note["text"] != fmt.Sprintf("user-%d joined %q.", i, "big") {
				t.Fatalf("Unexpected join note for client %d: %v", i, note["text"])
			}
		}
	}

	testhelpers.SendCommand(t, conns[0], map[string]string{"type": "chat", "text": "hello everyone"})

	for i, conn := range conns {
		chat := testhelpers.ExpectMessage(t, conn, "chat")
		if chat["name"] != "user-0" || chat["text"] != "hello everyone" {
			t.Errorf("Client %d got unexpected chat message: %v", i, chat)
		}
	}
}

// TestClientsAcrossRoomsDoNotInterfere verifies simultaneous traffic in
// several rooms stays partitioned.
func TestClientsAcrossRoomsDoNotInterfere(t *testing.T) {
	ts, _ := testhelpers.StartChatServer(t)

	rooms := []string{"red", "green", "blue"}
	conns := make(map[string]*websocket.Conn, len(rooms))

	for _, room := range rooms {
		conn := testhelpers.DialRoom(t, ts, room)
		testhelpers.Join(t, conn, "resident-"+room)
		testhelpers.ExpectMessage(t, conn, "note")
		conns[room] = conn
	}

	for _, room := range rooms {
		testhelpers.SendCommand(t, conns[room], map[string]string{"type": "chat", "text": "from " + room})
	}

	for _, room := range rooms {
		chat := testhelpers.ExpectMessage(t, conns[room], "chat")
		if chat["text"] != "from "+room {
			t.Errorf("Room %q received foreign message: %v", room, chat)
		}
	}
}

// TestListingReflectsDepartures verifies that the member listing shrinks once
// a client disconnects.
func TestListingReflectsDepartures(t *testing.T) {
	ts, _ := testhelpers.StartChatServer(t)

	alice := testhelpers.DialRoom(t, ts, "lobby")
	testhelpers.Join(t, alice, "Alice")
	testhelpers.ExpectMessage(t, alice, "note")

	bob := testhelpers.DialRoom(t, ts, "lobby")
	testhelpers.Join(t, bob, "Bob")
	testhelpers.ExpectMessage(t, alice, "note")
	testhelpers.ExpectMessage(t, bob, "note")

	if err := bob.Close(); err != nil {
		t.Fatalf("Failed to close connection: %v", err)
	}
	note := testhelpers.ExpectMessage(t, alice, "note")
	if note["text"] != "Bob left lobby." {
		t.Fatalf("Unexpected leave note: %v", note["text"])
	}

	testhelpers.SendCommand(t, alice, map[string]string{"type": "list", "text": "/members"})

	listing := testhelpers.ExpectMessage(t, alice, "list")
	if listing["text"] != "Alice" {
		t.Errorf("Unexpected listing entry: %v", listing["text"])
	}
}
