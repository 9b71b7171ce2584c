// Package server serves a self-contained HTML page for exercising the chat
// protocol from a browser.
package server

import (
	"fmt"
	"log"
	"net/http"
)

// TestPageHandler serves an HTML test page for the room named in the path.
// The page speaks the full chat protocol: it joins with a prompted username,
// renders notes, chat lines, jokes, member listings, and private messages,
// and maps the /joke, /members, /priv, and /name slash commands onto their
// message types.
func TestPageHandler(w http.ResponseWriter, r *http.Request) {
	roomName := r.PathValue("room")
	if roomName == "" {
		http.Error(w, "Room name is required.", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Groupchat Test</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        #messages {
            border: 1px solid #ccc;
            height: 300px;
            padding: 10px;
            overflow-y: scroll;
            margin: 10px 0;
            background-color: #f9f9f9;
            list-style: none;
        }
        input[type="text"] { width: 300px; padding: 5px; margin-right: 10px; }
        button { padding: 5px 15px; background-color: #007cba; color: white; border: none; cursor: pointer; }
        button:hover { background-color: #005a87; }
        .note { color: gray; font-style: italic; }
        .pm { color: purple; }
        .member { color: teal; }
    </style>
</head>
<body>
    <h1>Groupchat: %s</h1>

    <ul id="messages"></ul>

    <form id="chatForm">
        <input type="text" id="m" placeholder="Type a message, or /joke, /members, /priv, /name..." autocomplete="off">
        <button type="submit">Send</button>
    </form>

    <script>
        const roomName = %q;
        const scheme = location.protocol === 'https:' ? 'wss' : 'ws';
        const ws = new WebSocket(scheme + '://' + location.host + '/chat/' + roomName);
        const name = prompt('Username?');
        const messages = document.getElementById('messages');

        function addItem(html, cls) {
            const item = document.createElement('li');
            if (cls) item.className = cls;
            item.innerHTML = html;
            messages.appendChild(item);
            messages.scrollTop = messages.scrollHeight;
        }

        ws.onopen = function () {
            ws.send(JSON.stringify({type: 'join', name: name}));
        };

        ws.onmessage = function (evt) {
            const msg = JSON.parse(evt.data);
            if (msg.type === 'note' || msg.type === 'joke') {
                addItem(msg.text, 'note');
            } else if (msg.type === 'chat') {
                addItem('<b>' + msg.name + ': </b>' + msg.text);
            } else if (msg.type === 'list') {
                addItem(msg.text, 'member');
            } else if (msg.type === 'pm') {
                addItem('<b>' + msg.from + ' says: </b>' + msg.text, 'pm');
            } else {
                console.error('bad message:', msg);
            }
        };

        ws.onclose = function () {
            addItem('Connection closed', 'note');
        };

        function commandType(command) {
            switch (command) {
                case '/joke': return 'joke';
                case '/members': return 'list';
                case '/priv': return 'pm';
                case '/name': return 'namechange';
                default: return 'chat';
            }
        }

        document.getElementById('chatForm').addEventListener('submit', function (evt) {
            evt.preventDefault();
            const input = document.getElementById('m');
            const text = input.value;
            if (!text) return;

            let type = 'chat';
            if (text[0] === '/') {
                type = commandType(text.split(' ')[0]);
            }

            ws.send(JSON.stringify({type: type, text: text}));
            input.value = '';
        });
    </script>
</body>
</html>`
	if _, err := fmt.Fprintf(w, html, roomName, roomName); err != nil {
		log.Printf("Error writing HTML response: %v", err)
	}
}
