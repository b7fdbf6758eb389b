package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/lanternlab/lantern/pkg/view"
)

// dialTestHub upgrades one client connection and hands the server side
// back so tests can register it with a hub directly.
func dialTestHub(t *testing.T) (client, server *websocket.Conn) {
	t.Helper()

	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing test hub: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client, <-connCh
}

func TestBroadcastDeliversView(t *testing.T) {
	hub := NewHub()
	client, serverConn := dialTestHub(t)

	hub.mu.Lock()
	hub.clients["c1"] = serverConn
	hub.mu.Unlock()

	hub.BroadcastView(view.View{Mode: view.ModeCityMap})

	var msg viewMessage
	if err := client.ReadJSON(&msg); err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}
	if msg.Type != "view" {
		t.Errorf("message type = %q, want view", msg.Type)
	}
	if msg.View.Mode != view.ModeCityMap {
		t.Errorf("view mode = %q, want %q", msg.View.Mode, view.ModeCityMap)
	}
}

func TestBroadcastDropsFailedClient(t *testing.T) {
	hub := NewHub()
	_, serverConn := dialTestHub(t)

	hub.mu.Lock()
	hub.clients["c1"] = serverConn
	hub.mu.Unlock()

	// Tear the transport down underneath the hub; the next broadcast
	// write fails and the client must be deregistered.
	serverConn.UnderlyingConn().Close()
	hub.BroadcastView(view.View{Mode: view.ModeCityMap})

	hub.mu.Lock()
	remaining := len(hub.clients)
	hub.mu.Unlock()
	if remaining != 0 {
		t.Errorf("failed client still registered, %d clients remain", remaining)
	}
}
