package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kidgames/internal/game"
)

func dial(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	return websocket.DefaultDialer.Dial(url, header)
}

func readEvent(t *testing.T, ws *websocket.Conn) game.Event {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	var e game.Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func newHubServer(t *testing.T, origin string) (*Hub, *httptest.Server) {
	hub := NewHub(origin)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hello, _ := json.Marshal(game.Event{Type: "hello", Session: "s1"})
		hub.Serve(w, r, "s1", hello)
	}))
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
	})
	return hub, srv
}

func TestHubDeliversSessionEvents(t *testing.T) {
	hub, srv := newHubServer(t, "http://localhost:3000")
	ws, _, err := dial(t, srv, nil)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, game.EventType("hello"), readEvent(t, ws).Type)
	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Emit(game.Event{Type: game.EventRoundChanged, Session: "other"})
	hub.Emit(game.Event{Type: game.EventRoundChanged, Session: "s1", State: game.Snapshot{Score: 10}})

	e := readEvent(t, ws)
	assert.Equal(t, game.EventRoundChanged, e.Type)
	assert.Equal(t, "s1", e.Session)
	assert.Equal(t, 10, e.State.Score)
}

func TestHubDropDisconnects(t *testing.T) {
	hub, srv := newHubServer(t, "*")
	ws, _, err := dial(t, srv, nil)
	require.NoError(t, err)
	defer ws.Close()
	readEvent(t, ws)
	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Drop("s1")
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = ws.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.Subscribers("s1"))
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	hub, srv := newHubServer(t, "http://localhost:3000")
	_, resp, err := dial(t, srv, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Subscribers("s1"))
}

func TestEmitAfterCloseReturns(t *testing.T) {
	hub := NewHub("*")
	hub.Close()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Emit(game.Event{Type: game.EventRoundChanged, Session: "s1"})
		}
		hub.Drop("s1")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked on a closed hub")
	}
}
