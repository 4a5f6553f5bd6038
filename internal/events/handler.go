package events

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Serve upgrades the request and streams the session's events to it until
// either side goes away. hello, when non-nil, is sent before any event.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, session string, hello []byte) {
	up := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	ws, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", session).Msg("websocket upgrade")
		return
	}

	s := &subscriber{session: session, send: make(chan []byte, sendBuffer)}
	if hello != nil {
		s.send <- hello
	}
	if !h.add(s) {
		ws.Close()
		return
	}

	go h.writePump(ws, s)
	go h.readPump(ws, s)
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	o := r.Header.Get("Origin")
	return o == "" || h.origin == "*" || o == h.origin
}

// readPump only services control frames; clients never send anything we act on.
func (h *Hub) readPump(ws *websocket.Conn, s *subscriber) {
	defer func() {
		h.remove(s)
		ws.Close()
	}()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("session", s.session).Msg("websocket closed")
			}
			return
		}
	}
}

func (h *Hub) writePump(ws *websocket.Conn, s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
