package play

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"example.com/mastermind/internal/httpapi"
)

const (
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func newClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{ws: ws, send: make(chan []byte, sendBuffer)}
}

// Close stops the writer and closes the socket. Detach from the table first.
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

func (c *ClientConn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWS serves /ws/{gameID}. The token comes from ?token= or an
// Authorization: Bearer header.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = httpapi.BearerToken(r)
	}
	if token == "" {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing token")
		return
	}
	claims, err := s.auth.Verify(token)
	if err != nil {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
		return
	}

	t, status, code := s.lookup(r, chi.URLParam(r, "gameID"), claims.UserID)
	if t == nil {
		httpapi.WriteError(w, status, code, http.StatusText(status))
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	cc := newClientConn(ws)
	go cc.writeLoop()

	t.attach(cc)
	s.log.Debug("ws attached", "game_id", t.ID(), "user_id", claims.UserID)

	s.readLoop(t, cc)

	t.detach(cc)
	cc.Close()
	s.log.Debug("ws detached", "game_id", t.ID(), "user_id", claims.UserID)
}

func (s *Server) readLoop(t *Table, cc *ClientConn) {
	for {
		_, data, err := cc.ws.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.sendErrorTo(cc, "bad_json", "invalid json")
			continue
		}

		switch env.Type {
		case "start":
			if err := t.Start(); err != nil {
				s.sendGameError(t, cc, err)
			}

		case "submit_guess":
			var p SubmitGuessPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				t.sendErrorTo(cc, "bad_input", "invalid payload")
				continue
			}
			if _, err := t.SubmitGuess(p.Guess); err != nil {
				s.sendGameError(t, cc, err)
			}

		case "hint":
			h, err := t.Hint()
			if err != nil {
				s.sendGameError(t, cc, err)
				continue
			}
			t.sendTo(cc, Envelope{Type: "hint", Payload: mustJSON(h)})

		case "state":
			t.sendTo(cc, Envelope{Type: "state", Payload: mustJSON(t.State())})

		default:
			t.sendErrorTo(cc, "unknown_type", "unknown message type")
		}
	}
}

func (s *Server) sendGameError(t *Table, cc *ClientConn, err error) {
	_, code, ok := httpapi.ErrorCode(err)
	if !ok {
		s.log.Error("ws game op", "game_id", t.ID(), "err", err)
		t.sendErrorTo(cc, code, "internal error")
		return
	}
	t.sendErrorTo(cc, code, err.Error())
}
