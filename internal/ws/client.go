package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sketchguess/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer. A
	// connection that stays silent past this is considered dead and closed.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Chat lines can be long, so
	// this only guards against absurd frames.
	maxMessageSize = 64 * 1024

	// Outbound queue per connection. A consumer that falls further behind
	// than this has messages dropped rather than blocking the session.
	sendBuffer = 256
)

// client is one live websocket connection. userID is set by a successful
// auth, sess by the most recent successful join.
type client struct {
	h    *Handler
	conn *websocket.Conn
	log  zerolog.Logger

	// mu guards send against a session broadcast racing the close in
	// readPump's teardown. Once closed is set, Send becomes a no-op.
	mu     sync.Mutex
	send   chan []byte
	closed bool

	userID string
	sess   *session.Session
}

func newClient(h *Handler, conn *websocket.Conn) *client {
	return &client{
		h:    h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  h.log.With().Str("remote", conn.RemoteAddr().String()).Logger(),
	}
}

// Send implements session.Conn. It marshals outside the websocket write path
// and never blocks: when the buffer is full the message is dropped and the
// peer catches up from later deltas or a rejoin replay. Sending to a closed
// connection is a silent no-op so a session timer firing during teardown
// cannot take the process down.
func (c *client) Send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error().Err(err).Msg("marshal outbound message")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn().Msg("send buffer full, dropping message")
	}
}

// readPump reads messages from the peer and dispatches them. It owns the
// liveness bookkeeping: every pong pushes the read deadline forward, so a
// peer that stops answering pings fails the next read and gets cleaned up.
func (c *client) readPump() {
	defer func() {
		if c.sess != nil {
			c.sess.Detach(c.userID, c)
		}
		c.conn.Close()
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		c.log.Debug().Msg("connection closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("read error")
			}
			return
		}
		c.dispatch(raw)
	}
}

// writePump serializes all writes to the peer and keeps the heartbeat going.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
