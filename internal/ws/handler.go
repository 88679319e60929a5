// Package ws is the protocol handler for the persistent duplex connection:
// it authenticates connections, binds them into sessions, and routes
// drawing and chat commands into the session engine.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sketchguess/internal/identity"
	"sketchguess/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // cross-origin is filtered by the HTTP CORS layer
	},
}

// Handler upgrades connections and dispatches their messages.
type Handler struct {
	store    *session.Store
	resolver identity.Resolver
	log      zerolog.Logger
}

func NewHandler(store *session.Store, resolver identity.Resolver, log zerolog.Logger) *Handler {
	return &Handler{store: store, resolver: resolver, log: log}
}

// HandleWS upgrades the request and starts the connection's read and write
// loops. Each connection blocks only on its own network I/O.
func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h, conn)
	client.log.Debug().Msg("connection established")
	go client.writePump()
	client.readPump()
}

// dispatch validates and routes a single inbound message. Malformed or
// unknown messages get an error reply; the connection stays open.
func (c *client) dispatch(raw []byte) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.Send(protocolError("Invalid JSON"))
		return
	}

	if msg.Type == "auth" {
		c.handleAuth(msg)
		return
	}

	if c.userID == "" {
		c.Send(protocolError("Not authenticated"))
		return
	}

	switch msg.Type {
	case "join-game":
		c.handleJoin(msg)
	case "draw":
		c.handleDraw(msg)
	case "draw-line":
		c.handleDrawLine(msg)
	case "chat":
		c.handleChat(msg)
	default:
		c.Send(protocolError("Unknown message type"))
	}
}

func (c *client) handleAuth(msg clientMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	userID, err := c.h.resolver.Resolve(ctx, msg.Token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidToken) {
			c.log.Warn().Err(err).Msg("token resolution failed")
		}
		c.Send(authReply{Type: "auth", Success: false, Error: "Invalid token"})
		return
	}

	c.userID = userID
	c.log = c.log.With().Str("player", userID).Logger()
	c.Send(authReply{Type: "auth", Success: true, UserID: userID})
}

func (c *client) handleJoin(msg clientMessage) {
	s, ok := c.h.store.Get(msg.GameID)
	if !ok {
		c.Send(joinReply{Type: "join-game", Success: false, Error: "Game not found"})
		return
	}

	// Rebinding to another game leaves the previous one first, so its
	// broadcasts stop reaching this connection.
	if c.sess != nil && c.sess != s {
		c.sess.Detach(c.userID, c)
	}
	c.sess = s
	s.Join(c.userID, c)
}

func (c *client) handleDraw(msg clientMessage) {
	if c.sess == nil {
		c.Send(protocolError("Not in a game"))
		return
	}
	if msg.X == nil || msg.Y == nil {
		c.Send(protocolError("Invalid coordinates"))
		return
	}
	if err := c.sess.Draw(c.userID, *msg.X, *msg.Y, msg.Color); err != nil {
		c.Send(protocolError(preconditionMessage(err)))
	}
}

func (c *client) handleDrawLine(msg clientMessage) {
	if c.sess == nil {
		c.Send(protocolError("Not in a game"))
		return
	}
	if msg.X1 == nil || msg.Y1 == nil || msg.X2 == nil || msg.Y2 == nil {
		c.Send(protocolError("Invalid coordinates"))
		return
	}
	err := c.sess.DrawLine(c.userID, *msg.X1, *msg.Y1, *msg.X2, *msg.Y2, msg.Color)
	if err != nil {
		if errors.Is(err, session.ErrOutOfBounds) {
			c.Send(protocolError("Line goes out of bounds"))
			return
		}
		c.Send(protocolError(preconditionMessage(err)))
	}
}

func (c *client) handleChat(msg clientMessage) {
	if c.sess == nil {
		c.Send(protocolError("Not in a game"))
		return
	}
	c.sess.Chat(c.userID, msg.Message)
}

// preconditionMessage maps engine errors to the wire texts the clients show.
func preconditionMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrNotStarted):
		return "Game has not started yet"
	case errors.Is(err, session.ErrNotYourTurn):
		return "Not your drawing turn"
	case errors.Is(err, session.ErrTurnResolved):
		return "Turn already completed"
	case errors.Is(err, session.ErrTurnExpired):
		return "Turn time expired"
	case errors.Is(err, session.ErrOutOfBounds):
		return "Invalid coordinates"
	}
	return err.Error()
}
