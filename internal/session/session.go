// Package session implements the in-memory game session registry and the
// per-session turn state machine for the drawing-and-guessing engine.
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sketchguess/internal/words"
)

// Player is one of the fixed participants of a session. The order of
// Session.Players determines the drawer rotation and never changes after
// creation.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Cell is a single painted grid cell on the shared canvas.
type Cell struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Color    string `json:"color"`
	AuthorID string `json:"playerId"`
}

// Conn is the transport handle bound to a player while they are connected.
// Send must not block; a slow or broken peer is the transport's problem and
// must never stall session progress.
type Conn interface {
	Send(v any)
}

// Settings carries the turn timing knobs and the word picker. PickWord is
// injectable so tests can fix the secret word.
type Settings struct {
	TurnDuration   time.Duration
	SettleDelay    time.Duration
	TurnsPerPlayer int
	PickWord       func(used []string) string
}

// DefaultSettings returns the production timing values.
func DefaultSettings() Settings {
	return Settings{
		TurnDuration:   40 * time.Second,
		SettleDelay:    1500 * time.Millisecond,
		TurnsPerPlayer: 2,
		PickWord:       words.Pick,
	}
}

// Session is one multi-turn game between a fixed player set. All mutable
// state below mu is owned by it; every inbound message and timer firing for
// the session takes the lock, so mutation is serialized per session while
// different sessions proceed in parallel.
type Session struct {
	ID      string
	RoomID  string
	Players []Player

	mu     sync.Mutex
	conns  map[string]Conn
	canvas []Cell
	scores map[string]int

	turnNumber int
	totalTurns int
	drawerIdx  int
	drawerID   string
	turnEndsAt time.Time

	currentWord string
	usedWords   []string
	guessed     bool
	started     bool

	// timerGen detects stale deadline callbacks: armTimerLocked bumps it,
	// and a firing timer whose generation no longer matches is ignored.
	// At most one pending timer exists per session.
	timerGen uint64
	timer    *time.Timer

	settings Settings
	log      zerolog.Logger
}

func (s *Session) scoresCopyLocked() map[string]int {
	out := make(map[string]int, len(s.scores))
	for id, v := range s.scores {
		out[id] = v
	}
	return out
}

func (s *Session) canvasCopyLocked() []Cell {
	out := make([]Cell, len(s.canvas))
	copy(out, s.canvas)
	return out
}

// broadcastLocked delivers the payload built per recipient to every bound
// connection. A nil payload skips that recipient. Sends are independent, so
// one dead connection never blocks delivery to the rest.
func (s *Session) broadcastLocked(build func(playerID string) any) {
	for id, c := range s.conns {
		if msg := build(id); msg != nil {
			c.Send(msg)
		}
	}
}

func (s *Session) broadcastAllLocked(msg any) {
	s.broadcastLocked(func(string) any { return msg })
}

// State returns a snapshot of the public session state.
func (s *Session) State() PublicState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicStateLocked()
}

func (s *Session) publicStateLocked() PublicState {
	var endsAt int64
	if !s.turnEndsAt.IsZero() {
		endsAt = s.turnEndsAt.UnixMilli()
	}
	return PublicState{
		TurnNumber:     s.turnNumber,
		TurnsPerPlayer: s.settings.TurnsPerPlayer,
		TotalTurns:     s.totalTurns,
		DrawerID:       s.drawerID,
		Scores:         s.scoresCopyLocked(),
		TurnEndsAt:     endsAt,
		Canvas:         s.canvasCopyLocked(),
	}
}
