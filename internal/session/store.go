package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is the in-memory session registry. It only guards the id-to-session
// map; everything inside a session is serialized by that session's own lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	settings Settings
	log      zerolog.Logger
}

// NewStore builds a registry using the given settings for every session it
// creates. A nil PickWord falls back to the default word pool.
func NewStore(settings Settings, log zerolog.Logger) *Store {
	if settings.PickWord == nil {
		settings.PickWord = DefaultSettings().PickWord
	}
	return &Store{
		sessions: make(map[string]*Session),
		settings: settings,
		log:      log,
	}
}

// Create allocates a session for the player list reported by the room
// service. Scores start at zero and the first player in the list draws
// first.
func (st *Store) Create(roomID string, players []Player) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		RoomID:     roomID,
		Players:    append([]Player(nil), players...),
		conns:      make(map[string]Conn),
		scores:     make(map[string]int, len(players)),
		turnNumber: 1,
		totalTurns: len(players) * st.settings.TurnsPerPlayer,
		settings:   st.settings,
	}
	for _, p := range players {
		s.scores[p.ID] = 0
	}
	s.log = st.log.With().Str("game", s.ID).Logger()

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	s.log.Info().Str("room", roomID).Int("players", len(players)).Msg("session created")
	return s
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
