package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateInitializesSession(t *testing.T) {
	store := NewStore(testSettings("apple"), zerolog.Nop())

	s := store.Create("room-9", []Player{alice, bob})

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "room-9", s.RoomID)
	assert.Equal(t, []Player{alice, bob}, s.Players)

	state := s.State()
	assert.Equal(t, 1, state.TurnNumber)
	assert.Equal(t, 4, state.TotalTurns)
	assert.Equal(t, 2, state.TurnsPerPlayer)
	assert.Equal(t, map[string]int{alice.ID: 0, bob.ID: 0}, state.Scores)
	assert.Empty(t, state.DrawerID)
	assert.Zero(t, state.TurnEndsAt)
	assert.Empty(t, state.Canvas)
}

func TestStoreCreateGeneratesUniqueIDs(t *testing.T) {
	store := NewStore(testSettings("apple"), zerolog.Nop())

	a := store.Create("room-1", []Player{alice, bob})
	b := store.Create("room-1", []Player{alice, bob})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, store.Count())
}

func TestStoreGet(t *testing.T) {
	store := NewStore(testSettings("apple"), zerolog.Nop())
	s := store.Create("room-1", []Player{alice, bob})

	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStorePlayerListIsCopied(t *testing.T) {
	store := NewStore(testSettings("apple"), zerolog.Nop())
	players := []Player{alice, bob}

	s := store.Create("room-1", players)
	players[0].Username = "mallory"

	assert.Equal(t, "alice", s.Players[0].Username)
}

func TestStoreDefaultWordPicker(t *testing.T) {
	store := NewStore(Settings{TurnsPerPlayer: 2}, zerolog.Nop())
	s := store.Create("room-1", []Player{alice, bob})
	require.NotNil(t, s.settings.PickWord)
	assert.NotEmpty(t, s.settings.PickWord(nil))
}
