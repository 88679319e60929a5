package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchguess/internal/config"
	"sketchguess/internal/session"
	"sketchguess/internal/ws"
)

func testRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(session.Settings{
		TurnDuration:   time.Minute,
		SettleDelay:    time.Hour,
		TurnsPerPlayer: 2,
		PickWord:       func([]string) string { return "apple" },
	}, zerolog.Nop())

	wsh := ws.NewHandler(store, nil, zerolog.Nop())
	cfg := config.Config{AllowedOrigins: []string{"*"}}
	return SetupRouter(store, wsh, cfg), store
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateGame(t *testing.T) {
	r, store := testRouter(t)

	body := `{"roomId":"room-1","players":[{"id":"a1","username":"alice"},{"id":"b2","username":"bob"}]}`
	w := doJSON(r, http.MethodPost, "/games", body)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID      string           `json:"id"`
		RoomID  string           `json:"roomId"`
		Players []session.Player `json:"players"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "room-1", resp.RoomID)
	assert.Equal(t, []session.Player{
		{ID: "a1", Username: "alice"},
		{ID: "b2", Username: "bob"},
	}, resp.Players)

	_, ok := store.Get(resp.ID)
	assert.True(t, ok)
}

func TestCreateGameRejectsMissingFields(t *testing.T) {
	r, _ := testRouter(t)

	cases := []string{
		`{}`,
		`{"roomId":"room-1"}`,
		`{"roomId":"room-1","players":[]}`,
		`{"players":[{"id":"a1","username":"alice"}]}`,
		`not json`,
	}
	for _, body := range cases {
		w := doJSON(r, http.MethodPost, "/games", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestGetGame(t *testing.T) {
	r, store := testRouter(t)
	s := store.Create("room-7", []session.Player{
		{ID: "a1", Username: "alice"},
		{ID: "b2", Username: "bob"},
	})

	w := doJSON(r, http.MethodGet, "/games/"+s.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID     string `json:"id"`
		RoomID string `json:"roomId"`
		State  struct {
			TurnNumber int            `json:"turnNumber"`
			TotalTurns int            `json:"totalTurns"`
			Scores     map[string]int `json:"scores"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, s.ID, resp.ID)
	assert.Equal(t, "room-7", resp.RoomID)
	assert.Equal(t, 1, resp.State.TurnNumber)
	assert.Equal(t, 4, resp.State.TotalTurns)
	assert.Equal(t, map[string]int{"a1": 0, "b2": 0}, resp.State.Scores)
}

func TestGetGameNotFound(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodGet, "/games/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "game not found")
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}
