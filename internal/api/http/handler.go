package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sketchguess/internal/session"
)

// @Summary Create game session
// @Description Allocate a session for a room's player list; called by the room service once a room fills
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.CreateGameRequest true "Room and players"
// @Success 201 {object} map[string]interface{}
// @Router /games [post]
func CreateGameHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" || len(req.Players) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId and players are required"})
			return
		}
		s := store.Create(req.RoomID, req.Players)
		c.JSON(http.StatusCreated, gin.H{
			"id":      s.ID,
			"roomId":  s.RoomID,
			"players": s.Players,
		})
	}
}

// @Summary Get game session
// @Description Read-only lookup of a session's players and public state
// @Tags Game
// @Produce json
// @Param gameId path string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Router /games/{gameId} [get]
func GetGameHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := store.Get(c.Param("gameId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":      s.ID,
			"roomId":  s.RoomID,
			"players": s.Players,
			"state":   s.State(),
		})
	}
}
