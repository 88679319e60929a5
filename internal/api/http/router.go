// Package http exposes the session-creation boundary for the room service
// and the websocket upgrade route for clients.
package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sketchguess/internal/config"
	"sketchguess/internal/session"
	"sketchguess/internal/ws"
)

func SetupRouter(store *session.Store, wsh *ws.Handler, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) { c.String(200, "healthy") })

	// WebSocket for the session protocol
	r.GET("/ws", wsh.HandleWS)

	// --- GAME ENDPOINTS ---
	r.POST("/games", CreateGameHandler(store))
	r.GET("/games/:gameId", GetGameHandler(store))

	return r
}
