package http

import "sketchguess/internal/session"

// CreateGameRequest is the payload the room service posts to /games once a
// room reaches capacity.
type CreateGameRequest struct {
	RoomID  string           `json:"roomId"`
	Players []session.Player `json:"players"`
}
