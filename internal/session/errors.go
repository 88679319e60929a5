package session

import "errors"

// State-precondition violations. Each is reported to the offending caller
// only and never mutates session state.
var (
	ErrNotStarted   = errors.New("game has not started yet")
	ErrNotYourTurn  = errors.New("not your drawing turn")
	ErrTurnResolved = errors.New("turn already completed")
	ErrOutOfBounds  = errors.New("coordinates out of bounds")
	ErrTurnExpired  = errors.New("turn time expired")
)
