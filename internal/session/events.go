package session

import "sketchguess/internal/grid"

// Server-to-client payloads. Field names match what the terminal and browser
// clients consume; scores and canvas are always copies so marshaling can
// happen outside the session lock.

// PublicState is the portion of session state shared with every client.
type PublicState struct {
	TurnNumber     int            `json:"turnNumber"`
	TurnsPerPlayer int            `json:"turnsPerPlayer"`
	TotalTurns     int            `json:"totalTurns"`
	DrawerID       string         `json:"drawerId,omitempty"`
	Scores         map[string]int `json:"scores"`
	TurnEndsAt     int64          `json:"turnEndsAt,omitempty"`
	Canvas         []Cell         `json:"canvas"`
}

// StateEvent is the full snapshot sent to a connection when it (re)joins.
type StateEvent struct {
	Type       string         `json:"type"`
	Success    bool           `json:"success"`
	GameID     string         `json:"gameId"`
	State      PublicState    `json:"state"`
	Players    []Player       `json:"players"`
	Scores     map[string]int `json:"scores"`
	IsYourTurn bool           `json:"isYourTurn"`
	Role       string         `json:"role"`
}

// TurnStartEvent announces a new turn. The drawer receives the secret word;
// guessers only learn its length.
type TurnStartEvent struct {
	Type       string         `json:"type"`
	TurnNumber int            `json:"turnNumber"`
	TotalTurns int            `json:"totalTurns"`
	DrawerID   string         `json:"drawerId"`
	Role       string         `json:"role"`
	Word       string         `json:"word,omitempty"`
	WordLength int            `json:"wordLength,omitempty"`
	DurationMs int64          `json:"durationMs"`
	EndsAt     int64          `json:"endsAt"`
	Scores     map[string]int `json:"scores"`
}

// DrawEvent replays a single painted cell to every viewer.
type DrawEvent struct {
	Type        string `json:"type"`
	From        string `json:"from"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Color       string `json:"color"`
	TurnNumber  int    `json:"turnNumber"`
	DrawerID    string `json:"drawerId"`
	IsYourTurn  bool   `json:"isYourTurn"`
	RemainingMs int64  `json:"remainingMs"`
}

// DrawLineEvent replays a rasterized stroke to every viewer.
type DrawLineEvent struct {
	Type        string       `json:"type"`
	From        string       `json:"from"`
	Points      []grid.Point `json:"points"`
	Color       string       `json:"color"`
	TurnNumber  int          `json:"turnNumber"`
	DrawerID    string       `json:"drawerId"`
	IsYourTurn  bool         `json:"isYourTurn"`
	RemainingMs int64        `json:"remainingMs"`
}

// CanvasClearEvent tells clients to wipe their canvas at a turn boundary.
type CanvasClearEvent struct {
	Type string `json:"type"`
}

// ChatEvent relays a chat line verbatim to every bound connection.
type ChatEvent struct {
	Type    string `json:"type"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// GuessResultEvent announces the winning guess before the turn ends.
type GuessResultEvent struct {
	Type       string         `json:"type"`
	GuesserID  string         `json:"guesserId"`
	Word       string         `json:"word"`
	TurnNumber int            `json:"turnNumber"`
	Scores     map[string]int `json:"scores"`
}

// TurnEndEvent closes a turn with reason "guessed" or "timeout" and reveals
// the word.
type TurnEndEvent struct {
	Type       string         `json:"type"`
	Reason     string         `json:"reason"`
	Word       string         `json:"word"`
	DrawerID   string         `json:"drawerId"`
	TurnNumber int            `json:"turnNumber"`
	Scores     map[string]int `json:"scores"`
	GuesserID  string         `json:"guesserId,omitempty"`
}

// GameOverEvent carries the final scores. Ties yield multiple winners.
type GameOverEvent struct {
	Type       string         `json:"type"`
	Scores     map[string]int `json:"scores"`
	WinnerIDs  []string       `json:"winnerIds"`
	TotalTurns int            `json:"totalTurns"`
}
