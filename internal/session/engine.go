package session

import (
	"math"
	"sort"
	"strings"
	"time"

	"sketchguess/internal/grid"
)

// Join binds a connection for userID into the session and replies with the
// full public state so late or rejoining clients rebuild their canvas.
// Binding the same identity again just replaces the handle. When the last
// expected player binds and no turn has started yet, the first turn begins.
func (s *Session) Join(userID string, c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns[userID] = c

	state := s.publicStateLocked()
	c.Send(StateEvent{
		Type:       "state",
		Success:    true,
		GameID:     s.ID,
		State:      state,
		Players:    s.Players,
		Scores:     state.Scores,
		IsYourTurn: state.DrawerID == userID,
		Role:       roleFor(state.DrawerID, userID),
	})

	if !s.started && len(s.conns) == len(s.Players) {
		s.startTurnLocked()
	}
}

// Detach removes the connection from the session if it is still the bound
// handle for userID. Player slot, scores, and canvas survive so the player
// can rejoin and get a full replay.
func (s *Session) Detach(userID string, c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.conns[userID]; ok && cur == c {
		delete(s.conns, userID)
		s.log.Debug().Str("player", userID).Msg("connection detached")
	}
}

// Draw appends one cell to the canvas and broadcasts it. Only the current
// drawer may draw, only while the turn is live, and only inside the grid.
func (s *Session) Draw(userID string, x, y int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.canDrawLocked(userID); err != nil {
		return err
	}
	if !grid.InBounds(x, y) {
		return ErrOutOfBounds
	}
	if s.deadlinePassedLocked() {
		return ErrTurnExpired
	}
	if color == "" {
		color = "white"
	}

	s.canvas = append(s.canvas, Cell{X: x, Y: y, Color: color, AuthorID: userID})

	remaining := s.remainingMsLocked()
	s.broadcastLocked(func(playerID string) any {
		return DrawEvent{
			Type:        "draw",
			From:        userID,
			X:           x,
			Y:           y,
			Color:       color,
			TurnNumber:  s.turnNumber,
			DrawerID:    s.drawerID,
			IsYourTurn:  playerID == s.drawerID,
			RemainingMs: remaining,
		}
	})
	return nil
}

// DrawLine rasterizes the stroke between two endpoints, validates every cell
// against the grid, appends them to the canvas, and broadcasts the expanded
// point list so all viewers paint exactly the same cells.
func (s *Session) DrawLine(userID string, x1, y1, x2, y2 float64, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.canDrawLocked(userID); err != nil {
		return err
	}

	points := grid.Line(round(x1), round(y1), round(x2), round(y2))
	for _, p := range points {
		if !grid.InBounds(p.X, p.Y) {
			return ErrOutOfBounds
		}
	}
	if s.deadlinePassedLocked() {
		return ErrTurnExpired
	}
	if color == "" {
		color = "white"
	}

	for _, p := range points {
		s.canvas = append(s.canvas, Cell{X: p.X, Y: p.Y, Color: color, AuthorID: userID})
	}

	remaining := s.remainingMsLocked()
	s.broadcastLocked(func(playerID string) any {
		return DrawLineEvent{
			Type:        "draw-line",
			From:        userID,
			Points:      points,
			Color:       color,
			TurnNumber:  s.turnNumber,
			DrawerID:    s.drawerID,
			IsYourTurn:  playerID == s.drawerID,
			RemainingMs: remaining,
		}
	})
	return nil
}

// Chat broadcasts the message verbatim to every bound connection, then
// treats it as a guess unless the sender is the drawer.
func (s *Session) Chat(userID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.broadcastAllLocked(ChatEvent{Type: "chat", From: userID, Message: message})
	s.tryGuessLocked(userID, message)
}

// tryGuessLocked awards exactly one point to the first non-drawer whose
// trimmed, case-insensitive message equals the secret word, then ends the
// turn. Later correct guesses find guessed already set and are plain chat.
func (s *Session) tryGuessLocked(userID, message string) {
	if !s.started || s.guessed || s.currentWord == "" {
		return
	}
	if userID == s.drawerID {
		return
	}

	guess := strings.ToLower(strings.TrimSpace(message))
	if guess == "" || guess != strings.ToLower(s.currentWord) {
		return
	}

	s.guessed = true
	s.scores[userID]++
	s.log.Info().Str("player", userID).Int("turn", s.turnNumber).Msg("word guessed")

	s.broadcastAllLocked(GuessResultEvent{
		Type:       "guess-result",
		GuesserID:  userID,
		Word:       s.currentWord,
		TurnNumber: s.turnNumber,
		Scores:     s.scoresCopyLocked(),
	})
	s.endTurnLocked("guessed", userID)
}

// startTurnLocked begins the next turn: picks an unused word, assigns the
// drawer, arms the deadline, and notifies everyone. The drawer learns the
// word, guessers only its length.
func (s *Session) startTurnLocked() {
	if len(s.Players) == 0 {
		return
	}
	s.started = true

	drawer := s.Players[s.drawerIdx%len(s.Players)]
	word := s.settings.PickWord(s.usedWords)
	s.usedWords = append(s.usedWords, word)
	s.currentWord = word
	s.guessed = false
	s.drawerID = drawer.ID
	s.turnEndsAt = time.Now().Add(s.settings.TurnDuration)

	s.armTimerLocked(s.settings.TurnDuration, func(s *Session) {
		if s.started && !s.guessed {
			s.endTurnLocked("timeout", "")
		}
	})

	s.log.Info().
		Int("turn", s.turnNumber).
		Int("totalTurns", s.totalTurns).
		Str("drawer", drawer.ID).
		Msg("turn started")

	scores := s.scoresCopyLocked()
	endsAt := s.turnEndsAt.UnixMilli()
	s.broadcastLocked(func(playerID string) any {
		ev := TurnStartEvent{
			Type:       "turn-start",
			TurnNumber: s.turnNumber,
			TotalTurns: s.totalTurns,
			DrawerID:   drawer.ID,
			DurationMs: s.settings.TurnDuration.Milliseconds(),
			EndsAt:     endsAt,
			Scores:     scores,
		}
		if playerID == drawer.ID {
			ev.Role = "drawer"
			ev.Word = word
		} else {
			ev.Role = "guesser"
			ev.WordLength = len(word)
		}
		return ev
	})
}

// endTurnLocked closes the current turn, clears the canvas, and either
// schedules the next turn after the settling delay or finishes the game.
func (s *Session) endTurnLocked(reason, guesserID string) {
	if !s.started {
		return
	}
	s.stopTimerLocked()

	s.broadcastAllLocked(TurnEndEvent{
		Type:       "turn-end",
		Reason:     reason,
		Word:       s.currentWord,
		DrawerID:   s.drawerID,
		TurnNumber: s.turnNumber,
		Scores:     s.scoresCopyLocked(),
		GuesserID:  guesserID,
	})

	s.canvas = nil
	s.broadcastAllLocked(CanvasClearEvent{Type: "canvas-clear"})

	s.currentWord = ""
	s.drawerID = ""
	s.turnEndsAt = time.Time{}

	if s.turnNumber >= s.totalTurns {
		s.endGameLocked()
		return
	}

	s.turnNumber++
	s.drawerIdx = (s.drawerIdx + 1) % len(s.Players)

	s.armTimerLocked(s.settings.SettleDelay, (*Session).startTurnLocked)
}

// endGameLocked broadcasts the final scores and every player tied for the
// maximum, then resets the turn counters. The session entry stays in the
// store for late queries but is not reused.
func (s *Session) endGameLocked() {
	s.started = false
	s.guessed = false
	s.usedWords = nil

	maxScore := 0
	for _, v := range s.scores {
		if v > maxScore {
			maxScore = v
		}
	}
	winners := make([]string, 0, len(s.scores))
	for id, v := range s.scores {
		if v == maxScore {
			winners = append(winners, id)
		}
	}
	sort.Strings(winners)

	s.log.Info().Strs("winners", winners).Int("maxScore", maxScore).Msg("game over")

	s.broadcastAllLocked(GameOverEvent{
		Type:       "game-over",
		Scores:     s.scoresCopyLocked(),
		WinnerIDs:  winners,
		TotalTurns: s.totalTurns,
	})

	s.turnNumber = 1
	s.drawerIdx = 0
}

func (s *Session) canDrawLocked(userID string) error {
	if !s.started {
		return ErrNotStarted
	}
	if s.drawerID != userID {
		return ErrNotYourTurn
	}
	if s.guessed {
		return ErrTurnResolved
	}
	return nil
}

func (s *Session) deadlinePassedLocked() bool {
	return !s.turnEndsAt.IsZero() && time.Now().After(s.turnEndsAt)
}

func (s *Session) remainingMsLocked() int64 {
	if s.turnEndsAt.IsZero() {
		return 0
	}
	if remaining := time.Until(s.turnEndsAt).Milliseconds(); remaining > 0 {
		return remaining
	}
	return 0
}

// armTimerLocked replaces the pending timer. The generation check on firing
// guards against a stop racing an already-fired callback blocked on the
// session lock.
func (s *Session) armTimerLocked(d time.Duration, fire func(*Session)) {
	s.timerGen++
	gen := s.timerGen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.timerGen {
			return
		}
		fire(s)
	})
}

func (s *Session) stopTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func roleFor(drawerID, userID string) string {
	if drawerID != "" && drawerID == userID {
		return "drawer"
	}
	return "guesser"
}

func round(v float64) int {
	return int(math.Round(v))
}
