package ws

// clientMessage is the envelope for every client-to-server message. One
// loose struct instead of per-type payloads, so coordinate fields can be
// checked for presence before use.
type clientMessage struct {
	Type    string   `json:"type"`
	Token   string   `json:"token"`
	GameID  string   `json:"gameId"`
	X       *int     `json:"x"`
	Y       *int     `json:"y"`
	X1      *float64 `json:"x1"`
	Y1      *float64 `json:"y1"`
	X2      *float64 `json:"x2"`
	Y2      *float64 `json:"y2"`
	Color   string   `json:"color"`
	Message string   `json:"message"`
}

type authReply struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
	Error   string `json:"error,omitempty"`
}

type joinReply struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type errorReply struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func protocolError(msg string) errorReply {
	return errorReply{Type: "error", Error: msg}
}
