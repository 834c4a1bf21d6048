package web

import (
	"encoding/json"

	"github.com/tomz197/slalom/internal/draw"
	"github.com/tomz197/slalom/internal/loop"
)

// Message types carried in Envelope.T.
const (
	MsgHello    = "hello"    // client -> server, Hello
	MsgKey      = "key"      // client -> server, KeyPress
	MsgFrame    = "frame"    // server -> client, Frame
	MsgBoard    = "board"    // server -> client, Board
	MsgShutdown = "shutdown" // server -> client, no payload
)

// Envelope wraps every websocket message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"` // raw payload bytes
}

// Hello is the first message a browser sends.
type Hello struct {
	Name string `json:"name,omitempty"`
}

// KeyPress carries one KeyboardEvent.key value.
type KeyPress struct {
	Key string `json:"key"`
}

// Frame is one rendered frame: the drawing calls and the UI labels.
type Frame struct {
	W        float64     `json:"w"`
	H        float64     `json:"h"`
	Ops      []draw.Op   `json:"ops"`
	Labels   loop.Labels `json:"labels"`
	Finished bool        `json:"finished,omitempty"`
}

// Board is the leaderboard as shown on the finish screen.
type Board struct {
	Rank    int          `json:"rank,omitempty"` // This player's rank, 0 if off the board
	Entries []BoardEntry `json:"entries"`
}

// BoardEntry is one leaderboard line.
type BoardEntry struct {
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
}

// encode builds an envelope of type t around payload p. A nil p sends no payload.
func encode(t string, p any) ([]byte, error) {
	env := Envelope{T: t}
	if p != nil {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		env.P = raw
	}
	return json.Marshal(env)
}
