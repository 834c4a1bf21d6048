package client

import (
	"time"

	"github.com/tomz197/slalom/internal/input"
	"github.com/tomz197/slalom/internal/loop"
	"github.com/tomz197/slalom/internal/loop/server"
)

// Mode is what the client is showing, on top of the game's own run state.
type Mode int

const (
	ModePlaying  Mode = iota // The course, HUD and finish screen
	ModeShutdown             // Server is shutting down
)

// ClientState holds per-connection state that is not part of the game itself.
type ClientState struct {
	Input         input.Input
	Mode          Mode
	Running       bool                  // Client loop running
	Rank          int                   // Leaderboard rank of the last finish, 0 if none
	Top           []server.TopTimeEntry // Leaderboard snapshot for the finish screen
	delta         time.Duration         // Frame delta time (client-side)
	shutdownTimer float64               // Countdown before auto-disconnect on shutdown
	isInactive    bool                  // Whether the client is in inactive warning state

	// Previous-frame values, used to detect transitions that need a full redraw.
	prevMode     Mode
	prevRunState loop.RunState
	wasInactive  bool
	boardChanged bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Mode:    ModePlaying,
		Running: true,
	}
}
