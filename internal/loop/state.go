package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/slalom/internal/loop/config"
	"github.com/tomz197/slalom/internal/object"
)

// RunState represents the current game phase.
type RunState int

const (
	RunStateRunning  RunState = iota // Skiing down the course
	RunStateFinished                 // Final gate passed, waiting for restart
)

func (r RunState) String() string {
	switch r {
	case RunStateRunning:
		return "running"
	case RunStateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Direction is a skating push direction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// Hint texts shown in the status label.
const (
	HintStart  = "Press A/D or ←/→"
	HintFinish = "Finished! Press R to restart."
)

// Player is the skier's state.
type Player struct {
	X       float64 // Lateral position in [-1, 1]
	Speed   float64 // Never negative
	Balance float64 // 0 to Tuning.Player.BalanceMax
}

// State holds everything about one game. It is not safe for concurrent use:
// the frame loop and the input handler must run on the same goroutine.
type State struct {
	Tuning config.Tuning

	Player   Player
	Gates    []*object.Gate
	Trees    []*object.Tree
	RunState RunState
	LastKey  Direction
	Hint     string
	Elapsed  time.Duration // Run time, frozen at the finish
	Clock    Clock

	// OnFinish, if set, is called once when a run finishes.
	OnFinish func(elapsed time.Duration)

	gateTail  int // Index of the farthest gate, the back of the queue
	treeTail  int
	finalGate int // The gate that ends the run
	rng       *rand.Rand
}

// NewState creates a game laid out from the tuning. rng supplies the random
// lateral offsets; nil uses a time-seeded source.
func NewState(t config.Tuning, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &State{
		Tuning: t,
		Gates:  make([]*object.Gate, t.Gates.Count),
		Trees:  make([]*object.Tree, t.Trees.Count),
		rng:    rng,
	}
	for i := range s.Gates {
		s.Gates[i] = &object.Gate{HalfWidth: t.Gates.Tolerance}
	}
	for i := range s.Trees {
		s.Trees[i] = &object.Tree{SideOffset: t.Trees.SideOffset}
	}
	s.Reset()
	return s
}

// Reset puts the game back to its initial conditions with a freshly randomized course.
func (s *State) Reset() {
	s.Player = Player{Balance: s.Tuning.Player.BalanceMax}
	s.RunState = RunStateRunning
	s.LastKey = DirectionNone
	s.Hint = HintStart
	s.Elapsed = 0
	s.Clock.Reset()

	g := s.Tuning.Gates
	for i, gate := range s.Gates {
		gate.Recycle(s.randomLateral(g.LateralRange), g.FirstDepth+float64(i)*g.Spacing)
	}
	s.gateTail = len(s.Gates) - 1
	s.finalGate = len(s.Gates) - 1

	tr := s.Tuning.Trees
	for i, tree := range s.Trees {
		tree.Recycle(s.randomLateral(tr.LateralRange), tr.FirstDepth+float64(i)*tr.Spacing)
		tree.Side = s.randomSide()
	}
	s.treeTail = len(s.Trees) - 1
}

// FinalGate returns the gate whose passing ends the run.
func (s *State) FinalGate() *object.Gate {
	return s.Gates[s.finalGate]
}

// Finished reports whether the run is over.
func (s *State) Finished() bool {
	return s.RunState == RunStateFinished
}

// randomLateral returns a value in [-r, r).
func (s *State) randomLateral(r float64) float64 {
	return (s.rng.Float64()*2 - 1) * r
}

func (s *State) randomSide() float64 {
	if s.rng.Float64() > 0.5 {
		return -1
	}
	return 1
}
