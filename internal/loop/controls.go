package loop

import (
	"strings"

	"github.com/tomz197/slalom/internal/physics"
)

// Action is what a key press asks the game to do.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionRestart
)

// ActionForKey maps a key identifier (browser KeyboardEvent.key style) to an action.
// Matching is case-insensitive.
func ActionForKey(key string) Action {
	switch strings.ToLower(key) {
	case "a", "arrowleft":
		return ActionLeft
	case "d", "arrowright":
		return ActionRight
	case "r":
		return ActionRestart
	default:
		return ActionNone
	}
}

// HandleKey applies a key press to the game.
func (s *State) HandleKey(key string) {
	s.Apply(ActionForKey(key))
}

// Apply performs an action. Steering is ignored after the finish, and restart
// only works after the finish.
func (s *State) Apply(a Action) {
	switch a {
	case ActionRestart:
		if s.RunState == RunStateFinished {
			s.Reset()
		}
	case ActionLeft:
		s.push(DirectionLeft)
	case ActionRight:
		s.push(DirectionRight)
	}
}

// push is one skating stroke. Alternating sides builds speed, repeating a side
// costs speed and balance. The alternating bonus shrinks as balance drops.
func (s *State) push(dir Direction) {
	if s.RunState != RunStateRunning {
		return
	}
	t := s.Tuning.Player

	if dir != s.LastKey {
		s.Player.Speed += t.AlternateBonus * s.Player.Balance / t.BalanceMax
		s.Player.Balance = physics.Clamp(s.Player.Balance+t.BalanceRecovery, 0, t.BalanceMax)
	} else {
		s.Player.Speed -= t.RepeatPenalty
		s.Player.Balance = physics.Clamp(s.Player.Balance-t.BalancePenalty, 0, t.BalanceMax)
	}
	s.clampSpeed()
	s.LastKey = dir

	step := t.Step
	if dir == DirectionLeft {
		step = -step
	}
	s.Player.X = physics.Clamp(s.Player.X+step, -1, 1)
}
