package loop

import (
	"time"

	"github.com/tomz197/slalom/internal/object"
	"github.com/tomz197/slalom/internal/physics"
)

// Update advances the run by dt. It is a no-op once the run is finished.
func (s *State) Update(dt time.Duration) {
	if s.RunState == RunStateFinished {
		return
	}
	if dt < 0 {
		dt = 0
	}

	s.clampSpeed()
	s.Elapsed += dt

	advance := s.Player.Speed * dt.Seconds() * s.Tuning.Player.ScrollRate
	for _, g := range s.Gates {
		prev := g.Z
		g.Z -= advance
		s.judgeGate(g, prev)
	}
	for _, t := range s.Trees {
		t.Z -= advance
	}

	s.recycleGates()
	s.recycleTrees()

	if s.FinalGate().Z < s.Tuning.Gates.FinishDepth {
		s.finish()
	}

	s.clampSpeed()
}

// judgeGate scores a gate the first time it passes through the capture window.
func (s *State) judgeGate(g *object.Gate, prevZ float64) {
	t := s.Tuning.Gates
	if g.Judged || !physics.SweptThrough(prevZ, g.Z, t.CaptureNear, t.CaptureFar) {
		return
	}
	g.Judged = true
	if physics.WithinTolerance(g.X, s.Player.X, t.Tolerance) {
		g.Hit = true
		s.Player.Speed += t.HitBonus
	} else {
		s.Player.Speed -= t.MissPenalty
	}
}

// recycleGates moves every gate that has passed the skier to the back of the course.
// The final gate is never recycled: passing it ends the run.
func (s *State) recycleGates() {
	t := s.Tuning.Gates
	for i, g := range s.Gates {
		if g.Z >= 0 || i == s.finalGate {
			continue
		}
		g.Recycle(s.randomLateral(t.LateralRange), s.Gates[s.gateTail].Z+t.Spacing)
		s.gateTail = i
	}
}

// recycleTrees moves every tree that has passed the skier to the back of the row.
func (s *State) recycleTrees() {
	t := s.Tuning.Trees
	for i, tree := range s.Trees {
		if tree.Z >= 0 {
			continue
		}
		tree.Recycle(s.randomLateral(t.LateralRange), s.Trees[s.treeTail].Z+t.Spacing)
		s.treeTail = i
	}
}

// finish ends the run and freezes the clock.
func (s *State) finish() {
	s.RunState = RunStateFinished
	s.Hint = HintFinish
	if s.OnFinish != nil {
		s.OnFinish(s.Elapsed)
	}
}

func (s *State) clampSpeed() {
	if s.Player.Speed < 0 {
		s.Player.Speed = 0
	}
}
