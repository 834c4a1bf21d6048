// Package loop provides the skiing game: state, per-frame update, controls and rendering.
package loop

import (
	"time"

	"github.com/tomz197/slalom/internal/draw"
)

// Clock turns frame timestamps into frame deltas.
type Clock struct {
	last    time.Duration
	started bool
}

// Tick records a frame timestamp and returns the time since the previous one.
// The first tick after construction or Reset returns 0, as does a timestamp
// that went backwards.
func (c *Clock) Tick(now time.Duration) time.Duration {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now - c.last
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset forgets the previous timestamp.
func (c *Clock) Reset() {
	c.started = false
	c.last = 0
}

// Step is the per-frame update: derive dt from the timestamp and advance the game.
func (s *State) Step(now time.Duration) {
	s.Update(s.Clock.Tick(now))
}

// Frame is the whole per-frame callback: Step, then Draw, then the UI labels.
func (s *State) Frame(now time.Duration, surface draw.Surface) Labels {
	s.Step(now)
	s.Draw(surface)
	return s.Labels()
}
