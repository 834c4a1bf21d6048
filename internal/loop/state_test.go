package loop

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/slalom/internal/draw"
	"github.com/tomz197/slalom/internal/loop/config"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(config.DefaultTuning(), rand.New(rand.NewSource(1)))
}

// isolateGate parks every gate except i far down the course.
func isolateGate(s *State, i int) {
	for j, g := range s.Gates {
		if j != i {
			g.Z = 10000 + float64(j)
		}
	}
}

func TestNewStateLayout(t *testing.T) {
	s := newTestState(t)
	tun := s.Tuning

	if len(s.Gates) != tun.Gates.Count || len(s.Trees) != tun.Trees.Count {
		t.Fatalf("got %d gates %d trees", len(s.Gates), len(s.Trees))
	}
	for i, g := range s.Gates {
		if want := tun.Gates.FirstDepth + float64(i)*tun.Gates.Spacing; g.Z != want {
			t.Fatalf("gate %d depth = %g, want %g", i, g.Z, want)
		}
		if g.X < -tun.Gates.LateralRange || g.X > tun.Gates.LateralRange {
			t.Fatalf("gate %d lateral %g out of range", i, g.X)
		}
		if g.Hit || g.Judged {
			t.Fatalf("gate %d starts flagged", i)
		}
	}
	for i, tr := range s.Trees {
		if want := tun.Trees.FirstDepth + float64(i)*tun.Trees.Spacing; tr.Z != want {
			t.Fatalf("tree %d depth = %g, want %g", i, tr.Z, want)
		}
		if tr.Side != 1 && tr.Side != -1 {
			t.Fatalf("tree %d side = %g", i, tr.Side)
		}
	}
	if s.Player != (Player{Balance: 100}) {
		t.Fatalf("player = %+v", s.Player)
	}
	if s.RunState != RunStateRunning || s.Hint != HintStart || s.LastKey != DirectionNone {
		t.Fatalf("initial state = %v %q %v", s.RunState, s.Hint, s.LastKey)
	}
}

func TestUpdateGateHitAddsBonus(t *testing.T) {
	s := newTestState(t)
	isolateGate(s, 0)
	s.Gates[0].X, s.Gates[0].Z = 0, 135

	s.Update(0)

	if !s.Gates[0].Hit {
		t.Fatalf("aligned gate inside the capture window should be hit")
	}
	if s.Player.Speed != 1.5 {
		t.Fatalf("speed = %g, want 1.5", s.Player.Speed)
	}

	s.Update(0)
	if s.Player.Speed != 1.5 {
		t.Fatalf("gate scored twice: speed = %g", s.Player.Speed)
	}
}

func TestUpdateGateMissAppliesPenaltyAndClamps(t *testing.T) {
	s := newTestState(t)
	isolateGate(s, 0)
	s.Gates[0].X, s.Gates[0].Z = 0.9, 135

	s.Update(0)

	if s.Gates[0].Hit {
		t.Fatalf("misaligned gate should not be hit")
	}
	if !s.Gates[0].Judged {
		t.Fatalf("missed gate should be judged")
	}
	if s.Player.Speed != 0 {
		t.Fatalf("speed = %g, want clamp to 0", s.Player.Speed)
	}

	s2 := newTestState(t)
	isolateGate(s2, 0)
	s2.Gates[0].X, s2.Gates[0].Z = 0.9, 135
	s2.Player.Speed = 5
	s2.Update(0)
	if s2.Player.Speed != 3 {
		t.Fatalf("speed = %g, want 3", s2.Player.Speed)
	}
}

func TestUpdateGateOutsideWindowNotJudged(t *testing.T) {
	s := newTestState(t)
	isolateGate(s, 0)
	s.Gates[0].X, s.Gates[0].Z = 0, 300

	s.Update(0)

	if s.Gates[0].Judged || s.Player.Speed != 0 {
		t.Fatalf("gate outside the window judged: %+v speed %g", s.Gates[0], s.Player.Speed)
	}
}

func TestUpdateJudgesGateSkippedInOneFrame(t *testing.T) {
	s := newTestState(t)
	isolateGate(s, 0)
	s.Gates[0].X, s.Gates[0].Z = 0, 200
	s.Player.Speed = 100

	s.Update(time.Second) // 200 -> 100 jumps over (120, 150)

	if !s.Gates[0].Hit {
		t.Fatalf("gate swept through the window should be hit")
	}
	if s.Player.Speed != 101.5 {
		t.Fatalf("speed = %g, want 101.5", s.Player.Speed)
	}
}

func TestUpdateMovesObjectsBySpeed(t *testing.T) {
	s := newTestState(t)
	s.Player.Speed = 10
	gateZ, treeZ := s.Gates[3].Z, s.Trees[3].Z

	s.Update(500 * time.Millisecond)

	if s.Gates[3].Z != gateZ-5 || s.Trees[3].Z != treeZ-5 {
		t.Fatalf("gate %g tree %g, want both moved by 5", s.Gates[3].Z, s.Trees[3].Z)
	}
	if s.Elapsed != 500*time.Millisecond {
		t.Fatalf("elapsed = %v", s.Elapsed)
	}
}

func TestRecycleGoesBehindLastObject(t *testing.T) {
	s := newTestState(t)
	tun := s.Tuning.Gates
	last := s.Gates[len(s.Gates)-1].Z

	s.Gates[0].Z = -1
	s.Gates[0].Hit, s.Gates[0].Judged = true, true
	s.Update(0)

	g := s.Gates[0]
	if g.Z != last+tun.Spacing {
		t.Fatalf("recycled depth = %g, want %g", g.Z, last+tun.Spacing)
	}
	if g.X < -tun.LateralRange || g.X > tun.LateralRange {
		t.Fatalf("recycled lateral %g out of range", g.X)
	}
	if g.Hit || g.Judged {
		t.Fatalf("recycled gate keeps flags: %+v", g)
	}

	// The next one queues behind the gate just recycled.
	s.Gates[1].Z = -1
	s.Update(0)
	if s.Gates[1].Z != g.Z+tun.Spacing {
		t.Fatalf("second recycle depth = %g, want %g", s.Gates[1].Z, g.Z+tun.Spacing)
	}
}

func TestRecycleTrees(t *testing.T) {
	s := newTestState(t)
	tun := s.Tuning.Trees
	last := s.Trees[len(s.Trees)-1].Z

	s.Trees[0].Z = -0.5
	s.Update(0)

	if s.Trees[0].Z != last+tun.Spacing {
		t.Fatalf("recycled tree depth = %g, want %g", s.Trees[0].Z, last+tun.Spacing)
	}
	if s.Trees[0].X < -tun.LateralRange || s.Trees[0].X > tun.LateralRange {
		t.Fatalf("recycled tree lateral %g out of range", s.Trees[0].X)
	}
}

func TestFinishWhenFinalGateCrossesThreshold(t *testing.T) {
	s := newTestState(t)
	var finishedWith []time.Duration
	s.OnFinish = func(d time.Duration) { finishedWith = append(finishedWith, d) }

	s.Update(2 * time.Second)
	s.FinalGate().Z = s.Tuning.Gates.FinishDepth - 1
	s.Update(time.Second)

	if s.RunState != RunStateFinished {
		t.Fatalf("run state = %v, want finished", s.RunState)
	}
	if s.Hint != HintFinish {
		t.Fatalf("hint = %q", s.Hint)
	}
	if len(finishedWith) != 1 || finishedWith[0] != 3*time.Second {
		t.Fatalf("OnFinish calls = %v", finishedWith)
	}

	s.Update(time.Second)
	if len(finishedWith) != 1 {
		t.Fatalf("OnFinish called again")
	}
}

func TestUpdateAfterFinishIsNoOp(t *testing.T) {
	s := newTestState(t)
	s.Player.Speed = 7
	s.FinalGate().Z = 0
	s.Update(time.Second)
	if !s.Finished() {
		t.Fatalf("expected finished")
	}

	player, elapsed := s.Player, s.Elapsed
	depths := make([]float64, len(s.Gates))
	for i, g := range s.Gates {
		depths[i] = g.Z
	}

	for i := 0; i < 10; i++ {
		s.Update(time.Second)
		s.HandleKey("a")
		s.HandleKey("d")
	}

	if s.Player != player || s.Elapsed != elapsed {
		t.Fatalf("state changed after finish: %+v %v", s.Player, s.Elapsed)
	}
	for i, g := range s.Gates {
		if g.Z != depths[i] {
			t.Fatalf("gate %d moved after finish", i)
		}
	}
}

func TestSpeedNeverNegative(t *testing.T) {
	s := newTestState(t)
	rng := rand.New(rand.NewSource(42))
	keys := []string{"a", "d", "ArrowLeft", "ArrowRight", "r"}

	for i := 0; i < 5000; i++ {
		s.HandleKey(keys[rng.Intn(len(keys))])
		if s.Player.Speed < 0 {
			t.Fatalf("speed negative after key: %g", s.Player.Speed)
		}
		s.Update(time.Duration(rng.Intn(50)) * time.Millisecond)
		if s.Player.Speed < 0 {
			t.Fatalf("speed negative after update: %g", s.Player.Speed)
		}
		if s.Player.X < -1 || s.Player.X > 1 {
			t.Fatalf("player lateral out of bounds: %g", s.Player.X)
		}
	}
}

func TestHitFlagOnlyClearsOnRecycleOrRestart(t *testing.T) {
	s := newTestState(t)
	isolateGate(s, 2)
	s.Gates[2].X, s.Gates[2].Z = 0, 140
	s.Update(0)
	if !s.Gates[2].Hit {
		t.Fatalf("expected hit")
	}

	s.Player.Speed = 10
	for i := 0; i < 5; i++ {
		s.Update(100 * time.Millisecond)
		if !s.Gates[2].Hit {
			t.Fatalf("hit flag cleared while gate still ahead (z=%g)", s.Gates[2].Z)
		}
	}
}

func TestFrameFirstCallHasZeroDelta(t *testing.T) {
	s := newTestState(t)
	s.Player.Speed = 10
	z := s.Gates[0].Z
	rec := draw.NewRecorder(800, 600)

	labels := s.Frame(5*time.Second, rec)

	if s.Gates[0].Z != z {
		t.Fatalf("first frame moved gates")
	}
	if labels.Time != "Time: 0.00" || labels.Speed != "Speed: 10" || labels.Hint != HintStart {
		t.Fatalf("labels = %+v", labels)
	}
	ops := rec.Ops()
	if len(ops) < 2 || ops[0].Kind != draw.OpClear || ops[1].Color != draw.Sky.Hex() {
		t.Fatalf("frame should start with clear and background: %+v", ops[:min(len(ops), 2)])
	}

	s.Frame(5*time.Second+250*time.Millisecond, rec)
	if s.Gates[0].Z != z-2.5 {
		t.Fatalf("gate depth = %g, want %g", s.Gates[0].Z, z-2.5)
	}
}

func TestDrawDoesNotMutate(t *testing.T) {
	s := newTestState(t)
	s.Player.Speed = 3
	before := *s.Gates[0]
	s.Draw(draw.NewRecorder(800, 600))
	if *s.Gates[0] != before || s.Player.Speed != 3 {
		t.Fatalf("Draw changed state")
	}
}

func TestLabelsFormatting(t *testing.T) {
	s := newTestState(t)
	s.Elapsed = 1234 * time.Millisecond
	s.Player.Speed = 2.6
	s.Player.Balance = 90

	got := s.Labels()
	want := Labels{Time: "Time: 1.23", Speed: "Speed: 3", Hint: HintStart, Balance: "Balance: 90"}
	if got != want {
		t.Fatalf("Labels = %+v, want %+v", got, want)
	}
}

func TestClock(t *testing.T) {
	var c Clock
	if dt := c.Tick(100 * time.Millisecond); dt != 0 {
		t.Fatalf("first tick = %v, want 0", dt)
	}
	if dt := c.Tick(116 * time.Millisecond); dt != 16*time.Millisecond {
		t.Fatalf("second tick = %v", dt)
	}
	if dt := c.Tick(50 * time.Millisecond); dt != 0 {
		t.Fatalf("backwards tick = %v, want 0", dt)
	}
	c.Reset()
	if dt := c.Tick(time.Hour); dt != 0 {
		t.Fatalf("tick after reset = %v, want 0", dt)
	}
}

func TestRunStateString(t *testing.T) {
	if RunStateRunning.String() != "running" || RunStateFinished.String() != "finished" {
		t.Fatalf("unexpected RunState strings")
	}
}
