package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/slalom/internal/draw"
	"github.com/tomz197/slalom/internal/object"
)

// Labels are the three UI text lines, plus balance.
type Labels struct {
	Time    string `json:"time"`
	Speed   string `json:"speed"`
	Hint    string `json:"hint"`
	Balance string `json:"balance"`
}

// Labels formats the UI text for the current state.
func (s *State) Labels() Labels {
	return Labels{
		Time:    fmt.Sprintf("Time: %.2f", s.Elapsed.Seconds()),
		Speed:   fmt.Sprintf("Speed: %d", int(math.Round(s.Player.Speed))),
		Hint:    s.Hint,
		Balance: fmt.Sprintf("Balance: %d", int(math.Round(s.Player.Balance))),
	}
}

// Draw renders the slope back to front: background, trees, gates, finish line, skier.
// It does not modify the state.
func (s *State) Draw(surface draw.Surface) {
	ctx := object.DrawContext{
		Surface: surface,
		Camera:  object.NewCamera(surface, s.Tuning.Camera),
	}

	surface.Clear()
	surface.FillRect(0, 0, ctx.Camera.Width, ctx.Camera.Height, draw.Sky)

	drawAll(ctx, s.Trees)
	drawAll(ctx, s.Gates)
	drawAll(ctx, []object.Object{
		object.FinishLine{Z: s.FinalGate().Z + s.Tuning.Gates.FinishOffset},
		object.Skier{X: s.Player.X, Z: s.Tuning.Player.Depth},
	})
}

func drawAll[T object.Object](ctx object.DrawContext, objs []T) {
	for _, o := range objs {
		o.Draw(ctx)
	}
}
