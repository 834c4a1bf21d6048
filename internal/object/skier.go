package object

import "github.com/tomz197/slalom/internal/draw"

// Skier is the player marker, a triangle at a fixed depth.
type Skier struct {
	X, Z float64
}

// Draw paints the skier. Its size does not depend on depth.
func (s Skier) Draw(ctx DrawContext) {
	p := ctx.Camera.Project(s.X, s.Z)
	size := ctx.Camera.SkierSize * ctx.Camera.Width
	ctx.Surface.FillPolygon([]draw.Point{
		{X: p.X, Y: p.Y - size},
		{X: p.X - size/2, Y: p.Y + size/2},
		{X: p.X + size/2, Y: p.Y + size/2},
	}, draw.Black)
}

// FinishLine spans the full width at depth Z.
type FinishLine struct {
	Z float64
}

// Draw paints the finish line.
func (f FinishLine) Draw(ctx DrawContext) {
	p := ctx.Camera.Project(0, f.Z)
	if !ctx.Camera.Visible(p, f.Z) {
		return
	}
	thickness := ctx.Camera.FinishThickness * ctx.Camera.Height
	ctx.Surface.FillRect(0, p.Y, ctx.Camera.Width, thickness, draw.White)
}
