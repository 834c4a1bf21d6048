package object

import "github.com/tomz197/slalom/internal/draw"

// Gate is a scored obstacle: pass it within tolerance for a speed bonus.
type Gate struct {
	X, Z      float64
	HalfWidth float64 // Lateral half width, the hit tolerance
	Hit       bool    // Passed cleanly this lap
	Judged    bool    // Already scored (hit or missed) this lap
}

// Recycle moves the gate to depth z at lateral x and clears its lap flags.
func (g *Gate) Recycle(x, z float64) {
	g.X = x
	g.Z = z
	g.Hit = false
	g.Judged = false
}

// Draw paints the gate as a red bar. Hit gates are no longer shown.
func (g *Gate) Draw(ctx DrawContext) {
	if g.Hit {
		return
	}
	p := ctx.Camera.Project(g.X, g.Z)
	if !ctx.Camera.Visible(p, g.Z) {
		return
	}
	width := 2 * g.HalfWidth * ctx.Camera.Width * ctx.Camera.LateralSpan * p.Scale
	thickness := ctx.Camera.GateThickness * ctx.Camera.Height * p.Scale
	ctx.Surface.FillRect(p.X-width/2, p.Y-thickness, width, thickness, draw.Red)
}
