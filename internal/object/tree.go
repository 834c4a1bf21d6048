package object

import "github.com/tomz197/slalom/internal/draw"

// Tree is scenery beside the piste.
type Tree struct {
	X, Z       float64
	Side       float64 // -1 left of the piste, 1 right
	SideOffset float64 // How far Side pushes the tree out
}

// Recycle moves the tree to depth z at lateral x.
func (t *Tree) Recycle(x, z float64) {
	t.X = x
	t.Z = z
}

// Draw paints the tree as a square standing on its projected base.
func (t *Tree) Draw(ctx DrawContext) {
	p := ctx.Camera.Project(t.X+t.Side*t.SideOffset, t.Z)
	if !ctx.Camera.Visible(p, t.Z) {
		return
	}
	size := ctx.Camera.TreeSize * ctx.Camera.Width * p.Scale
	ctx.Surface.FillRect(p.X-size/2, p.Y-size, size, size, draw.Pine)
}
