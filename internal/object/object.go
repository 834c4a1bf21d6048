// Package object defines the things on the slope and how they are projected and drawn.
package object

import (
	"github.com/tomz197/slalom/internal/draw"
	"github.com/tomz197/slalom/internal/loop/config"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
	Camera  Camera
}

// Object is anything drawn on the slope.
type Object interface {
	Draw(ctx DrawContext)
}

// Camera projects slope coordinates onto a surface of Width x Height.
// Lateral offsets are in [-1, 1], depth grows away from the viewer.
type Camera struct {
	Width, Height float64
	config.CameraTuning
}

// NewCamera creates a camera for a surface using the given tuning.
func NewCamera(s draw.Surface, t config.CameraTuning) Camera {
	w, h := s.Size()
	return Camera{Width: w, Height: h, CameraTuning: t}
}

// Projection is where a slope point lands on the surface.
type Projection struct {
	X, Y  float64 // Surface coordinates
	Scale float64 // 1/(z*fov + epsilon); sprite sizes scale linearly with it
}

// Project maps lateral offset x at depth z to surface coordinates.
func (c Camera) Project(x, z float64) Projection {
	scale := 1 / (z*c.FOV + c.Epsilon)
	horizon := c.Height * c.Horizon
	return Projection{
		X:     c.Width/2 + x*c.Width*c.LateralSpan*scale,
		Y:     horizon + (c.Height-horizon)*c.Lift*scale,
		Scale: scale,
	}
}

// Visible reports whether something at depth z should be drawn:
// in front of the camera and not closer than the near depth.
func (c Camera) Visible(p Projection, z float64) bool {
	return p.Scale > 0 && z >= c.NearDepth
}
