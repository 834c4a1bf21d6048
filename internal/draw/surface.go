// Package draw provides the drawing surfaces the game renders onto:
// a half-block terminal canvas and a recorder for remote clients.
package draw

import "fmt"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is an opaque 24-bit colour.
type Color struct {
	R, G, B uint8
}

// Palette used by the slope.
var (
	Sky   = Color{R: 0xae, G: 0xe8, B: 0xff}
	Pine  = Color{R: 0x0a, G: 0x7b, B: 0x2b}
	Red   = Color{R: 0xff, G: 0x00, B: 0x00}
	White = Color{R: 0xff, G: 0xff, B: 0xff}
	Black = Color{R: 0x00, G: 0x00, B: 0x00}
)

// Hex returns the colour in #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Surface is a fixed-size 2D drawing target in logical coordinates.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height float64)
	// Clear erases the whole surface.
	Clear()
	// FillRect paints an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c Color)
	// FillPolygon paints a closed polygon.
	FillPolygon(points []Point, c Color)
}
