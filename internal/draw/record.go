package draw

import "math"

// Op kinds emitted by Recorder.
const (
	OpClear = "clear"
	OpRect  = "rect"
	OpPoly  = "poly"
)

// Op is one recorded drawing call. P holds x,y,w,h for rects and
// x0,y0,x1,y1,... for polygons.
type Op struct {
	Kind  string    `json:"k"`
	Color string    `json:"c,omitempty"`
	P     []float64 `json:"p,omitempty"`
}

// Recorder is a Surface that keeps the drawing calls of one frame so they can be
// replayed elsewhere, e.g. on a browser canvas.
type Recorder struct {
	width, height float64
	ops           []Op
}

// Ensure Recorder satisfies Surface.
var _ Surface = (*Recorder)(nil)

// NewRecorder creates a recorder for a surface of the given logical size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// Size returns the logical dimensions.
func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

// Clear drops everything recorded so far and records a clear.
func (r *Recorder) Clear() {
	clear(r.ops)
	r.ops = append(r.ops[:0], Op{Kind: OpClear})
}

// FillRect records a rectangle.
func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r.ops = append(r.ops, Op{Kind: OpRect, Color: c.Hex(), P: []float64{round1(x), round1(y), round1(w), round1(h)}})
}

// FillPolygon records a polygon.
func (r *Recorder) FillPolygon(points []Point, c Color) {
	if len(points) < 3 {
		return
	}
	p := make([]float64, 0, len(points)*2)
	for _, pt := range points {
		p = append(p, round1(pt.X), round1(pt.Y))
	}
	r.ops = append(r.ops, Op{Kind: OpPoly, Color: c.Hex(), P: p})
}

// Ops returns the calls recorded since the last Clear. The slice is reused by the next Clear.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// round1 keeps one decimal; sub-pixel precision is wasted on the wire.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
