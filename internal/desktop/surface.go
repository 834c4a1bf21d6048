package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/slalom/internal/draw"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage is an internal sub image of whiteImage.
	// Use whiteSubImage at DrawTriangles instead of whiteImage in order to avoid bleeding edges.
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// imageSurface draws onto an ebiten image.
type imageSurface struct {
	img      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ draw.Surface = (*imageSurface)(nil)

func (s *imageSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *imageSurface) Clear() {
	s.img.Clear()
}

func (s *imageSurface) FillRect(x, y, w, h float64, c draw.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), rgba(c), false)
}

// FillPolygon fills a convex polygon as a triangle fan.
func (s *imageSurface) FillPolygon(points []draw.Point, c draw.Color) {
	if len(points) < 3 {
		return
	}
	r, g, b := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for i, p := range points {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: 1,
		})
		if i >= 2 {
			s.indices = append(s.indices, 0, uint16(i-1), uint16(i))
		}
	}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}

func rgba(c draw.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
