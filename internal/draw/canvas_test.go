package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasFillRectScales(t *testing.T) {
	// 10 columns x 5 rows = 10x10 pixels over a 20x20 logical area.
	c := NewScaledCanvas(10, 5, 20, 20)
	c.FillRect(4, 4, 6, 8, Red)

	want := packColor(Red)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 6
			got := c.pixel(x, y)
			if inside && got != want {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
			if !inside && got != 0 {
				t.Fatalf("pixel (%d,%d) unexpectedly filled", x, y)
			}
		}
	}
}

func TestCanvasFillRectClipsAndKeepsThinShapes(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(-10, 1, 100, 0.1, White)

	for x := 0; x < 4; x++ {
		if c.pixel(x, 1) == 0 {
			t.Fatalf("thin rect should cover pixel (%d,1)", x)
		}
		if c.pixel(x, 0) != 0 || c.pixel(x, 2) != 0 {
			t.Fatalf("thin rect leaked outside row 1 at column %d", x)
		}
	}
}

func TestCanvasFillPolygonTriangle(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillPolygon([]Point{{X: 10, Y: 2}, {X: 4, Y: 14}, {X: 16, Y: 14}}, Black)

	if c.pixel(10, 10) == 0 {
		t.Fatalf("triangle interior not filled")
	}
	if c.pixel(1, 10) != 0 || c.pixel(18, 10) != 0 {
		t.Fatalf("triangle exterior filled")
	}
	if c.pixel(10, 16) != 0 {
		t.Fatalf("pixel below triangle filled")
	}
}

func TestCanvasRenderOnlyRepaintsChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(0, 0, 4, 4, Sky)

	var first bytes.Buffer
	c.Render(&first)
	if n := strings.Count(first.String(), string(BlockUpperHalf)); n != 8 {
		t.Fatalf("first render painted %d cells, want 8", n)
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame produced output %q", second.String())
	}

	c.FillRect(0, 0, 1, 1, Red)
	var third bytes.Buffer
	c.Render(&third)
	if n := strings.Count(third.String(), string(BlockUpperHalf)); n != 1 {
		t.Fatalf("changed frame painted %d cells, want 1", n)
	}
	if !strings.Contains(third.String(), "\033[38;2;255;0;0m") {
		t.Fatalf("changed cell missing red foreground: %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	c.Render(&fourth)
	if n := strings.Count(fourth.String(), string(BlockUpperHalf)); n != 8 {
		t.Fatalf("forced redraw painted %d cells, want 8", n)
	}
}

func TestCanvasRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(5, 3)
	c.FillRect(0, 0, 2, 2, White)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[4;6H") {
		t.Fatalf("render should start at row 4 col 6, got %q", buf.String())
	}
}

func TestCanvasRenderBorderOnlyWithOffset(t *testing.T) {
	c := NewScaledCanvas(3, 2, 3, 4)

	var none bytes.Buffer
	c.RenderBorder(&none)
	if none.Len() != 0 {
		t.Fatalf("border drawn without offset: %q", none.String())
	}

	c.SetOffset(2, 2)
	var framed bytes.Buffer
	c.RenderBorder(&framed)
	for _, corner := range []string{"┌", "┐", "└", "┘"} {
		if !strings.Contains(framed.String(), corner) {
			t.Fatalf("border missing %q", corner)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := Sky.Hex(); got != "#aee8ff" {
		t.Fatalf("Sky.Hex() = %q", got)
	}
}
