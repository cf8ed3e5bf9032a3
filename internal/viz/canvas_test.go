package viz

import (
	"strings"
	"testing"
)

func countSet(c *Canvas) int {
	n := 0
	pw, ph := c.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.PixelSize(); w != 8 || h != 8 {
		t.Fatalf("pixel size %dx%d", w, h)
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("pixel not set")
	}
	// column 1, row 1, sub-pixel (1, 1) is dot 5
	if got := c.Grid[1][1]; got != 0x2800+0x10 {
		t.Errorf("rune %U", got)
	}

	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != 0x2800 {
		t.Error("pixel not cleared")
	}

	// out of range writes are ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	if countSet(c) != 0 {
		t.Error("out of range pixel was drawn")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 2, 0, 2, 7, 8},
		{"diagonal", 0, 0, 7, 7, 8},
		{"single", 3, 3, 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 4)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
			if got := countSet(c); got != tt.want {
				t.Errorf("lit %d pixels, want %d", got, tt.want)
			}
			if !c.IsSet(tt.x0, tt.y0) || !c.IsSet(tt.x1, tt.y1) {
				t.Error("endpoints not drawn")
			}
		})
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)
	for _, p := range []Pixel{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		if !c.IsSet(p.X, p.Y) {
			t.Errorf("missing %v", p)
		}
	}
	if c.IsSet(10, 10) {
		t.Error("circle outline should not fill the centre")
	}

	dot := NewCanvas(2, 1)
	dot.DrawCircle(1, 1, 0)
	if countSet(dot) != 1 {
		t.Errorf("zero radius lit %d pixels", countSet(dot))
	}
}

func TestCanvasFillPolygon(t *testing.T) {
	square := []Pixel{{0, 0}, {4, 0}, {4, 4}, {0, 4}}

	c := NewCanvas(10, 4)
	c.FillPolygon(square, false)
	if got := countSet(c); got != 16 {
		t.Errorf("solid fill lit %d pixels, want 16", got)
	}

	c.Clear()
	c.FillPolygon(square, true)
	if got := countSet(c); got != 8 {
		t.Errorf("stippled fill lit %d pixels, want 8", got)
	}

	c.Clear()
	c.FillPolygon(square[:2], false)
	if countSet(c) != 0 {
		t.Error("degenerate polygon should draw nothing")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "⠀⠀⠀" {
		t.Errorf("blank row %q", lines[0])
	}
}
