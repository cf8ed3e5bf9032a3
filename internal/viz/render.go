package viz

import (
	"math"

	"github.com/san-kum/stickpoint/internal/verlet"
)

// Viewport maps world coordinates onto canvas sub-pixels with a uniform
// scale, centring the world rectangle. World y grows downward, as on screen.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func FitViewport(c *Canvas, worldW, worldH float64) Viewport {
	pw, ph := c.PixelSize()
	scale := math.Min(float64(pw-1)/worldW, float64(ph-1)/worldH)
	return Viewport{
		Scale:   scale,
		OffsetX: (float64(pw-1) - worldW*scale) / 2,
		OffsetY: (float64(ph-1) - worldH*scale) / 2,
	}
}

func (v Viewport) Project(p verlet.Vec2) Pixel {
	return Pixel{
		X: int(math.Round(p.X*v.Scale + v.OffsetX)),
		Y: int(math.Round(p.Y*v.Scale + v.OffsetY)),
	}
}

// RenderFrame draws a frame: stippled polygon fills, then visible sticks,
// then point circles and the world border.
func RenderFrame(c *Canvas, f verlet.Frame) {
	c.Clear()
	vp := FitViewport(c, f.Width, f.Height)

	for _, poly := range f.Polygons {
		pts := make([]Pixel, len(poly.Vertices))
		for i, v := range poly.Vertices {
			pts[i] = vp.Project(v)
		}
		c.FillPolygon(pts, true)
	}

	for _, p := range f.Points {
		centre := vp.Project(verlet.Vec2{X: p.X, Y: p.Y})
		c.DrawCircle(centre.X, centre.Y, int(math.Round(p.Radius*vp.Scale)))
	}

	for _, s := range f.Sticks {
		if s.Hidden {
			continue
		}
		a, b := vp.Project(s.A), vp.Project(s.B)
		c.DrawLine(a.X, a.Y, b.X, b.Y)
	}

	tl := vp.Project(verlet.Vec2{})
	br := vp.Project(verlet.Vec2{X: f.Width, Y: f.Height})
	c.DrawPolygon([]Pixel{tl, {br.X, tl.Y}, br, {tl.X, br.Y}})
}
