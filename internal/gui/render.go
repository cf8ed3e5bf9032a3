package gui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/stickpoint/internal/verlet"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// drawFrame paints polygons first, then filled points, then visible sticks,
// all in black except the polygon fills.
func drawFrame(screen *ebiten.Image, f verlet.Frame) {
	for _, poly := range f.Polygons {
		fillPolygon(screen, poly)
	}

	for _, p := range f.Points {
		if p.Radius <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), color.Black, true)
	}

	for _, s := range f.Sticks {
		if s.Hidden {
			continue
		}
		vector.StrokeLine(screen, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), 1, color.Black, true)
	}
}

func fillPolygon(screen *ebiten.Image, s verlet.Shape) {
	if len(s.Vertices) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(s.Vertices[0].X), float32(s.Vertices[0].Y))
	for _, v := range s.Vertices[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(s.Color.R)/255, float32(s.Color.G)/255, float32(s.Color.B)/255, float32(s.Color.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.NonZero,
	}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}
