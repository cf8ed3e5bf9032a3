package verlet

import "image/color"

// Frame is a read-only copy of everything a renderer needs for one frame.
type Frame struct {
	Tick     int
	Width    float64
	Height   float64
	Points   []PointState
	Sticks   []Segment
	Polygons []Shape
}

type PointState struct {
	X, Y   float64
	Radius float64
	Pinned bool
}

type Segment struct {
	A, B   Vec2
	Hidden bool
	Spring bool
}

type Shape struct {
	Vertices []Vec2
	Color    color.NRGBA
}

// Frame snapshots the current positions. The result shares no memory with
// the world.
func (w *World) Frame() Frame {
	f := Frame{
		Tick:     w.tick,
		Width:    w.params.Width,
		Height:   w.params.Height,
		Points:   make([]PointState, len(w.points)),
		Sticks:   make([]Segment, len(w.sticks)),
		Polygons: make([]Shape, len(w.polygons)),
	}

	for i, p := range w.points {
		f.Points[i] = PointState{X: p.X, Y: p.Y, Radius: p.Radius, Pinned: p.Pinned}
	}
	for i, s := range w.sticks {
		f.Sticks[i] = Segment{
			A:      w.points[s.P0].Pos(),
			B:      w.points[s.P1].Pos(),
			Hidden: s.Hidden,
			Spring: s.IsSpring(),
		}
	}
	for i, poly := range w.polygons {
		verts := make([]Vec2, len(poly.Vertices))
		for j, id := range poly.Vertices {
			verts[j] = w.points[id].Pos()
		}
		f.Polygons[i] = Shape{Vertices: verts, Color: poly.Color}
	}

	return f
}

// Positions flattens point coordinates as x0, y0, x1, y1, ...
func (f Frame) Positions() []float64 {
	out := make([]float64, 0, len(f.Points)*2)
	for _, p := range f.Points {
		out = append(out, p.X, p.Y)
	}
	return out
}
