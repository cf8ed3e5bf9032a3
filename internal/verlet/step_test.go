package verlet

import (
	"math"
	"testing"
)

func TestStepAdvancesTick(t *testing.T) {
	w := newTestWorld(t, DefaultParams())
	mustPoint(t, w, PointConfig{X: 400, Y: 100})

	w.Step()
	if w.Tick() != 1 {
		t.Fatalf("tick after 1 step = %d, want 1", w.Tick())
	}
	y1 := w.Point(0).Y
	if y1 <= 100 {
		t.Fatalf("expected gravity to pull the point down, got y=%f", y1)
	}

	for i := 0; i < 4; i++ {
		w.Step()
	}
	if w.Tick() != 5 {
		t.Fatalf("tick after 5 steps = %d, want 5", w.Tick())
	}
	if y2 := w.Point(0).Y; y2 <= y1 {
		t.Fatalf("expected y to keep increasing: y1=%f y2=%f", y1, y2)
	}
}

func TestStep_SpringPair(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 0
	p.Friction = 1
	w := newTestWorld(t, p)
	a := mustPoint(t, w, PointConfig{X: 100, Y: 100})
	b := mustPoint(t, w, PointConfig{X: 120, Y: 100})
	if _, err := w.AddStick(StickConfig{P0: a, P1: b, Stiffness: 0.1, RestLength: 10}); err != nil {
		t.Fatal(err)
	}

	w.Step()

	if got := w.Point(a).X; math.Abs(got-100.5) > 1e-12 {
		t.Errorf("p0.X = %v, want 100.5 (one spring push per step)", got)
	}
	if got := w.Point(b).X; math.Abs(got-119.5) > 1e-12 {
		t.Errorf("p1.X = %v, want 119.5 (one spring push per step)", got)
	}
}

func TestStep_FallingPointLandsOnFloor(t *testing.T) {
	w := newTestWorld(t, DefaultParams())
	id := mustPoint(t, w, PointConfig{X: 400, Y: 500, Radius: 10})

	for i := 0; i < 400; i++ {
		w.Step()
		if p := w.Point(id); p.Y > 590+1e-9 {
			t.Fatalf("tick %d: point below floor at y=%v", w.Tick(), p.Y)
		}
	}
}

func TestFrame(t *testing.T) {
	w := newTestWorld(t, DefaultParams())
	a := mustPoint(t, w, PointConfig{X: 100, Y: 100, Pinned: true, Radius: 2})
	b := mustPoint(t, w, PointConfig{X: 200, Y: 100})
	c := mustPoint(t, w, PointConfig{X: 200, Y: 200})
	w.AddStick(StickConfig{P0: a, P1: b})
	w.AddStick(StickConfig{P0: b, P1: c, Hidden: true, Stiffness: 0.3})
	w.AddPolygon(PolygonConfig{Vertices: []PointID{a, b, c}, Color: RGB(1, 2, 3)})

	f := w.Frame()
	if f.Tick != 0 || f.Width != 800 || f.Height != 600 {
		t.Errorf("frame header = %d %v %v", f.Tick, f.Width, f.Height)
	}
	if len(f.Points) != 3 || len(f.Sticks) != 2 || len(f.Polygons) != 1 {
		t.Fatalf("frame sizes = %d %d %d", len(f.Points), len(f.Sticks), len(f.Polygons))
	}
	if !f.Points[0].Pinned || f.Points[0].Radius != 2 {
		t.Errorf("point 0 = %+v", f.Points[0])
	}
	if f.Sticks[0].Hidden || f.Sticks[0].Spring || !f.Sticks[1].Hidden || !f.Sticks[1].Spring {
		t.Errorf("stick flags = %+v", f.Sticks)
	}
	if f.Polygons[0].Vertices[2] != (Vec2{200, 200}) {
		t.Errorf("polygon vertex = %+v", f.Polygons[0].Vertices[2])
	}

	pos := f.Positions()
	if len(pos) != 6 || pos[2] != 200 || pos[3] != 100 {
		t.Errorf("Positions() = %v", pos)
	}

	w.Step()
	if f.Points[1].Y != 100 || f.Sticks[0].B.Y != 100 {
		t.Error("frame shares memory with the world")
	}
}

func TestMeasurements(t *testing.T) {
	w := newTestWorld(t, DefaultParams())
	a := mustPoint(t, w, PointConfig{X: 100, Y: 100, VX: 3, VY: 4})
	b := mustPoint(t, w, PointConfig{X: 150, Y: 100, VX: 100, Pinned: true})
	mustPoint(t, w, PointConfig{X: 900, Y: 100})
	w.AddStick(StickConfig{P0: a, P1: b, RestLength: 40})
	w.AddStick(StickConfig{P0: a, P1: b, RestLength: 10, Stiffness: 1})

	if got := w.KineticEnergy(); got != 12.5 {
		t.Errorf("KineticEnergy() = %v, want 12.5", got)
	}
	if got := w.MaxStrain(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("MaxStrain() = %v, want 0.25", got)
	}
	if w.Contained() {
		t.Error("point at x=900 reported as contained")
	}
	if c := w.Centroid(); math.Abs(c.X-383.3333333333) > 1e-6 || c.Y != 100 {
		t.Errorf("Centroid() = %+v", c)
	}
}
