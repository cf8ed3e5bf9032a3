package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/stickpoint/internal/verlet"
)

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			s := GetPreset(name)
			if s == nil {
				t.Fatal("preset missing")
			}
			w, err := s.Build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if w.NumPoints() != len(s.Points) {
				t.Errorf("points = %d, want %d", w.NumPoints(), len(s.Points))
			}
			if w.NumSticks() != len(s.Sticks) {
				t.Errorf("sticks = %d, want %d", w.NumSticks(), len(s.Sticks))
			}
			if Describe(name) == "" {
				t.Error("missing description")
			}
		})
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
	if _, err := MustPreset("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestGetPresetIsFresh(t *testing.T) {
	a := GetPreset("square")
	a.Points[1].X = 999
	b := GetPreset("square")
	if b.Points[1].X != 100 {
		t.Errorf("preset was mutated through a previous copy: %v", b.Points[1].X)
	}
}

func TestSquareMatchesClassicDemo(t *testing.T) {
	w, err := DefaultScene().Build()
	if err != nil {
		t.Fatal(err)
	}
	if !w.Point(0).Pinned {
		t.Error("top-left corner should be pinned")
	}
	diag := w.Stick(4)
	if !diag.Hidden || !diag.IsSpring() {
		t.Errorf("diagonal = %+v, want hidden spring", diag)
	}
	if got := w.Polygon(0).Color; got.R != 255 || got.G != 0 || got.B != 255 || got.A != 255 {
		t.Errorf("polygon color = %v", got)
	}
	p := w.Params()
	if p.Gravity != 0.5 || p.Friction != 0.999 || p.WallBounce != 0.9 {
		t.Errorf("params = %+v", p)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
name: tri
world:
  gravity: 0.2
points:
  - {x: 10, y: 10, pinned: true}
  - {x: 50, y: 10, radius: 3}
  - {x: 30, y: 40, vx: 1}
sticks:
  - {p0: 0, p1: 1}
  - {p0: 1, p1: 2, stiffness: 0.3}
  - {p0: 2, p1: 0, hidden: true, rest_length: 20}
polygons:
  - vertices: [0, 1, 2]
    color: {r: 10, g: 20, b: 30}
  - vertices: [0, 1, 2]
    color: {r: 10, g: 20, b: 30, a: 0}
ticks: 50
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if s.World.Gravity != 0.2 {
		t.Errorf("gravity = %v", s.World.Gravity)
	}
	if s.World.Width != DefaultWidth || s.World.Friction != DefaultFriction {
		t.Errorf("defaults not kept: %+v", s.World)
	}
	if s.Ticks != 50 {
		t.Errorf("ticks = %d", s.Ticks)
	}

	w, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := w.Stick(2).RestLength; got != 20 {
		t.Errorf("explicit rest length = %v", got)
	}
	if got := w.Stick(0).RestLength; got != 40 {
		t.Errorf("computed rest length = %v", got)
	}
	if got := w.Polygon(0).Color.A; got != 255 {
		t.Errorf("missing alpha = %d, want 255", got)
	}
	if got := w.Polygon(1).Color.A; got != 0 {
		t.Errorf("explicit alpha = %d, want 0", got)
	}
	if vx, _ := w.Point(2).Velocity(); vx != 1 {
		t.Errorf("initial vx = %v", vx)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "points: [\n"},
		{"negative ticks", "ticks: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Scene)
		want   error
	}{
		{"unknown point", func(s *Scene) { s.Sticks[0].P1 = 42 }, verlet.ErrUnknownPoint},
		{"self stick", func(s *Scene) { s.Sticks[0].P1 = s.Sticks[0].P0 }, verlet.ErrSelfStick},
		{"negative stiffness", func(s *Scene) { s.Sticks[0].Stiffness = -1 }, verlet.ErrNegativeStiffness},
		{"negative radius", func(s *Scene) { s.Points[1].Radius = -2 }, verlet.ErrNegativeRadius},
		{"zero width", func(s *Scene) { s.World.Width = 0 }, verlet.ErrInvalidParams},
		{"short polygon", func(s *Scene) { s.Polygons[0].Vertices = []int{0, 1} }, verlet.ErrPolygonTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Square()
			tt.modify(s)
			_, err := s.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	want := Cloth(3, 3, 100, 100, 10)
	want.Jitter = JitterConfig{Amplitude: 0.5, Seed: 7}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Points) != len(want.Points) || len(got.Sticks) != len(want.Sticks) {
		t.Fatalf("got %d points %d sticks", len(got.Points), len(got.Sticks))
	}
	if got.Polygons[0].Color.NRGBA() != want.Polygons[0].Color.NRGBA() {
		t.Errorf("color = %v", got.Polygons[0].Color.NRGBA())
	}
	if got.Jitter != want.Jitter {
		t.Errorf("jitter = %+v", got.Jitter)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestSetGet(t *testing.T) {
	s := Square()
	for _, name := range Params {
		if err := s.Set(name, 0.25); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
		got, err := s.Get(name)
		if err != nil || got != 0.25 {
			t.Errorf("get %s = %v, %v", name, got, err)
		}
	}
	if err := s.Set("mass", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}

}

func TestSetStiffness(t *testing.T) {
	r := RigidSquare()
	if err := r.Set("stiffness", 0.5); err == nil {
		t.Error("expected error setting stiffness on an all-rigid scene")
	}
	if _, err := r.Get("stiffness"); err == nil {
		t.Error("expected error getting stiffness of an all-rigid scene")
	}
	for i, st := range r.Sticks {
		if st.Stiffness != 0 {
			t.Errorf("rigid stick %d became a spring", i)
		}
	}

	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0},
		{"negative", -0.1},
		{"nan", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Square()
			if err := s.Set("stiffness", tt.value); err == nil {
				t.Fatalf("expected error for stiffness %v", tt.value)
			}
			got, err := s.Get("stiffness")
			if err != nil || got != 0.1 {
				t.Errorf("stiffness after rejected set = %v, %v; want 0.1", got, err)
			}
			if err := s.Set("stiffness", 0.2); err != nil {
				t.Fatal(err)
			}
			if got, _ := s.Get("stiffness"); got != 0.2 {
				t.Errorf("stiffness = %v, want 0.2", got)
			}
		})
	}
}

func TestClone(t *testing.T) {
	a := Square()
	b := a.Clone()
	b.Points[0].X = 1
	b.Polygons[0].Vertices[0] = 3
	if a.Points[0].X != 100 || a.Polygons[0].Vertices[0] != 0 {
		t.Error("clone aliases the original")
	}
}

func TestGenerators(t *testing.T) {
	rope := Rope(5, 10, 10, 20)
	if len(rope.Points) != 5 || len(rope.Sticks) != 4 {
		t.Errorf("rope: %d points %d sticks", len(rope.Points), len(rope.Sticks))
	}
	if !rope.Points[0].Pinned || rope.Points[4].Pinned {
		t.Error("rope should be pinned at its first point only")
	}

	cloth := Cloth(4, 3, 0, 0, 10)
	if len(cloth.Points) != 12 {
		t.Errorf("cloth points = %d", len(cloth.Points))
	}
	// 3 rows of 3 horizontal + 4 columns of 2 vertical
	if len(cloth.Sticks) != 17 {
		t.Errorf("cloth sticks = %d", len(cloth.Sticks))
	}
	// perimeter of a 4x3 grid
	if got := len(cloth.Polygons[0].Vertices); got != 10 {
		t.Errorf("outline = %d vertices", got)
	}
}

func TestJitter(t *testing.T) {
	build := func(seed int64) *verlet.World {
		s := Rope(6, 100, 100, 30)
		s.Jitter = JitterConfig{Amplitude: 2, Seed: seed}
		w, err := s.Build()
		if err != nil {
			t.Fatal(err)
		}
		return w
	}

	a, b := build(3), build(3)
	for i := 0; i < a.NumPoints(); i++ {
		id := verlet.PointID(i)
		if a.Point(id) != b.Point(id) {
			t.Fatalf("point %d differs for equal seeds", i)
		}
	}
	if vx, vy := a.Point(0).Velocity(); vx != 0 || vy != 0 {
		t.Errorf("pinned point got jitter (%v, %v)", vx, vy)
	}

	moved := false
	for i := 1; i < a.NumPoints(); i++ {
		vx, vy := a.Point(verlet.PointID(i)).Velocity()
		if vx != 0 || vy != 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("jitter had no effect")
	}
}

func TestSquareGeometry(t *testing.T) {
	s := Square()
	if len(s.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(s.Points))
	}
	if !s.Points[0].Pinned {
		t.Error("top-left corner should be pinned")
	}
	for i, p := range s.Points {
		if p.X != 100 && p.X != 200 || p.Y != 100 && p.Y != 200 {
			t.Errorf("point %d at (%v, %v) is off the 100x100 box", i, p.X, p.Y)
		}
	}
	for i, st := range s.Sticks {
		if st.Stiffness != 0.1 {
			t.Errorf("stick %d stiffness = %v, want 0.1", i, st.Stiffness)
		}
	}
}
