package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func() *Scene{
	"square":       Square,
	"rigid-square": RigidSquare,
	"spring-pair":  SpringPair,
	"rope":         func() *Scene { return Rope(20, 400, 60, 15) },
	"cloth":        func() *Scene { return Cloth(16, 10, 250, 60, 20) },
	"bouncer":      Bouncer,
}

var presetDescriptions = map[string]string{
	"square":       "springy square hanging from its top-left corner",
	"rigid-square": "the same square with rigid sticks",
	"spring-pair":  "two free points joined by a stretched spring",
	"rope":         "chain of rigid sticks pinned at one end",
	"cloth":        "grid of sticks pinned along the top edge",
	"bouncer":      "rigid triangle thrown against the walls",
}

// GetPreset returns a fresh copy of the named scene, or nil.
func GetPreset(name string) *Scene {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func MustPreset(name string) (*Scene, error) {
	s := GetPreset(name)
	if s == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	return s, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Describe(name string) string {
	return presetDescriptions[name]
}

// Square is a 100x100 box of four points joined by springs, the top-left
// one pinned, braced by a hidden diagonal.
func Square() *Scene {
	s := newScene("square")
	s.Points = []PointConfig{
		{X: 100, Y: 100, Pinned: true},
		{X: 100, Y: 200},
		{X: 200, Y: 200},
		{X: 200, Y: 100},
	}
	s.Sticks = []StickConfig{
		{P0: 0, P1: 1, Stiffness: 0.1},
		{P0: 1, P1: 2, Stiffness: 0.1},
		{P0: 2, P1: 3, Stiffness: 0.1},
		{P0: 3, P1: 0, Stiffness: 0.1},
		{P0: 0, P1: 2, Stiffness: 0.1, Hidden: true},
	}
	s.Polygons = []PolygonConfig{
		{Vertices: []int{0, 1, 2, 3}, Color: RGB(255, 0, 255)},
	}
	return s
}

func RigidSquare() *Scene {
	s := Square()
	s.Name = "rigid-square"
	for i := range s.Sticks {
		s.Sticks[i].Stiffness = 0
	}
	return s
}

func SpringPair() *Scene {
	s := newScene("spring-pair")
	s.World.Gravity = 0
	s.Ticks = 300
	s.Points = []PointConfig{
		{X: 300, Y: 300, Radius: 5},
		{X: 420, Y: 300, Radius: 5},
	}
	s.Sticks = []StickConfig{
		{P0: 0, P1: 1, Stiffness: 0.1, RestLength: 60},
	}
	return s
}

func Bouncer() *Scene {
	s := newScene("bouncer")
	s.Points = []PointConfig{
		{X: 300, Y: 100, Radius: 10, VX: 6},
		{X: 360, Y: 100, Radius: 10, VX: 6},
		{X: 330, Y: 150, Radius: 10, VX: 6},
	}
	s.Sticks = []StickConfig{
		{P0: 0, P1: 1},
		{P0: 1, P1: 2},
		{P0: 2, P1: 0},
	}
	s.Polygons = []PolygonConfig{
		{Vertices: []int{0, 1, 2}, Color: RGB(0, 160, 255)},
	}
	return s
}

// Rope builds n points spaced segment apart along +x from (x, y), joined by
// rigid sticks. The first point is pinned.
func Rope(n int, x, y, segment float64) *Scene {
	s := newScene("rope")
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, PointConfig{
			X:      x + float64(i)*segment,
			Y:      y,
			Pinned: i == 0,
		})
		if i > 0 {
			s.Sticks = append(s.Sticks, StickConfig{P0: i - 1, P1: i})
		}
	}
	return s
}

// Cloth builds a cols x rows grid with its top-left corner at (x, y). Every
// other point of the top row is pinned and the outline is filled.
func Cloth(cols, rows int, x, y, spacing float64) *Scene {
	s := newScene("cloth")
	idx := func(c, r int) int { return r*cols + c }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s.Points = append(s.Points, PointConfig{
				X:      x + float64(c)*spacing,
				Y:      y + float64(r)*spacing,
				Pinned: r == 0 && c%2 == 0,
			})
			if c > 0 {
				s.Sticks = append(s.Sticks, StickConfig{P0: idx(c-1, r), P1: idx(c, r)})
			}
			if r > 0 {
				s.Sticks = append(s.Sticks, StickConfig{P0: idx(c, r-1), P1: idx(c, r)})
			}
		}
	}

	if cols >= 2 && rows >= 2 {
		var outline []int
		for c := 0; c < cols; c++ {
			outline = append(outline, idx(c, 0))
		}
		for r := 1; r < rows; r++ {
			outline = append(outline, idx(cols-1, r))
		}
		for c := cols - 2; c >= 0; c-- {
			outline = append(outline, idx(c, rows-1))
		}
		for r := rows - 2; r > 0; r-- {
			outline = append(outline, idx(0, r))
		}
		s.Polygons = []PolygonConfig{{Vertices: outline, Color: RGBA(80, 120, 200, 128)}}
	}
	return s
}
