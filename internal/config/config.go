package config

import (
	"fmt"
	"os"

	"github.com/san-kum/stickpoint/internal/verlet"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultGravity    = 0.5
	DefaultFriction   = 0.999
	DefaultWallBounce = 0.9
	DefaultTicks      = 600
	DefaultNoiseScale = 0.01
)

// Scene is the on-disk description of a world and how long to run it.
type Scene struct {
	Name     string          `yaml:"name"`
	World    WorldConfig     `yaml:"world"`
	Points   []PointConfig   `yaml:"points"`
	Sticks   []StickConfig   `yaml:"sticks"`
	Polygons []PolygonConfig `yaml:"polygons,omitempty"`
	Ticks    int             `yaml:"ticks"`
	Jitter   JitterConfig    `yaml:"jitter,omitempty"`
}

type WorldConfig struct {
	Width         float64 `yaml:"width" json:"width"`
	Height        float64 `yaml:"height" json:"height"`
	Gravity       float64 `yaml:"gravity" json:"gravity"`
	Friction      float64 `yaml:"friction" json:"friction"`
	WallBounce    float64 `yaml:"wall_bounce" json:"wall_bounce"`
	CollidePinned bool    `yaml:"collide_pinned,omitempty" json:"collide_pinned,omitempty"`
}

type PointConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius,omitempty"`
	VX     float64 `yaml:"vx,omitempty"`
	VY     float64 `yaml:"vy,omitempty"`
	Pinned bool    `yaml:"pinned,omitempty"`
}

type StickConfig struct {
	P0         int     `yaml:"p0"`
	P1         int     `yaml:"p1"`
	Stiffness  float64 `yaml:"stiffness,omitempty"`
	Hidden     bool    `yaml:"hidden,omitempty"`
	RestLength float64 `yaml:"rest_length,omitempty"`
}

type PolygonConfig struct {
	Vertices []int       `yaml:"vertices"`
	Color    ColorConfig `yaml:"color"`
}

// ColorConfig is a non-premultiplied color. A missing alpha means opaque.
type ColorConfig struct {
	R uint8  `yaml:"r"`
	G uint8  `yaml:"g"`
	B uint8  `yaml:"b"`
	A *uint8 `yaml:"a,omitempty"`
}

// JitterConfig perturbs the initial velocity of unpinned points with 2D
// Perlin noise sampled at their position. Zero amplitude disables it.
type JitterConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Scale     float64 `yaml:"scale,omitempty"`
	Seed      int64   `yaml:"seed"`
}

func DefaultWorld() WorldConfig {
	return WorldConfig{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Gravity:    DefaultGravity,
		Friction:   DefaultFriction,
		WallBounce: DefaultWallBounce,
	}
}

func (w WorldConfig) Params() verlet.Params {
	return verlet.Params{
		Width:         w.Width,
		Height:        w.Height,
		Gravity:       w.Gravity,
		Friction:      w.Friction,
		WallBounce:    w.WallBounce,
		CollidePinned: w.CollidePinned,
	}
}

// DefaultScene returns the classic square demo.
func DefaultScene() *Scene {
	return Square()
}

func newScene(name string) *Scene {
	return &Scene{
		Name:  name,
		World: DefaultWorld(),
		Ticks: DefaultTicks,
	}
}

// Load reads a YAML scene. World fields missing from the file keep their
// defaults.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scene, error) {
	s := newScene("")
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.Ticks < 0 {
		return nil, fmt.Errorf("scene %q: ticks must not be negative, got %d", s.Name, s.Ticks)
	}
	return s, nil
}

func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be tweaked without aliasing.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Points = append([]PointConfig(nil), s.Points...)
	c.Sticks = append([]StickConfig(nil), s.Sticks...)
	c.Polygons = make([]PolygonConfig, len(s.Polygons))
	for i, p := range s.Polygons {
		p.Vertices = append([]int(nil), p.Vertices...)
		c.Polygons[i] = p
	}
	return &c
}

// Build validates the scene and constructs the world it describes.
func (s *Scene) Build() (*verlet.World, error) {
	w, err := verlet.NewWorld(s.World.Params())
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}

	jitter := s.Jitter.field()
	for _, p := range s.Points {
		cfg := verlet.PointConfig{X: p.X, Y: p.Y, Radius: p.Radius, VX: p.VX, VY: p.VY, Pinned: p.Pinned}
		if jitter != nil && !p.Pinned {
			jx, jy := jitter(p.X, p.Y)
			cfg.VX += jx
			cfg.VY += jy
		}
		if _, err := w.AddPoint(cfg); err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.Name, err)
		}
	}

	for _, st := range s.Sticks {
		_, err := w.AddStick(verlet.StickConfig{
			P0:         verlet.PointID(st.P0),
			P1:         verlet.PointID(st.P1),
			Stiffness:  st.Stiffness,
			Hidden:     st.Hidden,
			RestLength: st.RestLength,
		})
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.Name, err)
		}
	}

	for _, poly := range s.Polygons {
		ids := make([]verlet.PointID, len(poly.Vertices))
		for i, v := range poly.Vertices {
			ids[i] = verlet.PointID(v)
		}
		if _, err := w.AddPolygon(verlet.PolygonConfig{Vertices: ids, Color: poly.Color.NRGBA()}); err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.Name, err)
		}
	}

	return w, nil
}

// Params lists the names accepted by Set.
var Params = []string{"gravity", "friction", "wall_bounce", "stiffness", "width", "height"}

func (s *Scene) hasSprings() bool {
	for _, st := range s.Sticks {
		if st.Stiffness > 0 {
			return true
		}
	}
	return false
}

func errNoSprings(scene string) error {
	return fmt.Errorf("scene %q has no spring sticks to set stiffness on", scene)
}

// Set overrides a world constant, or the stiffness of every spring stick.
// Stiffness must be positive and the scene must have at least one spring.
func (s *Scene) Set(name string, value float64) error {
	switch name {
	case "gravity":
		s.World.Gravity = value
	case "friction":
		s.World.Friction = value
	case "wall_bounce":
		s.World.WallBounce = value
	case "width":
		s.World.Width = value
	case "height":
		s.World.Height = value
	case "stiffness":
		// zero would turn the springs rigid and lose track of them
		if !(value > 0) {
			return fmt.Errorf("stiffness must be positive, got %v", value)
		}
		if !s.hasSprings() {
			return errNoSprings(s.Name)
		}
		for i := range s.Sticks {
			if s.Sticks[i].Stiffness > 0 {
				s.Sticks[i].Stiffness = value
			}
		}
	default:
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, Params)
	}
	return nil
}

func (s *Scene) Get(name string) (float64, error) {
	switch name {
	case "gravity":
		return s.World.Gravity, nil
	case "friction":
		return s.World.Friction, nil
	case "wall_bounce":
		return s.World.WallBounce, nil
	case "width":
		return s.World.Width, nil
	case "height":
		return s.World.Height, nil
	case "stiffness":
		for _, st := range s.Sticks {
			if st.Stiffness > 0 {
				return st.Stiffness, nil
			}
		}
		return 0, errNoSprings(s.Name)
	}
	return 0, fmt.Errorf("unknown parameter: %s (available: %v)", name, Params)
}
