package verlet

import (
	"image/color"
	"math"
)

// PointID is a stable handle to a point owned by a World.
type PointID int

type Vec2 struct {
	X, Y float64
}

// Point is a Verlet particle. Velocity is (X-PrevX, Y-PrevY).
type Point struct {
	X, Y         float64
	PrevX, PrevY float64
	Radius       float64
	Pinned       bool
}

func (p Point) Velocity() (vx, vy float64) {
	return p.X - p.PrevX, p.Y - p.PrevY
}

func (p Point) Pos() Vec2 {
	return Vec2{p.X, p.Y}
}

// Stick constrains the distance between two points. A zero Stiffness makes it
// rigid; a positive one makes it a spring with that coefficient.
type Stick struct {
	P0, P1     PointID
	Stiffness  float64
	Hidden     bool
	RestLength float64
}

func (s Stick) IsSpring() bool { return s.Stiffness > 0 }

type Polygon struct {
	Vertices []PointID
	Color    color.NRGBA
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Params holds the world boundary and the per-tick constants.
type Params struct {
	Width      float64
	Height     float64
	Gravity    float64 // added to y after damping, every tick
	Friction   float64 // velocity multiplier, 1 = undamped
	WallBounce float64 // fraction of velocity kept when reflecting off a wall
	// CollidePinned clamps pinned points against the walls too. Off by
	// default so pinned points never move.
	CollidePinned bool
}

func DefaultParams() Params {
	return Params{
		Width:      800,
		Height:     600,
		Gravity:    0.5,
		Friction:   0.999,
		WallBounce: 0.9,
	}
}

func (p Params) validate() error {
	for _, v := range []float64{p.Width, p.Height, p.Gravity, p.Friction, p.WallBounce} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	if p.Width <= 0 || p.Height <= 0 {
		return ErrInvalidParams
	}
	return nil
}

// PointConfig describes a point to add. VX/VY set the initial implied
// velocity; all optional fields default to zero.
type PointConfig struct {
	X, Y   float64
	Radius float64
	VX, VY float64
	Pinned bool
}

// StickConfig describes a stick to add. A zero RestLength is replaced by the
// distance between the endpoints at creation time.
type StickConfig struct {
	P0, P1     PointID
	Stiffness  float64
	Hidden     bool
	RestLength float64
}

type PolygonConfig struct {
	Vertices []PointID
	Color    color.NRGBA
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
