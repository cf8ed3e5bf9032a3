package verlet

import "math"

// KineticEnergy sums 0.5*|v|^2 over unpinned points, treating every point as
// unit mass and velocity as displacement per tick.
func (w *World) KineticEnergy() float64 {
	total := 0.0
	for _, p := range w.points {
		if p.Pinned {
			continue
		}
		vx, vy := p.Velocity()
		total += 0.5 * (vx*vx + vy*vy)
	}
	return total
}

// MaxStrain returns the largest relative length error |d-rest|/rest over
// rigid sticks. Springs are expected to stretch and are ignored.
func (w *World) MaxStrain() float64 {
	worst := 0.0
	for _, s := range w.sticks {
		if s.IsSpring() {
			continue
		}
		p0, p1 := w.points[s.P0], w.points[s.P1]
		d := math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
		worst = math.Max(worst, math.Abs(d-s.RestLength)/s.RestLength)
	}
	return worst
}

// Contained reports whether every unpinned point lies inside the world
// rectangle inset by its radius.
func (w *World) Contained() bool {
	const eps = 1e-9
	for _, p := range w.points {
		if p.Pinned {
			continue
		}
		if p.X < p.Radius-eps || p.X > w.params.Width-p.Radius+eps {
			return false
		}
		if p.Y < p.Radius-eps || p.Y > w.params.Height-p.Radius+eps {
			return false
		}
	}
	return true
}

// Centroid is the mean position of all points.
func (w *World) Centroid() Vec2 {
	if len(w.points) == 0 {
		return Vec2{}
	}
	var c Vec2
	for _, p := range w.points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(w.points))
	return Vec2{c.X / n, c.Y / n}
}
