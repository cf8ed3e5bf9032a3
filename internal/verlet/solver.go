package verlet

import "math"

// RelaxationPasses is the number of constraint/collision rounds per step.
const RelaxationPasses = 3

// Relax runs one constraint pass over every stick in declaration order.
// Springs only push on pass 0; rigid sticks correct on every pass. Updates
// happen in place, so later sticks see earlier corrections.
func (w *World) Relax(pass int) {
	for i := range w.sticks {
		s := &w.sticks[i]
		if s.IsSpring() {
			if pass == 0 {
				w.pushSpring(s)
			}
			continue
		}
		w.correctRigid(s)
	}
}

func (w *World) pushSpring(s *Stick) {
	p0, p1 := &w.points[s.P0], &w.points[s.P1]

	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	distDiff := math.Hypot(dx, dy) - s.RestLength

	sin, cos := math.Sincos(math.Atan2(dy, dx))
	fx := s.Stiffness * distDiff / 2 * cos
	fy := s.Stiffness * distDiff / 2 * sin

	if !p0.Pinned {
		p0.X += fx
		p0.Y += fy
	}
	if !p1.Pinned {
		p1.X -= fx
		p1.Y -= fy
	}
}

func (w *World) correctRigid(s *Stick) {
	p0, p1 := &w.points[s.P0], &w.points[s.P1]

	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	distance := math.Hypot(dx, dy)
	// coincident endpoints give no direction to correct along
	if distance == 0 {
		return
	}

	percent := (distance - s.RestLength) / s.RestLength / 2

	if !p0.Pinned {
		p0.X += dx * percent
		p0.Y += dy * percent
	}
	if !p1.Pinned {
		p1.X -= dx * percent
		p1.Y -= dy * percent
	}
}
