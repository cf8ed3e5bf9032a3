package verlet

// Integrate advances every unpinned point by one Verlet step. The implied
// velocity is damped by Friction before Gravity is added to y.
func (w *World) Integrate() {
	friction, gravity := w.params.Friction, w.params.Gravity

	for i := range w.points {
		p := &w.points[i]
		if p.Pinned {
			continue
		}

		vx := (p.X - p.PrevX) * friction
		vy := (p.Y - p.PrevY) * friction
		p.PrevX, p.PrevY = p.X, p.Y

		p.X += vx
		p.Y += vy + gravity
	}
}
