package verlet

// Collide clamps points to the world rectangle, inset by their radius, and
// reflects the implied velocity on the clamped axis scaled by WallBounce.
// Only one wall per axis can fire on a single pass.
func (w *World) Collide() {
	width, height := w.params.Width, w.params.Height
	bounce := w.params.WallBounce

	for i := range w.points {
		p := &w.points[i]
		if p.Pinned && !w.params.CollidePinned {
			continue
		}

		vx, vy := p.Velocity()

		if p.X+p.Radius > width {
			p.X = width - p.Radius
			p.PrevX = p.X + vx*bounce
		} else if p.X-p.Radius < 0 {
			p.X = p.Radius
			p.PrevX = p.X + vx*bounce
		}

		if p.Y+p.Radius > height {
			p.Y = height - p.Radius
			p.PrevY = p.Y + vy*bounce
		} else if p.Y-p.Radius < 0 {
			p.Y = p.Radius
			p.PrevY = p.Y + vy*bounce
		}
	}
}
