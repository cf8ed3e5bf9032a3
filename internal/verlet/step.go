package verlet

// Step advances the world by one frame: integrate once, then alternate
// constraint relaxation and boundary collision RelaxationPasses times.
func (w *World) Step() {
	w.Integrate()
	for pass := 0; pass < RelaxationPasses; pass++ {
		w.Relax(pass)
		w.Collide()
	}
	w.tick++
}
