// Package verlet provides a 2D stick-and-point soft-body solver.
//
// A [World] owns point masses, the sticks that constrain them and the
// polygons drawn over them:
//
//   - [Point]: position plus previous position (velocity is implicit)
//   - [Stick]: rigid distance constraint (stiffness 0) or spring (stiffness > 0)
//   - [Polygon]: ordered point handles with a fill color, rendering only
//
// Each call to [World.Step] integrates every free point once, then runs
// [RelaxationPasses] rounds of constraint relaxation, each followed by a
// boundary collision pass against the world rectangle.
//
// # Example
//
//	w, _ := verlet.NewWorld(verlet.DefaultParams())
//	a, _ := w.AddPoint(verlet.PointConfig{X: 100, Y: 100, Pinned: true})
//	b, _ := w.AddPoint(verlet.PointConfig{X: 200, Y: 100})
//	w.AddStick(verlet.StickConfig{P0: a, P1: b})
//	for i := 0; i < 60; i++ {
//	    w.Step()
//	}
//	frame := w.Frame()
//
// # Thread Safety
//
// World instances are NOT thread-safe. Step must complete before a renderer
// reads the world; [World.Frame] returns a deep copy that stays valid after
// later steps.
package verlet
