package metrics

import "github.com/san-kum/stickpoint/internal/verlet"

// KineticEnergy is the mean kinetic energy of the unpinned points over
// all observed ticks.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *verlet.World) {
	e.total += w.KineticEnergy()
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

type FinalEnergy struct {
	name string
	last float64
}

func NewFinalEnergy() *FinalEnergy {
	return &FinalEnergy{name: "final_energy"}
}

func (e *FinalEnergy) Name() string            { return e.name }
func (e *FinalEnergy) Observe(w *verlet.World) { e.last = w.KineticEnergy() }
func (e *FinalEnergy) Value() float64          { return e.last }
func (e *FinalEnergy) Reset()                  { e.last = 0 }

// SettleTick reports the first tick from which the kinetic energy stayed
// below the threshold until the end of the run, or -1.
type SettleTick struct {
	name      string
	threshold float64
	settled   int
}

func NewSettleTick(threshold float64) *SettleTick {
	return &SettleTick{
		name:      "settle_tick",
		threshold: threshold,
		settled:   -1,
	}
}

func (s *SettleTick) Name() string { return s.name }

func (s *SettleTick) Observe(w *verlet.World) {
	if w.KineticEnergy() >= s.threshold {
		s.settled = -1
		return
	}
	if s.settled < 0 {
		s.settled = w.Tick()
	}
}

func (s *SettleTick) Value() float64 { return float64(s.settled) }
func (s *SettleTick) Reset()         { s.settled = -1 }
