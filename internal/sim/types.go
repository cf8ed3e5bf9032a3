package sim

import "github.com/san-kum/stickpoint/internal/verlet"

type Metric interface {
	Name() string
	Observe(w *verlet.World)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *verlet.World)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(w *verlet.World)

func (f ObserverFunc) OnStep(w *verlet.World) { f(w) }

// Config controls a run. RecordEvery keeps one frame every N ticks; the
// initial and final frames are always kept, and zero records only those two.
type Config struct {
	Ticks         int
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         600,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Result of a run. Energy holds the kinetic energy before the first tick
// and after every tick, so len(Energy) == StepsTaken+1.
type Result struct {
	Frames     []verlet.Frame
	Energy     []float64
	Metrics    map[string]float64
	StepsTaken int
}

func (r *Result) Final() verlet.Frame {
	return r.Frames[len(r.Frames)-1]
}
