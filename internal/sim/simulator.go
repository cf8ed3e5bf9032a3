package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/stickpoint/internal/verlet"
)

type Simulator struct {
	world     *verlet.World
	metrics   []Metric
	observers []Observer
}

func New(w *verlet.World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) World() *verlet.World   { return s.world }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Metrics() []Metric      { return s.metrics }

// Run advances the world cfg.Ticks times. On cancellation or an invalid
// state the partial result is returned together with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([]verlet.Frame, 0, expectedFrames(cfg)),
		Energy:  make([]float64, 0, cfg.Ticks+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	w := s.world
	result.Frames = append(result.Frames, w.Frame())
	result.Energy = append(result.Energy, w.KineticEnergy())
	recorded := true

	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		w.Step()

		if cfg.ValidateState && !w.IsValid() {
			runErr = &verlet.SimulationError{Tick: w.Tick(), Wrapped: verlet.ErrInvalidState}
			break
		}
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(w)
		}
		for _, obs := range s.observers {
			obs.OnStep(w)
		}

		result.Energy = append(result.Energy, w.KineticEnergy())
		recorded = cfg.RecordEvery > 0 && result.StepsTaken%cfg.RecordEvery == 0
		if recorded {
			result.Frames = append(result.Frames, w.Frame())
		}
	}

	if !recorded && runErr == nil {
		result.Frames = append(result.Frames, w.Frame())
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

// RunWithCallback hands the world to callback before every tick and stops
// when it returns false. Ticks of zero runs until the callback or ctx stops it.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(*verlet.World) bool) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", cfg.Ticks)
	}

	w := s.world
	for i := 0; cfg.Ticks == 0 || i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(w) {
			return nil
		}

		w.Step()

		if cfg.ValidateState && !w.IsValid() {
			return &verlet.SimulationError{Tick: w.Tick(), Wrapped: verlet.ErrInvalidState}
		}
		for _, obs := range s.observers {
			obs.OnStep(w)
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record interval must not be negative, got %d", cfg.RecordEvery)
	}
	return nil
}

func expectedFrames(cfg Config) int {
	if cfg.RecordEvery <= 0 {
		return 2
	}
	return cfg.Ticks/cfg.RecordEvery + 2
}
