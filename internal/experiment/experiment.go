package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/stickpoint/internal/config"
	"github.com/san-kum/stickpoint/internal/sim"
)

type Config struct {
	Scene         *config.Scene
	Ticks         int
	RecordEvery   int
	ValidateState bool
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	if cfg.Ticks == 0 && cfg.Scene != nil {
		cfg.Ticks = cfg.Scene.Ticks
	}
	return &Experiment{cfg: cfg}
}

// Setup builds the scene's world and attaches the metrics.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	if e.cfg.Scene == nil {
		return fmt.Errorf("experiment has no scene")
	}
	w, err := e.cfg.Scene.Build()
	if err != nil {
		return err
	}
	e.simulator = sim.New(w)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, sim.Config{
		Ticks:         e.cfg.Ticks,
		RecordEvery:   e.cfg.RecordEvery,
		ValidateState: e.cfg.ValidateState,
	})
}

func (e *Experiment) Scene() *config.Scene { return e.cfg.Scene }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
