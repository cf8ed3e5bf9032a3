package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/stickpoint/internal/config"
	"github.com/san-kum/stickpoint/internal/experiment"
	"github.com/san-kum/stickpoint/internal/metrics"
	"github.com/san-kum/stickpoint/internal/optim"
	"github.com/san-kum/stickpoint/internal/sim"
	"github.com/san-kum/stickpoint/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	dir string
}

// ScenarioStep is a single step in a scenario. Scene is a preset name or a
// scene file path relative to the scenario file.
type ScenarioStep struct {
	Scene       string             `yaml:"scene"`
	Ticks       int                `yaml:"ticks"`
	RecordEvery int                `yaml:"record_every"`
	Params      map[string]float64 `yaml:"params"`
	Save        bool               `yaml:"save"`
}

type StepResult struct {
	Scene  string
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	scenario.dir = filepath.Dir(path)

	return &scenario, nil
}

func (s *Scenario) resolve(name string) (*config.Scene, error) {
	if config.GetPreset(name) == nil && s.dir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(s.dir, name)
	}
	return experiment.ResolveScene(name)
}

// RunScenario executes all steps in order, reporting progress to out. Steps
// with Save set are written to store, which may be nil otherwise.
func RunScenario(ctx context.Context, out io.Writer, scenario *Scenario, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Scene)

		scene, err := scenario.resolve(step.Scene)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		for k, v := range step.Params {
			if err := scene.Set(k, v); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		cfg := experiment.Config{
			Scene:         scene,
			Ticks:         step.Ticks,
			RecordEvery:   step.RecordEvery,
			ValidateState: true,
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Scene: scene.Name, Result: result}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			runID, err := store.Save(scene, sim.Config{Ticks: result.StepsTaken, RecordEvery: step.RecordEvery}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = runID
			fmt.Fprintf(out, "  saved %s\n", runID)
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one simulation per value of a scene parameter
type ParameterSweep struct {
	Scene     *config.Scene
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	MeanEnergy  float64
	FinalEnergy float64
	SettleTick  int
	MaxStrain   float64
	Containment float64
}

// RunSweep executes a parameter sweep. Runs are independent and execute
// concurrently; results come back in parameter order.
func RunSweep(ctx context.Context, out io.Writer, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if _, err := sweep.Scene.Get(sweep.ParamName); err != nil {
		return nil, err
	}

	values := optim.Linspace(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps)

	factory := func(idx int) (*sim.Simulator, error) {
		scene := sweep.Scene.Clone()
		if err := scene.Set(sweep.ParamName, values[idx]); err != nil {
			return nil, err
		}
		w, err := scene.Build()
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, values[idx], err)
		}
		s := sim.New(w)
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}
		return s, nil
	}

	ticks := sweep.Ticks
	if ticks == 0 {
		ticks = sweep.Scene.Ticks
	}

	runs, err := sim.NewEnsemble(factory, len(values)).Run(ctx, sim.Config{Ticks: ticks, ValidateState: true})
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, len(values))
	for i, r := range runs {
		results = append(results, SweepResult{
			ParamValue:  values[i],
			MeanEnergy:  r.Metrics["kinetic_energy"],
			FinalEnergy: r.Metrics["final_energy"],
			SettleTick:  int(r.Metrics["settle_tick"]),
			MaxStrain:   r.Metrics["max_strain"],
			Containment: r.Metrics["containment"],
		})
		fmt.Fprintf(out, "Sweep %d/%d: %s=%.4f\n", i+1, len(values), sweep.ParamName, values[i])
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial velocities of a scene with a
// different noise seed per trial.
type MonteCarloConfig struct {
	Scene     *config.Scene
	Amplitude float64
	NumTrials int
	Ticks     int
	Seed      int64
}

// MonteCarloResult holds the outcome of one perturbed run
type MonteCarloResult struct {
	TrialID     int
	Seed        int64
	FinalEnergy float64
	MaxStrain   float64
	Stable      bool // stayed finite and inside the walls
}

// RunMonteCarlo executes the trials one after another
func RunMonteCarlo(ctx context.Context, out io.Writer, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		scene := cfg.Scene.Clone()
		seed := cfg.Seed + int64(trial)
		scene.Jitter = config.JitterConfig{
			Amplitude: cfg.Amplitude,
			Scale:     cfg.Scene.Jitter.Scale,
			Seed:      seed,
		}

		exp := experiment.New(experiment.Config{Scene: scene, Ticks: cfg.Ticks, ValidateState: true})
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		stable := err == nil
		if err != nil && ctx.Err() != nil {
			return nil, err
		}
		if stable && result.Metrics["containment"] < 1 {
			stable = false
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			Seed:        seed,
			FinalEnergy: result.Metrics["final_energy"],
			MaxStrain:   result.Metrics["max_strain"],
			Stable:      stable,
		})

		if (trial+1)%10 == 0 {
			fmt.Fprintf(out, "Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
