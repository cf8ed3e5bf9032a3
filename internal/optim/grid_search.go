package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/stickpoint/internal/config"
	"github.com/san-kum/stickpoint/internal/experiment"
)

// GridSearch tries every combination of scene parameter values and keeps
// the one with the smallest metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = lo
		if n > 1 {
			values[i] += float64(i) * (hi - lo) / float64(n-1)
		}
	}
	return values
}

// Search runs base once per combination for the given ticks (0 uses the
// scene's own). Combinations that fail to build, blow up, or give a
// non-finite metric are skipped, as are runs that never settle when
// minimizing settle_tick.
func (g *GridSearch) Search(ctx context.Context, base *config.Scene, ticks int, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		if _, err := base.Get(name); err != nil {
			return nil, 0, err
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	buildExperiment := func(params map[string]float64) (*experiment.Experiment, error) {
		scene := base.Clone()
		for k, v := range params {
			if err := scene.Set(k, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(experiment.Config{Scene: scene, Ticks: ticks, ValidateState: true})
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("no combination produced a finite %s", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if metricName == "settle_tick" && val < 0 {
			return
		}
		if math.IsInf(val, 0) {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, best, bestParams)
	}
}
