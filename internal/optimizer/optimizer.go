// Package optimizer searches for break-even scale parameters: the most
// adverse value of one multiplier at which a scenario still meets its
// profit floor.
package optimizer

import (
	"fmt"
	"math"

	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/engine"
	"github.com/lucaspazio/Financial-Model/internal/forecast"
	"github.com/lucaspazio/Financial-Model/pkg/format"
	"github.com/lucaspazio/Financial-Model/pkg/optimization"
	"go.uber.org/zap"
)

// Runner evaluates optimizer directives against one baseline plan.
type Runner struct {
	logger *zap.Logger
	engine *engine.Engine
}

type target struct {
	scenario string
	params   config.ScaleParameters
	cfg      *config.OptimizerConfig
	original float64
}

type evaluation struct {
	value  float64
	metric float64
	floor  float64
}

func (e evaluation) feasible() bool {
	return e.metric >= e.floor
}

func (e evaluation) headroom() float64 {
	return e.metric - e.floor
}

// Result summarizes optimizer searches keyed by scenario name.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any optimizer searches were run.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the provided forecast results.
func (r Result) Apply(forecasts []forecast.Forecast) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range forecasts {
		summaries, ok := r.Summaries[forecasts[i].Name]
		if !ok {
			continue
		}
		forecasts[i].Optimizations = append(forecasts[i].Optimizations, summaries...)
	}
}

// NewRunner constructs a Runner against plan. A nil plan uses the default
// baseline.
func NewRunner(logger *zap.Logger, plan *baseline.Plan) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, engine: engine.New(plan)}
}

// Run executes the optimizer directive of every active scenario. The
// configuration is not modified.
func (r *Runner) Run(conf config.Configuration) (*Result, error) {
	targets, err := collectTargets(conf)
	if err != nil {
		return nil, err
	}

	summaries := make(map[string][]optimization.Summary)
	for _, t := range targets {
		summary := r.optimize(t)
		summaries[t.scenario] = append(summaries[t.scenario], summary)

		r.logger.Info("optimizer searched break-even value",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", t.scenario),
			zap.String("field", summary.Field),
			zap.String("target", summary.Target),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("floor", summary.Floor),
			zap.Float64("metric", summary.Metric),
			zap.Float64("headroom", summary.Headroom),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

func collectTargets(conf config.Configuration) ([]target, error) {
	var targets []target
	for _, scenario := range conf.Scenarios {
		if !scenario.Active || scenario.Optimizer == nil {
			continue
		}

		cfg := *scenario.Optimizer
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		params, _ := scenario.Parameters()
		original, _ := params.Get(cfg.Field)
		targets = append(targets, target{
			scenario: scenario.Name,
			params:   params,
			cfg:      &cfg,
			original: original,
		})
	}
	return targets, nil
}

// optimize bisects between a feasible and an infeasible bound. It assumes the
// target moves monotonically with the field inside the bounds.
func (r *Runner) optimize(t target) optimization.Summary {
	cfg := t.cfg
	lower := r.evaluate(t, *cfg.Min)
	upper := r.evaluate(t, *cfg.Max)

	summary := optimization.Summary{
		Scenario: t.scenario,
		Field:    cfg.Field,
		Target:   cfg.Target,
		Original: t.original,
		Floor:    cfg.Floor,
	}
	finish := func(eval evaluation, iterations int, converged bool, notes ...string) optimization.Summary {
		summary.Value = eval.value
		summary.Metric = eval.metric
		summary.Headroom = eval.headroom()
		summary.Iterations = iterations
		summary.Converged = converged
		summary.Notes = notes
		return summary
	}

	switch {
	case !lower.feasible() && !upper.feasible():
		best := upper
		if lower.headroom() > upper.headroom() {
			best = lower
		}
		return finish(best, 0, false, fmt.Sprintf(
			"unable to reach %s of %s within bounds %g to %g",
			cfg.Target, format.Currency(cfg.Floor), *cfg.Min, *cfg.Max,
		))
	case lower.feasible() && upper.feasible():
		// The floor holds everywhere; report the most stressed bound.
		worst := lower
		if upper.headroom() < lower.headroom() {
			worst = upper
		}
		return finish(worst, 0, true, fmt.Sprintf(
			"%s stays above %s across bounds %g to %g",
			cfg.Target, format.Currency(cfg.Floor), *cfg.Min, *cfg.Max,
		))
	}

	good, bad := lower, upper
	if upper.feasible() {
		good, bad = upper, lower
	}

	iterations := 0
	for iterations < cfg.MaxIterations && math.Abs(good.value-bad.value) > cfg.Tolerance {
		mid := r.evaluate(t, good.value+(bad.value-good.value)/2)
		iterations++
		if mid.value == good.value || mid.value == bad.value {
			break
		}
		if mid.feasible() {
			good = mid
		} else {
			bad = mid
		}
	}

	return finish(good, iterations, math.Abs(good.value-bad.value) <= cfg.Tolerance)
}

func (r *Runner) evaluate(t target, value float64) evaluation {
	params, _ := t.params.With(t.cfg.Field, value)
	result := r.engine.Compute(params)

	series := result.Overall
	if t.cfg.Target == config.OptimizerTargetProfit {
		series = result.Profit
	}
	return evaluation{
		value:  value,
		metric: series[len(series)-1],
		floor:  t.cfg.Floor,
	}
}
