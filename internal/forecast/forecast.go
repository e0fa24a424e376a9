// Package forecast runs the configured scenarios through the engine and the
// reasonability classifier.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/engine"
	"github.com/lucaspazio/Financial-Model/internal/reasonability"
	"github.com/lucaspazio/Financial-Model/pkg/optimization"
	"go.uber.org/zap"
)

// ErrNoActiveScenarios is returned when a configuration has nothing to run.
var ErrNoActiveScenarios = errors.New("no active scenarios")

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	Name          string                 `json:"name"`
	Parameters    config.ScaleParameters `json:"parameters"`
	Results       *engine.Result         `json:"results"`
	Reasonability reasonability.Report   `json:"reasonability"`
	Warnings      []string               `json:"warnings,omitempty"`
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
}

// Run computes one named forecast. It never fails.
func Run(name string, plan *baseline.Plan, params config.ScaleParameters) Forecast {
	results := engine.Compute(plan, params)
	return Forecast{
		Name:          name,
		Parameters:    params.Sanitize(),
		Results:       results,
		Reasonability: reasonability.ClassifyResult(results),
	}
}

// RunRaw coerces a loosely typed scale bag and computes it. Coercion
// warnings are attached to the forecast.
func RunRaw(name string, plan *baseline.Plan, raw map[string]interface{}) Forecast {
	params, warnings := config.ParseScaleParameters(raw)
	f := Run(name, plan, params)
	f.Warnings = warnings
	return f
}

// GetForecast processes the Forecasts for all active Scenarios.
func GetForecast(logger *zap.Logger, plan *baseline.Plan, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if plan == nil {
		plan = baseline.Default()
	}

	var results []Forecast
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		start := time.Now()
		result := RunRaw(scenario.Name, plan, scenario.Scales)
		for _, w := range result.Warnings {
			logger.Warn(w,
				zap.String("op", "forecast.GetForecast"),
				zap.String("scenario", scenario.Name),
			)
		}

		overall := result.Results.Overall
		logger.Debug("computed scenario",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", scenario.Name),
			zap.Float64("cumulative_profit", overall[len(overall)-1]),
			zap.Duration("duration", time.Since(start)),
		)

		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, ErrNoActiveScenarios
	}

	return results, nil
}
