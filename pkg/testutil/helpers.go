// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/lucaspazio/Financial-Model/internal/forecast"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FinalCumulativeProfit returns the last cumulative profit of a forecast,
// or 0 when it has no results.
func FinalCumulativeProfit(f *forecast.Forecast) float64 {
	if f == nil || f.Results == nil || len(f.Results.Overall) == 0 {
		return 0
	}
	return f.Results.Overall[len(f.Results.Overall)-1]
}
