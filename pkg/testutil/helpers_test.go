package testutil

import (
	"testing"

	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/forecast"
	"github.com/lucaspazio/Financial-Model/pkg/mathutil"
)

func TestFindScenario(t *testing.T) {
	plan := baseline.Default()
	results := []forecast.Forecast{
		forecast.Run("Scenario A", plan, config.DefaultScaleParameters()),
		forecast.Run("Scenario B", plan, config.ScaleParameters{}),
		{Name: "Another Scenario"},
	}

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
	}{
		{
			name:        "Find existing scenario A",
			searchName:  "Scenario A",
			expectFound: true,
		},
		{
			name:        "Find existing scenario B",
			searchName:  "Scenario B",
			expectFound: true,
		},
		{
			name:        "Find scenario with longer name",
			searchName:  "Another Scenario",
			expectFound: true,
		},
		{
			name:        "Search for non-existent scenario",
			searchName:  "Non-existent",
			expectFound: false,
		},
		{
			name:        "Search is case sensitive",
			searchName:  "scenario a",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindScenario(results, tt.searchName)
			if !tt.expectFound {
				if found != nil {
					t.Errorf("Expected no scenario, got %s", found.Name)
				}
				return
			}
			if found == nil {
				t.Fatalf("Expected to find %s", tt.searchName)
			}
			if found.Name != tt.searchName {
				t.Errorf("Found %s, expected %s", found.Name, tt.searchName)
			}
		})
	}
}

func TestFindScenarioReturnsPointerIntoSlice(t *testing.T) {
	results := []forecast.Forecast{{Name: "A"}}
	FindScenario(results, "A").Warnings = []string{"changed"}
	if len(results[0].Warnings) != 1 {
		t.Error("FindScenario should return a pointer into the slice")
	}
}

func TestFinalCumulativeProfit(t *testing.T) {
	f := forecast.Run("Baseline", baseline.Default(), config.DefaultScaleParameters())
	if got := FinalCumulativeProfit(&f); !mathutil.WithinTolerance(got, 599_014_634, 1.0) {
		t.Errorf("FinalCumulativeProfit() = %.2f, expected 599,014,634", got)
	}
	if FinalCumulativeProfit(nil) != 0 {
		t.Error("Expected 0 for a nil forecast")
	}
	if FinalCumulativeProfit(&forecast.Forecast{Name: "empty"}) != 0 {
		t.Error("Expected 0 for a forecast without results")
	}
}
