package config

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestCanonicalOptimizerField(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical key", input: "mau_scale", expected: KeyMAUScale},
		{name: "casing and space", input: " Marketing_Scale ", expected: KeyMarketingScale},
		{name: "legacy game key", input: "game_conv_scale", expected: KeyConvGameScale},
		{name: "legacy course key", input: "COURSE_CONV_SCALE", expected: KeyConvCourseScale},
		{name: "unknown lowered", input: "Custom", expected: "custom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := CanonicalOptimizerField(tc.input)
			if actual != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, actual)
			}
		})
	}
}

func TestOptimizerConfigNormalizeDefaults(t *testing.T) {
	cfg := &OptimizerConfig{Field: "MAU_SCALE"}
	cfg.Normalize()

	if cfg.Field != KeyMAUScale {
		t.Errorf("expected field %q, got %q", KeyMAUScale, cfg.Field)
	}
	if cfg.Kind != OptimizerKindProfitFloor {
		t.Errorf("expected kind %q, got %q", OptimizerKindProfitFloor, cfg.Kind)
	}
	if cfg.Target != OptimizerTargetOverall {
		t.Errorf("expected target %q, got %q", OptimizerTargetOverall, cfg.Target)
	}
	if cfg.Tolerance != defaultOptimizerTolerance {
		t.Errorf("expected tolerance %v, got %v", defaultOptimizerTolerance, cfg.Tolerance)
	}
	if cfg.MaxIterations != defaultMaxIterations {
		t.Errorf("expected %d iterations, got %d", defaultMaxIterations, cfg.MaxIterations)
	}

	var nilCfg *OptimizerConfig
	nilCfg.Normalize()
}

func TestOptimizerConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     *OptimizerConfig
		wantErr string
	}{
		{name: "valid", cfg: &OptimizerConfig{Field: "mau_scale", Min: floatPtr(0), Max: floatPtr(2)}},
		{name: "valid profit target", cfg: &OptimizerConfig{Field: "staff_scale", Target: "Profit", Min: floatPtr(0.5), Max: floatPtr(3)}},
		{name: "nil", cfg: nil, wantErr: "cannot be nil"},
		{name: "missing field", cfg: &OptimizerConfig{Min: floatPtr(0), Max: floatPtr(1)}, wantErr: "requires a field"},
		{name: "unknown field", cfg: &OptimizerConfig{Field: "moon_scale", Min: floatPtr(0), Max: floatPtr(1)}, wantErr: "not supported"},
		{name: "unknown kind", cfg: &OptimizerConfig{Field: "mau_scale", Kind: "cash_floor", Min: floatPtr(0), Max: floatPtr(1)}, wantErr: "kind"},
		{name: "unknown target", cfg: &OptimizerConfig{Field: "mau_scale", Target: "revenue", Min: floatPtr(0), Max: floatPtr(1)}, wantErr: "target"},
		{name: "missing min", cfg: &OptimizerConfig{Field: "mau_scale", Max: floatPtr(1)}, wantErr: "minimum bound"},
		{name: "missing max", cfg: &OptimizerConfig{Field: "mau_scale", Min: floatPtr(0)}, wantErr: "maximum bound"},
		{name: "negative min", cfg: &OptimizerConfig{Field: "mau_scale", Min: floatPtr(-1), Max: floatPtr(1)}, wantErr: "within"},
		{name: "inverted bounds", cfg: &OptimizerConfig{Field: "mau_scale", Min: floatPtr(2), Max: floatPtr(1)}, wantErr: "less than"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
