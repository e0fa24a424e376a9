package config

import (
	"fmt"
	"strings"

	"github.com/lucaspazio/Financial-Model/pkg/constants"
)

const (
	OptimizerKindProfitFloor = "profit_floor"

	// OptimizerTargetOverall measures cumulative profit in the final year.
	OptimizerTargetOverall = "overall"
	// OptimizerTargetProfit measures profit of the final year alone.
	OptimizerTargetProfit = "profit"

	defaultOptimizerTolerance = 0.001
	defaultMaxIterations      = 50
)

// OptimizerConfig asks for the break-even value of one scale parameter: the
// value inside [Min, Max] closest to the failing side at which the target
// still stays at or above Floor.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" mapstructure:"field"`
	Kind          string   `yaml:"kind,omitempty" mapstructure:"kind"`
	Target        string   `yaml:"target,omitempty" mapstructure:"target"`
	Floor         float64  `yaml:"floor,omitempty" mapstructure:"floor"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the scale key an optimizer field refers
// to. Legacy spellings map to their current key; unknown values are
// lowercased.
func CanonicalOptimizerField(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	if canonical, ok := legacyScaleKeys[key]; ok {
		return canonical
	}
	return key
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)

	o.Kind = strings.ToLower(strings.TrimSpace(o.Kind))
	if o.Kind == "" {
		o.Kind = OptimizerKindProfitFloor
	}

	o.Target = strings.ToLower(strings.TrimSpace(o.Target))
	if o.Target == "" {
		o.Target = OptimizerTargetOverall
	}

	if o.Tolerance <= 0 {
		o.Tolerance = defaultOptimizerTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	if o.Field == "" {
		return fmt.Errorf("optimizer requires a field")
	}
	known := false
	for _, key := range ScaleKeys {
		if o.Field == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}
	if o.Kind != OptimizerKindProfitFloor {
		return fmt.Errorf("optimizer kind %q is not supported", o.Kind)
	}
	switch o.Target {
	case OptimizerTargetOverall, OptimizerTargetProfit:
	default:
		return fmt.Errorf("optimizer target %q is not supported", o.Target)
	}

	if o.Min == nil {
		return fmt.Errorf("optimizer requires a minimum bound")
	}
	if o.Max == nil {
		return fmt.Errorf("optimizer requires a maximum bound")
	}
	if *o.Min < 0 || *o.Max > constants.MaxScale {
		return fmt.Errorf("optimizer bounds must lie within 0 and %.0f", constants.MaxScale)
	}
	if *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %.4f must be less than maximum %.4f", *o.Min, *o.Max)
	}

	return nil
}
