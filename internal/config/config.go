// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for financial-model.
type Configuration struct {
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Store     StoreConfig   `yaml:"store,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// StoreConfig selects and configures the scenario persistence backend.
type StoreConfig struct {
	Backend   string `yaml:"backend,omitempty"` // file, redis, sqlite
	Path      string `yaml:"path,omitempty"`    // directory (file) or database file (sqlite)
	Address   string `yaml:"address,omitempty"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
	TTL       string `yaml:"ttl,omitempty"` // Go duration, empty for no expiry
}

// Scenario is a named set of scale multipliers. Scales is kept loosely typed
// until Parameters coerces it.
type Scenario struct {
	Name      string                 `yaml:"name"`
	Active    bool                   `yaml:"active"`
	Scales    map[string]interface{} `yaml:"scales,omitempty"`
	Optimizer *OptimizerConfig       `yaml:"optimizer,omitempty"`
}

// Parameters coerces the scenario's raw scales into validated parameters.
func (s Scenario) Parameters() (ScaleParameters, []string) {
	return ParseScaleParameters(s.Scales)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ActiveScenarios returns the scenarios flagged active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Scenarios) == 0 {
		warnings = append(warnings, "No scenarios configured")
	} else if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios configured")
	}

	seen := make(map[string]struct{})
	for i, scenario := range c.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("Scenario #%d has no name", i+1))
		} else if _, dup := seen[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once", name))
		}
		seen[name] = struct{}{}

		_, scaleWarnings := scenario.Parameters()
		for _, w := range scaleWarnings {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s': %s", name, w))
		}

		if scenario.Optimizer != nil {
			if err := scenario.Optimizer.Validate(); err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s': %v", name, err))
			}
		}
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	switch c.Store.Backend {
	case "", constants.StoreBackendFile, constants.StoreBackendRedis, constants.StoreBackendSQLite:
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown store backend '%s', falling back to %s",
			c.Store.Backend, constants.StoreBackendFile))
	}

	return warnings
}
