package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// RunConfig carries the knobs spec.md leaves as configuration: the
// simulator's deterministic seed, how far below WCET its sampled
// execution time may fall, the hyperperiod replay cap, and where to write
// reports. Loaded from an optional YAML file (teacher: sim/workload/spec.go's
// WorkloadSpec), then overridden by any CLI flag the user actually set —
// same flag-wins-over-config precedence as the teacher's cmd/hfconfig.go.
type RunConfig struct {
	Seed            int64   `yaml:"seed"`
	LowerBoundRatio float64 `yaml:"lower_bound_ratio"`
	MaxHyperperiods int     `yaml:"max_hyperperiods"`
	OutputPrefix    string  `yaml:"output_prefix"`
	LogLevel        string  `yaml:"log_level"`
	Progress        bool    `yaml:"progress"`
}

// DefaultRunConfig mirrors original_source/src/simulator.py's module
// constants (LOWER_BOUND_PERCENTAGE=1, SIMULATION_ITERATIONS=10).
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Seed:            1,
		LowerBoundRatio: 1,
		MaxHyperperiods: 10,
		OutputPrefix:    "report",
		LogLevel:        "info",
	}
}

// LoadRunConfig reads path into a RunConfig layered on top of
// DefaultRunConfig, the way the teacher's cmd/default_config.go layers
// defaults.yaml under explicit values. An empty path is not an error —
// callers get the defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	logrus.Debugf("loaded run config from %s", path)
	return cfg, nil
}
