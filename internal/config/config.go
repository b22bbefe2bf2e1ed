package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "linear"
	DefaultSamples = 10000
	DefaultCoV     = 1.0
)

type Config struct {
	Model     string           `yaml:"model"`
	Samples   int              `yaml:"samples"`
	Seed      int64            `yaml:"seed"`
	Targets   []int            `yaml:"targets"`
	Normalize bool             `yaml:"normalize"`
	CoV       float64          `yaml:"cov"`
	Workers   int              `yaml:"workers"`
	Constants []float64        `yaml:"constants"`
	Marginals []MarginalConfig `yaml:"marginals"`
	Sweep     SweepConfig      `yaml:"sweep"`
}

// MarginalConfig overrides one parameter's distribution. Family is one
// of normal, uniform, lognormal; empty means normal.
type MarginalConfig struct {
	Family   string  `yaml:"family"`
	Mean     float64 `yaml:"mean"`
	Variance float64 `yaml:"variance"`
}

type SweepConfig struct {
	Values []float64 `yaml:"values"`
	Output string    `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Samples: DefaultSamples,
		CoV:     DefaultCoV,
		Sweep: SweepConfig{
			Values: []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5},
			Output: "sweep.dat",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
