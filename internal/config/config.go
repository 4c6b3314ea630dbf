package config

import (
	"fmt"
	"os"

	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/pipeline"
	"github.com/danielpatrickdp/burnout-guardian/internal/profile"
	"gopkg.in/yaml.v3"
)

// #region config

// Config is the whole service configuration. Every knob ships with a
// working default; a config file overrides only what it names.
type Config struct {
	DBPath     string `yaml:"db_path"`
	ActionAddr string `yaml:"action_addr"` // gRPC address of the action executor
	RefitCron  string `yaml:"refit_cron"`  // cron expression for the model refit job

	Baseline baseline.Config     `yaml:"baseline"`
	Detect   detect.Config       `yaml:"detect"`
	Forest   detect.ForestConfig `yaml:"forest"`
	Forecast forecast.Config     `yaml:"forecast"`
	Engine   decide.Config       `yaml:"engine"`
	Tuner    profile.Config      `yaml:"tuner"`
	Pipeline pipeline.Config     `yaml:"pipeline"`
}

// Defaults returns the shipped configuration.
func Defaults() Config {
	return Config{
		DBPath:     "guardian.db",
		ActionAddr: "localhost:50071",
		RefitCron:  "0 3 * * 0", // weekly, Sunday 03:00
		Baseline:   baseline.DefaultConfig(),
		Detect:     detect.DefaultConfig(),
		Forest:     detect.DefaultForestConfig(),
		Forecast:   forecast.DefaultConfig(),
		Engine:     decide.DefaultConfig(),
		Tuner:      profile.DefaultConfig(),
		Pipeline:   pipeline.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults. A missing path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// #endregion config
