// Package config loads antsim scenarios from YAML: logging, the random seed,
// pacing of the driver, Ant System parameters and the initial city set.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/pheromone"
	"github.com/katalvlaran/antcolony/tsp"
)

// Config is the top-level scenario file.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Seed feeds every random source; 0 selects the fixed default seed.
	Seed int64 `yaml:"seed"`

	Run    RunConfig     `yaml:"run"`
	Params colony.Params `yaml:"params"`

	// Cities and RandomCities are mutually exclusive.
	Cities       []colony.City `yaml:"cities"`
	RandomCities *RandomCities `yaml:"random_cities,omitempty"`

	HTTP  HTTPConfig  `yaml:"http"`
	Chart ChartConfig `yaml:"chart"`
}

// RunConfig controls the driver loop.
type RunConfig struct {
	// IntervalMs is the pause between iterations; 0 runs back to back.
	IntervalMs int `yaml:"interval_ms"`

	// MaxIterations pauses the driver once a run reaches that many
	// iterations; Resume or a new run continues. 0 is unlimited.
	MaxIterations int `yaml:"max_iterations"`

	InitialPheromone float64 `yaml:"initial_pheromone"`

	// ToggleRadius is how close a click must land to remove a city.
	ToggleRadius float64 `yaml:"toggle_radius"`
}

// RandomCities scatters Count cities over a Width×Height canvas.
type RandomCities struct {
	Count  int     `yaml:"count"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HTTPConfig configures the server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// ChartConfig configures PNG output.
type ChartConfig struct {
	// Dir receives convergence.png and tour.png; empty disables charts.
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when a key is absent.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Run: RunConfig{
			IntervalMs:       50,
			InitialPheromone: pheromone.InitialLevel,
			ToggleRadius:     10,
		},
		Params: colony.DefaultParams(),
		HTTP:   HTTPConfig{Addr: ":8080"},
	}
}

// Interval returns Run.IntervalMs as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Run.IntervalMs) * time.Millisecond
}

// BuildCities returns the explicit cities, or generates RandomCities from
// Seed, or nil when neither is set.
func (c *Config) BuildCities() ([]colony.City, error) {
	if len(c.Cities) > 0 {
		out := make([]colony.City, len(c.Cities))
		for i, city := range c.Cities {
			out[i] = colony.City{ID: i, X: city.X, Y: city.Y}
		}
		return out, nil
	}
	if c.RandomCities == nil {
		return nil, nil
	}
	return colony.RandomCities(c.RandomCities.Count, c.RandomCities.Width, c.RandomCities.Height, tsp.NewRand(c.Seed))
}

func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, warning, or error)", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", cfg.LogFormat)
	}

	if err := cfg.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}

	if cfg.Run.IntervalMs < 0 {
		return fmt.Errorf("run.interval_ms cannot be negative")
	}
	if cfg.Run.MaxIterations < 0 {
		return fmt.Errorf("run.max_iterations cannot be negative")
	}
	if !(cfg.Run.InitialPheromone > 0) || math.IsInf(cfg.Run.InitialPheromone, 0) {
		return fmt.Errorf("run.initial_pheromone must be a positive finite number")
	}
	if math.IsNaN(cfg.Run.ToggleRadius) || cfg.Run.ToggleRadius < 0 {
		return fmt.Errorf("run.toggle_radius cannot be negative")
	}

	if len(cfg.Cities) > 0 && cfg.RandomCities != nil {
		return fmt.Errorf("cities and random_cities are mutually exclusive")
	}
	for i, c := range cfg.Cities {
		if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
			return fmt.Errorf("cities[%d]: coordinates must be finite", i)
		}
	}
	if rc := cfg.RandomCities; rc != nil {
		if rc.Count < 0 {
			return fmt.Errorf("random_cities.count cannot be negative")
		}
		if !(rc.Width > 0) || !(rc.Height > 0) {
			return fmt.Errorf("random_cities.width and height must be positive")
		}
	}
	return nil
}
