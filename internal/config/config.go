// Package config loads the showdown HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/showdown/internal/showdown"
)

const (
	DefaultIterations       = 100_000
	DefaultProgressInterval = time.Second
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
)

// Config represents the complete configuration file
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Log        *LogSettings        `hcl:"log,block"`
	Scenarios  []ScenarioConfig    `hcl:"scenario,block"`
}

// SimulationSettings controls Monte Carlo runs
type SimulationSettings struct {
	Iterations       int    `hcl:"iterations,optional"`
	Workers          int    `hcl:"workers,optional"`
	Seed             int64  `hcl:"seed,optional"`
	ProgressInterval string `hcl:"progress_interval,optional"`
}

// LogSettings controls the root logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// ScenarioConfig is a named set of hole cards and an optional board
type ScenarioConfig struct {
	Name    string   `hcl:"name,label"`
	Players []string `hcl:"players"`
	Board   string   `hcl:"board,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes configuration from HCL source.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %w", diags)
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Iterations == 0 {
		c.Simulation.Iterations = DefaultIterations
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Simulation.ProgressInterval == "" {
		c.Simulation.ProgressInterval = DefaultProgressInterval.String()
	}

	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Iterations < 1 {
		return fmt.Errorf("simulation: iterations must be positive, got %d", c.Simulation.Iterations)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive, got %d", c.Simulation.Workers)
	}
	if _, err := c.ProgressInterval(); err != nil {
		return err
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log: invalid format %q", c.Log.Format)
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if seen[s.Name] {
			return fmt.Errorf("scenario %s: defined more than once", s.Name)
		}
		seen[s.Name] = true
		if _, err := s.Scenario(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	}

	return nil
}

// ProgressInterval returns the parsed progress interval. Zero disables
// progress logging.
func (c *Config) ProgressInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.ProgressInterval)
	if err != nil {
		return 0, fmt.Errorf("simulation: invalid progress_interval: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation: progress_interval must not be negative")
	}
	return d, nil
}

// GetScenarioByName returns a scenario configuration by name
func (c *Config) GetScenarioByName(name string) *ScenarioConfig {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}

// Scenario parses the configured cards into a validated scenario.
func (s ScenarioConfig) Scenario() (showdown.Scenario, error) {
	return showdown.ParseScenario(s.Players, s.Board)
}
