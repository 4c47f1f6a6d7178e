package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/showdown/internal/config"
	"github.com/lox/showdown/internal/display"
)

// Globals are flags shared by every command
type Globals struct {
	Config    string `kong:"default='showdown.hcl',type='path',help='HCL configuration file (optional)'"`
	LogLevel  string `kong:"help='Log level: debug, info, warn, error (overrides config)'"`
	LogFormat string `kong:"help='Log format: text, json or logfmt (overrides config)'"`
	NoColor   bool   `kong:"help='Disable coloured output'"`
}

// setup loads the configuration and builds the root logger
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	if g.NoColor {
		display.DisableColor()
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", g.Config, err)
	}

	logger, err := newLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded", "path", g.Config, "iterations", cfg.Simulation.Iterations, "workers", cfg.Simulation.Workers)
	return cfg, logger, nil
}
