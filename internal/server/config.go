package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
)

// Config represents the complete server configuration
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Equity *EquitySettings `hcl:"equity,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// EquitySettings controls the Monte Carlo estimator behind the
// estimate_equity message.
type EquitySettings struct {
	Iterations     int    `hcl:"iterations,optional"`
	MaxIterations  int    `hcl:"max_iterations,optional"`
	Workers        int    `hcl:"workers,optional"`
	HandPolicy     string `hcl:"hand_policy,optional"`
	TiePolicy      string `hcl:"tie_policy,optional"`
	EstimateWaitMs int    `hcl:"estimate_wait_ms,optional"`
	Seed           int64  `hcl:"seed,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Equity: &EquitySettings{
			Iterations:     equity.DefaultIterations,
			MaxIterations:  200000,
			Workers:        0, // auto-size from CPU count
			HandPolicy:     equity.BestOfSeven.String(),
			TiePolicy:      equity.TieLoss.String(),
			EstimateWaitMs: 10000,
			Seed:           0, // time-seeded
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values
	defaults := DefaultConfig()
	if config.Server == nil {
		config.Server = defaults.Server
	}
	if config.Equity == nil {
		config.Equity = defaults.Equity
	}

	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}

	if config.Equity.Iterations == 0 {
		config.Equity.Iterations = defaults.Equity.Iterations
	}
	if config.Equity.MaxIterations == 0 {
		config.Equity.MaxIterations = defaults.Equity.MaxIterations
	}
	if config.Equity.HandPolicy == "" {
		config.Equity.HandPolicy = defaults.Equity.HandPolicy
	}
	if config.Equity.TiePolicy == "" {
		config.Equity.TiePolicy = defaults.Equity.TiePolicy
	}
	if config.Equity.EstimateWaitMs == 0 {
		config.Equity.EstimateWaitMs = defaults.Equity.EstimateWaitMs
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Equity.Iterations < 1 {
		return fmt.Errorf("equity iterations must be positive, got %d", c.Equity.Iterations)
	}
	if c.Equity.MaxIterations < c.Equity.Iterations {
		return fmt.Errorf("equity max_iterations %d below default iterations %d",
			c.Equity.MaxIterations, c.Equity.Iterations)
	}
	if c.Equity.Workers < 0 {
		return fmt.Errorf("equity workers must not be negative, got %d", c.Equity.Workers)
	}
	if c.Equity.EstimateWaitMs < 1 {
		return fmt.Errorf("equity estimate_wait_ms must be positive, got %d", c.Equity.EstimateWaitMs)
	}

	if _, err := equity.ParseCompletionPolicy(c.Equity.HandPolicy); err != nil {
		return fmt.Errorf("equity hand_policy: %w", err)
	}
	if _, err := equity.ParseTiePolicy(c.Equity.TiePolicy); err != nil {
		return fmt.Errorf("equity tie_policy: %w", err)
	}

	return nil
}

// ListenAddress returns the full host:port listen address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
