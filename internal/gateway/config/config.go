package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultMaxBodySize admits a batch of several maximum-size documents.
const DefaultMaxBodySize int64 = 48 << 20

type GatewayConfig struct {
	MaxBodySize int64         `yaml:"max_body_size" env:"GATEWAY_MAX_BODY_SIZE"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path" env:"METRICS_PATH"`
}

func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		MaxBodySize: DefaultMaxBodySize,
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// ApplyDefaults fills in zero values with defaults.
func (g *GatewayConfig) ApplyDefaults() {
	defaults := DefaultGatewayConfig()
	if g.MaxBodySize == 0 {
		g.MaxBodySize = defaults.MaxBodySize
	}
	if g.Metrics.Path == "" {
		g.Metrics.Path = defaults.Metrics.Path
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (g *GatewayConfig) ApplyEnvOverrides() error {
	if err := env.Parse(g); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	return nil
}

// Validate returns an error if the configuration is invalid.
func (g *GatewayConfig) Validate() error {
	if g.MaxBodySize < 0 {
		return fmt.Errorf("gateway.max_body_size must not be negative")
	}
	if g.Metrics.Enabled && !strings.HasPrefix(g.Metrics.Path, "/") {
		return fmt.Errorf("gateway.metrics.path must start with '/': %q", g.Metrics.Path)
	}
	return nil
}
