package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	gateway "github.com/syntrixbase/docgate/internal/gateway/config"
	"github.com/syntrixbase/docgate/internal/server"
	"github.com/syntrixbase/docgate/internal/store"
)

// Config holds the application configuration
type Config struct {
	Service ServiceInfo           `yaml:"service"`
	Server  server.Config         `yaml:"server"`
	Store   store.Config          `yaml:"store"`
	Gateway gateway.GatewayConfig `yaml:"gateway"`
	Logging LoggingConfig         `yaml:"logging"`
}

// ServiceInfo names the running service in logs and in the store handshake.
type ServiceInfo struct {
	Name string `yaml:"name" env:"SERVICE_NAME"`
}

const defaultServiceName = "docgate"

func (s *ServiceInfo) ApplyDefaults() {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
}

func (s *ServiceInfo) ApplyEnvOverrides() error {
	if err := env.Parse(s); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (s *ServiceInfo) Validate() error {
	if s.Name == "" {
		return errors.New("service.name cannot be empty")
	}
	return nil
}

// DefaultConfig returns the configuration before any file or variable is read.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceInfo{Name: defaultServiceName},
		Server:  server.DefaultConfig(),
		Store:   store.DefaultConfig(),
		Gateway: gateway.DefaultGatewayConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// LoadConfig loads configuration from files and environment variables.
// Order: defaults -> config.yml -> config.local.yml -> .env -> ApplyDefaults
// -> ApplyEnvOverrides -> Validate. Variables already present in the
// environment win over .env.
func LoadConfig(configDir string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadFile(filepath.Join(configDir, "config.yml"), cfg); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(configDir, "config.local.yml"), cfg); err != nil {
		return nil, err
	}
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := ApplyServiceConfigs(
		&cfg.Service,
		&cfg.Server,
		&cfg.Store,
		&cfg.Gateway,
		&cfg.Logging,
	); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	cfg.Logging.ResolvePaths(configDir)

	if cfg.Store.AppName == "" {
		cfg.Store.AppName = cfg.Service.Name
	}
	return cfg, nil
}

func loadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	slog.Debug("Loaded config file", "file", filename)
	return nil
}

func loadDotEnv(filename string) error {
	if err := godotenv.Load(filename); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", filename, err)
	}
	return nil
}
