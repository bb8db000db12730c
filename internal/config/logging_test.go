package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "logs", cfg.Dir)
	assert.Equal(t, 100, cfg.Rotation.MaxSize)
	assert.Equal(t, 10, cfg.Rotation.MaxBackups)
	assert.Equal(t, 30, cfg.Rotation.MaxAge)
	assert.True(t, cfg.Rotation.Compress)
	assert.True(t, cfg.Console.Enabled)
	assert.False(t, cfg.File.Enabled)
}

func TestLoggingConfigYAMLParsing(t *testing.T) {
	yamlData := `
level: "debug"
format: "json"
dir: "/var/log/docgate"
rotation:
  max_size: 50
  max_backups: 5
  max_age: 14
  compress: false
console:
  enabled: false
file:
  enabled: true
`
	var cfg LoggingConfig
	require.NoError(t, yaml.Unmarshal([]byte(yamlData), &cfg))

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/var/log/docgate", cfg.Dir)
	assert.Equal(t, 50, cfg.Rotation.MaxSize)
	assert.Equal(t, 5, cfg.Rotation.MaxBackups)
	assert.Equal(t, 14, cfg.Rotation.MaxAge)
	assert.False(t, cfg.Rotation.Compress)
	assert.False(t, cfg.Console.Enabled)
	assert.True(t, cfg.File.Enabled)
}

func TestLoggingConfig_ApplyDefaults(t *testing.T) {
	cfg := LoggingConfig{Level: "warn"}
	cfg.ApplyDefaults()

	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "logs", cfg.Dir)
	assert.Equal(t, 100, cfg.Rotation.MaxSize)
	assert.False(t, cfg.Console.Enabled)
}

func TestLoggingConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")

	cfg := DefaultLoggingConfig()
	require.NoError(t, cfg.ApplyEnvOverrides())

	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.File.Enabled)
	assert.True(t, cfg.Console.Enabled)
}

func TestLoggingConfig_ResolvePaths(t *testing.T) {
	tests := []struct {
		name      string
		dir       string
		configDir string
		want      string
	}{
		{"relative", "logs", "config", "logs"},
		{"nested config dir", "logs", filepath.Join("deploy", "config"), filepath.Join("deploy", "logs")},
		{"parent", "../logs", filepath.Join("deploy", "config"), "logs"},
		{"absolute", "/var/log/docgate", "config", "/var/log/docgate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoggingConfig{Dir: tt.dir}
			cfg.ResolvePaths(tt.configDir)
			assert.Equal(t, tt.want, cfg.Dir)
		})
	}
}

func TestLoggingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LoggingConfig
		wantErr bool
	}{
		{"defaults", DefaultLoggingConfig(), false},
		{"bad level", LoggingConfig{Level: "trace", Format: "text"}, true},
		{"bad format", LoggingConfig{Level: "info", Format: "xml"}, true},
		{"files without dir", LoggingConfig{Level: "info", Format: "text", File: FileConfig{Enabled: true}}, true},
		{"no dir, no files", LoggingConfig{Level: "info", Format: "json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
