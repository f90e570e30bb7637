package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig contains HTTP API server settings
type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"` // Max HTTP header size (default: 1MB)
	ReadTimeout    time.Duration `yaml:"read_timeout"`     // HTTP read timeout (default: 30s)
	WriteTimeout   time.Duration `yaml:"write_timeout"`    // HTTP write timeout (default: 30s)
	IdleTimeout    time.Duration `yaml:"idle_timeout"`     // HTTP idle timeout (default: 60s)
	Auth           AuthConfig    `yaml:"auth"`
	AllowedIPs     []string      `yaml:"allowed_ips"` // IP addresses/CIDRs allowed to access API (empty = allow all)
}

// AuthConfig contains API authentication settings
type AuthConfig struct {
	Required     bool   `yaml:"required"`
	APIKey       string `yaml:"api_key"`       // Shared key checked against the X-API-Key header
	PasswordHash string `yaml:"password_hash"` // bcrypt hash for HTTP basic auth (optional alternative to the key)
}

// StorageConfig contains persistence settings
type StorageConfig struct {
	Path        string        `yaml:"path"`         // bbolt database file
	MirrorDelay time.Duration `yaml:"mirror_delay"` // Debounce for working-state writes (default: 500ms)
}

// ExportConfig contains PNG export settings
type ExportConfig struct {
	OutputDir  string        `yaml:"output_dir"` // Directory receiving exported PNG files
	Rasterizer string        `yaml:"rasterizer"` // HTTP endpoint of the rendering service
	Pause      time.Duration `yaml:"pause"`      // Delay between exports in a batch (default: 500ms)
	Background string        `yaml:"background"` // Opaque capture background (default: #ffffff)
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// MetricsConfig contains Prometheus metrics settings
type MetricsConfig struct {
	Enabled    bool     `yaml:"enabled"`
	ListenAddr string   `yaml:"listen_addr"` // Default: :9090
	Path       string   `yaml:"path"`        // Default: /metrics
	AllowedIPs []string `yaml:"allowed_ips"` // IP addresses/CIDRs allowed to access metrics
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, for running
// without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for configuration
func (c *Config) setDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.MaxHeaderBytes == 0 {
		c.Server.MaxHeaderBytes = 1 << 20 // 1 MB
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}

	if c.Storage.Path == "" {
		c.Storage.Path = "/var/lib/planweave/planweave.db"
	}
	if c.Storage.MirrorDelay == 0 {
		c.Storage.MirrorDelay = 500 * time.Millisecond
	}

	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "exports"
	}
	if c.Export.Pause == 0 {
		c.Export.Pause = 500 * time.Millisecond
	}
	if c.Export.Background == "" {
		c.Export.Background = "#ffffff"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	if c.Metrics.ListenAddr == "" {
		c.Metrics.ListenAddr = ":9090"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Auth.Required && c.Server.Auth.APIKey == "" && c.Server.Auth.PasswordHash == "" {
		return fmt.Errorf("server.auth.api_key or server.auth.password_hash is required when auth is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format: %s (must be json or text)", c.Logging.Format)
	}

	if c.Export.Pause < 0 {
		return fmt.Errorf("export.pause must not be negative")
	}
	if c.Storage.MirrorDelay < 0 {
		return fmt.Errorf("storage.mirror_delay must not be negative")
	}

	return nil
}
