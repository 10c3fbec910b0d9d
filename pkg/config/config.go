package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete gtpmon configuration.
type Config struct {
	Application ApplicationConfig `yaml:"application"`
	Listeners   ListenersConfig   `yaml:"listeners"`
	Decoders    DecodersConfig    `yaml:"decoders"`
	Logs        LogConfig         `yaml:"logs"`
	CDR         CDRConfig         `yaml:"cdr"`
	Web         WebConfig         `yaml:"web"`
}

// ApplicationConfig holds application identity.
type ApplicationConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ListenersConfig holds the UDP listener addresses.
type ListenersConfig struct {
	ControlPlane string `yaml:"control_plane"` // default :2123
	UserPlane    string `yaml:"user_plane"`    // default :2152
	BufferSize   int    `yaml:"buffer_size"`
}

// DecodersConfig toggles the per-version decoders.
type DecodersConfig struct {
	GTPv1C bool `yaml:"gtpv1c"`
	GTPv1U bool `yaml:"gtpv1u"`
	GTPv2C bool `yaml:"gtpv2c"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	Path       string `yaml:"path"`
	Format     string `yaml:"format"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// CDRConfig holds CDR output settings.
type CDRConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Path          string        `yaml:"path"`
	Format        string        `yaml:"format"`
	MaxSizeMB     int           `yaml:"max_size_mb"`
	MaxDuration   time.Duration `yaml:"max_duration"`
	Compress      bool          `yaml:"compress"`
	DatabaseDSN   string        `yaml:"database_dsn"`
	RetentionDays int           `yaml:"retention_days"`
}

// WebConfig holds the HTTP API settings.
type WebConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	AuthEnabled  bool          `yaml:"auth_enabled"`
	JWTSecret    string        `yaml:"jwt_secret"`
	// Users maps usernames to bcrypt password hashes.
	Users map[string]string `yaml:"users"`
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Default returns a configuration with the standard GTP ports and sane
// buffer sizes.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{Name: "gtpmon", Version: "dev"},
		Listeners: ListenersConfig{
			ControlPlane: ":2123",
			UserPlane:    ":2152",
			BufferSize:   9000,
		},
		Decoders: DecodersConfig{GTPv1C: true, GTPv1U: true, GTPv2C: true},
		Logs:     LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads configuration from a YAML file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()

	return cfg, nil
}

// Get returns the global configuration instance.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}

// Validate performs configuration validation.
func (c *Config) Validate() error {
	if c.Application.Name == "" {
		return fmt.Errorf("application name is required")
	}
	if c.Listeners.ControlPlane == "" && c.Listeners.UserPlane == "" {
		return fmt.Errorf("at least one listener is required")
	}
	if c.Listeners.BufferSize < 1500 {
		return fmt.Errorf("buffer size %d is below the minimum datagram size", c.Listeners.BufferSize)
	}
	if c.Web.Enabled && c.Web.AuthEnabled && c.Web.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required when auth is enabled")
	}
	return nil
}

// WebAddr returns the web server address in host:port format.
func (c *Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}
