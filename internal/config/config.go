package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration, loaded from environment variables.
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	FS        FSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LoggingConfig holds log level and output format settings.
type LoggingConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// FSConfig holds filesystem node settings.
type FSConfig struct {
	// WorkDir anchors relative paths; empty means the process working
	// directory.
	WorkDir string `envconfig:"FS_WORKDIR" default:""`
	// MaxReadBytes caps file reads when a call sets no explicit limit;
	// 0 means unlimited.
	MaxReadBytes int64 `envconfig:"FS_MAX_READ_BYTES" default:"0"`
	// BackupSuffix names derived backup files; empty means ".bak".
	BackupSuffix string `envconfig:"FS_BACKUP_SUFFIX" default:".bak"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		FS: FSConfig{
			WorkDir:      "",
			MaxReadBytes: 0,
			BackupSuffix: ".bak",
		},
	}
}

// Load reads configuration from environment variables, applying struct
// defaults for anything unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads from the environment, falling back to the built-in
// configuration on error.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}
