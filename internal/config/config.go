package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all SDK configuration.
type Config struct {
	Env       string          `yaml:"env" env:"MOBIQO_ENV" env-default:"production"`
	Backend   BackendConfig   `yaml:"backend"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// BackendConfig configures the analytics backend connection.
type BackendConfig struct {
	BaseURL string `yaml:"base_url" env:"MOBIQO_BASE_URL" env-default:"https://api.mobiqo.io"`
	APIKey  string `yaml:"api_key" env:"MOBIQO_API_KEY"`
	Timeout int    `yaml:"timeout" env:"MOBIQO_TIMEOUT" env-default:"30"` // seconds
}

// HeartbeatConfig configures the session liveness loop. The interval is an
// operator setting, not something callers change at runtime.
type HeartbeatConfig struct {
	Interval int `yaml:"interval" env:"MOBIQO_HEARTBEAT_INTERVAL" env-default:"20"` // seconds
}

// StorageConfig configures local persistence. Driver is "sqlite" or
// "memory".
type StorageConfig struct {
	Driver string `yaml:"driver" env:"MOBIQO_STORAGE_DRIVER" env-default:"sqlite"`
	Path   string `yaml:"path" env:"MOBIQO_STORAGE_PATH" env-default:"mobiqo.db"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level" env:"MOBIQO_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"MOBIQO_LOG_FORMAT" env-default:"json"`
}

// LoadConfig reads configuration from a yaml file with environment
// overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv builds configuration from environment variables alone.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Heartbeat.Interval <= 0 {
		return fmt.Errorf("heartbeat.interval must be positive, got %d", c.Heartbeat.Interval)
	}
	switch c.Storage.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage.driver %q (must be sqlite or memory)", c.Storage.Driver)
	}
	return nil
}
