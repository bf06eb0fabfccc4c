// Package config handles the configuration for the hstring tools
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Server settings
	Host         string `json:"host" yaml:"host" toml:"host"`
	Port         int    `json:"port" yaml:"port" toml:"port"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`

	// Per client IP, 0 disables limiting
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	RateBurst int     `json:"rate_burst" yaml:"rate_burst" toml:"rate_burst"`

	// Analyzer settings
	CacheBytes      int64 `json:"cache_bytes" yaml:"cache_bytes" toml:"cache_bytes"`
	CacheTTLSeconds int   `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds" toml:"cache_ttl_seconds"`
	Shards          int   `json:"shards" yaml:"shards" toml:"shards"` // >1 splits the cache over a hash ring

	// Random word settings, 0 seeds from system entropy
	RandomSeed uint64 `json:"random_seed" yaml:"random_seed" toml:"random_seed"`

	// Logging settings
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8080,
		MaxBodyBytes:    1 << 20,          // 1MB
		CacheBytes:      1024 * 1024 * 16, // 16MB
		CacheTTLSeconds: 600,
		Shards:          1,
		RateBurst:       20,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// LoadFromFile loads configuration from a JSON, YAML or TOML file chosen by
// extension. Fields missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".toml":
		_, err = toml.Decode(string(data), config)
	default:
		return config, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, config.Validate()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	config := DefaultConfig()
	config.ApplyEnv()
	return config
}

// ApplyEnv overrides fields from HSTRING_* environment variables. Values that
// fail to parse are ignored.
func (c *Config) ApplyEnv() {
	if val := os.Getenv("HSTRING_HOST"); val != "" {
		c.Host = val
	}

	if val := os.Getenv("HSTRING_PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			c.Port = parsed
		}
	}

	if val := os.Getenv("HSTRING_MAX_BODY_BYTES"); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxBodyBytes = parsed
		}
	}

	if val := os.Getenv("HSTRING_RATE_LIMIT"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			c.RateLimit = parsed
		}
	}

	if val := os.Getenv("HSTRING_RATE_BURST"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			c.RateBurst = parsed
		}
	}

	if val := os.Getenv("HSTRING_CACHE_BYTES"); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.CacheBytes = parsed
		}
	}

	if val := os.Getenv("HSTRING_CACHE_TTL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			c.CacheTTLSeconds = parsed
		}
	}

	if val := os.Getenv("HSTRING_SHARDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			c.Shards = parsed
		}
	}

	if val := os.Getenv("HSTRING_RANDOM_SEED"); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.RandomSeed = parsed
		}
	}

	if val := os.Getenv("HSTRING_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv("HSTRING_LOG_FORMAT"); val != "" {
		c.LogFormat = val
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("max_body_bytes must not be negative"))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate_limit and rate_burst must not be negative"))
	}
	if c.CacheBytes < 0 {
		errs = append(errs, errors.New("cache_bytes must not be negative"))
	}
	if c.CacheTTLSeconds < 0 {
		errs = append(errs, errors.New("cache_ttl_seconds must not be negative"))
	}
	if c.Shards < 1 {
		errs = append(errs, fmt.Errorf("shards must be at least 1, got %d", c.Shards))
	}
	return errors.Join(errs...)
}

// Addr returns host:port for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
