// Package config loads vsmod settings from, in increasing precedence:
// built-in defaults, a TOML file, VSMOD_* environment variables and command
// line flags.
//
// The file lives at $XDG_CONFIG_HOME/vsmod/config.toml (or
// ~/.config/vsmod/config.toml):
//
//	base_url = "https://mods.vintagestory.at/api"
//	timeout = "10s"
//	retry_attempts = 1
//
//	[cache]
//	backend = "file"   # memory, file or redis
//	ttl = "1h"
//
//	[serve]
//	addr = "127.0.0.1:8080"
//
// Nested keys map to environment variables with underscores, so cache.backend
// is VSMOD_CACHE_BACKEND.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
)

// AppName names the config and cache directories.
const AppName = "vsmod"

// Cache backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var backends = []string{BackendMemory, BackendFile, BackendRedis}

// Config is the resolved configuration.
type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	Cache         CacheConfig   `mapstructure:"cache"`
	Serve         ServeConfig   `mapstructure:"serve"`
}

// CacheConfig selects and tunes the persistent cache behind the in-memory one.
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	Dir       string        `mapstructure:"dir"` // Empty means the XDG cache directory
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
}

// ServeConfig configures the local mirror started by "vsmod serve".
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:       vintagestory.DefaultBaseURL,
		UserAgent:     integrations.UserAgent(),
		Timeout:       10 * time.Second,
		RetryAttempts: 1,
		RetryDelay:    time.Second,
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       time.Hour,
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must be positive, got %s", c.Timeout)
	}
	if c.RetryAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "retry_attempts must be at least 1, got %d", c.RetryAttempts)
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be one of %s, got %q",
			strings.Join(backends, ", "), c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	return nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/vsmod/config.toml).
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/vsmod/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// ResolvedCacheDir returns Cache.Dir, or [CacheDir] when unset.
func (c Config) ResolvedCacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return CacheDir()
}
