package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names.
const EnvPrefix = "VSMOD"

// flagKeys maps command line flags to config keys. Flags missing from the
// set passed to Load are skipped.
var flagKeys = map[string]string{
	"base-url":      "base_url",
	"user-agent":    "user_agent",
	"timeout":       "timeout",
	"retries":       "retry_attempts",
	"cache-backend": "cache.backend",
	"cache-dir":     "cache.dir",
	"cache-ttl":     "cache.ttl",
	"redis-addr":    "cache.redis_addr",
	"addr":          "serve.addr",
}

// Result is a loaded configuration plus where it came from.
type Result struct {
	Config Config

	// File is the config file that was read, or "" if none existed.
	File string

	// Unknown lists keys in the file that no setting uses.
	Unknown []string
}

// Load resolves the configuration. path may be empty to use [DefaultPath];
// a missing file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Result, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	res := &Result{}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil {
		unknown, err := checkFile(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		res.File = path
		res.Unknown = unknown
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := v.Unmarshal(&res.Config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := res.Config.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("retry_attempts", d.RetryAttempts)
	v.SetDefault("retry_delay", d.RetryDelay)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("serve.addr", d.Serve.Addr)
}

// file mirrors Config in its on-disk TOML form. Durations are strings such
// as "10s" so the file stays hand-editable.
type file struct {
	BaseURL       string    `toml:"base_url"`
	UserAgent     string    `toml:"user_agent,omitempty"`
	Timeout       string    `toml:"timeout"`
	RetryAttempts int       `toml:"retry_attempts"`
	RetryDelay    string    `toml:"retry_delay"`
	Cache         fileCache `toml:"cache"`
	Serve         fileServe `toml:"serve"`
}

type fileCache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir,omitempty"`
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
}

type fileServe struct {
	Addr string `toml:"addr"`
}

func toFile(c Config) file {
	return file{
		BaseURL:       c.BaseURL,
		UserAgent:     c.UserAgent,
		Timeout:       c.Timeout.String(),
		RetryAttempts: c.RetryAttempts,
		RetryDelay:    c.RetryDelay.String(),
		Cache: fileCache{
			Backend:   c.Cache.Backend,
			Dir:       c.Cache.Dir,
			TTL:       c.Cache.TTL.String(),
			RedisAddr: c.Cache.RedisAddr,
		},
		Serve: fileServe{Addr: c.Serve.Addr},
	}
}

// checkFile parses path strictly and returns the keys it does not recognise.
// Syntax errors carry the line number.
func checkFile(path string) ([]string, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return unknown, nil
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(toFile(c))
}

// Write saves c to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func Write(path string, c Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
