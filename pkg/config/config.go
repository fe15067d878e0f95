// Package config loads planline configuration from TOML files.
//
// Every field has a working default, so a missing config file is not an
// error: [Default] yields a fully usable configuration and [Load] applies a
// file on top of it. Command-line flags override loaded values at the CLI
// layer.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/planline/planline/pkg/errors"
)

// Duration wraps time.Duration so TOML files can use strings like "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Planarity controls the generation adapter.
type Planarity struct {
	Strict       bool `toml:"strict"`
	AutoOptimize bool `toml:"auto_optimize"`
}

// Generate controls the generation driver.
type Generate struct {
	MaxSteps int `toml:"max_steps"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend string   `toml:"backend"` // "file", "redis" or "none"
	Dir     string   `toml:"dir"`     // file backend directory, empty means the user cache dir
	TTL     Duration `toml:"ttl"`
}

// Redis holds connection settings for the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// History selects and configures the run history store.
type History struct {
	Backend string `toml:"backend"` // "memory", "sqlite" or "mongo"
	Path    string `toml:"path"`    // sqlite database file
}

// Mongo holds connection settings for the mongo history backend.
type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Config is the root configuration.
type Config struct {
	Planarity Planarity `toml:"planarity"`
	Generate  Generate  `toml:"generate"`
	Cache     Cache     `toml:"cache"`
	Redis     Redis     `toml:"redis"`
	History   History   `toml:"history"`
	Mongo     Mongo     `toml:"mongo"`
	Server    Server    `toml:"server"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Planarity: Planarity{Strict: true, AutoOptimize: true},
		Generate:  Generate{MaxSteps: 256},
		Cache:     Cache{Backend: "file", TTL: Duration(24 * time.Hour)},
		Redis:     Redis{Addr: "localhost:6379"},
		History:   History{Backend: "memory", Path: "planline.db"},
		Mongo:     Mongo{URI: "mongodb://localhost:27017", Database: "planline"},
		Server:    Server{Addr: ":8080"},
	}
}

// Load reads a TOML file at path and applies it over the defaults. An empty
// path returns the defaults unchanged; a missing file is an error so typos
// in --config surface instead of being silently ignored.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config: %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config: %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", c.Cache.Backend)
	}
	switch c.History.Backend {
	case "memory", "sqlite", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown history backend: %s", c.History.Backend)
	}
	if c.Generate.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "generate.max_steps must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}
