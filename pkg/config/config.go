// Package config loads weekgrid settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, WEEKGRID_*
// environment variables, command-line flags (applied by the caller).
//
// A config file looks like:
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[render]
//	formats = ["html", "xlsx"]
//	title = "Grade 4 timetable"
//
//	[server]
//	addr = ":8080"
//
//	[colors]
//	Math = "lightgreen"
//	Invariants = "silver"
//
// Colours listed here fill in blocks a document does not colour itself.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekgrid/pkg/cache"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the HTTP listen address.
const DefaultAddr = ":8080"

// Config is the complete weekgrid configuration.
type Config struct {
	Cache  CacheConfig       `toml:"cache"`
	Render RenderConfig      `toml:"render"`
	Server ServerConfig      `toml:"server"`
	Colors map[string]string `toml:"colors"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend" env:"WEEKGRID_CACHE"`         // file, redis or none
	Dir           string `toml:"dir" env:"WEEKGRID_CACHE_DIR"`         // file backend; empty means the user cache dir
	RedisAddr     string `toml:"redis_addr" env:"WEEKGRID_REDIS_ADDR"` // host:port
	RedisPassword string `toml:"redis_password" env:"WEEKGRID_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"WEEKGRID_REDIS_DB"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats   []string `toml:"formats" env:"WEEKGRID_FORMATS" envSeparator:","`
	Title     string   `toml:"title" env:"WEEKGRID_TITLE"`
	NoSummary bool     `toml:"no_summary" env:"WEEKGRID_NO_SUMMARY"`
	Scale     float64  `toml:"scale" env:"WEEKGRID_SCALE"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" env:"WEEKGRID_ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: BackendFile, RedisAddr: "localhost:6379"},
		Render: RenderConfig{Formats: []string{pipeline.DefaultFormat}, Scale: pipeline.DefaultScale},
		Server: ServerConfig{Addr: DefaultAddr},
		Colors: map[string]string{},
	}
}

// DefaultPath returns the per-user config file location
// (e.g. ~/.config/weekgrid/config.toml).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "weekgrid", "config.toml"), nil
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read environment")
	}
	if cfg.Colors == nil {
		cfg.Colors = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend and format names.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend: %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Render.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "render scale must be positive, got %g", c.Render.Scale)
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// PipelineOptions returns run options seeded from the render defaults and
// colours.
func (c Config) PipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Formats:   append([]string(nil), c.Render.Formats...),
		Title:     c.Render.Title,
		NoSummary: c.Render.NoSummary,
		Scale:     c.Render.Scale,
	}
	if len(c.Colors) > 0 {
		opts.DefaultColors = make(map[string]string, len(c.Colors))
		for k, v := range c.Colors {
			opts.DefaultColors[k] = v
		}
	}
	return opts
}

// OpenCache constructs the configured backend. A Redis server that cannot
// be reached yields a disabled cache rather than an error.
func (c Config) OpenCache(ctx context.Context, logger *log.Logger) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		}, logger), nil
	default:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}
