// Package config loads the optional sankey.toml configuration file.
//
// A config file provides defaults for the CLI and the HTTP host. Command-line
// flags override values from the file, and the file overrides the pipeline
// defaults:
//
//	[canvas]
//	width = 1024
//	height = 768
//	bar_width = 14
//	gap_ratio = 0.1
//
//	[render]
//	locale = "de"
//	style = "outline"
//	labels = true
//	formats = ["svg", "png"]
//
//	[columns]
//	measure = "Sales"
//	dimensions = ["Region", "Type"]
//	color = "Color"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr = ":8080"
package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/errors"
	sankeyio "github.com/matzehuels/sankey/pkg/io"
	"github.com/matzehuels/sankey/pkg/pipeline"
)

// FileName is the config file looked up in the working directory.
const FileName = "sankey.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultServeAddr is the default listen address of the HTTP host.
const DefaultServeAddr = ":8080"

// Config is the decoded config file.
type Config struct {
	Canvas  Canvas           `toml:"canvas"`
	Render  Render           `toml:"render"`
	Columns sankeyio.Columns `toml:"columns"`
	Cache   Cache            `toml:"cache"`
	Serve   Serve            `toml:"serve"`
}

// Canvas holds layout sizes.
type Canvas struct {
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	BarWidth float64 `toml:"bar_width"`
	GapRatio float64 `toml:"gap_ratio"`
}

// Render holds sorting and output settings.
type Render struct {
	Locale      string   `toml:"locale"`
	Style       string   `toml:"style"`
	Labels      bool     `toml:"labels"`
	Tooltips    bool     `toml:"tooltips"`
	Interactive bool     `toml:"interactive"`
	Formats     []string `toml:"formats"`
	Scale       float64  `toml:"scale"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend       string `toml:"backend"` // file | redis | none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// Serve configures the HTTP host.
type Serve struct {
	Addr            string `toml:"addr"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates TOML config data.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Find loads sankey.toml from dir if it exists. A missing file yields an
// empty config.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return Load(path)
}

// Validate checks enumerations and the options the pipeline would reject.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache: redis backend needs redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache: unknown backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}
	if c.Columns.Measure != "" || len(c.Columns.Dimensions) > 0 {
		if err := c.Columns.Validate(); err != nil {
			return err
		}
	}
	opts := c.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config")
	}
	return nil
}

// Options converts the config to pipeline options. Unset fields stay zero
// so pipeline defaults apply.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Columns:     c.Columns,
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		BarWidth:    c.Canvas.BarWidth,
		GapRatio:    c.Canvas.GapRatio,
		Locale:      c.Render.Locale,
		Labels:      c.Render.Labels,
		Formats:     append([]string(nil), c.Render.Formats...),
		Style:       c.Render.Style,
		Tooltips:    c.Render.Tooltips,
		Interactive: c.Render.Interactive,
		Scale:       c.Render.Scale,
	}
}

// ServeAddr returns the configured listen address or [DefaultServeAddr].
func (c *Config) ServeAddr() string {
	if c.Serve.Addr == "" {
		return DefaultServeAddr
	}
	return c.Serve.Addr
}

// ShutdownTimeout parses the serve shutdown timeout (default 10s).
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	if c.Serve.ShutdownTimeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Serve.ShutdownTimeout)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "serve: shutdown_timeout")
	}
	return d, nil
}

// OpenCache opens the configured cache backend. defaultDir is used by the
// file backend when no dir is configured.
func (c *Config) OpenCache(ctx context.Context, defaultDir string) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if c.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Cache.Prefix)
	}

	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), keyer, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisAddr, c.Cache.RedisPassword, c.Cache.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rc, keyer, nil
	default:
		dir := c.Cache.Dir
		if dir == "" {
			dir = defaultDir
		}
		if dir == "" {
			return cache.NewNullCache(), keyer, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	}
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
