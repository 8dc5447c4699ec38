// Package config loads the dressform configuration file.
//
// The file lives at $XDG_CONFIG_HOME/dressform/config.toml (default
// ~/.config/dressform/config.toml). Every key is optional; environment
// variables prefixed with DRESSFORM_ override the file, and command-line
// flags override both.
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[draft]
//	split = "contour"
//
//	[render]
//	paper = "a3"
//	formats = ["svg", "pdf"]
//
//	[server]
//	addr = ":8080"
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dressform/pkg/cache"
	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/pipeline"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
	"github.com/matzehuels/dressform/pkg/render/pattern/tile"
)

// AppName is used for the config and cache directories.
const AppName = "dressform"

// Cache backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Config is the merged configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Draft  DraftConfig  `toml:"draft"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir,omitempty"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
	Prefix        string `toml:"prefix,omitempty"`
}

// DraftConfig holds drafting defaults.
type DraftConfig struct {
	Split string `toml:"split"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Style   string   `toml:"style"`
	Paper   string   `toml:"paper"`
	Scale   float64  `toml:"scale"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: BackendFile},
		Draft:  DraftConfig{Split: draft.StandardSplit.Name},
		Render: RenderConfig{Formats: []string{pipeline.FormatSVG}, Style: pipeline.DefaultStyle, Paper: pipeline.DefaultPaper, Scale: pipeline.DefaultScale},
		Server: ServerConfig{Addr: ":8080", MaxBodyBytes: 1 << 20},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory using the XDG standard
// (~/.cache/dressform/).
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

// Load reads the config file at path (the default location when empty),
// applies environment overrides and validates the result. A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, derrors.Wrap(derrors.ErrCodeInvalidInput, err, "read config %s", path)
		case len(md.Undecoded()) > 0:
			return Config{}, derrors.New(derrors.ErrCodeInvalidInput, "config %s: unknown key %s", path, md.Undecoded()[0])
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from DRESSFORM_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"DRESSFORM_CACHE":          &c.Cache.Backend,
		"DRESSFORM_CACHE_DIR":      &c.Cache.Dir,
		"DRESSFORM_REDIS_ADDR":     &c.Cache.RedisAddr,
		"DRESSFORM_REDIS_PASSWORD": &c.Cache.RedisPassword,
		"DRESSFORM_CACHE_PREFIX":   &c.Cache.Prefix,
		"DRESSFORM_SPLIT":          &c.Draft.Split,
		"DRESSFORM_STYLE":          &c.Render.Style,
		"DRESSFORM_PAPER":          &c.Render.Paper,
		"DRESSFORM_ADDR":           &c.Server.Addr,
	}
	for k, dst := range str {
		if v, ok := lookup(k); ok {
			*dst = v
		}
	}
	if v, ok := lookup("DRESSFORM_FORMATS"); ok {
		c.Render.Formats = strings.Split(v, ",")
	}
	if v, ok := lookup("DRESSFORM_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return derrors.New(derrors.ErrCodeInvalidInput, "DRESSFORM_REDIS_DB must be an integer (got %q)", v)
		}
		c.Cache.RedisDB = db
	}
	if v, ok := lookup("DRESSFORM_SCALE"); ok {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return derrors.New(derrors.ErrCodeInvalidInput, "DRESSFORM_SCALE must be a number (got %q)", v)
		}
		c.Render.Scale = s
	}
	return nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return derrors.New(derrors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
		}
	default:
		return derrors.New(derrors.ErrCodeInvalidInput, "unknown cache backend %q (expected file, redis, memory or none)", c.Cache.Backend)
	}
	if _, err := draft.LookupDartSplit(c.Draft.Split); err != nil {
		return err
	}
	if _, err := sink.StyleByName(c.Render.Style); err != nil {
		return err
	}
	if _, err := tile.PaperByName(c.Render.Paper); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Scale < 0 || c.Render.Scale > pipeline.MaxScale {
		return derrors.New(derrors.ErrCodeInvalidInput, "render scale must be between 0 and %.0f (got %v)", pipeline.MaxScale, c.Render.Scale)
	}
	return nil
}

// OpenCache opens the configured cache backend. noCache forces a
// NullCache.
func (c CacheConfig) OpenCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendMemory:
		return cache.NewMemoryCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Dir
	if dir == "" {
		d, err := CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Keyer returns the keyer for the configured prefix.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Prefix == "" || c.Backend == BackendRedis {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Prefix)
}
