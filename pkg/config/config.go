// Package config loads timeline settings from TOML or YAML files.
//
// Files are applied in order on top of [Default]; keys missing from a file
// keep their previous value. Environment variables prefixed TIMELINE_ are
// applied last.
//
//	# timeline.toml
//	[render]
//	width = 900
//
//	[timeline.scale]
//	format = "DD.MM. hh:mm"
//	color = "#444"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Config is the complete file configuration.
type Config struct {
	Timeline timeline.Options `toml:"timeline" yaml:"timeline"`
	Render   RenderConfig     `toml:"render" yaml:"render"`
	Server   ServerConfig     `toml:"server" yaml:"server"`
	Cache    CacheConfig      `toml:"cache" yaml:"cache"`
}

// RenderConfig holds defaults for one-off renders.
type RenderConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Format string  `toml:"format" yaml:"format"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
	// Redis is a redis:// URL; empty keeps the artifact cache on disk.
	Redis    string `toml:"redis" yaml:"redis"`
	CacheTTL string `toml:"cache_ttl" yaml:"cache_ttl"`
	// MaxBody bounds request bodies in bytes.
	MaxBody int64 `toml:"max_body" yaml:"max_body"`
}

// CacheConfig configures the on-disk artifact cache.
type CacheConfig struct {
	Dir      string `toml:"dir" yaml:"dir"`
	Disabled bool   `toml:"disabled" yaml:"disabled"`
}

// TTL parses CacheTTL, falling back to 24 hours.
func (c ServerConfig) TTL() time.Duration {
	if d, err := time.ParseDuration(c.CacheTTL); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timeline: timeline.DefaultOptions(),
		Render:   RenderConfig{Width: 800, Format: "svg"},
		Server:   ServerConfig{Addr: ":8080", CacheTTL: "24h", MaxBody: 1 << 20},
	}
}

// Load applies each existing file in paths to the defaults, then the
// environment. Empty and missing paths are skipped.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Timeline.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is like Load but fails when path does not exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	return Load(path)
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "config %s: unsupported extension (want .toml, .yaml or .yml)", path)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TIMELINE_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("TIMELINE_REDIS_URL"); ok {
		c.Server.Redis = v
	}
	if v, ok := lookup("TIMELINE_CACHE_DIR"); ok && v != "" {
		c.Cache.Dir = v
	}
	if v, ok := lookup("TIMELINE_LOCATION"); ok && v != "" {
		c.Timeline.Location = v
	}
	if v, ok := lookup("TIMELINE_WIDTH"); ok && v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w <= 0 {
			return errors.New(errors.ErrCodeInvalidOptions, "TIMELINE_WIDTH must be a positive number, got %q", v)
		}
		c.Render.Width = w
	}
	return nil
}

// Paths returns the default config locations, lowest precedence first:
// the user config directory, then the working directory.
func Paths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "timeline", "config.toml"),
			filepath.Join(dir, "timeline", "config.yaml"))
	}
	return append(paths, "timeline.toml", "timeline.yaml")
}
