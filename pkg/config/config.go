// Package config loads and validates doctower.toml project manifests.
//
// A manifest names the project, lists the pages and graphs to build,
// and selects the cache backend. [Load] reads and validates a manifest;
// the zero values of optional fields are filled in by [applyDefaults].
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/doctower/pkg/errors"
)

// Cache backend names accepted in the [cache] section.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of a doctower.toml manifest.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Build   BuildConfig   `toml:"build"`
	Cache   CacheConfig   `toml:"cache"`
	Pages   []PageConfig  `toml:"page"`
	Graphs  []GraphConfig `toml:"graph"`
}

// ProjectConfig identifies the documented project.
type ProjectConfig struct {
	Name    string `toml:"name"`
	Title   string `toml:"title"`
	Version string `toml:"version"`
}

// BuildConfig controls where and what the build writes.
type BuildConfig struct {
	Output  string   `toml:"output"`
	Formats []string `toml:"formats"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     duration      `toml:"ttl"`
	Redis   RedisSettings `toml:"redis"`
}

// RedisSettings holds connection settings for the redis backend.
type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// PageConfig describes one documentation page.
type PageConfig struct {
	Path     string          `toml:"path"`
	Title    string          `toml:"title"`
	Body     string          `toml:"body"`
	Sections []SectionConfig `toml:"section"`
}

// SectionConfig describes one section within a page. Sections may nest.
type SectionConfig struct {
	Name     string          `toml:"name"`
	Title    string          `toml:"title"`
	Body     string          `toml:"body"`
	Sections []SectionConfig `toml:"section"`
}

// GraphConfig describes one diagram to render.
type GraphConfig struct {
	Name  string       `toml:"name"`
	Title string       `toml:"title"`
	Nodes []string     `toml:"nodes"`
	Edges []EdgeConfig `toml:"edge"`
}

// EdgeConfig is one directed edge in a diagram.
type EdgeConfig struct {
	Tail  string `toml:"tail"`
	Head  string `toml:"head"`
	Label string `toml:"label"`
}

// duration lets TTLs be written as strings like "24h" in TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Load reads, validates, and defaults a manifest from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading manifest")
	}
	return Parse(data)
}

// Parse validates and defaults a manifest from raw TOML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing manifest")
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Build.Output == "" {
		cfg.Build.Output = "build"
	}
	if len(cfg.Build.Formats) == 0 {
		cfg.Build.Formats = []string{"rst", "svg"}
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = BackendFile
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = ".doctower-cache"
	}
	if cfg.Cache.TTL.Duration == 0 {
		cfg.Cache.TTL.Duration = 24 * time.Hour
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = "localhost:6379"
	}
}

func validate(cfg *Config) error {
	if cfg.Project.Name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "project.name is required")
	}
	switch cfg.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", cfg.Cache.Backend)
	}
	for _, f := range cfg.Build.Formats {
		switch f {
		case "rst", "dot", "svg", "png":
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %s", f)
		}
	}
	seen := make(map[string]bool, len(cfg.Pages))
	for _, p := range cfg.Pages {
		if err := errors.ValidatePageName(p.Path); err != nil {
			return err
		}
		if seen[p.Path] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate page path: %s", p.Path)
		}
		seen[p.Path] = true
	}
	graphs := make(map[string]bool, len(cfg.Graphs))
	for _, g := range cfg.Graphs {
		if g.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "graph.name is required")
		}
		if graphs[g.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate graph name: %s", g.Name)
		}
		graphs[g.Name] = true
		nodes := make(map[string]bool, len(g.Nodes))
		for _, n := range g.Nodes {
			nodes[n] = true
		}
		for _, e := range g.Edges {
			if !nodes[e.Tail] || !nodes[e.Head] {
				return errors.New(errors.ErrCodeInvalidConfig,
					"graph %s edge %s -> %s references unknown node", g.Name, e.Tail, e.Head)
			}
		}
	}
	return nil
}
