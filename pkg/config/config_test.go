package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/doctower/pkg/errors"
)

const sampleManifest = `
[project]
name = "timers"
title = "Timers Library"
version = "1.2.0"

[build]
output = "docs/build"
formats = ["rst", "svg", "dot"]

[cache]
backend = "redis"
ttl = "1h"

[cache.redis]
addr = "cache.internal:6379"
db = 2

[[page]]
path = "index"
title = "Timers"
body = "Reference documentation for the timers library."

[[page]]
path = "api/timer"
title = "Timer"

[[page.section]]
name = "usage"
title = "Usage"
body = "Create a timer, then start it."

[[graph]]
name = "modules"
title = "Module layout"
nodes = ["timer", "clock", "sched"]

[[graph.edge]]
tail = "timer"
head = "clock"

[[graph.edge]]
tail = "sched"
head = "timer"
label = "uses"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Project.Name != "timers" || cfg.Project.Version != "1.2.0" {
		t.Errorf("project = %+v", cfg.Project)
	}
	if cfg.Build.Output != "docs/build" || len(cfg.Build.Formats) != 3 {
		t.Errorf("build = %+v", cfg.Build)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Addr != "cache.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Cache.Redis)
	}
	if len(cfg.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(cfg.Pages))
	}
	if len(cfg.Pages[1].Sections) != 1 || cfg.Pages[1].Sections[0].Name != "usage" {
		t.Errorf("sections = %+v", cfg.Pages[1].Sections)
	}
	if len(cfg.Graphs) != 1 || len(cfg.Graphs[0].Edges) != 2 {
		t.Errorf("graphs = %+v", cfg.Graphs)
	}
	if cfg.Graphs[0].Edges[1].Label != "uses" {
		t.Errorf("edge label = %q", cfg.Graphs[0].Edges[1].Label)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[project]\nname = \"x\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Build.Output != "build" {
		t.Errorf("output = %q", cfg.Build.Output)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Cache.Dir != ".doctower-cache" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL.Duration)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		code     errors.Code
	}{
		{
			name:     "missing project name",
			manifest: "[build]\noutput = \"x\"\n",
			code:     errors.ErrCodeInvalidConfig,
		},
		{
			name:     "bad backend",
			manifest: "[project]\nname = \"x\"\n[cache]\nbackend = \"memcached\"\n",
			code:     errors.ErrCodeInvalidConfig,
		},
		{
			name:     "bad format",
			manifest: "[project]\nname = \"x\"\n[build]\nformats = [\"pdf\"]\n",
			code:     errors.ErrCodeInvalidFormat,
		},
		{
			name:     "traversal page path",
			manifest: "[project]\nname = \"x\"\n[[page]]\npath = \"../etc\"\n",
			code:     errors.ErrCodeInvalidName,
		},
		{
			name:     "duplicate page",
			manifest: "[project]\nname = \"x\"\n[[page]]\npath = \"a\"\n[[page]]\npath = \"a\"\n",
			code:     errors.ErrCodeInvalidConfig,
		},
		{
			name:     "edge to unknown node",
			manifest: "[project]\nname = \"x\"\n[[graph]]\nname = \"g\"\nnodes = [\"a\"]\n[[graph.edge]]\ntail = \"a\"\nhead = \"b\"\n",
			code:     errors.ErrCodeInvalidConfig,
		},
		{
			name:     "not toml",
			manifest: "{\"project\": {}}",
			code:     errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.manifest))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doctower.toml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project.Name != "timers" {
		t.Errorf("name = %q", cfg.Project.Name)
	}

	_, err = Load(filepath.Join(dir, "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing manifest: %v", err)
	}
}
