package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/doctower/pkg/cache"
	"github.com/matzehuels/doctower/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
[project]
name = "timers"
title = "Timers Library"

[build]
formats = ["rst", "dot"]

[[page]]
path = "api/timer"
title = "Timer"
body = "The timer type."

[[page.section]]
name = "usage"
title = "Usage"
body = "Start the timer."

[[graph]]
name = "modules"
title = "Module layout"
nodes = ["timer", "clock"]

[[graph.edge]]
tail = "timer"
head = "clock"
`))
	if err != nil {
		t.Fatalf("config.Parse: %v", err)
	}
	return cfg
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestAssemble(t *testing.T) {
	tree, err := Assemble(testConfig(t))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Manifest has no index page, so one is synthesized first.
	if len(tree.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(tree.Documents))
	}
	if tree.Documents[0].Name() != "index" {
		t.Errorf("first document = %q, want index", tree.Documents[0].Name())
	}
	if tree.Documents[0].Title != "Timers Library" {
		t.Errorf("index title = %q", tree.Documents[0].Title)
	}
	if tree.Root.Len() != 2 {
		t.Errorf("root members = %d, want 2", tree.Root.Len())
	}

	// Sections from the manifest land inside their page.
	if !tree.Documents[1].ContainsName("usage") {
		t.Errorf("usage section missing from page")
	}

	// index toctree + page paragraph + section + its paragraph
	if n := tree.NodeCount(); n != 6 {
		t.Errorf("node count = %d, want 6", n)
	}

	if len(tree.Graphs) != 1 {
		t.Fatalf("graphs = %d, want 1", len(tree.Graphs))
	}
	src := tree.Graphs[0].DOT()
	for _, want := range []string{"digraph", "timer", "clock", "->"} {
		if !strings.Contains(src, want) {
			t.Errorf("graph DOT missing %q:\n%s", want, src)
		}
	}
}

func TestAssembleKeepsExplicitIndex(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[project]
name = "x"

[[page]]
path = "index"
title = "Hand-written index"
`))
	if err != nil {
		t.Fatalf("config.Parse: %v", err)
	}
	tree, err := Assemble(cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(tree.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(tree.Documents))
	}
	if tree.Documents[0].Title != "Hand-written index" {
		t.Errorf("index was replaced: %q", tree.Documents[0].Title)
	}
}

func TestOptionsValidation(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Errorf("missing config accepted")
	}

	opts = Options{Config: testConfig(t), Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Errorf("invalid format accepted")
	}

	opts = Options{Config: testConfig(t)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("formats not defaulted from manifest: %v", opts.Formats)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Config: testConfig(t)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.BuildID == "" {
		t.Errorf("missing build id")
	}
	if result.Stats.PageCount != 2 || result.Stats.GraphCount != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.CacheInfo.PageMisses != 2 || result.CacheInfo.PageHits != 0 {
		t.Errorf("first run cache info = %+v", result.CacheInfo)
	}

	page, ok := result.Pages["api/timer"]
	if !ok {
		t.Fatalf("page api/timer missing, have %v", mapsKeys(result.Pages))
	}
	for _, want := range []string{"Timer\n=====", "Usage\n-----", "Start the timer."} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q:\n%s", want, page)
		}
	}
	if _, ok := result.Artifacts["modules.dot"]; !ok {
		t.Errorf("dot artifact missing, have %v", mapsKeys(result.Artifacts))
	}

	// Second run over the same manifest hits the page cache.
	again, err := runner.Execute(ctx, Options{Config: testConfig(t)})
	if err != nil {
		t.Fatalf("Execute again: %v", err)
	}
	if again.CacheInfo.PageHits != 2 || again.CacheInfo.PageMisses != 0 {
		t.Errorf("second run cache info = %+v", again.CacheInfo)
	}
	if again.Pages["api/timer"] != page {
		t.Errorf("cached page differs from rendered page")
	}

	// Refresh bypasses the cache.
	fresh, err := runner.Execute(ctx, Options{Config: testConfig(t), Refresh: true})
	if err != nil {
		t.Fatalf("Execute refresh: %v", err)
	}
	if fresh.CacheInfo.PageHits != 0 {
		t.Errorf("refresh run hit cache: %+v", fresh.CacheInfo)
	}
}

func TestWriteOutputs(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Config: testConfig(t)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	dir := t.TempDir()
	written, err := runner.WriteOutputs(result, dir)
	if err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}
	if len(written) != 3 {
		t.Errorf("written = %v, want 3 files", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "api", "timer.rst"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Timer") {
		t.Errorf("page file content wrong:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "modules.dot")); err != nil {
		t.Errorf("dot file missing: %v", err)
	}
}

func mapsKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
