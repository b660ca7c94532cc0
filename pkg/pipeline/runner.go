package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/doctower/pkg/cache"
	"github.com/matzehuels/doctower/pkg/dot"
	"github.com/matzehuels/doctower/pkg/rst"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// buildManifest is the cache record written under the tree key. It lets
// later runs and the cache command report what a build produced without
// re-assembling it.
type buildManifest struct {
	BuildID string   `json:"build_id"`
	Pages   []string `json:"pages"`
	Graphs  []string `json:"graphs"`
}

// Execute runs the complete assemble → render pipeline with caching.
// Outputs stay in memory; call WriteOutputs to place them on disk.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{
		BuildID:   uuid.NewString(),
		Pages:     make(map[string]string),
		Artifacts: make(map[string][]byte),
	}
	cfg := opts.Config
	ttl := cfg.Cache.TTL.Duration
	digest := configDigest(opts)

	// Stage 1: Assemble
	assembleStart := time.Now()
	tree, err := Assemble(cfg)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Tree = tree
	result.Stats.AssembleTime = time.Since(assembleStart)
	result.Stats.PageCount = len(tree.Documents)
	result.Stats.GraphCount = len(tree.Graphs)
	result.Stats.NodeCount = tree.NodeCount()

	logger.Info("assembled document tree",
		"build", result.BuildID,
		"pages", result.Stats.PageCount,
		"graphs", result.Stats.GraphCount,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.AssembleTime)

	// Stage 2: Render
	renderStart := time.Now()
	if opts.HasFormat(FormatRST) {
		for _, doc := range tree.Documents {
			page, hit := r.renderPage(ctx, doc, digest, ttl, opts.Refresh)
			result.Pages[doc.Name()] = page
			if hit {
				result.CacheInfo.PageHits++
			} else {
				result.CacheInfo.PageMisses++
			}
		}
	}
	for _, g := range tree.Graphs {
		if err := r.renderGraph(ctx, g, result, opts, ttl); err != nil {
			return nil, fmt.Errorf("render graph %s: %w", g.Name(), err)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"page_hits", result.CacheInfo.PageHits,
		"artifact_hits", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)

	r.storeManifest(ctx, result, digest, ttl)
	return result, nil
}

// renderPage renders one page, consulting the cache first. Rendering is
// deterministic, so a stale hit can only come from a digest collision.
func (r *Runner) renderPage(ctx context.Context, doc *rst.Document, digest string, ttl time.Duration, refresh bool) (string, bool) {
	key := cache.PageKey(doc.Name(), digest)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return string(data), true
		}
	}
	page := rst.Render(doc)
	_ = r.Cache.Set(ctx, key, []byte(page), ttl)
	return page, false
}

// renderGraph emits one graph in every requested graph format. SVG and
// PNG pass through Graphviz and are cached by DOT source digest.
func (r *Runner) renderGraph(ctx context.Context, g *dot.Graph, result *Result, opts Options, ttl time.Duration) error {
	src := g.DOT()
	digest := cache.Hash([]byte(src))

	if opts.HasFormat(FormatDOT) {
		result.Artifacts[g.Name()+".dot"] = []byte(src)
	}
	for _, format := range []string{FormatSVG, FormatPNG} {
		if !opts.HasFormat(format) {
			continue
		}
		key := cache.ArtifactKey(format, digest)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				result.Artifacts[g.Name()+"."+format] = data
				result.CacheInfo.ArtifactHits++
				continue
			}
		}
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = dot.RenderSVG(src)
		case FormatPNG:
			data, err = dot.RenderPNG(src)
		}
		if err != nil {
			return err
		}
		result.Artifacts[g.Name()+"."+format] = data
		result.CacheInfo.ArtifactMisses++
		_ = r.Cache.Set(ctx, key, data, ttl)
	}
	return nil
}

// storeManifest records what this build produced under the tree key.
func (r *Runner) storeManifest(ctx context.Context, result *Result, digest string, ttl time.Duration) {
	m := buildManifest{BuildID: result.BuildID}
	for _, doc := range result.Tree.Documents {
		m.Pages = append(m.Pages, doc.Name())
	}
	for _, g := range result.Tree.Graphs {
		m.Graphs = append(m.Graphs, g.Name())
	}
	if data, err := json.Marshal(m); err == nil {
		_ = r.Cache.Set(ctx, cache.TreeKey(digest), data, ttl)
	}
}

// configDigest derives the cache digest for a run from its manifest and
// effective formats.
func configDigest(opts Options) string {
	data, _ := json.Marshal(struct {
		Config  any      `json:"config"`
		Formats []string `json:"formats"`
	}{opts.Config, opts.Formats})
	return cache.Hash(data)
}

// WriteOutputs writes rendered pages and artifacts under dir, creating
// page subdirectories as needed. It returns the list of files written,
// relative to dir.
func (r *Runner) WriteOutputs(result *Result, dir string) ([]string, error) {
	writeStart := time.Now()
	var written []string

	for page, content := range result.Pages {
		rel := page + ".rst"
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, err
		}
		written = append(written, rel)
	}
	for name, data := range result.Artifacts {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
		written = append(written, name)
	}

	result.Stats.WriteTime = time.Since(writeStart)
	r.Logger.Info("wrote build outputs", "dir", dir, "files", len(written))
	return written, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
