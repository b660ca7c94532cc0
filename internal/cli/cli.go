// Package cli implements the doctower command-line interface.
//
// This package provides commands for building documentation from a
// doctower.toml manifest, rendering individual diagrams, browsing
// assembled pages, serving the build output, and managing the build
// cache. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Assemble the document tree and write all outputs
//   - graph: Render a single diagram from the manifest
//   - pages: Browse assembled pages interactively
//   - serve: Serve the build output over HTTP
//   - cache: Manage the build cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctower/pkg/buildinfo"
	"github.com/matzehuels/doctower/pkg/cache"
	"github.com/matzehuels/doctower/pkg/config"
	"github.com/matzehuels/doctower/pkg/pipeline"
)

// defaultManifest is the manifest file looked up in the working
// directory when --config is not given.
const defaultManifest = "doctower.toml"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "doctower",
		Short:        "Doctower builds documentation from tree-structured manifests",
		Long:         `Doctower is a CLI tool for building reStructuredText documentation and Graphviz diagrams from a declarative manifest, modeling every page as a unique ordered tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the manifest's cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

// newCache builds the cache backend selected by the manifest. Backend
// failures fall back to disabled caching rather than failing the build,
// except for redis where a bad address is a configuration error.
func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		backend, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return cache.NewScoped(backend, cfg.Project.Name), nil
	default:
		backend, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewScoped(backend, cfg.Project.Name), nil
	}
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string defers to the manifest's formats.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
