// Package pipeline provides the documentation build pipeline for Doctower.
//
// This package implements the complete assemble → render → write pipeline
// that both the CLI and library callers use. By centralizing this logic,
// every entry point gets the same caching and output behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Assemble: Build the document tree and diagram graphs from the manifest
//  2. Render: Emit pages as reStructuredText and graphs as DOT/SVG/PNG
//  3. Write: Place rendered outputs in the build directory
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	index := result.Pages["index"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/doctower/pkg/config"
	"github.com/matzehuels/doctower/pkg/errors"
)

// Format constants for build outputs.
const (
	FormatRST = "rst"
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatRST: true,
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Config is the loaded project manifest. Required.
	Config *config.Config

	// Formats overrides the manifest's build formats when non-empty.
	Formats []string

	// Refresh bypasses cached stage results and overwrites them.
	Refresh bool

	// Logger receives stage progress. Defaults to the runner's logger.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == nil {
		return errors.New(errors.ErrCodeInvalidInput, "config is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = o.Config.Build.Formats
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: rst, dot, svg, png)", f)
		}
	}
	return nil
}

// HasFormat reports whether the run emits the given format.
func (o *Options) HasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BuildID uniquely identifies this run in logs and cache manifests.
	BuildID string

	// Tree is the assembled document tree and diagram set.
	Tree *Tree

	// Pages maps page paths to rendered reStructuredText source.
	Pages map[string]string

	// Artifacts maps output file names to rendered graph data.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stage results came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PageCount    int
	GraphCount   int
	NodeCount    int
	AssembleTime time.Duration
	RenderTime   time.Duration
	WriteTime    time.Duration
}

// CacheInfo tracks cache hits per rendered output.
type CacheInfo struct {
	PageHits       int
	PageMisses     int
	ArtifactHits   int
	ArtifactMisses int
}
