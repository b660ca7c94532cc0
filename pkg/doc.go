// Package pkg provides the core libraries for Doctower documentation builds.
//
// # Overview
//
// Doctower turns a declarative manifest into reStructuredText pages and
// Graphviz diagrams, modeling every page as a unique ordered tree. The
// pkg directory is organized into these areas:
//
//  1. [doctree] - The tree container (single ownership, graph order, name index)
//  2. [rst] / [dot] - Typed tree nodes and emitters for pages and diagrams
//  3. [cache] - Build result caching (file, redis, null backends)
//  4. [config] - Manifest loading and validation
//  5. [pipeline] - Orchestration (assemble → render → write)
//
// # Architecture
//
// The typical data flow through Doctower:
//
//	doctower.toml manifest
//	         ↓
//	    [config] package (parse + validate)
//	         ↓
//	    [pipeline] package (assemble the document tree)
//	         ↓
//	    [rst] / [dot] packages (emit pages and diagrams)
//	         ↓
//	    RST/DOT/SVG/PNG output
//
// # Quick Start
//
// Build a manifest into an output directory:
//
//	cfg, err := config.Load("doctower.toml")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	_, err = runner.WriteOutputs(result, cfg.Build.Output)
package pkg
