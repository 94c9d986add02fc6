// Package pkg provides the libraries behind the treemap CLI.
//
// # Overview
//
// Treemap turns a category tree of valued leaves (by default the top
// grossing movies grouped by genre) into a squarified treemap with a color
// legend and a hover tooltip. The pkg directory is organized as:
//
//  1. [hierarchy] - Fetching, selecting and validating the category tree
//  2. [treemap] - Squarified layout with inner padding
//  3. [render] - Palette, tree and legend drawing, tooltip, output formats
//  4. [pipeline] - Orchestration (fetch → layout → render)
//  5. [cache], [httputil], [observability], [errors] - Infrastructure
//
// # Architecture
//
//	JSON document (URL or file)
//	         ↓
//	    [hierarchy] package (decode + validate)
//	         ↓
//	    [treemap] package (aggregate, sort, tile)
//	         ↓
//	    [render/sink] package (tiles, legend, tooltip script)
//	         ↓
//	    HTML/SVG/JSON/PNG/PDF output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Formats: []string{"html"}})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("movies.html", result.Artifacts["html"], 0o644)
//
// [hierarchy]: github.com/matzehuels/treemap/pkg/hierarchy
// [treemap]: github.com/matzehuels/treemap/pkg/treemap
// [render]: github.com/matzehuels/treemap/pkg/render
// [pipeline]: github.com/matzehuels/treemap/pkg/pipeline
// [cache]: github.com/matzehuels/treemap/pkg/cache
// [httputil]: github.com/matzehuels/treemap/pkg/httputil
// [observability]: github.com/matzehuels/treemap/pkg/observability
// [errors]: github.com/matzehuels/treemap/pkg/errors
package pkg
