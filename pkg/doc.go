// Package pkg provides the core libraries for Evoscape run visualization.
//
// # Overview
//
// Evoscape turns the raw history of an evolutionary or genetic search into
// pictures: a lineage tree of mutations, the Pareto frontier over competing
// objectives, and a reconstructed fitness landscape. The pkg directory is
// organized into these areas:
//
//  1. [lineage] - Mutation forest, ancestor paths, and tree layout
//  2. [frontier] - Pareto dominance and fitness surface reconstruction
//  3. [run] - Serialization types for runs and computed views
//  4. [render] - DOT and SVG artifact generation
//  5. [pipeline] - Orchestration (load → compute → render) with caching
//  6. [cache], [store] - Result cache and the shared view store
//
// # Architecture
//
// The typical data flow through Evoscape:
//
//	Search Run Export (run.json)
//	         ↓
//	    [lineage] package (forest + generation-band layout)
//	    [frontier] package (dominance + surface reconstruction)
//	         ↓
//	    [run] package (assembled view)
//	         ↓
//	    [render] package (DOT, SVG)
//	         ↓
//	    JSON/DOT/SVG output
//
// # Quick Start
//
// Compute and render a view:
//
//	data, err := run.ReadRunFile("run.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
package pkg
