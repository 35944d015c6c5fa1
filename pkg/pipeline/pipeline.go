// Package pipeline provides the core visualization pipeline for Evoscape.
//
// This package implements the complete load → compute → render pipeline
// that can be used by CLI and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compute: Derive the view from run data (lineage layout, Pareto
//     frontier, fitness surface)
//  2. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, runData, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Compute only
//	view, err := runner.ComputeView(ctx, runData, opts)
//
//	// Render with existing view
//	artifacts, err := runner.Render(ctx, view, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evoscape/pkg/cache"
	"github.com/matzehuels/evoscape/pkg/errors"
	"github.com/matzehuels/evoscape/pkg/lineage"
	"github.com/matzehuels/evoscape/pkg/run"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Workers
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = lineage.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = lineage.DefaultHeight

	// DefaultMaxDepth is the maximum number of generations to lay out.
	DefaultMaxDepth = lineage.DefaultMaxDepth

	// DefaultGridResolution is the surface grid resolution. 32×32 keeps
	// reconstruction well under a millisecond for typical run sizes.
	DefaultGridResolution = 32
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for worker requests.
type Options struct {
	// Compute options
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	MaxDepth       int     `json:"max_depth,omitempty"`
	GridResolution int     `json:"grid_resolution,omitempty"`
	WobbleScale    float64 `json:"wobble_scale,omitempty"`
	MarginX        float64 `json:"margin_x,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunHash is the content hash of the input run data.
	RunHash string

	// View contains the computed layout, frontier, and surface.
	View run.View

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount  int
	PointCount   int
	AnomalyCount int
	ComputeTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ComputeHit bool // Whether the view came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCompute(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompute validates and sets defaults for view computation.
func (o *Options) ValidateForCompute() error {
	o.SetComputeDefaults()

	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateMaxDepth(o.MaxDepth); err != nil {
		return err
	}
	return errors.ValidateGridResolution(o.GridResolution)
}

// SetComputeDefaults sets default values for view computation.
func (o *Options) SetComputeDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.GridResolution == 0 {
		o.GridResolution = DefaultGridResolution
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions converts the pipeline options to layout options.
func (o *Options) LayoutOptions() lineage.Options {
	return lineage.Options{
		Width:       o.Width,
		Height:      o.Height,
		MaxDepth:    o.MaxDepth,
		MarginX:     o.MarginX,
		WobbleScale: o.WobbleScale,
	}
}

// ViewKeyOpts returns cache key options for view computation.
func (o *Options) ViewKeyOpts() cache.ViewKeyOpts {
	return cache.ViewKeyOpts{
		Width:          o.Width,
		Height:         o.Height,
		MaxDepth:       o.MaxDepth,
		GridResolution: o.GridResolution,
		WobbleScale:    o.WobbleScale,
		MarginX:        o.MarginX,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
