package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evoscape/pkg/cache"
	"github.com/matzehuels/evoscape/pkg/observability"
	"github.com/matzehuels/evoscape/pkg/run"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and workers can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete compute → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data run.Run, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.RecordCount = len(data.Records)
	result.Stats.PointCount = len(data.Points)

	// Content hash of the run data keys every downstream cache entry.
	runData, err := run.MarshalRun(data)
	if err != nil {
		return nil, fmt.Errorf("serialize run: %w", err)
	}
	result.RunHash = cache.Hash(runData)

	// Stage 1: Compute
	computeStart := time.Now()
	view, computeHit, err := r.ComputeViewWithCacheInfo(ctx, data, result.RunHash, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.View = view
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.AnomalyCount = len(view.Anomalies)
	result.CacheInfo.ComputeHit = computeHit

	r.Logger.Info("computed view",
		"nodes", len(view.Nodes),
		"frontier", len(view.Frontier),
		"anomalies", len(view.Anomalies),
		"duration", result.Stats.ComputeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, view, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeViewWithCacheInfo computes the view with caching and returns
// cache hit info. The runHash must be the content hash of the run data.
func (r *Runner) ComputeViewWithCacheInfo(ctx context.Context, data run.Run, runHash string, opts Options) (run.View, bool, error) {
	if err := opts.ValidateForCompute(); err != nil {
		return run.View{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ViewKey(runHash, opts.ViewKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			view, err := run.UnmarshalView(cached)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "view")
				return view, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "view")
	}

	// Compute
	start := time.Now()
	observability.Pipeline().OnComputeStart(ctx, len(data.Records), len(data.Points))
	view, err := GenerateView(data, opts)
	observability.Pipeline().OnComputeComplete(ctx, len(view.Anomalies), time.Since(start), err)
	if err != nil {
		return run.View{}, false, err
	}

	// Cache the result
	if viewData, err := run.MarshalView(view); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, viewData, cache.TTLView)
		observability.Cache().OnCacheSet(ctx, "view", len(viewData))
	}

	return view, false, nil // Cache miss
}

// ComputeView is a convenience wrapper that hashes the run data, calls
// ComputeViewWithCacheInfo, and discards the cache hit info.
func (r *Runner) ComputeView(ctx context.Context, data run.Run, opts Options) (run.View, error) {
	runData, err := run.MarshalRun(data)
	if err != nil {
		return run.View{}, fmt.Errorf("serialize run: %w", err)
	}
	view, _, err := r.ComputeViewWithCacheInfo(ctx, data, cache.Hash(runData), opts)
	return view, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, view run.View, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from view data
	viewData, err := run.MarshalView(view)
	if err != nil {
		return nil, false, fmt.Errorf("serialize view for cache key: %w", err)
	}
	viewHash := cache.Hash(viewData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(viewHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := RenderArtifacts(view, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(viewHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, view run.View, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, view, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
