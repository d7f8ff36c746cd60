package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/render/sankey"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP host use this to avoid duplicating caching logic.
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

// Execute runs the layout → render pipeline with caching.
//
// When every requested artifact is cached for this snapshot and these
// options, no layout is computed and Result.Frame is nil.
func (r *Runner) Execute(ctx context.Context, snap *dataview.Snapshot, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.ApplySnapshot(snap.Width, snap.Height)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			RowCount:   len(snap.Rows),
			LevelCount: len(snap.Levels()),
		},
	}

	hash, err := SnapshotHash(snap)
	if err != nil {
		return nil, err
	}
	result.SnapshotHash = hash
	frameKey := r.Keyer.FrameKey(hash, opts.FrameKeyOpts())

	// Artifacts first: a full hit skips the layout.
	if cached, ok := r.cachedArtifacts(ctx, frameKey, opts); ok {
		result.Artifacts = cached
		result.CacheInfo.RenderHit = true
		r.Logger.Info("rendered outputs from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	f, err := ComputeFrame(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Frame = f
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.SegmentCount = len(f.Segments)
	result.Stats.RibbonCount = len(f.Ribbons)

	r.Logger.Info("computed layout",
		"bars", len(f.Layout.Bars),
		"segments", len(f.Segments),
		"ribbons", len(f.Ribbons),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range artifacts {
		r.set(ctx, r.Keyer.ArtifactKey(frameKey, opts.ArtifactKeyOpts(format)), "artifact", data, cache.TTLArtifact)
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*dataview.Snapshot, error) {
	snap, _, err := r.LoadWithCacheInfo(ctx, path, opts)
	return snap, err
}

// ComputeFrame lays out a snapshot. Frames hold live row references and are
// not cached; use [Runner.Execute] for cached artifacts.
func (r *Runner) ComputeFrame(ctx context.Context, snap *dataview.Snapshot, opts Options) (*sankey.Frame, error) {
	r.applyLogger(&opts)
	return ComputeFrame(ctx, snap, opts)
}

// RenderWithCacheInfo renders an already computed frame with caching and
// returns cache hit info. snapshotHash identifies the frame's input; pass
// [SnapshotHash] of the snapshot the frame was computed from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *sankey.Frame, snapshotHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.ApplySnapshot(f.Width, f.Height)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	frameKey := r.Keyer.FrameKey(snapshotHash, opts.FrameKeyOpts())
	if cached, ok := r.cachedArtifacts(ctx, frameKey, opts); ok {
		return cached, true, nil // All artifacts from cache
	}

	rendered, err := Render(ctx, f, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(frameKey, opts.ArtifactKeyOpts(format)), "artifact", data, cache.TTLArtifact)
	}
	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cachedArtifacts returns every requested format from the cache, or false
// if any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, frameKey string, opts Options) (map[string][]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit := r.get(ctx, r.Keyer.ArtifactKey(frameKey, opts.ArtifactKeyOpts(format)), "artifact")
		if !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// get reads a cache entry and reports it to the cache hooks. Backend errors
// count as misses.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes a cache entry. Failures are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
