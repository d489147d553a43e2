package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP service use this to avoid duplicating caching logic.
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

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	preset, err := opts.ResolvePreset()
	if err != nil {
		return nil, err
	}
	canvas, err := opts.ResolveCanvas(preset)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Preset:    preset,
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			Labels: opts.Count,
			Pages:  preset.Geometry.PagesFor(opts.Count),
		},
	}

	// The renderer is built before the lookup: its font source is part of
	// every key.
	renderer, err := NewRenderer(preset, opts)
	if err != nil {
		return nil, err
	}
	font := renderer.FontSource()
	result.Stats.FontSource = string(font)

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format, preset, canvas, font))
	}

	// Try to get all formats from cache
	if cached, ok := r.lookup(ctx, keys); ok {
		r.Logger.Info("using cached artifacts", "formats", opts.Formats)
		result.Artifacts = cached
		result.CacheInfo.Hit = true
		return result, nil
	}

	// Stage 1: Layout
	observability.Pipeline().OnLayoutStart(ctx, preset.Name, opts.Count)
	layoutStart := time.Now()
	doc, err := GenerateLayout(ctx, preset, renderer, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	pages := 0
	if doc != nil {
		pages = doc.PageCount()
	}
	observability.Pipeline().OnLayoutComplete(ctx, preset.Name, pages, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Stats.Pages = pages

	r.Logger.Info("laid out labels",
		"labels", doc.LabelCount(),
		"pages", pages,
		"font", result.Stats.FontSource,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(doc, preset, canvas.Name, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	// Cache each format
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return result, nil
}

// lookup returns every artifact in keys, or false if any is missing.
func (r *Runner) lookup(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
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
