package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekgrid/pkg/cache"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/observability"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Cache key types reported to observability hooks.
const (
	keyTypeTimetable = "timetable"
	keyTypeArtifact  = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → compile → render with caching.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{DocumentHash: cache.Hash(data)}

	compileStart := time.Now()
	tt, hit, err := r.CompileWithCacheInfo(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	result.Timetable = tt
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.Rows = len(tt.Grid.Rows)
	result.Stats.Blocks = len(tt.Summary)
	result.CacheInfo.CompileHit = hit

	opts.Logger.Info("compiled timetable",
		"rows", result.Stats.Rows,
		"blocks", result.Stats.Blocks,
		"cached", hit,
		"duration", result.Stats.CompileTime)

	renderStart := time.Now()
	artifacts, ttHash, renderHit, err := r.render(ctx, tt, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.TimetableHash = ttHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CompileWithCacheInfo compiles document bytes, consulting the cache first,
// and reports whether the grid came from cache. Failed compiles are never
// cached.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, data []byte, opts Options) (*timetable.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	docHash := cache.Hash(data)
	key := r.Keyer.TimetableKey(docHash, opts.TimetableKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if tt, err := timetable.UnmarshalResult(cached); err == nil {
				hooks.OnCacheHit(ctx, keyTypeTimetable)
				return tt, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached timetable", "key", key)
		}
		hooks.OnCacheMiss(ctx, keyTypeTimetable)
	}

	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnCompileStart(ctx, docHash)
	start := time.Now()

	tt, err := Compile(ctx, data, opts)
	rows := 0
	if tt != nil {
		rows = len(tt.Grid.Rows)
	}
	pipelineHooks.OnCompileComplete(ctx, docHash, rows, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if encoded, err := timetable.MarshalResult(tt); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.TTLTimetable); err == nil {
			hooks.OnCacheSet(ctx, keyTypeTimetable, len(encoded))
		}
	}
	return tt, false, nil
}

// Compile is a convenience wrapper that discards the cache hit info.
func (r *Runner) Compile(ctx context.Context, data []byte, opts Options) (*timetable.Result, error) {
	tt, _, err := r.CompileWithCacheInfo(ctx, data, opts)
	return tt, err
}

// RenderWithCacheInfo renders every requested format, serving artifacts from
// cache when all of them are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tt *timetable.Result, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, tt, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tt *timetable.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tt, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, tt *timetable.Result, opts Options) (map[string][]byte, string, bool, error) {
	if tt == nil {
		return nil, "", false, errs.New(errs.ErrCodeInvalidInput, "no timetable to render")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	encoded, err := timetable.MarshalResult(tt)
	if err != nil {
		return nil, "", false, errs.Wrap(errs.ErrCodeInternal, err, "serialize timetable for cache key")
	}
	ttHash := cache.Hash(encoded)
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(ttHash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, ttHash, true, nil
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Formats found in cache are kept; only the rest are rendered.
	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}
		data, err := RenderFormat(tt, format, opts)
		if err != nil {
			pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, "", false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(ttHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, ttHash, false, nil
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
