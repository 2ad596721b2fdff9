package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/onepercent/pkg/cache"
	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/history"
	"github.com/matzehuels/onepercent/pkg/observability"
	"github.com/matzehuels/onepercent/pkg/render/sink"
)

// Runner executes the pipeline with caching and history.
// It holds no per-run state, so one Runner can serve concurrent runs.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	History history.Store
	TTL     time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means DefaultKeyer and a nil logger means log.Default.
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
		TTL:    DefaultTTL,
	}
}

// Execute runs load → frame → render and records the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	loadStart := time.Now()
	dv, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	r.Logger.Debug("loaded data view", "rows", dv.RowCount(), "duration", result.Stats.LoadTime)

	frameStart := time.Now()
	frame, chartRes, frameHit, err := r.FrameWithCacheInfo(ctx, dv, opts)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	result.Frame = frame
	result.Chart = chartRes
	result.FrameCacheHit = frameHit
	result.Stats.FrameTime = time.Since(frameStart)
	r.Logger.Info("updated chart",
		"value", chartRes.Dataset.Primary.Value,
		"color", chartRes.Dataset.Primary.Color,
		"circles", len(frame.Circles),
		"cached", frameHit)

	renderStart := time.Now()
	artifacts, hash, hit, err := r.RenderWithCacheInfo(ctx, frame, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.FrameHash = hash
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	result.ID = r.record(ctx, opts, result)
	return result, nil
}

// cachedFrame is the cache entry of a recorded frame. Frame holds the
// document written by sink.RenderJSON.
type cachedFrame struct {
	Frame  json.RawMessage `json:"frame"`
	Result chart.Result    `json:"result"`
}

// FrameWithCacheInfo records the frame of dv, or restores it from the cache
// when the same data view was recorded with the same chart options before.
func (r *Runner) FrameWithCacheInfo(ctx context.Context, dv *dataview.DataView, opts Options) (sink.Frame, chart.Result, bool, error) {
	dvData, err := json.Marshal(dv.Sanitized())
	if err != nil {
		return sink.Frame{}, chart.Result{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize data view for cache key")
	}
	key := r.Keyer.FrameKey(cache.Hash(dvData), opts.FrameKeyOpts())

	if !opts.NoCache {
		data, err := cache.MustGet(ctx, r.Cache, key)
		switch {
		case err == nil:
			if frame, res, ok := decodeCachedFrame(data); ok {
				observability.Cache().OnCacheHit(ctx, "frame")
				return frame, res, true, nil
			}
			r.Logger.Warn("discarding unreadable cached frame", "key", key)
		case !stderrors.Is(err, cache.ErrCacheMiss):
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "frame")
	}

	frame, res, err := RenderFrame(ctx, dv, opts)
	if err != nil {
		return sink.Frame{}, chart.Result{}, false, err
	}
	frameData, err := sink.RenderJSON(frame)
	if err != nil {
		return sink.Frame{}, chart.Result{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize frame")
	}
	data, err := json.Marshal(cachedFrame{Frame: frameData, Result: res})
	if err != nil {
		return sink.Frame{}, chart.Result{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize frame")
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "frame", len(data))
	}
	return frame, res, false, nil
}

func decodeCachedFrame(data []byte) (sink.Frame, chart.Result, bool) {
	var cf cachedFrame
	if err := json.Unmarshal(data, &cf); err != nil || len(cf.Frame) == 0 {
		return sink.Frame{}, chart.Result{}, false
	}
	frame, err := sink.ParseJSON(cf.Frame)
	if err != nil {
		return sink.Frame{}, chart.Result{}, false
	}
	return frame, cf.Result, true
}

// RenderWithCacheInfo encodes f in every requested format, serving each from
// the cache when possible. It returns the artifacts, the frame hash and
// whether every artifact was a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f sink.Frame, opts Options) (map[string][]byte, string, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, "", false, err
	}

	frameData, err := sink.RenderJSON(f)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "serialize frame for cache key")
	}
	hash := cache.Hash(frameData)

	observability.Render().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if !opts.NoCache {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			} else if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := RenderFormat(ctx, f, format, opts)
		if err != nil {
			observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, "", false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, hash, allCached, nil
}

func (r *Runner) record(ctx context.Context, opts Options, res *Result) string {
	if r.History == nil {
		return history.NewID()
	}
	ds := res.Chart.Dataset
	e := &history.Entry{
		Source:      opts.Source,
		Value:       ds.Primary.Value,
		Description: ds.Primary.Description,
		Color:       ds.Primary.Color,
		Width:       opts.Width,
		Height:      opts.Height,
		Formats:     opts.Formats,
		FrameHash:   res.FrameHash,
		CacheHit:    res.CacheHit,
	}
	if err := r.History.Record(ctx, e); err != nil {
		r.Logger.Warn("history write failed", "error", err)
	}
	return e.ID
}

// Close releases the cache and history store.
func (r *Runner) Close(ctx context.Context) error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.History != nil {
		if herr := r.History.Close(ctx); err == nil {
			err = herr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
