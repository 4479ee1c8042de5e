package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramlayout/pkg/cache"
	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/errors"
	"github.com/matzehuels/diagramlayout/pkg/layout"
	"github.com/matzehuels/diagramlayout/pkg/observability"
)

// Runner encapsulates layout execution with caching.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is how long new entries stay cached. Zero uses [cache.TTLLayout].
	TTL time.Duration
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

// Layout positions d with cfg, serving from the cache when possible.
//
// It returns INVALID_INPUT for a nil diagram, INVALID_CONFIG when cfg fails
// validation and TIMEOUT when ctx is done before the layout starts.
func (r *Runner) Layout(ctx context.Context, d diagram.Diagram, cfg layout.Config) (*Result, error) {
	start := time.Now()
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no diagram")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	kind := string(d.Kind())
	key, err := r.Key(d, cfg)
	if err != nil {
		return nil, err
	}

	if p, ok := r.lookup(ctx, kind, key); ok {
		res := newResult(p, key, true, start)
		r.Logger.Debug("layout cache hit", "kind", kind, "key", key)
		return res, nil
	}

	observability.Pipeline().OnLayoutStart(ctx, kind)
	p := layout.Layout(d, cfg)
	layoutTime := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, kind, layoutTime, nil)

	r.store(ctx, kind, key, p)

	size := p.Canvas()
	r.Logger.Debug("computed layout",
		"kind", kind,
		"width", size.Width,
		"height", size.Height,
		"duration", layoutTime)

	return newResult(p, key, false, start), nil
}

// LayoutDocument resolves the diagram in doc and lays it out.
func (r *Runner) LayoutDocument(ctx context.Context, doc diagram.Document, cfg layout.Config) (*Result, error) {
	d, err := doc.Diagram()
	if err != nil {
		return nil, err
	}
	return r.Layout(ctx, d, cfg)
}

// Key returns the cache key for laying out d with cfg.
func (r *Runner) Key(d diagram.Diagram, cfg layout.Config) (string, error) {
	diagramData, err := json.Marshal(diagram.Wrap(d))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash diagram")
	}
	configData, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	return r.Keyer.LayoutKey(string(d.Kind()), cache.Hash(diagramData), cache.Hash(configData)), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, kind, key string) (layout.Positioned, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, "get", err)
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}

	p, err := layout.Unmarshal(data)
	if err != nil || string(p.Kind()) != kind {
		// Stale or foreign entry; recompute and overwrite it.
		observability.Cache().OnCacheMiss(ctx, kind)
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return p, true
}

func (r *Runner) store(ctx context.Context, kind, key string, p layout.Positioned) {
	data, err := layout.Marshal(p)
	if err != nil {
		r.Logger.Warn("cannot encode layout for cache", "kind", kind, "err", err)
		return
	}
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLLayout
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, "set", err)
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func newResult(p layout.Positioned, key string, hit bool, start time.Time) *Result {
	return &Result{
		Layout:   p,
		Document: layout.Wrap(p),
		Hit:      hit,
		Duration: time.Since(start),
		Key:      key,
	}
}

// contextError maps a finished context to a coded error.
func contextError(ctx context.Context) error {
	switch err := ctx.Err(); err {
	case nil:
		return nil
	case context.DeadlineExceeded:
		return errors.Wrap(errors.ErrCodeTimeout, err, "layout deadline exceeded")
	default:
		return errors.Wrap(errors.ErrCodeTimeout, err, "layout canceled")
	}
}
