package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghostify/pkg/cache"
	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/errors"
	"github.com/matzehuels/ghostify/pkg/ghost"
	"github.com/matzehuels/ghostify/pkg/host"
	"github.com/matzehuels/ghostify/pkg/observability"
)

// Runner executes the transform pipeline with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it stores
// no results itself. It is safe for concurrent use as long as the
// cache backend is.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching (NullCache); a nil logger falls back to
// log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// envelope is the cached artifact: the transformed document plus the
// stats of the run that produced it.
type envelope struct {
	Stats    ghost.Stats     `json:"stats"`
	Document json.RawMessage `json:"document"`
}

// Execute runs decode → select → ghost → encode over data, consulting
// the cache first.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()

	result := &Result{DocHash: cache.Hash(data)}
	key := cache.TransformKey(result.DocHash, keyOpts(opts))

	if cached, hit, err := r.Cache.Get(ctx, key); err != nil {
		// A broken cache should degrade, not fail the run.
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		var env envelope
		if err := json.Unmarshal(cached, &env); err == nil {
			observability.Cache().OnCacheHit(ctx, "ghost")
			result.Output = env.Document
			result.Stats = env.Stats
			result.FromCache = true
			result.Duration = time.Since(start)
			r.Logger.Debug("transform served from cache", "hash", result.DocHash)
			return result, nil
		}
		r.Logger.Warn("discarding corrupt cache entry", "key", key)
	}
	observability.Cache().OnCacheMiss(ctx, "ghost")

	d, err := doc.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	selection, err := resolveSelection(d, opts.Selection)
	if err != nil {
		return nil, err
	}

	h := host.NewMemory(d, selection)
	eng := ghost.New(h, opts.Config, r.Logger)

	observability.Engine().OnRunStart(ctx, d.Name, len(selection))
	stats, runErr := eng.Run(ctx)
	observability.Engine().OnRunComplete(ctx, d.Name,
		stats.Ghosted, stats.Detached, stats.Failed, time.Since(start), runErr)
	if runErr != nil {
		return nil, fmt.Errorf("ghost run: %w", runErr)
	}

	out, err := doc.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	result.Output = out
	result.Stats = stats
	result.Notices = h.Notifications()
	result.Duration = time.Since(start)

	if env, err := json.Marshal(envelope{Stats: stats, Document: out}); err == nil {
		if err := r.Cache.Set(ctx, key, env, opts.CacheTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "ghost", len(env))
		}
	}

	r.Logger.Info("transform complete",
		"ghosted", stats.Ghosted,
		"detached", stats.Detached,
		"failed", stats.Failed,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// resolveSelection maps the requested IDs to live nodes. Empty IDs
// default to the document's top-level frames. Unknown IDs fail the
// whole run: silently ghosting a partial selection would be worse
// than an error.
func resolveSelection(d *doc.Document, ids []string) ([]*doc.Node, error) {
	if len(ids) == 0 {
		return d.TopLevel(), nil
	}
	nodes := make([]*doc.Node, 0, len(ids))
	for _, id := range ids {
		n := d.FindByID(id)
		if n == nil {
			return nil, errors.New(errors.ErrCodeNodeNotFound, "node %q not found in document", id)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func keyOpts(opts Options) cache.TransformKeyOpts {
	return cache.TransformKeyOpts{
		Selection:    opts.Selection,
		CornerRadius: opts.Config.CornerRadius,
		BaseOpacity:  opts.Config.BaseOpacity,
		MinOpacity:   opts.Config.MinOpacity,
		MaxOpacity:   opts.Config.MaxOpacity,
	}
}
