package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dressform/pkg/cache"
	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/observability"
	"github.com/matzehuels/dressform/pkg/render/pattern"
	"github.com/matzehuels/dressform/pkg/render/pattern/tile"
)

// DefaultBatchLimit bounds concurrent runs in ExecuteBatch.
const DefaultBatchLimit = 4

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
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

// Execute runs the complete draft → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		Keys:      make(map[string]string),
	}

	// Stage 1: Draft
	draftStart := time.Now()
	p, err := r.Draft(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}
	result.Pattern = p
	result.Stats.DraftTime = time.Since(draftStart)
	result.DraftHash, err = cache.HashJSON(opts.DraftKeyOpts())
	if err != nil {
		return nil, fmt.Errorf("hash draft inputs: %w", err)
	}

	for _, piece := range opts.Pieces {
		ws := pieceWarnings(p, piece)
		result.Warnings = append(result.Warnings, ws...)
		for _, w := range ws {
			opts.Logger.Warn(w.Message, "piece", piece, "code", w.Code)
		}
	}
	opts.Logger.Info("drafted pattern",
		"pieces", opts.Pieces,
		"warnings", len(result.Warnings),
		"duration", result.Stats.DraftTime)

	// Stage 2: Render
	renderStart := time.Now()
	for _, piece := range opts.Pieces {
		if err := r.renderPiece(ctx, result, piece, opts); err != nil {
			return nil, fmt.Errorf("render %s: %w", piece, err)
		}
	}
	if opts.Diagram {
		key := r.Keyer.ArtifactKey(result.DraftHash, opts.ArtifactKeyOpts(PieceConstruction, FormatSVG, ""))
		data, err := r.cached(ctx, result, key, opts.Refresh, func() ([]byte, error) {
			return RenderDiagram(ctx, p)
		})
		if err != nil {
			return nil, fmt.Errorf("render diagram: %w", err)
		}
		result.add(ArtifactName(PieceConstruction, FormatSVG), key, data)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"artifacts", len(result.Artifacts),
		"bytes", result.Stats.Bytes,
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Draft validates the draft inputs and drafts the bodice and sleeve.
func (r *Runner) Draft(ctx context.Context, opts Options) (draft.Pattern, error) {
	if err := opts.ValidateForDraft(); err != nil {
		return draft.Pattern{}, err
	}
	split, err := draft.LookupDartSplit(opts.Split)
	if err != nil {
		return draft.Pattern{}, err
	}

	start := time.Now()
	p, err := draft.DraftPattern(opts.Measurements, opts.Figure, split)
	observability.Current().Drafted(ctx, observability.DraftEvent{
		Figure:   opts.Figure.String(),
		Split:    split.Name,
		Warnings: warningCodes(p.Warnings()),
		Duration: time.Since(start),
		Err:      err,
	})
	return p, err
}

func warningCodes(ws []draft.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	codes := make([]string, len(ws))
	for i, w := range ws {
		codes[i] = string(w.Code)
	}
	return codes
}

// ExecuteBatch runs several pipelines concurrently, at most limit at a time.
// Results are returned in input order. The first error cancels the rest.
func (r *Runner) ExecuteBatch(ctx context.Context, opts []Options, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	results := make([]*Result, len(opts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range opts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(ctx, opts[i])
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) renderPiece(ctx context.Context, result *Result, piece string, opts Options) (err error) {
	start, before := time.Now(), len(result.Artifacts)
	defer func() {
		observability.Current().Rendered(ctx, observability.RenderEvent{
			Piece:     piece,
			Formats:   opts.Formats,
			Artifacts: len(result.Artifacts) - before,
			Duration:  time.Since(start),
			Err:       err,
		})
	}()

	d, err := Drawing(result.Pattern, piece, opts)
	if err != nil {
		return err
	}
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		if format == FormatPages {
			if err := r.renderPages(ctx, result, piece, d, opts); err != nil {
				return err
			}
			continue
		}
		key := r.Keyer.ArtifactKey(result.DraftHash, opts.ArtifactKeyOpts(piece, format, ""))
		data, err := r.cached(ctx, result, key, opts.Refresh, func() ([]byte, error) {
			return RenderArtifact(d, result.Pattern, format, opts)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		result.add(ArtifactName(piece, format), key, data)
	}
	return nil
}

func (r *Runner) renderPages(ctx context.Context, result *Result, piece string, d pattern.Drawing, opts Options) error {
	pages, paper, err := Paginate(d, opts)
	if err != nil {
		return err
	}
	for _, p := range pages {
		key := r.Keyer.ArtifactKey(result.DraftHash, opts.ArtifactKeyOpts(piece, FormatPages, p.Label()))
		data, err := r.cached(ctx, result, key, opts.Refresh, func() ([]byte, error) {
			return tile.RenderPages(d, paper, []tile.Page{p})[0], nil
		})
		if err != nil {
			return fmt.Errorf("page %s: %w", p.Label(), err)
		}
		result.add(PageName(piece, p), key, data)
	}
	opts.Logger.Debug("tiled pages", "piece", piece, "paper", paper.Name, "pages", len(pages))
	return nil
}

// cached returns the value under key, calling render and storing its output
// on a miss. Cache failures are logged and never fail the run.
func (r *Runner) cached(ctx context.Context, result *Result, key string, refresh bool, render func() ([]byte, error)) ([]byte, error) {
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			reportCache(ctx, observability.CacheHit, len(data))
			result.CacheInfo.Hits++
			return data, nil
		} else if err != nil {
			r.Logger.Debug("cache get failed", "key", key, "error", err)
		}
		reportCache(ctx, observability.CacheMiss, 0)
	}
	result.CacheInfo.Misses++

	data, err := render()
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("cache set failed", "key", key, "error", err)
	} else {
		reportCache(ctx, observability.CacheStore, len(data))
	}
	return data, nil
}

func reportCache(ctx context.Context, outcome observability.CacheOutcome, n int) {
	observability.Current().Cached(ctx, observability.CacheEvent{
		Kind:    observability.KindArtifact,
		Outcome: outcome,
		Bytes:   n,
	})
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

func (res *Result) add(name, key string, data []byte) {
	res.Artifacts[name] = data
	res.Keys[name] = key
	res.Stats.Bytes += len(data)
}

func pieceWarnings(p draft.Pattern, piece string) []draft.Warning {
	switch piece {
	case PieceBodice:
		return p.Bodice.Warnings
	case PieceSleeve:
		return p.Sleeve.Warnings
	}
	return nil
}
