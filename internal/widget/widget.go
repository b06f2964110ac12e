package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/localsearch/internal/config"
	"github.com/dshills/localsearch/internal/loader"
	"github.com/dshills/localsearch/internal/render"
	"github.com/dshills/localsearch/internal/searcher"
	"github.com/dshills/localsearch/pkg/types"
)

// ErrNoDisplay is returned when a widget is constructed without a
// display to render into.
var ErrNoDisplay = errors.New("widget: display is required")

// Display receives rendered HTML fragments for the results container.
// The host owns the actual markup plumbing behind it.
type Display interface {
	SetContent(html string)
	Clear()
}

// Deps are the injected collaborators. Client and Logger may be nil;
// Display must be provided.
type Deps struct {
	Client  loader.Doer
	Display Display
	Logger  *slog.Logger
}

// Stats counts observable widget work.
type Stats struct {
	Queries   int64 // Input events accepted
	Searches  int64 // Index scans performed
	CacheHits int64 // Queries answered from cache
}

// Widget binds a query input stream to a results display.
type Widget struct {
	cfg     *config.Config
	display Display
	loader  *loader.Loader
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	seq    uint64 // current query token; results carrying an older one are stale
	timer  *time.Timer
	cache  *lru.Cache[string, []types.ResultItem]
	stats  Stats
	closed bool
}

// New constructs a widget. A nil cfg means all defaults; zero-valued cfg
// fields are normalized to their defaults. With Preload enabled the
// index load starts immediately in the background.
func New(cfg *config.Config, deps Deps) (*Widget, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.WithDefaults()

	if deps.Display == nil {
		return nil, ErrNoDisplay
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "search-widget")

	cache, err := lru.New[string, []types.ResultItem](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create query cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Widget{
		cfg:     cfg,
		display: deps.Display,
		loader:  loader.New(cfg.SearchPath, deps.Client, logger),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		cache:   cache,
	}

	if cfg.Preload {
		go func() {
			if _, err := w.loader.Ensure(w.ctx); err != nil && !errors.Is(err, types.ErrAborted) {
				w.logger.Warn("index preload failed", "error", err)
			}
		}()
	}

	return w, nil
}

// Query feeds one input event. Short queries clear the display and
// cancel pending work; anything else is debounced and then searched.
func (w *Widget) Query(raw string) {
	query := strings.TrimSpace(raw)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.seq++
	seq := w.seq
	w.stats.Queries++
	w.stopTimerLocked()

	if searcher.TooShort(query, w.cfg.MinQueryLength) {
		w.mu.Unlock()
		w.display.Clear()
		return
	}

	d := w.cfg.Debounce()
	if d <= 0 {
		w.mu.Unlock()
		w.run(seq, query)
		return
	}

	w.timer = time.AfterFunc(d, func() {
		w.run(seq, query)
	})
	w.mu.Unlock()
}

// Dismiss clears the display without tearing the widget down. Pending
// and in-flight query work is invalidated.
func (w *Widget) Dismiss() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.seq++
	w.stopTimerLocked()
	w.mu.Unlock()

	w.display.Clear()
}

// Close tears the widget down: it aborts any in-flight fetch, releases
// the cache and the index, and stops rendering. Safe to call twice.
func (w *Widget) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.stopTimerLocked()
	w.cache.Purge()
	w.mu.Unlock()

	w.cancel()
	w.loader.Reset()
	w.logger.Debug("widget closed")
	return nil
}

// Stats returns a snapshot of the work counters.
func (w *Widget) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// run executes the search for a query issued at seq. Every suspension
// point is followed by a staleness check so a superseded query can never
// mutate the display.
func (w *Widget) run(seq uint64, query string) {
	if w.stale(seq) {
		return
	}

	// Cache hit: replay stored results, no index and no scoring needed.
	w.mu.Lock()
	if items, ok := w.cache.Get(query); ok {
		w.stats.CacheHits++
		w.mu.Unlock()
		w.render(seq, query, items)
		return
	}
	w.mu.Unlock()

	if !w.loader.Loaded() {
		w.setContent(seq, render.Loading())
	}

	idx, err := w.loader.Ensure(w.ctx)
	if err != nil {
		if errors.Is(err, types.ErrAborted) {
			w.logger.Debug("index load aborted", "query", query)
			return
		}
		w.logger.Error("index load failed", "query", query, "error", err)
		w.setContent(seq, render.Unavailable())
		return
	}
	if w.stale(seq) {
		return
	}

	resp := searcher.Search(idx, searcher.Request{
		Query:      query,
		MaxResults: w.cfg.MaxResults,
	})

	w.mu.Lock()
	w.stats.Searches++
	w.cache.Add(query, resp.Results)
	w.mu.Unlock()

	w.logger.Debug("search complete",
		"query", query,
		"results", len(resp.Results),
		"scanned", resp.ScannedDocs,
		"duration", resp.Duration)

	w.render(seq, query, resp.Results)
}

// render shows results, or the empty state when there are none.
func (w *Widget) render(seq uint64, query string, items []types.ResultItem) {
	var html string
	var err error

	if len(items) == 0 {
		html, err = render.Empty(query)
	} else {
		html, err = render.Results(items)
	}
	if err != nil {
		w.logger.Error("render failed", "query", query, "error", err)
		html = render.Unavailable()
	}

	w.setContent(seq, html)
}

// stale reports whether seq has been superseded or the widget closed.
func (w *Widget) stale(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed || seq != w.seq
}

// setContent writes to the display unless the query is stale.
func (w *Widget) setContent(seq uint64, html string) {
	if w.stale(seq) {
		return
	}
	w.display.SetContent(html)
}

func (w *Widget) stopTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
