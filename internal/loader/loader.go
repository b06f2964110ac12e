package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dshills/localsearch/pkg/types"
)

// Doer issues HTTP requests. *http.Client satisfies it; tests substitute
// a double without touching global state.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader fetches and preprocesses the JSON document index.
type Loader struct {
	url    string
	client Doer
	logger *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	idx    types.SearchIndex
	loaded bool
}

// New creates a Loader for the given index URL. A nil client falls back
// to a default http.Client; a nil logger falls back to slog.Default.
func New(url string, client Doer, logger *slog.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		url:    url,
		client: client,
		logger: logger.With("component", "loader"),
	}
}

// Ensure returns the index, fetching and preprocessing it on first use.
// Concurrent callers share one in-flight fetch. Errors wrap ErrFetch,
// ErrParse or ErrAborted; only success is memoized, so a failed or
// aborted load leaves the loader ready for a later retry.
func (l *Loader) Ensure(ctx context.Context) (types.SearchIndex, error) {
	l.mu.RLock()
	if l.loaded {
		idx := l.idx
		l.mu.RUnlock()
		return idx, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("index", func() (any, error) {
		// A load may have completed between the fast path and joining
		// the group.
		l.mu.RLock()
		if l.loaded {
			idx := l.idx
			l.mu.RUnlock()
			return idx, nil
		}
		l.mu.RUnlock()

		idx, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.idx = idx
		l.loaded = true
		l.mu.Unlock()

		return idx, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(types.SearchIndex), nil
}

// Loaded reports whether an index is resident.
func (l *Loader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Reset drops the loaded index so the next Ensure refetches.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.idx = nil
	l.loaded = false
	l.mu.Unlock()
}

// fetch issues the single GET and decodes the document array.
func (l *Loader) fetch(ctx context.Context) (types.SearchIndex, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrAborted, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", types.ErrFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", types.ErrFetch, resp.StatusCode, body)
	}

	var records []types.DocumentRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrAborted, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", types.ErrParse, err)
	}

	idx := Preprocess(records)
	l.logger.Info("search index loaded", "documents", len(idx))
	return idx, nil
}
