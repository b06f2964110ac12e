package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/localsearch/pkg/types"
)

const sampleIndex = `[
	{"title": "Rust Guide", "content": "Learn systems programming", "url": "/a"},
	{"title": "Go Basics", "content": "Learn concurrency", "url": "/b"}
]`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureSuccess(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleIndex))
	})

	l := New(srv.URL, srv.Client(), nil)
	idx, err := l.Ensure(context.Background())
	require.NoError(t, err)
	require.Len(t, idx, 2)

	assert.Equal(t, 0, idx[0].ID)
	assert.Equal(t, "Rust Guide", idx[0].Title)
	assert.Equal(t, "rust guide", idx[0].TitleLower)
	assert.Equal(t, "/a", idx[0].URL)
	assert.True(t, l.Loaded())
}

func TestEnsureMemoizesSuccess(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(sampleIndex))
	})

	l := New(srv.URL, srv.Client(), nil)
	_, err := l.Ensure(context.Background())
	require.NoError(t, err)
	_, err = l.Ensure(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second Ensure must not refetch")
}

func TestEnsureHTTPError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	l := New(srv.URL, srv.Client(), nil)
	_, err := l.Ensure(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrFetch))
	assert.False(t, l.Loaded(), "failed loads are not memoized")
}

func TestEnsureParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title": "oops"`},
		{"not an array", `{"title": "oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			l := New(srv.URL, srv.Client(), nil)
			_, err := l.Ensure(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrParse))
		})
	}
}

func TestEnsureSharesInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(sampleIndex))
	})

	l := New(srv.URL, srv.Client(), nil)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	lens := make([]int, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx, err := l.Ensure(context.Background())
			errs[i] = err
			lens[i] = len(idx)
		}(i)
	}

	// Let every caller reach the in-flight load before it completes.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent callers must share one fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 2, lens[i])
	}
}

func TestEnsureAbortAllowsRetry(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return
		}
		_, _ = w.Write([]byte(sampleIndex))
	})
	defer close(release)

	l := New(srv.URL, srv.Client(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Ensure(ctx)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	err := <-done
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrAborted), "cancellation is reported as an abort, got %v", err)
	assert.False(t, l.Loaded())

	// The aborted load left consistent state; a fresh Ensure succeeds.
	idx, err := l.Ensure(context.Background())
	require.NoError(t, err)
	assert.Len(t, idx, 2)
}

func TestReset(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(sampleIndex))
	})

	l := New(srv.URL, srv.Client(), nil)
	_, err := l.Ensure(context.Background())
	require.NoError(t, err)

	l.Reset()
	assert.False(t, l.Loaded())

	_, err = l.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
