// Package loader fetches the site's JSON document index and preprocesses
// it into the in-memory searchable form.
//
// The index is fetched at most once per loader lifetime. Concurrent
// Ensure calls while a load is in flight share the single fetch and
// observe the same result:
//
//	l := loader.New("/search.json", httpClient, logger)
//
//	idx, err := l.Ensure(ctx)
//	if errors.Is(err, types.ErrAborted) {
//	    // cancelled, not a failure; a later Ensure retries
//	}
//
// Failed loads are not memoized, so the next Ensure attempts a fresh
// fetch. Reset drops a loaded index for explicit teardown.
package loader
