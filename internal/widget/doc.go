// Package widget implements the search component: it takes the host's
// input events, debounces them, loads the index on demand, and renders
// ranked results through an injected display.
//
// Control flow per keystroke: trim -> length check -> debounce -> cache
// lookup -> index load if needed -> score/sort/trim -> render. Every
// asynchronous boundary is followed by a staleness check against a
// monotonically increasing query sequence, so only the most recent
// query's results ever reach the display.
//
//	w, err := widget.New(nil, widget.Deps{
//	    Client:  httpClient,
//	    Display: display,
//	})
//	if err != nil { ... }
//	defer w.Close()
//
//	w.Query("learn go") // called on every input event
//
// Close aborts any in-flight index fetch, purges the query cache and
// drops the index.
package widget
