// Package searcher ranks indexed documents against a query using a
// weighted-coverage heuristic.
//
// Per token, a title substring match adds 10x the document weight (plus a
// flat 20 when the title equals the token exactly) and a content
// substring match adds 1x the weight. The accumulated score is then
// multiplied by coverage, the fraction of token matches over the token
// count. A token matching both title and content counts twice toward
// coverage; that is intended behavior, not a bug.
//
// Scanning stops once 2x the result limit of documents have scored
// positive, bounding latency on large indexes at the cost of not
// guaranteeing the globally best match set beyond the cutoff.
//
//	resp := searcher.Search(idx, searcher.Request{Query: "learn go", MaxResults: 50})
//	for _, item := range resp.Results {
//	    fmt.Printf("%s (%.1f)\n", item.Title, item.MatchScore)
//	}
//
// Search is deterministic and free of side effects; identical inputs
// yield identical ordered results.
package searcher
