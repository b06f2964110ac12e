package searcher

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/localsearch/internal/highlight"
	"github.com/dshills/localsearch/pkg/types"
)

const (
	DefaultMaxResults     = 50
	DefaultMinQueryLength = 2

	// scanMultiplier bounds the scan: scoring stops once
	// scanMultiplier * MaxResults documents have scored positive.
	scanMultiplier = 2
)

// Request contains parameters for one search operation.
type Request struct {
	Query      string
	MaxResults int // <= 0 means DefaultMaxResults
}

// Response contains ranked results and scan metadata. The counters make
// cache behavior observable: a cached response is replayed without any
// scoring work, so ScannedDocs stays put.
type Response struct {
	Results     []types.ResultItem
	ScannedDocs int // Documents examined before the scan ended
	ScoredDocs  int // Documents that scored positive
	CacheHit    bool
	Duration    time.Duration
}

// TooShort reports whether the trimmed query is below the minimum length
// in runes. Callers clear their result view instead of searching.
func TooShort(query string, minLength int) bool {
	if minLength <= 0 {
		minLength = DefaultMinQueryLength
	}
	return utf8.RuneCountInString(strings.TrimSpace(query)) < minLength
}

// Tokenize lower-cases the query and splits it on whitespace and hyphen
// runs, dropping empty tokens. No deduplication, no stemming.
func Tokenize(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}

// MatchScore computes the weighted-coverage score of a document against
// the token set. Zero means no match.
func MatchScore(doc *types.IndexedDocument, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	var score float64
	titleMatches := 0
	contentMatches := 0

	for _, tok := range tokens {
		if strings.Contains(doc.TitleLower, tok) {
			titleMatches++
			score += 10 * doc.Weight
			if doc.TitleLower == tok {
				score += 20
			}
		}
		if strings.Contains(doc.ContentLower, tok) {
			contentMatches++
			score += doc.Weight
		}
	}

	if titleMatches == 0 && contentMatches == 0 {
		return 0
	}

	coverage := float64(titleMatches+contentMatches) / float64(len(tokens))
	return score * coverage
}

// scoredDoc pairs a document with its score during the scan.
type scoredDoc struct {
	doc   *types.IndexedDocument
	score float64
}

// Search scores the index against the request and returns ranked,
// highlighted results, descending by score with ties in scan order.
func Search(idx types.SearchIndex, req Request) *Response {
	start := time.Now()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	cutoff := scanMultiplier * maxResults

	resp := &Response{}
	tokens := Tokenize(req.Query)
	if len(tokens) == 0 {
		resp.Duration = time.Since(start)
		return resp
	}

	matches := make([]scoredDoc, 0, maxResults)
	for i := range idx {
		resp.ScannedDocs++

		score := MatchScore(&idx[i], tokens)
		if score <= 0 {
			continue
		}

		matches = append(matches, scoredDoc{doc: &idx[i], score: score})
		resp.ScoredDocs++
		if resp.ScoredDocs >= cutoff {
			break
		}
	}

	// Stable: equal scores keep their relative scan order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	resp.Results = buildResults(matches, tokens)
	resp.Duration = time.Since(start)
	return resp
}

// buildResults produces highlighted result items for the kept matches.
// Highlighting runs after truncation so discarded documents never pay
// for it.
func buildResults(matches []scoredDoc, tokens []string) []types.ResultItem {
	results := make([]types.ResultItem, 0, len(matches))
	for _, m := range matches {
		results = append(results, types.ResultItem{
			IndexedDocument:    *m.doc,
			MatchScore:         m.score,
			HighlightedTitle:   highlight.Tokens(m.doc.Title, tokens),
			HighlightedContent: highlight.Excerpt(m.doc.Content, m.doc.ContentLower, tokens),
		})
	}
	return results
}
