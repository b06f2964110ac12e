package types

// ResultItem is a single search hit: the matched document plus its score
// and highlighted display fragments.
type ResultItem struct {
	IndexedDocument

	MatchScore         float64
	HighlightedTitle   string // HTML
	HighlightedContent string // HTML excerpt; empty when nothing to show
}

// Validate checks the result invariants. A result item only exists for a
// positive match score.
func (r *ResultItem) Validate() error {
	if r.MatchScore <= 0 {
		return ErrInvalidScore
	}

	if r.URL == "" {
		return ErrMissingURL
	}

	if r.Weight < 1.0 {
		return ErrInvalidWeight
	}

	return nil
}
