package types

// DocumentRecord is one entry of the raw JSON search index as published
// by the site generator. Title and Content are optional on the wire.
type DocumentRecord struct {
	Title   string `json:"title"`
	Content string `json:"content"` // HTML
	URL     string `json:"url"`
}

// IndexedDocument is the preprocessed, searchable form of a record.
// Lower-cased copies of title and content are precomputed at load time so
// search never re-runs case conversion.
type IndexedDocument struct {
	ID           int // Stable, assigned in load order
	Title        string
	Content      string // HTML stripped
	URL          string
	TitleLower   string
	ContentLower string
	Weight       float64 // >= 1.0, fixed at load time
}

// SearchIndex is the ordered in-memory document collection, built once
// per loader lifetime.
type SearchIndex []IndexedDocument
