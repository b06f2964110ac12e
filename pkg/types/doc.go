// Package types defines the shared domain types for the search component:
// raw document records as served by the site's JSON index, their
// preprocessed in-memory form, and per-query result items.
//
// IndexedDocument values are immutable once the loader has produced them;
// ResultItem values are transient, produced per query and never persisted.
package types
