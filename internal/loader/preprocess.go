package loader

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/localsearch/pkg/types"
)

// UntitledTitle substitutes for records published without a title.
const UntitledTitle = "Untitled"

// tagPattern matches HTML tags for removal from record content.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Preprocess converts raw records into the searchable index. IDs are
// assigned sequentially in load order.
func Preprocess(records []types.DocumentRecord) types.SearchIndex {
	idx := make(types.SearchIndex, 0, len(records))
	for i, rec := range records {
		idx = append(idx, preprocessRecord(i, rec))
	}
	return idx
}

func preprocessRecord(id int, rec types.DocumentRecord) types.IndexedDocument {
	title := rec.Title
	if title == "" {
		title = UntitledTitle
	}
	content := stripTags(rec.Content)

	return types.IndexedDocument{
		ID:           id,
		Title:        title,
		Content:      content,
		URL:          rec.URL,
		TitleLower:   strings.ToLower(title),
		ContentLower: strings.ToLower(content),
		Weight:       calculateWeight(title, content),
	}
}

// stripTags removes HTML tags, leaving the text content.
func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// calculateWeight derives a document's static weight: base 1.0, +0.1 for
// titles longer than 10 runes, +0.2 for content longer than 500 runes and
// a further +0.3 beyond 1000. Computed once at load time.
func calculateWeight(title, content string) float64 {
	weight := 1.0

	if utf8.RuneCountInString(title) > 10 {
		weight += 0.1
	}

	n := utf8.RuneCountInString(content)
	if n > 500 {
		weight += 0.2
	}
	if n > 1000 {
		weight += 0.3
	}

	return weight
}
