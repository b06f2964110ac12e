// Package highlight wraps query tokens in marker elements and extracts
// content excerpts around the first keyword occurrence.
package highlight

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// markOpen and markClose wrap every token occurrence. The class name
	// is part of the contract with theme stylesheets.
	markOpen  = `<mark class="search-keyword">`
	markClose = `</mark>`

	// excerptLength is the content window size in runes; excerptLead is
	// how far before the first occurrence the window starts.
	excerptLength = 150
	excerptLead   = 50

	ellipsis = "..."
)

// Tokens wraps every case-insensitive occurrence of each token in text.
// Tokens are applied sequentially, so markers inserted by an earlier
// token are visible to later passes. That can re-highlight marker text
// when a token happens to match it; kept intentionally for compatibility
// with the widget's historical output.
func Tokens(text string, tokens []string) string {
	out := text
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tok))
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			return markOpen + m + markClose
		})
	}
	return out
}

// Excerpt returns a highlighted window of content around the earliest
// token occurrence. When no token appears in content (only the title
// matched), it falls back to the highlighted head of the content.
// contentLower must be the precomputed lower-cased copy of content.
func Excerpt(content, contentLower string, tokens []string) string {
	first := -1
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if i := strings.Index(contentLower, tok); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}

	runes := []rune(content)

	if first < 0 {
		if len(runes) <= excerptLength {
			return Tokens(content, tokens)
		}
		return Tokens(string(runes[:excerptLength]), tokens) + ellipsis
	}

	// first is a byte offset into contentLower, whose byte lengths can
	// differ from content's after case mapping. Rune counts align 1:1
	// between the two, so convert before windowing.
	start := utf8.RuneCountInString(contentLower[:first]) - excerptLead
	if start < 0 {
		start = 0
	}
	end := start + excerptLength
	if end > len(runes) {
		end = len(runes)
	}

	out := Tokens(string(runes[start:end]), tokens)
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(runes) {
		out += ellipsis
	}
	return out
}
