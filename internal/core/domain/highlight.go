package domain

import "strings"

// HighlightSpan marks a byte range of a display string that matched the
// query. Matching is case-insensitive and literal: the query substring as
// typed, no tokenisation, no fuzziness.
type HighlightSpan struct {
	// Start is the inclusive byte offset of the match.
	Start int

	// End is the exclusive byte offset of the match.
	End int
}

// HighlightSpans finds every non-overlapping occurrence of query in text.
// Lowercasing is byte-length preserving for ASCII and Arabic, which covers
// the backend's data; if folding changes the byte length the match falls
// back to case-sensitive so offsets always index the original text.
func HighlightSpans(text, query string) []HighlightSpan {
	if text == "" || query == "" {
		return nil
	}

	haystack := strings.ToLower(text)
	needle := strings.ToLower(query)
	if len(haystack) != len(text) {
		haystack = text
		needle = query
	}

	var spans []HighlightSpan
	offset := 0
	for {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			break
		}
		start := offset + i
		spans = append(spans, HighlightSpan{Start: start, End: start + len(needle)})
		offset = start + len(needle)
	}
	return spans
}

// MatchesQuery reports whether text contains the query, case-insensitively.
func MatchesQuery(text, query string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}
