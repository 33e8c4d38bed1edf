package postprocess

import (
	"sort"
	"strings"
)

// Emphasis markers wrapped around matched terms in snippets.
const (
	markOpen  = "<em>"
	markClose = "</em>"
)

// Highlight wraps every case-insensitive occurrence of the given terms in
// emphasis markers. Overlapping matches resolve leftmost-longest. Highlight
// operates only on the text it is given; it never fetches.
func Highlight(text string, terms []string) string {
	if text == "" || len(terms) == 0 {
		return text
	}

	lower := strings.ToLower(text)

	type span struct{ start, end int }
	var spans []span
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		for from := 0; ; {
			idx := strings.Index(lower[from:], t)
			if idx < 0 {
				break
			}
			start := from + idx
			spans = append(spans, span{start: start, end: start + len(t)})
			from = start + 1
		}
	}
	if len(spans) == 0 {
		return text
	}

	// Leftmost-longest: order by start, longer span first on ties, then
	// drop anything overlapping an accepted span.
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})
	accepted := spans[:0]
	lastEnd := 0
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		accepted = append(accepted, s)
		lastEnd = s.end
	}

	var b strings.Builder
	b.Grow(len(text) + len(accepted)*(len(markOpen)+len(markClose)))
	prev := 0
	for _, s := range accepted {
		b.WriteString(text[prev:s.start])
		b.WriteString(markOpen)
		b.WriteString(text[s.start:s.end])
		b.WriteString(markClose)
		prev = s.end
	}
	b.WriteString(text[prev:])
	return b.String()
}

// HighlightTerms derives the positive terms of a translated query: negated
// tokens and the OR operator are skipped, phrase quotes are stripped.
func HighlightTerms(translated string) []string {
	var terms []string
	for _, tok := range splitQuery(translated) {
		if tok == "OR" || strings.HasPrefix(tok, "-") {
			continue
		}
		tok = strings.Trim(tok, `"`)
		if tok != "" {
			terms = append(terms, tok)
		}
	}
	return terms
}

// splitQuery splits on spaces while keeping quoted phrases intact.
func splitQuery(q string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	for _, r := range q {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ' ' && !inQuote:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
