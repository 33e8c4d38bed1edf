// Package analyze computes keyword and readability analytics over a single
// decision document's full text.
package analyze

import (
	"fmt"
	"strings"
	"time"

	"github.com/va2ai/bvaapi2/internal/model"
)

// Analyzer scans document text for requested keywords and the fixed VA term
// census, optionally capturing bounded surrounding context per occurrence.
// It holds only configuration and is safe for concurrent use.
type Analyzer struct {
	cfg model.AnalyzeConfig
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(cfg model.AnalyzeConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze counts occurrences of every requested keyword and every fixed VA
// term in a single pass over the text, and computes the readability grade.
// Documents shorter than the configured minimum fail with TextTooShort.
func (a *Analyzer) Analyze(fullText string, keywords []string, includeContext bool) (*model.AnalysisResult, error) {
	if len(fullText) < a.cfg.MinTextLength {
		return nil, fmt.Errorf("%w: %d chars, need at least %d", model.ErrTextTooShort, len(fullText), a.cfg.MinTextLength)
	}

	result := &model.AnalysisResult{
		TextLength:   len(fullText),
		VATermsFound: make(map[string]int, len(a.cfg.VATerms)),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	lower := strings.ToLower(fullText)

	if len(keywords) > 0 {
		result.KeywordCounts = make(map[string]int, len(keywords))
		if includeContext {
			result.KeywordContexts = make(map[string][]string, len(keywords))
		}
	}
	for _, kw := range keywords {
		count, contexts := a.scan(fullText, lower, kw, includeContext)
		result.KeywordCounts[kw] = count
		if includeContext && len(contexts) > 0 {
			result.KeywordContexts[kw] = contexts
		}
	}

	for _, term := range a.cfg.VATerms {
		count, _ := a.scan(fullText, lower, term, false)
		result.VATermsFound[term] = count
	}

	result.ReadabilityGrade = FleschKincaidGrade(fullText)
	return result, nil
}

// scan counts case-insensitive occurrences of term and, when wanted,
// captures up to MaxContextsPerTerm windows of surrounding text. The context
// cap bounds response size: a common term in a long document would otherwise
// produce an unbounded context list.
func (a *Analyzer) scan(text, lower, term string, withContext bool) (int, []string) {
	t := strings.ToLower(term)
	if t == "" {
		return 0, nil
	}

	count := 0
	var contexts []string
	for from := 0; ; {
		idx := strings.Index(lower[from:], t)
		if idx < 0 {
			break
		}
		pos := from + idx
		count++
		if withContext && len(contexts) < a.cfg.MaxContextsPerTerm {
			contexts = append(contexts, window(text, pos, pos+len(t), a.cfg.ContextWindow))
		}
		from = pos + len(t)
	}
	return count, contexts
}

// window returns the text around [start, end) padded by size chars on each
// side, squeezed onto one line.
func window(text string, start, end, size int) string {
	lo := start - size
	if lo < 0 {
		lo = 0
	}
	hi := end + size
	if hi > len(text) {
		hi = len(text)
	}
	snippet := strings.Join(strings.Fields(text[lo:hi]), " ")
	return snippet
}
