// Package extract turns raw decision text into a structured CaseRecord via
// ordered pattern rules per field. Upstream document formatting is wildly
// inconsistent, so extraction never fails: unmatched fields degrade to empty
// or Unknown and partial metadata is still returned.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Limits on collected list fields, matching the deployed scraper.
const (
	maxIssues       = 5
	maxCFRCitations = 10
	maxM21Citations = 5
)

// Extractor parses decision documents. It is stateless and safe for
// concurrent use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Metadata holds the fields extracted from a document's text.
type Metadata struct {
	DocketNo       string
	DecisionDate   string
	Outcome        string
	Judge          string
	RegionalOffice string
	Issues         []string
	Citations      []string
}

// Extract parses rawText. Every field is best-effort; a document that
// matches nothing yields an Unknown outcome and empty fields.
func (e *Extractor) Extract(rawText string) Metadata {
	md := Metadata{Outcome: outcome(rawText)}

	if v, ok := docketRules.apply(rawText); ok {
		md.DocketNo = v
	}
	if v, ok := dateRules.apply(rawText); ok {
		md.DecisionDate = v
	}
	if v, ok := judgeRules.apply(rawText); ok {
		md.Judge = v
	}
	if v, ok := regionalOfficeRules.apply(rawText); ok {
		md.RegionalOffice = v
	}
	md.Issues = issues(rawText)
	md.Citations = citations(rawText)
	return md
}

// outcome classifies the disposition. A document carrying all three anchors
// is a mixed decision; otherwise the rule order encodes the precedence
// (remanded, then granted, then denied).
func outcome(text string) string {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "REMANDED") &&
		strings.Contains(upper, "GRANTED") &&
		strings.Contains(upper, "DENIED") {
		return "Mixed"
	}
	for _, rule := range outcomeRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return "Unknown"
}

// issues scans for controlled-vocabulary terms, ordered by first occurrence
// and deduplicated.
func issues(text string) []string {
	type hit struct {
		label string
		pos   int
	}
	var hits []hit
	for _, term := range issueVocab {
		if loc := term.pattern.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{label: term.label, pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	var out []string
	for _, h := range hits {
		out = append(out, h.label)
		if len(out) == maxIssues {
			break
		}
	}
	return out
}

// citations collects CFR, USC and M21-1 references, ordered by first
// occurrence and deduplicated.
func citations(text string) []string {
	type hit struct {
		cite string
		pos  int
	}
	var hits []hit
	seen := make(map[string]bool)

	add := func(cite string, pos int) {
		if cite == "" || seen[cite] {
			return
		}
		seen[cite] = true
		hits = append(hits, hit{cite: cite, pos: pos})
	}

	for i, m := range cfrCitationRe.FindAllStringSubmatchIndex(text, -1) {
		if i == maxCFRCitations {
			break
		}
		section := strings.TrimRight(text[m[2]:m[3]], ".")
		add("38 C.F.R. § "+section, m[0])
	}
	for i, m := range uscCitationRe.FindAllStringSubmatchIndex(text, -1) {
		if i == maxCFRCitations {
			break
		}
		add("38 U.S.C. § "+text[m[2]:m[3]], m[0])
	}
	for i, m := range m21Re.FindAllStringIndex(text, -1) {
		if i == maxM21Citations {
			break
		}
		add(collapseWS(text[m[0]:m[1]]), m[0])
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.cite
	}
	return out
}

// isoDate normalizes "Month D, YYYY" to ISO 8601, or returns "" when the
// month name is unparseable.
func isoDate(s string) string {
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, collapseWS(s)); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

var urlYearRe = regexp.MustCompile(`/((?:19|20)\d{2})/`)

// YearFromURL extracts the partition year embedded in a decision URL, or 0.
func YearFromURL(rawURL string) int {
	m := urlYearRe.FindStringSubmatch(rawURL)
	if m == nil {
		return 0
	}
	year := 0
	for _, c := range m[1] {
		year = year*10 + int(c-'0')
	}
	return year
}

// CaseNumberFromURL extracts the case number from a decision URL, which names
// documents as "<case_number>.txt".
func CaseNumberFromURL(rawURL string) string {
	idx := strings.LastIndexByte(rawURL, '/')
	name := rawURL[idx+1:]
	if !strings.HasSuffix(name, ".txt") {
		return ""
	}
	return strings.TrimSuffix(name, ".txt")
}
