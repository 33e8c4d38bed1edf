package extract

import (
	"regexp"
	"strings"
)

// Rule pairs a pattern with an extractor over its submatches. Rules for a
// field are tried in order; the first match wins. Returning "" from Extract
// means the match was unusable and the next rule is tried.
type Rule struct {
	Pattern *regexp.Regexp
	Extract func(m []string) string
}

type fieldRules []Rule

// apply runs the rules in order against text and returns the first usable
// extraction.
func (rs fieldRules) apply(text string) (string, bool) {
	for _, r := range rs {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := r.Extract(m); v != "" {
			return v, true
		}
	}
	return "", false
}

var wsRe = regexp.MustCompile(`\s+`)

// collapseWS squeezes runs of whitespace (including newlines) into single
// spaces and trims the ends.
func collapseWS(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

var docketRules = fieldRules{
	{
		// "Docket No. 12-34 567" — digits anchored to avoid swallowing prose.
		Pattern: regexp.MustCompile(`(?i)Docket\s*No\.?\s*[:\-]?\s*(\d[\d\-/ ]*\d)`),
		Extract: func(m []string) string { return collapseWS(m[1]) },
	},
	{
		Pattern: regexp.MustCompile(`(?i)Docket\s*No\.?\s*[:\-]?\s*([\w\-/ ]+)`),
		Extract: func(m []string) string { return collapseWS(m[1]) },
	},
}

var dateRules = fieldRules{
	{
		Pattern: regexp.MustCompile(`(?i)Decision\s*Date\s*[:\-]\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`),
		Extract: func(m []string) string { return isoDate(m[1]) },
	},
	{
		Pattern: regexp.MustCompile(`(?i)Decision\s*Date\s*[:\-]\s*(\d{4}-\d{2}-\d{2})`),
		Extract: func(m []string) string { return m[1] },
	},
	{
		// Date on its own line near the top of older documents.
		Pattern: regexp.MustCompile(`(?im)^DATE:\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`),
		Extract: func(m []string) string { return isoDate(m[1]) },
	},
}

var judgeRules = fieldRules{
	{
		// Title followed by the name, as formatted in newer decisions.
		Pattern: regexp.MustCompile(`(?:Acting\s+)?Veterans\s+Law\s+Judge\s*[:\-]\s*([A-Z][A-Za-z .\-']+)`),
		Extract: func(m []string) string { return cleanName(m[1]) },
	},
	{
		// Signature block: name on the line above the title.
		Pattern: regexp.MustCompile(`(?m)^\s*([A-Z][A-Za-z .\-']+?)\s*\n\s*(?:Acting\s+)?Veterans\s+Law\s+Judge`),
		Extract: func(m []string) string { return cleanName(m[1]) },
	},
}

var regionalOfficeRules = fieldRules{
	{
		Pattern: regexp.MustCompile(`(?i)Regional\s+Office\s+in\s+([A-Za-z .]+?,\s*[A-Za-z .]+?)[.\n]`),
		Extract: func(m []string) string { return collapseWS(m[1]) },
	},
	{
		Pattern: regexp.MustCompile(`(?i)Regional\s+Office\s+in\s+([A-Za-z ,.]+)`),
		Extract: func(m []string) string {
			return strings.TrimRight(collapseWS(m[1]), ".")
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)\bRO\s+in\s+([A-Za-z ,]+)`),
		Extract: func(m []string) string {
			return strings.TrimRight(collapseWS(m[1]), ".")
		},
	},
}

// Outcome anchors. Checked in order after the all-three-dispositions Mixed
// check: remand is the operative disposition in mixed decisions, so it takes
// precedence over a granted or denied mention elsewhere in the text.
var outcomeRules = []struct {
	label   string
	pattern *regexp.Regexp
}{
	{"Remanded", regexp.MustCompile(`(?i)\bREMANDED\b`)},
	{"Granted", regexp.MustCompile(`(?is)\bORDER\b.*?\bGRANTED\b`)},
	{"Denied", regexp.MustCompile(`(?is)\bORDER\b.*?\bDENIED\b`)},
	{"Granted", regexp.MustCompile(`(?i)\bis\s+granted\b`)},
	{"Denied", regexp.MustCompile(`(?i)\bis\s+denied\b`)},
}

var (
	cfrCitationRe = regexp.MustCompile(`(?i)38\s*C\.?\s*F\.?\s*R\.?\s*§?\s*([\d.]+[a-z0-9()]*)`)
	uscCitationRe = regexp.MustCompile(`(?i)38\s*U\.?\s*S\.?\s*C\.?\s*A?\.?\s*§?\s*(\d+[A-Za-z]?(?:\([A-Za-z0-9]+\))*)`)
	m21Re         = regexp.MustCompile(`(?i)M21-1[A-Za-z0-9.,\- ]*[A-Za-z0-9]`)
)

func cleanName(s string) string {
	s = collapseWS(s)
	return strings.TrimRight(s, " .-")
}
