package model

// Outcome classifications for a decision. Extraction degrades to
// OutcomeUnknown when no disposition keyword matches.
const (
	OutcomeGranted  = "Granted"
	OutcomeDenied   = "Denied"
	OutcomeRemanded = "Remanded"
	OutcomeMixed    = "Mixed"
	OutcomeUnknown  = "Unknown"
)

// ValidOutcome reports whether s is a known outcome label.
func ValidOutcome(s string) bool {
	switch s {
	case OutcomeGranted, OutcomeDenied, OutcomeRemanded, OutcomeMixed, OutcomeUnknown:
		return true
	}
	return false
}

// CaseRecord is the structured view of a single decision document. Fields
// the extractor cannot match default to empty or Unknown; extraction never
// fails a request.
type CaseRecord struct {
	URL            string   `json:"url"`
	Year           int      `json:"year"`
	CaseNumber     string   `json:"case_number,omitempty"`
	DocketNo       string   `json:"docket_no,omitempty"`
	DecisionDate   string   `json:"decision_date,omitempty"` // ISO 8601
	Outcome        string   `json:"outcome"`
	Judge          string   `json:"judge,omitempty"`
	RegionalOffice string   `json:"regional_office,omitempty"`
	Issues         []string `json:"issues,omitempty"`
	Citations      []string `json:"citations,omitempty"`
	TextLength     int      `json:"text_length"`
	TextPreview    string   `json:"text_preview,omitempty"`
	FullText       string   `json:"full_text,omitempty"`
	Summary        string   `json:"summary,omitempty"` // optional LLM summary
	FetchTimestamp string   `json:"fetch_timestamp"`
}

// AnalysisResult is the output of analyzing one decision document.
type AnalysisResult struct {
	URL              string              `json:"url"`
	CaseNumber       string              `json:"case_number,omitempty"`
	TextLength       int                 `json:"text_length"`
	KeywordCounts    map[string]int      `json:"keyword_counts,omitempty"`
	KeywordContexts  map[string][]string `json:"keyword_contexts,omitempty"`
	VATermsFound     map[string]int      `json:"va_terms_found"`
	ReadabilityGrade float64             `json:"readability_grade"`
	Timestamp        string              `json:"analysis_timestamp"`
}

// BatchSearchResult summarizes one query of a batch search. A failed query
// yields an empty entry rather than failing the batch.
type BatchSearchResult struct {
	Query       string   `json:"query"`
	Count       int      `json:"count"`
	URLs        []string `json:"urls"`
	CaseNumbers []string `json:"case_numbers"`
	Error       string   `json:"error,omitempty"`
}
