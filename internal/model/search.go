package model

import (
	"fmt"
	"time"
)

// Sort orders accepted by a search request.
const (
	SortRelevance  = "relevance" // source-reported order, untouched
	SortDate       = "date"
	SortYear       = "year"
	SortCaseNumber = "case_number"
	SortTextLength = "text_length"
)

// Sort directions. Empty means the per-key default: newest first for
// date/year, ascending for case_number/text_length.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filters are conjunctive: a result must satisfy every active filter.
// Outcome, judge, regional office and date filters inspect fields absent
// from raw fragments and therefore trigger per-document enrichment.
type Filters struct {
	Outcome        string `json:"outcome,omitempty"`
	Judge          string `json:"judge,omitempty"`
	RegionalOffice string `json:"regional_office,omitempty"`
	DateFrom       string `json:"date_from,omitempty"` // ISO 8601, inclusive
	DateTo         string `json:"date_to,omitempty"`   // ISO 8601, inclusive
}

// Empty reports whether no filter is active.
func (f Filters) Empty() bool {
	return f == Filters{}
}

// NeedsEnrichment reports whether any active filter inspects a field that is
// not present on a raw fragment.
func (f Filters) NeedsEnrichment() bool {
	return f.Outcome != "" || f.Judge != "" || f.RegionalOffice != "" ||
		f.DateFrom != "" || f.DateTo != ""
}

// SearchRequest is the inbound search shape. Exactly one of Year and
// YearStart/YearEnd may be active; the range is inclusive and capped.
type SearchRequest struct {
	Query     string  `json:"query"`
	Year      int     `json:"year,omitempty"`
	YearStart int     `json:"year_start,omitempty"`
	YearEnd   int     `json:"year_end,omitempty"`
	MaxPages  int     `json:"max_pages"`
	PageSize  int     `json:"page_size"`
	SortBy    string  `json:"sort_by,omitempty"`
	SortOrder string  `json:"sort_order,omitempty"`
	Filters   Filters `json:"filters,omitempty"`
	Facets    bool    `json:"facets,omitempty"`
	Highlight bool    `json:"highlight,omitempty"`
}

// Years returns the ordered year partitions the request targets. A request
// with neither a year nor a range searches a single unpartitioned query.
func (r SearchRequest) Years() []int {
	if r.Year != 0 {
		return []int{r.Year}
	}
	if r.YearStart == 0 {
		return []int{0}
	}
	years := make([]int, 0, r.YearEnd-r.YearStart+1)
	for y := r.YearStart; y <= r.YearEnd; y++ {
		years = append(years, y)
	}
	return years
}

// Validate checks the request against the configured bounds. It runs before
// any network call; violations map to InvalidQuery or RangeTooWide.
func (r *SearchRequest) Validate(cfg SearchConfig) error {
	if r.Query == "" {
		return fmt.Errorf("%w: query is required", ErrInvalidQuery)
	}
	if r.MaxPages <= 0 {
		return fmt.Errorf("%w: max_pages must be positive", ErrInvalidQuery)
	}
	if r.MaxPages > cfg.MaxPagesCeiling {
		return fmt.Errorf("%w: max_pages %d exceeds ceiling %d", ErrRangeTooWide, r.MaxPages, cfg.MaxPagesCeiling)
	}
	if r.Year != 0 && (r.YearStart != 0 || r.YearEnd != 0) {
		return fmt.Errorf("%w: year and year_start/year_end are mutually exclusive", ErrInvalidQuery)
	}
	if (r.YearStart == 0) != (r.YearEnd == 0) {
		return fmt.Errorf("%w: year_start and year_end must be set together", ErrInvalidQuery)
	}
	if r.YearStart != 0 {
		if r.YearEnd < r.YearStart {
			return fmt.Errorf("%w: year_end %d precedes year_start %d", ErrInvalidQuery, r.YearEnd, r.YearStart)
		}
		if width := r.YearEnd - r.YearStart + 1; width > cfg.MaxYearRange {
			return fmt.Errorf("%w: year range spans %d years, cap is %d", ErrRangeTooWide, width, cfg.MaxYearRange)
		}
	}
	if r.PageSize == 0 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize < cfg.MinPageSize || r.PageSize > cfg.MaxPageSize {
		return fmt.Errorf("%w: page_size %d outside [%d, %d]", ErrInvalidQuery, r.PageSize, cfg.MinPageSize, cfg.MaxPageSize)
	}
	switch r.SortBy {
	case "", SortRelevance, SortDate, SortYear, SortCaseNumber, SortTextLength:
	default:
		return fmt.Errorf("%w: unknown sort_by %q", ErrInvalidQuery, r.SortBy)
	}
	switch r.SortOrder {
	case "", OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("%w: unknown sort_order %q", ErrInvalidQuery, r.SortOrder)
	}
	if r.Filters.Outcome != "" && !ValidOutcome(r.Filters.Outcome) {
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidQuery, r.Filters.Outcome)
	}
	for _, d := range []string{r.Filters.DateFrom, r.Filters.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: bad filter date %q", ErrInvalidQuery, d)
		}
	}
	return nil
}

// ResultFragment is the minimal record parsed from one search-results page.
// The URL is the dedup key; once created a fragment is only ever mutated by
// enrichment and snippet highlighting.
type ResultFragment struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Snippet    string `json:"snippet"`
	Year       int    `json:"year"`
	CaseNumber string `json:"case_number,omitempty"`

	// Enrichment fields, populated on demand when a filter needs them.
	DecisionDate   string `json:"decision_date,omitempty"`
	Outcome        string `json:"outcome,omitempty"`
	Judge          string `json:"judge,omitempty"`
	RegionalOffice string `json:"regional_office,omitempty"`
	TextLength     int    `json:"text_length,omitempty"`
}

// Facets maps a dimension (year, outcome, judge, regional_office) to value
// counts. Dimensions with no populated values are omitted entirely.
type Facets map[string]map[string]int

// SearchResponse echoes the request and carries the processed result set.
type SearchResponse struct {
	Query           string           `json:"query"`
	TranslatedQuery string           `json:"translated_query"`
	TotalResults    int              `json:"total_results"`
	PagesSearched   int              `json:"pages_searched"`
	Results         []ResultFragment `json:"results"`
	Facets          Facets           `json:"facets,omitempty"`
	Partial         bool             `json:"partial,omitempty"`
	Errors          []string         `json:"errors,omitempty"`
	Timestamp       string           `json:"timestamp"`
}
