package model

import "errors"

// Sentinel errors for the stable error taxonomy. Callers classify with
// errors.Is; transports map each sentinel to a status and code. Wrapped
// detail stays server-side, upstream bodies are never echoed verbatim.
var (
	// ErrInvalidQuery covers malformed boolean/phrase syntax, an empty query
	// after parsing, and out-of-range request parameters caught before any
	// network call.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrRangeTooWide is returned when a year range exceeds the configured
	// cap or max_pages exceeds the ceiling.
	ErrRangeTooWide = errors.New("range too wide")

	// ErrUpstreamUnavailable is returned when a single-document fetch fails,
	// or when every page of a search fails.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCaseNotFound is returned when the source reports 404 for a
	// single-document fetch.
	ErrCaseNotFound = errors.New("case not found")

	// ErrTextTooShort is returned by analysis on undersized documents.
	ErrTextTooShort = errors.New("text too short")
)

// ErrorCode returns the stable wire code for err, or "internal_error" for
// anything outside the taxonomy.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, ErrRangeTooWide):
		return "range_too_wide"
	case errors.Is(err, ErrCaseNotFound):
		return "case_not_found"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrTextTooShort):
		return "text_too_short"
	default:
		return "internal_error"
	}
}
