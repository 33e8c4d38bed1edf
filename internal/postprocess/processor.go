// Package postprocess applies filters, sort order, facet aggregation and
// snippet highlighting to the orchestrator's raw result set.
package postprocess

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/model"
)

// EnrichFunc fetches and extracts the CaseRecord behind a fragment URL.
// The pipeline supplies one backed by a request-scoped cache, so a URL is
// fetched at most once per request no matter how many filters inspect it.
type EnrichFunc func(ctx context.Context, url string) (*model.CaseRecord, error)

// Processor applies the post-fetch stages. It holds no per-request state.
type Processor struct {
	logger *zap.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// Result carries the processed fragments plus the partial-result signal
// raised when enrichment fetches fail.
type Result struct {
	Fragments []model.ResultFragment
	Facets    model.Facets
	Partial   bool
	Errors    []string
}

// Process runs the two-phase filter pipeline (cheap predicates first, then
// enrichment-requiring ones), sorts, and aggregates facets over the filtered
// set. Enrichment cost is paid only when a requested filter needs a field
// the raw fragment lacks, or facets over extracted dimensions are requested.
func (p *Processor) Process(ctx context.Context, fragments []model.ResultFragment, req model.SearchRequest, enrich EnrichFunc) Result {
	var out Result

	// Facets alone never force enrichment: dimensions without populated
	// values are simply omitted. Sorting on extracted fields does.
	kept := fragments
	needEnrichment := req.Filters.NeedsEnrichment() ||
		req.SortBy == model.SortDate || req.SortBy == model.SortTextLength

	if needEnrichment {
		kept = p.enrichAndFilter(ctx, kept, req.Filters, enrich, &out)
	}

	kept = sortFragments(kept, req.SortBy, req.SortOrder)

	if req.Facets {
		out.Facets = computeFacets(kept)
	}

	out.Fragments = kept
	return out
}

// enrichAndFilter fetches each fragment's document, copies the extracted
// fields onto the fragment and evaluates the enrichment-requiring filters.
// A fragment whose document cannot be fetched is dropped and recorded; the
// request itself keeps going (partial-result policy).
func (p *Processor) enrichAndFilter(ctx context.Context, fragments []model.ResultFragment, filters model.Filters, enrich EnrichFunc, out *Result) []model.ResultFragment {
	kept := make([]model.ResultFragment, 0, len(fragments))

	for _, frag := range fragments {
		rec, err := enrich(ctx, frag.URL)
		if err != nil {
			if ctx.Err() != nil {
				return kept
			}
			p.logger.Warn("enrichment fetch failed",
				zap.String("url", frag.URL),
				zap.Error(err))
			out.Partial = true
			out.Errors = append(out.Errors, "enrich "+frag.URL+": "+model.ErrorCode(err))
			continue
		}

		frag.DecisionDate = rec.DecisionDate
		frag.Outcome = rec.Outcome
		frag.Judge = rec.Judge
		frag.RegionalOffice = rec.RegionalOffice
		frag.TextLength = rec.TextLength

		if matchesFilters(frag, filters) {
			kept = append(kept, frag)
		}
	}
	return kept
}

// matchesFilters evaluates the conjunction of active filters against an
// enriched fragment.
func matchesFilters(frag model.ResultFragment, f model.Filters) bool {
	if f.Outcome != "" && frag.Outcome != f.Outcome {
		return false
	}
	if f.Judge != "" && !containsFold(frag.Judge, f.Judge) {
		return false
	}
	if f.RegionalOffice != "" && !containsFold(frag.RegionalOffice, f.RegionalOffice) {
		return false
	}
	if f.DateFrom != "" || f.DateTo != "" {
		if frag.DecisionDate == "" {
			return false
		}
		// ISO 8601 dates compare correctly as strings.
		if f.DateFrom != "" && frag.DecisionDate < f.DateFrom {
			return false
		}
		if f.DateTo != "" && frag.DecisionDate > f.DateTo {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
