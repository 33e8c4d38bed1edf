package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/model"
	"github.com/va2ai/bvaapi2/internal/query"
	"github.com/va2ai/bvaapi2/internal/worker"
)

// Orchestrator drives the paginated, rate-limited search loop across one or
// more year partitions, deduplicates fragments by URL and assembles the raw
// SearchResponse. Filtering, sorting, facets and highlighting happen in
// postprocess, after this stage.
type Orchestrator struct {
	cfg       model.SearchConfig
	fetcher   *Fetcher
	parser    *ResultPageParser
	scheduler worker.Scheduler
	logger    *zap.Logger
}

// NewOrchestrator creates an Orchestrator. The scheduler enforces the
// minimum inter-request delay contract toward the source; every fetch goes
// through it.
func NewOrchestrator(cfg model.SearchConfig, fetcher *Fetcher, parser *ResultPageParser, scheduler worker.Scheduler, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		fetcher:   fetcher,
		parser:    parser,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Search validates the request, translates the query and walks pages
// sequentially for every target year. max_pages bounds pages per year.
// Page-level failures are recorded and skipped; the request fails outright
// only when validation fails, the caller cancels, or no page succeeds at all.
func (o *Orchestrator) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error) {
	if err := req.Validate(o.cfg); err != nil {
		return nil, err
	}
	translated, err := query.Translate(req.Query)
	if err != nil {
		return nil, err
	}

	resp := &model.SearchResponse{
		Query:           req.Query,
		TranslatedQuery: translated,
	}

	var fragments []model.ResultFragment
	reportedTotal := 0

	for _, year := range req.Years() {
		pageURL := o.searchURL(translated, year)

		for page := 1; page <= req.MaxPages; page++ {
			if err := o.scheduler.Wait(ctx, pageURL); err != nil {
				// Cancellation aborts the whole request: no partial result
				// is returned for a caller that has gone away.
				return nil, err
			}

			body, err := o.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				o.logger.Warn("search page fetch failed",
					zap.Int("year", year),
					zap.Int("page", page),
					zap.Error(err))
				resp.Partial = true
				resp.Errors = append(resp.Errors, fmt.Sprintf("year %d page %d: %s", year, page, model.ErrorCode(err)))
				break
			}

			parsed, err := o.parser.Parse(body, pageURL)
			if err != nil {
				resp.Partial = true
				resp.Errors = append(resp.Errors, fmt.Sprintf("year %d page %d: unparseable page", year, page))
				break
			}

			resp.PagesSearched++
			if parsed.TotalCount > reportedTotal {
				reportedTotal = parsed.TotalCount
			}

			frags := parsed.Fragments
			if len(frags) > req.PageSize {
				frags = frags[:req.PageSize]
			}
			fragments = append(fragments, frags...)

			// An empty page or a missing next link ends this partition.
			if len(parsed.Fragments) == 0 || parsed.NextURL == "" {
				break
			}
			pageURL = parsed.NextURL
		}
	}

	resp.Results = dedupeByURL(fragments)

	if len(resp.Results) == 0 && resp.Partial && resp.PagesSearched == 0 {
		return nil, fmt.Errorf("%w: every page fetch failed", model.ErrUpstreamUnavailable)
	}

	if reportedTotal > 0 {
		resp.TotalResults = reportedTotal
	} else {
		resp.TotalResults = len(resp.Results)
	}
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)

	return resp, nil
}

// searchURL builds the first-page search URL for one year partition. Year 0
// means no partition: the query goes out unscoped.
func (o *Orchestrator) searchURL(translated string, year int) string {
	q := translated
	if year != 0 {
		q = translated + " " + strconv.Itoa(year)
	}
	params := url.Values{}
	params.Set("affiliate", o.cfg.Affiliate)
	params.Set("query", q)
	return o.cfg.BaseURL + "?" + params.Encode()
}

// dedupeByURL drops fragments whose URL was already seen, keeping first-seen
// order as the baseline before any sort.
func dedupeByURL(fragments []model.ResultFragment) []model.ResultFragment {
	seen := make(map[string]bool, len(fragments))
	out := make([]model.ResultFragment, 0, len(fragments))
	for _, frag := range fragments {
		if frag.URL == "" || seen[frag.URL] {
			continue
		}
		seen[frag.URL] = true
		out = append(out, frag)
	}
	return out
}
