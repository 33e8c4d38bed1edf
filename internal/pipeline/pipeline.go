// Package pipeline wires the fetch, parse, extract and post-process stages
// into the operations the transports expose. Every upstream request flows
// through one shared scheduler, so the minimum-delay contract toward the
// source holds across concurrent callers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/analyze"
	"github.com/va2ai/bvaapi2/internal/cache"
	"github.com/va2ai/bvaapi2/internal/extract"
	"github.com/va2ai/bvaapi2/internal/llm"
	"github.com/va2ai/bvaapi2/internal/metrics"
	"github.com/va2ai/bvaapi2/internal/model"
	"github.com/va2ai/bvaapi2/internal/postprocess"
	"github.com/va2ai/bvaapi2/internal/util"
	"github.com/va2ai/bvaapi2/internal/worker"
)

// previewLen is the size of the text preview returned for a case when the
// caller did not ask for the full text.
const previewLen = 500

// enrichmentTTL bounds the request-scoped record cache. Requests finish well
// inside it; it only guards against a record pinned by a stalled request.
const enrichmentTTL = 10 * time.Minute

// Pipeline is the service core. It is stateless across requests and safe for
// concurrent use.
type Pipeline struct {
	cfg        *model.Config
	scheduler  worker.Scheduler
	fetcher    *Fetcher
	orch       *Orchestrator
	extractor  *extract.Extractor
	processor  *postprocess.Processor
	analyzer   *analyze.Analyzer
	summarizer llm.Summarizer
	logger     *zap.Logger
}

// New assembles the pipeline from config. A missing LLM provider disables
// summarization without error; any other summarizer construction failure is
// fatal.
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	var robots *util.RobotsChecker
	if cfg.Robots.Enabled {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	scheduler := worker.NewLimiter(cfg.Search.RequestDelay)
	fetcher := NewFetcher(cfg.HTTP, robots, logger)
	parser := NewResultPageParser()
	orch := NewOrchestrator(cfg.Search, fetcher, parser, scheduler, logger)

	summarizer, err := llm.New(cfg.LLM)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			return nil, err
		}
		summarizer = nil
	}

	return &Pipeline{
		cfg:        cfg,
		scheduler:  scheduler,
		fetcher:    fetcher,
		orch:       orch,
		extractor:  extract.NewExtractor(),
		processor:  postprocess.NewProcessor(logger),
		analyzer:   analyze.NewAnalyzer(cfg.Analyze),
		summarizer: summarizer,
		logger:     logger,
	}, nil
}

// Search runs the full search operation: orchestrated page walk, then
// filtering, sorting, facets and snippet highlighting.
func (p *Pipeline) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error) {
	resp, err := p.orch.Search(ctx, req)
	if err != nil {
		metrics.CountSearch("error")
		return nil, err
	}

	// The enrichment cache lives for this request only: a URL is fetched at
	// most once no matter how many filters and sorts inspect it.
	records := cache.NewMemoryCache(enrichmentTTL)
	enrich := func(ctx context.Context, url string) (*model.CaseRecord, error) {
		if rec, ok := records.Get(url); ok {
			return rec, nil
		}
		rec, err := p.fetchRecord(ctx, url)
		if err != nil {
			return nil, err
		}
		records.Set(url, rec)
		return rec, nil
	}

	processed := p.processor.Process(ctx, resp.Results, req, enrich)
	resp.Results = processed.Fragments
	resp.Facets = processed.Facets
	if processed.Partial {
		resp.Partial = true
		resp.Errors = append(resp.Errors, processed.Errors...)
	}

	if req.Highlight {
		terms := postprocess.HighlightTerms(resp.TranslatedQuery)
		for i := range resp.Results {
			resp.Results[i].Snippet = postprocess.Highlight(resp.Results[i].Snippet, terms)
		}
	}

	if resp.Partial {
		metrics.CountSearch("partial")
	} else {
		metrics.CountSearch("ok")
	}
	return resp, nil
}

// Case fetches one decision document and returns its structured record.
// fullText controls whether the complete text or only a preview is returned;
// summarize adds an LLM summary when a provider is configured and is silently
// skipped otherwise.
func (p *Pipeline) Case(ctx context.Context, rawURL string, fullText, summarize bool) (*model.CaseRecord, error) {
	rec, err := p.fetchRecord(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if summarize {
		if p.summarizer == nil {
			p.logger.Debug("summary requested but no llm provider configured")
		} else {
			summary, err := p.summarizer.Summarize(ctx, rec.FullText)
			if err != nil {
				p.logger.Warn("summarization failed", zap.String("url", rawURL), zap.Error(err))
			} else {
				rec.Summary = summary
			}
		}
	}

	if !fullText {
		rec.FullText = ""
	}
	return rec, nil
}

// CaseText fetches one decision document and returns its record with the
// full text always populated, for the plain-text transport surface.
func (p *Pipeline) CaseText(ctx context.Context, rawURL string) (*model.CaseRecord, error) {
	return p.fetchRecord(ctx, rawURL)
}

// Analyze fetches a decision document and runs the keyword and readability
// analysis over its full text.
func (p *Pipeline) Analyze(ctx context.Context, rawURL string, keywords []string, includeContext bool) (*model.AnalysisResult, error) {
	rec, err := p.fetchRecord(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	result, err := p.analyzer.Analyze(rec.FullText, keywords, includeContext)
	if err != nil {
		return nil, err
	}
	result.URL = rawURL
	result.CaseNumber = rec.CaseNumber
	return result, nil
}

// BatchSearch runs one bounded search per query and summarizes each. A query
// that fails yields an entry carrying its error code; the batch itself
// succeeds. Queries run on the worker pool, all paced by the shared
// scheduler.
func (p *Pipeline) BatchSearch(ctx context.Context, queries []string, year, maxPages int) ([]model.BatchSearchResult, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: queries are required", model.ErrInvalidQuery)
	}
	if len(queries) > p.cfg.Batch.MaxQueries {
		return nil, fmt.Errorf("%w: %d queries exceeds cap %d", model.ErrInvalidQuery, len(queries), p.cfg.Batch.MaxQueries)
	}
	if maxPages <= 0 || maxPages > p.cfg.Batch.MaxPagesPerQuery {
		maxPages = p.cfg.Batch.MaxPagesPerQuery
	}

	pool := worker.NewPool[model.BatchSearchResult](p.cfg.Batch.Workers)
	results := pool.Run(ctx, queries, func(ctx context.Context, q string) model.BatchSearchResult {
		out := model.BatchSearchResult{Query: q}

		resp, err := p.orch.Search(ctx, model.SearchRequest{
			Query:    q,
			Year:     year,
			MaxPages: maxPages,
		})
		if err != nil {
			out.Error = model.ErrorCode(err)
			return out
		}

		out.Count = resp.TotalResults
		for _, frag := range resp.Results {
			if len(out.URLs) == p.cfg.Batch.URLsPerQuery {
				break
			}
			out.URLs = append(out.URLs, frag.URL)
			if frag.CaseNumber != "" {
				out.CaseNumbers = append(out.CaseNumbers, frag.CaseNumber)
			}
		}
		return out
	})
	return results, ctx.Err()
}

// fetchRecord retrieves a decision document through the scheduler and builds
// its CaseRecord, full text included. Callers that do not want the full text
// clear it before returning the record.
func (p *Pipeline) fetchRecord(ctx context.Context, rawURL string) (*model.CaseRecord, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: url is required", model.ErrInvalidQuery)
	}
	if err := p.scheduler.Wait(ctx, rawURL); err != nil {
		return nil, err
	}

	text, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	md := p.extractor.Extract(text)
	preview := text
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}

	return &model.CaseRecord{
		URL:            rawURL,
		Year:           extract.YearFromURL(rawURL),
		CaseNumber:     extract.CaseNumberFromURL(rawURL),
		DocketNo:       md.DocketNo,
		DecisionDate:   md.DecisionDate,
		Outcome:        md.Outcome,
		Judge:          md.Judge,
		RegionalOffice: md.RegionalOffice,
		Issues:         md.Issues,
		Citations:      md.Citations,
		TextLength:     len(text),
		TextPreview:    preview,
		FullText:       text,
		FetchTimestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
