package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/model"
)

type nopScheduler struct{}

func (nopScheduler) Wait(ctx context.Context, rawURL string) error { return ctx.Err() }

func testSearchConfig(baseURL string) model.SearchConfig {
	return model.SearchConfig{
		BaseURL:         baseURL,
		Affiliate:       "bvadecisions",
		MaxPagesCeiling: 20,
		MaxYearRange:    5,
		DefaultPageSize: 20,
		MinPageSize:     10,
		MaxPageSize:     50,
		MinYear:         1992,
	}
}

func newTestOrchestrator(cfg model.SearchConfig) *Orchestrator {
	httpCfg := testHTTPConfig()
	httpCfg.MaxRetries = 0
	fetcher := NewFetcher(httpCfg, nil, zap.NewNop())
	return NewOrchestrator(cfg, fetcher, NewResultPageParser(), nopScheduler{}, zap.NewNop())
}

func resultsPage(urls []string, next string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, u := range urls {
		fmt.Fprintf(&b, `<div class="result"><h4 class="title"><a href=%q>Doc</a></h4>`, u)
		fmt.Fprintf(&b, `<span class="description">snippet for %s</span></div>`, u)
	}
	if next != "" {
		fmt.Fprintf(&b, `<a class="next" href=%q>Next</a>`, next)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestSearch_ValidationBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))

	tests := []struct {
		name string
		req  model.SearchRequest
		want error
	}{
		{"zero max_pages", model.SearchRequest{Query: "PTSD"}, model.ErrInvalidQuery},
		{"wide year range", model.SearchRequest{Query: "PTSD", MaxPages: 1, YearStart: 2000, YearEnd: 2010}, model.ErrRangeTooWide},
		{"empty query", model.SearchRequest{MaxPages: 1}, model.ErrInvalidQuery},
		{"dangling operator", model.SearchRequest{Query: "PTSD AND", MaxPages: 1}, model.ErrInvalidQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Search(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if got := hits.Load(); got != 0 {
		t.Errorf("upstream contacted %d times before validation", got)
	}
}

func TestSearch_PaginatesAndDeduplicates(t *testing.T) {
	// Page 2 repeats a URL from page 1 with a different snippet; the
	// first-seen fragment must win.
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "2":
			_, _ = fmt.Fprint(w, resultsPage([]string{
				"https://www.va.gov/vetapp21/files5/21000001.txt",
				"https://www.va.gov/vetapp21/files5/21000003.txt",
			}, ""))
		default:
			_, _ = fmt.Fprint(w, resultsPage([]string{
				"https://www.va.gov/vetapp21/files5/21000001.txt",
				"https://www.va.gov/vetapp21/files5/21000002.txt",
			}, srv.URL+"/search?page=2"))
		}
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))
	resp, err := o.Search(context.Background(), model.SearchRequest{Query: "PTSD", MaxPages: 5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if resp.PagesSearched != 2 {
		t.Errorf("pages_searched = %d, want 2", resp.PagesSearched)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("results = %d, want 3 after dedup", len(resp.Results))
	}
	if resp.Results[0].Snippet != "snippet for https://www.va.gov/vetapp21/files5/21000001.txt" {
		t.Errorf("first-seen fragment not preserved: %q", resp.Results[0].Snippet)
	}
	if resp.TranslatedQuery != "PTSD" {
		t.Errorf("translated query = %q", resp.TranslatedQuery)
	}
	if resp.Partial {
		t.Error("unexpected partial flag")
	}
}

func TestSearch_MaxPagesStopsPagination(t *testing.T) {
	var hits atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		u := fmt.Sprintf("https://www.va.gov/vetapp21/files5/2100000%d.txt", n)
		_, _ = fmt.Fprint(w, resultsPage([]string{u}, srv.URL+"/search?more=1"))
	}))
	defer srv.Close()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))
	resp, err := o.Search(context.Background(), model.SearchRequest{Query: "PTSD", MaxPages: 3})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("upstream fetched %d pages, want 3", got)
	}
	if resp.PagesSearched != 3 {
		t.Errorf("pages_searched = %d, want 3", resp.PagesSearched)
	}
}

func TestSearch_PageFailureIsPartial(t *testing.T) {
	var hits atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			_, _ = fmt.Fprint(w, resultsPage(
				[]string{"https://www.va.gov/vetapp21/files5/21000001.txt"},
				srv.URL+"/search?page=2"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))
	resp, err := o.Search(context.Background(), model.SearchRequest{Query: "PTSD", MaxPages: 5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if !resp.Partial {
		t.Error("expected partial result")
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d, want 1", len(resp.Results))
	}
	if resp.PagesSearched != 1 {
		t.Errorf("pages_searched = %d, want 1", resp.PagesSearched)
	}
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0], "upstream_unavailable") {
		t.Errorf("errors = %v", resp.Errors)
	}
}

func TestSearch_AllPagesFailIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))
	_, err := o.Search(context.Background(), model.SearchRequest{Query: "PTSD", MaxPages: 3})
	if !errors.Is(err, model.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSearch_YearPartitionsScopeQuery(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		_, _ = fmt.Fprint(w, resultsPage(nil, ""))
	}))
	defer srv.Close()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))
	resp, err := o.Search(context.Background(), model.SearchRequest{
		Query:     "tinnitus",
		YearStart: 2020,
		YearEnd:   2021,
		MaxPages:  3,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	want := []string{"tinnitus 2020", "tinnitus 2021"}
	if len(queries) != 2 || queries[0] != want[0] || queries[1] != want[1] {
		t.Errorf("upstream queries = %v, want %v", queries, want)
	}
	if resp.PagesSearched != 2 {
		t.Errorf("pages_searched = %d, want 2 (one empty page per year)", resp.PagesSearched)
	}
}

func TestSearch_CancellationReturnsNoPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	o := newTestOrchestrator(testSearchConfig(srv.URL + "/search"))
	resp, err := o.Search(ctx, model.SearchRequest{Query: "PTSD", MaxPages: 2})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if resp != nil {
		t.Error("canceled search must not return a partial response")
	}
}
