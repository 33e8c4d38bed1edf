package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/metrics"
	"github.com/va2ai/bvaapi2/internal/model"
	"github.com/va2ai/bvaapi2/internal/util"
)

// Fetcher performs HTTP GETs against the upstream source with a fixed
// User-Agent, per-request timeout, body size cap, and a bounded retry on
// transient transport errors. 4xx responses are never retried.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	backoff    time.Duration
	robots     *util.RobotsChecker
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher from the HTTP config. robots may be nil to
// disable robots.txt checking.
func NewFetcher(cfg model.HTTPConfig, robots *util.RobotsChecker, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return errors.New("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		robots:     robots,
		logger:     logger,
	}
}

// Fetch retrieves rawURL and returns the body as text. Failures map into the
// stable taxonomy: 404 becomes ErrCaseNotFound, other non-2xx and exhausted
// transport retries become ErrUpstreamUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return "", fmt.Errorf("%w: disallowed by robots.txt", model.ErrUpstreamUnavailable)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			f.logger.Debug("retrying fetch",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.backoff * time.Duration(attempt)):
			}
		}

		body, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", lastErr
}

// fetchOnce performs a single GET. The second return value reports whether
// the failure is a transient transport error worth retrying.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, bool, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("%w: bad url", model.ErrInvalidQuery)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		metrics.ObserveFetch("transport_error", time.Since(start))
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.ObserveFetch(fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, fmt.Errorf("%w: %s", model.ErrCaseNotFound, rawURL)
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("%w: upstream status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", false, fmt.Errorf("%w: upstream status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", true, fmt.Errorf("%w: read body: %v", model.ErrUpstreamUnavailable, err)
	}
	return string(body), false, nil
}
