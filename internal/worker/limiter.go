package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Scheduler paces upstream fetches. The orchestrator calls Wait before every
// dispatch; the serial minimum-delay contract toward the source lives here so
// it can be swapped for a bounded-concurrency pool without touching
// orchestration logic.
type Scheduler interface {
	Wait(ctx context.Context, rawURL string) error
}

// Limiter implements Scheduler with a per-host token bucket. The default
// configuration (one request per minimum delay, burst 1) serializes fetches
// toward a host with at least the configured gap between dispatches.
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	perHost  rate.Limit
	burst    int
}

// NewLimiter creates a limiter enforcing minDelay between requests to the
// same host.
func NewLimiter(minDelay time.Duration) *Limiter {
	if minDelay <= 0 {
		minDelay = time.Second
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Every(minDelay),
		burst:    1,
	}
}

// Wait blocks until a request to rawURL's host is allowed, or the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := extractHost(rawURL)
	if err != nil {
		return err
	}
	return l.hostLimiter(host).Wait(ctx)
}

// Allow reports whether a request to rawURL's host would be admitted right
// now, without blocking.
func (l *Limiter) Allow(rawURL string) bool {
	host, err := extractHost(rawURL)
	if err != nil {
		return false
	}
	return l.hostLimiter(host).Allow()
}

// SetHostDelay overrides the delay for one host, e.g. when robots.txt
// announces a crawl-delay longer than the configured minimum.
func (l *Limiter) SetHostDelay(host string, delay time.Duration) {
	if delay <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[host] = rate.NewLimiter(rate.Every(delay), 1)
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.limiters[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.perHost, l.burst)
	l.limiters[host] = lim
	return lim
}

func extractHost(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
