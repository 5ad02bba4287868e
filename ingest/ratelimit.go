package ingest

import (
	"context"
	"sync"

	"github.com/fwojciec/pagedigest"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the per-host request rate used by ingest.
const DefaultRequestsPerSecond = 2.0

var _ pagedigest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed concurrently; requests to one host
// are spaced by the configured rate.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per host, with bursts of up to burst requests. A burst below 1 is raised
// to 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    max(burst, 1),
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[host]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.limiters[host] = l
	}
	return l
}
