package ingest

import (
	"strings"
	"sync"

	"github.com/fwojciec/pagedigest/bloom"
)

// Queue is a FIFO of URLs with Bloom filter de-duplication.
// It is safe for concurrent use by multiple goroutines.
type Queue struct {
	mu   sync.Mutex
	seen *bloom.Filter
	urls []string
}

// NewQueue creates a Queue sized for n expected URLs.
func NewQueue(n uint) *Queue {
	return &Queue{
		seen: bloom.NewFilter(max(n, bloom.DefaultExpectedItems), bloom.DefaultFalsePositiveRate),
	}
}

// Push appends url unless it was already queued.
// URLs differing only by fragment are considered duplicates.
func (q *Queue) Push(url string) bool {
	url = stripFragment(url)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.seen.TestAndAdd(url) {
		return false
	}
	q.urls = append(q.urls, url)
	return true
}

// URLs returns the queued URLs in insertion order.
func (q *Queue) URLs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.urls))
	copy(out, q.urls)
	return out
}

// Len returns the number of queued URLs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.urls)
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
