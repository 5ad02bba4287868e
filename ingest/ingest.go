// Package ingest analyzes batches of pages and stores their digests.
// It coordinates de-duplication, rate-limited fetching with retries,
// analysis, markdown conversion and storage.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/analyze"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed in parallel.
const DefaultConcurrency = 4

// Ingester fetches, analyzes and saves pages.
// Fetcher, Analyzer and Insights are required; the rest are optional.
type Ingester struct {
	Fetcher      pagedigest.Fetcher
	Analyzer     pagedigest.Analyzer
	Insights     pagedigest.InsightService
	Converter    pagedigest.Converter
	TokenCounter pagedigest.TokenCounter
	RateLimiter  pagedigest.DomainLimiter
	Concurrency  int
	RetryDelays  []time.Duration

	// Logf receives retry notices.
	Logf LogFunc
}

// Result holds the outcome of an ingest run.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
	Bytes   int
	Tokens  int
}

// ProgressEvent reports progress during an ingest run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressCompleted:
		return "completed"
	case ProgressSkipped:
		return "skipped"
	case ProgressFailed:
		return "failed"
	case ProgressFinished:
		return "finished"
	}
	return fmt.Sprintf("ProgressType(%d)", int(t))
}

// ProgressFunc is a callback for reporting ingest progress.
type ProgressFunc func(event ProgressEvent)

// errUnchanged marks a page whose content is already stored.
var errUnchanged = errors.New("content already stored")

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	hash     string
	bytes    int
	analysis *pagedigest.AnalysisResult
	markdown string
	err      error
}

// Ingest processes urls and saves a digest per page. Duplicate URLs
// (ignoring fragments) are processed once. Pages whose content hash is
// already stored, or repeats an earlier page of the same run, are skipped.
// Digests are saved in input order. The progress callback, if provided,
// receives one completed, skipped or failed event per URL. Fetch failures
// and already stored pages are reported as they finish, the rest once
// saving begins.
func (i *Ingester) Ingest(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	emit := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	var result Result

	queue := NewQueue(uint(max(len(urls), 1)))
	for _, raw := range urls {
		if err := validateURL(raw); err != nil {
			result.Failed++
			emit(ProgressEvent{Type: ProgressFailed, URL: raw, Error: err})
			continue
		}
		queue.Push(raw)
	}
	pending := queue.URLs()

	concurrency := i.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(pending)
	emit(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for pos, u := range pending {
			g.Go(func() error {
				resultCh <- i.processURL(gctx, pos, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var done int
	report := func(t ProgressType, url string, err error) {
		done++
		emit(ProgressEvent{Type: t, Completed: done, Total: total, URL: url, Error: err})
	}

	for r := range resultCh {
		results[r.position] = r
		switch {
		case errors.Is(r.err, errUnchanged):
			report(ProgressSkipped, r.url, nil)
		case r.err != nil:
			report(ProgressFailed, r.url, r.err)
		}
	}

	// Saving walks results in input order so the first URL carrying a
	// given content wins regardless of which fetch finished first.
	saved := make(map[string]bool, total)
	for _, r := range results {
		switch {
		case errors.Is(r.err, errUnchanged):
			result.Skipped++
			continue
		case r.err != nil:
			result.Failed++
			continue
		case saved[r.hash]:
			result.Skipped++
			report(ProgressSkipped, r.url, nil)
			continue
		}

		if err := i.save(ctx, r); err != nil {
			result.Failed++
			report(ProgressFailed, r.url, err)
			continue
		}
		saved[r.hash] = true

		result.Saved++
		result.Bytes += r.bytes
		if i.TokenCounter != nil && r.markdown != "" {
			if tokens, err := i.TokenCounter.CountTokens(ctx, r.markdown); err == nil {
				result.Tokens += tokens
			}
		}
		report(ProgressCompleted, r.url, nil)
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// processURL fetches, analyzes and converts a single page.
func (i *Ingester) processURL(ctx context.Context, position int, rawURL string) pageResult {
	result := pageResult{position: position, url: rawURL}

	if i.RateLimiter != nil {
		u, _ := url.Parse(rawURL)
		if err := i.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := i.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, i.Fetcher.Fetch, i.Logf, delays)
	if err != nil {
		result.err = err
		return result
	}
	result.bytes = len(html)
	result.hash = analyze.ContentHash(html)

	hash := result.hash
	existing, err := i.Insights.FindInsights(ctx, pagedigest.InsightFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		result.err = fmt.Errorf("checking stored content: %w", err)
		return result
	}
	if len(existing) > 0 {
		result.err = errUnchanged
		return result
	}

	analysis, err := i.Analyzer.Analyze(html, rawURL)
	if err != nil {
		result.err = err
		return result
	}
	result.analysis = analysis

	if i.Converter != nil {
		markdown, err := i.Converter.Convert(html, rawURL)
		if err != nil {
			result.err = fmt.Errorf("converting to markdown: %w", err)
			return result
		}
		result.markdown = markdown
	}

	return result
}

func (i *Ingester) save(ctx context.Context, r pageResult) error {
	source := r.url
	insight := &pagedigest.Insight{
		URL:            &source,
		ContentHash:    r.hash,
		Markdown:       r.markdown,
		AnalysisResult: *r.analysis,
	}
	return i.Insights.CreateInsight(ctx, insight)
}

// validateURL accepts absolute http(s) URLs only.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return pagedigest.Errorf(pagedigest.EINVALID, "invalid URL %q", raw)
	}
	return nil
}
