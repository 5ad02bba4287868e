package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/mock"
	pdslog "github.com/fwojciec/pagedigest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := pdslog.NewLoggingFetcher(inner, newLogger(&buf, slog.LevelDebug))
		html, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("successful fetches are silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "ok", nil
			},
		}

		fetcher := pdslog.NewLoggingFetcher(inner, newLogger(&buf, slog.LevelInfo))
		_, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs failures at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := pdslog.NewLoggingFetcher(inner, newLogger(&buf, slog.LevelInfo))
		_, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "err=\"network error\"")
	})

	t.Run("close delegates to the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, pdslog.NewLoggingFetcher(inner, slog.Default()).Close())
		assert.True(t, closed)
	})
}

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs discovery with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) ([]string, error) {
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}

		svc := pdslog.NewLoggingSitemapService(inner, newLogger(&buf, slog.LevelDebug))
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "ingest url discovery")
		assert.Contains(t, output, "site=https://example.com")
		assert.Contains(t, output, "filtered=false")
		assert.Contains(t, output, "urls=2")
	})

	t.Run("notes when a filter narrows discovery", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) ([]string, error) {
				return []string{"https://example.com/blog/a"}, nil
			},
		}
		filter, err := pagedigest.NewURLFilter([]string{"/blog/"})
		require.NoError(t, err)

		svc := pdslog.NewLoggingSitemapService(inner, newLogger(&buf, slog.LevelDebug))
		_, err = svc.DiscoverURLs(context.Background(), "https://example.com", filter)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "filtered=true")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := pdslog.NewLoggingSitemapService(inner, newLogger(&buf, slog.LevelInfo))
		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"connection failed\"")
	})
}

func TestLoggingAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("logs the digest shape", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Analyzer{
			AnalyzeFn: func(document, sourceURL string) (*pagedigest.AnalysisResult, error) {
				return &pagedigest.AnalysisResult{
					KeyPoints: []string{"a", "b"},
					Tasks:     []pagedigest.Task{{ID: "t"}},
					Metadata:  pagedigest.Metadata{WordCount: 12},
				}, nil
			},
		}

		a := pdslog.NewLoggingAnalyzer(inner, newLogger(&buf, slog.LevelDebug))
		result, err := a.Analyze("<p>hello</p>", "https://example.com")

		require.NoError(t, err)
		require.NotNil(t, result)
		output := buf.String()
		assert.Contains(t, output, "msg=analyze")
		assert.Contains(t, output, "bytes=12")
		assert.Contains(t, output, "words=12")
		assert.Contains(t, output, "key_points=2")
		assert.Contains(t, output, "tasks=1")
	})

	t.Run("logs empty input errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Analyzer{
			AnalyzeFn: func(string, string) (*pagedigest.AnalysisResult, error) {
				return nil, pagedigest.Errorf(pagedigest.EEMPTY, "document is empty")
			},
		}

		_, err := pdslog.NewLoggingAnalyzer(inner, newLogger(&buf, slog.LevelInfo)).Analyze("", "")

		assert.Equal(t, pagedigest.EEMPTY, pagedigest.ErrorCode(err))
		assert.Contains(t, buf.String(), "level=WARN")
		assert.NotContains(t, buf.String(), "words=")
	})
}

func TestLoggingInsightService(t *testing.T) {
	t.Parallel()

	t.Run("logs each operation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.InsightService{
			CreateInsightFn: func(_ context.Context, insight *pagedigest.Insight) error {
				insight.ID = "rec-1"
				return nil
			},
			FindInsightByIDFn: func(_ context.Context, id string) (*pagedigest.Insight, error) {
				return &pagedigest.Insight{ID: id}, nil
			},
			FindInsightsFn: func(context.Context, pagedigest.InsightFilter) ([]*pagedigest.Insight, error) {
				return []*pagedigest.Insight{{ID: "rec-1"}}, nil
			},
			UpdateTasksFn: func(_ context.Context, id string, _ []pagedigest.Task) (*pagedigest.Insight, error) {
				return &pagedigest.Insight{ID: id}, nil
			},
			DeleteInsightFn: func(context.Context, string) error {
				return pagedigest.Errorf(pagedigest.ENOTFOUND, "insight not found")
			},
		}
		svc := pdslog.NewLoggingInsightService(inner, newLogger(&buf, slog.LevelDebug))
		ctx := context.Background()

		insight := &pagedigest.Insight{AnalysisResult: pagedigest.AnalysisResult{Title: "Launch"}}
		require.NoError(t, svc.CreateInsight(ctx, insight))
		_, err := svc.FindInsightByID(ctx, "rec-1")
		require.NoError(t, err)
		_, err = svc.FindInsights(ctx, pagedigest.InsightFilter{Limit: 20})
		require.NoError(t, err)
		_, err = svc.UpdateTasks(ctx, "rec-1", nil)
		require.NoError(t, err)
		err = svc.DeleteInsight(ctx, "missing")
		require.Error(t, err)

		output := buf.String()
		assert.Contains(t, output, "msg=\"create insight\" id=rec-1 title=Launch")
		assert.Contains(t, output, "msg=\"find insight\" id=rec-1")
		assert.Contains(t, output, "limit=20")
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "msg=\"update tasks\"")
		assert.Contains(t, output, "level=WARN msg=\"delete insight\" id=missing")
	})
}
