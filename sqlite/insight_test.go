package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInsight(title string) *pagedigest.Insight {
	url := "https://example.com/" + title
	return &pagedigest.Insight{
		URL:         &url,
		ContentHash: "hash-" + title,
		Markdown:    "# " + title,
		AnalysisResult: pagedigest.AnalysisResult{
			Title:     title,
			Summary:   "Summary of " + title + ".",
			KeyPoints: []string{"First point.", "Second point."},
			Tasks: []pagedigest.Task{
				{ID: "t1", Text: "Send the invite", Status: pagedigest.TaskPending, Confidence: 0.7, Source: pagedigest.SignalImperativeList},
			},
			Metadata: pagedigest.Metadata{
				URL:         &url,
				Headings:    []string{title},
				Links:       []pagedigest.LinkRef{{Href: "https://example.com/docs", Label: "Docs"}},
				ExtractedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				WordCount:   42,
			},
		},
	}
}

func createInsight(t *testing.T, svc *sqlite.InsightService, title string) *pagedigest.Insight {
	t.Helper()
	insight := newInsight(title)
	require.NoError(t, svc.CreateInsight(context.Background(), insight))
	return insight
}

func TestInsightService_CreateInsight(t *testing.T) {
	t.Parallel()

	t.Run("creates insight with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		insight := newInsight("launch")

		err := svc.CreateInsight(context.Background(), insight)

		require.NoError(t, err)
		assert.NotEmpty(t, insight.ID)
		assert.False(t, insight.CreatedAt.IsZero())
	})

	t.Run("returns error for invalid insight", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))

		err := svc.CreateInsight(context.Background(), &pagedigest.Insight{})

		require.Error(t, err)
		assert.Equal(t, pagedigest.EINVALID, pagedigest.ErrorCode(err))
	})

	t.Run("stores insights without a url", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		ctx := context.Background()
		insight := &pagedigest.Insight{AnalysisResult: pagedigest.AnalysisResult{Title: "Pasted"}}
		require.NoError(t, svc.CreateInsight(ctx, insight))

		found, err := svc.FindInsightByID(ctx, insight.ID)

		require.NoError(t, err)
		assert.Nil(t, found.URL)
		assert.Empty(t, found.KeyPoints)
		assert.NotNil(t, found.Tasks)
	})
}

func TestInsightService_FindInsightByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		created := createInsight(t, svc, "launch")

		found, err := svc.FindInsightByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, *created.URL, *found.URL)
		assert.Equal(t, created.ContentHash, found.ContentHash)
		assert.Equal(t, created.Markdown, found.Markdown)
		assert.Equal(t, created.AnalysisResult, found.AnalysisResult)
	})

	t.Run("returns ENOTFOUND for unknown id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))

		_, err := svc.FindInsightByID(context.Background(), "missing")

		assert.Equal(t, pagedigest.ENOTFOUND, pagedigest.ErrorCode(err))
	})
}

func TestInsightService_FindInsights(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		for i := range 3 {
			createInsight(t, svc, fmt.Sprintf("page%d", i))
		}

		insights, err := svc.FindInsights(context.Background(), pagedigest.InsightFilter{})

		require.NoError(t, err)
		require.Len(t, insights, 3)
		assert.Equal(t, "page2", insights[0].Title)
		assert.Equal(t, "page1", insights[1].Title)
		assert.Equal(t, "page0", insights[2].Title)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		for i := range 5 {
			createInsight(t, svc, fmt.Sprintf("page%d", i))
		}
		ctx := context.Background()

		limited, err := svc.FindInsights(ctx, pagedigest.InsightFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, limited, 2)

		offset, err := svc.FindInsights(ctx, pagedigest.InsightFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, offset, 2)
		assert.Equal(t, "page1", offset[0].Title)
	})

	t.Run("filters by url and content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		createInsight(t, svc, "a")
		b := createInsight(t, svc, "b")
		ctx := context.Background()

		byURL, err := svc.FindInsights(ctx, pagedigest.InsightFilter{URL: b.URL})
		require.NoError(t, err)
		require.Len(t, byURL, 1)
		assert.Equal(t, b.ID, byURL[0].ID)

		hash := "hash-a"
		byHash, err := svc.FindInsights(ctx, pagedigest.InsightFilter{ContentHash: &hash})
		require.NoError(t, err)
		require.Len(t, byHash, 1)
		assert.Equal(t, "a", byHash[0].Title)
	})

	t.Run("returns an empty list when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))

		insights, err := svc.FindInsights(context.Background(), pagedigest.InsightFilter{})

		require.NoError(t, err)
		assert.NotNil(t, insights)
		assert.Empty(t, insights)
	})
}

func TestInsightService_UpdateTasks(t *testing.T) {
	t.Parallel()

	t.Run("replaces the task list", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		created := createInsight(t, svc, "launch")
		tasks, err := pagedigest.ToggleTask(created.Tasks, "t1")
		require.NoError(t, err)

		updated, err := svc.UpdateTasks(context.Background(), created.ID, tasks)

		require.NoError(t, err)
		require.Len(t, updated.Tasks, 1)
		assert.Equal(t, pagedigest.TaskCompleted, updated.Tasks[0].Status)
		assert.Equal(t, created.Summary, updated.Summary)
	})

	t.Run("rejects invalid tasks", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		created := createInsight(t, svc, "launch")

		_, err := svc.UpdateTasks(context.Background(), created.ID, []pagedigest.Task{
			{ID: "t1", Text: "Send", Status: "done", Confidence: 0.5},
		})

		assert.Equal(t, pagedigest.EINVALID, pagedigest.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))

		_, err := svc.UpdateTasks(context.Background(), "missing", nil)

		assert.Equal(t, pagedigest.ENOTFOUND, pagedigest.ErrorCode(err))
	})
}

func TestInsightService_DeleteInsight(t *testing.T) {
	t.Parallel()

	t.Run("removes the insight", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))
		created := createInsight(t, svc, "launch")
		ctx := context.Background()

		require.NoError(t, svc.DeleteInsight(ctx, created.ID))

		_, err := svc.FindInsightByID(ctx, created.ID)
		assert.Equal(t, pagedigest.ENOTFOUND, pagedigest.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewInsightService(setupTestDB(t))

		err := svc.DeleteInsight(context.Background(), "missing")

		assert.Equal(t, pagedigest.ENOTFOUND, pagedigest.ErrorCode(err))
	})
}
