package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedigest"
)

// Ensure LoggingInsightService implements pagedigest.InsightService.
var _ pagedigest.InsightService = (*LoggingInsightService)(nil)

// LoggingInsightService wraps an InsightService with logging.
type LoggingInsightService struct {
	next   pagedigest.InsightService
	logger *slog.Logger
}

// NewLoggingInsightService creates a new LoggingInsightService.
func NewLoggingInsightService(next pagedigest.InsightService, logger *slog.Logger) *LoggingInsightService {
	return &LoggingInsightService{next: next, logger: logger}
}

func (s *LoggingInsightService) CreateInsight(ctx context.Context, insight *pagedigest.Insight) (err error) {
	defer func(begin time.Time) {
		log(s.logger, "create insight", err,
			"id", insight.ID,
			"title", insight.Title,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.CreateInsight(ctx, insight)
}

func (s *LoggingInsightService) FindInsightByID(ctx context.Context, id string) (insight *pagedigest.Insight, err error) {
	defer func(begin time.Time) {
		log(s.logger, "find insight", err, "id", id, "duration", time.Since(begin))
	}(time.Now())
	return s.next.FindInsightByID(ctx, id)
}

func (s *LoggingInsightService) FindInsights(ctx context.Context, filter pagedigest.InsightFilter) (insights []*pagedigest.Insight, err error) {
	defer func(begin time.Time) {
		log(s.logger, "find insights", err,
			"limit", filter.Limit,
			"offset", filter.Offset,
			"count", len(insights),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FindInsights(ctx, filter)
}

func (s *LoggingInsightService) UpdateTasks(ctx context.Context, id string, tasks []pagedigest.Task) (insight *pagedigest.Insight, err error) {
	defer func(begin time.Time) {
		log(s.logger, "update tasks", err,
			"id", id,
			"tasks", len(tasks),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.UpdateTasks(ctx, id, tasks)
}

func (s *LoggingInsightService) DeleteInsight(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		log(s.logger, "delete insight", err, "id", id, "duration", time.Since(begin))
	}(time.Now())
	return s.next.DeleteInsight(ctx, id)
}
