package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

var _ pagedigest.InsightService = (*InsightService)(nil)

// InsightService is a mock implementation of pagedigest.InsightService.
type InsightService struct {
	CreateInsightFn   func(ctx context.Context, insight *pagedigest.Insight) error
	FindInsightByIDFn func(ctx context.Context, id string) (*pagedigest.Insight, error)
	FindInsightsFn    func(ctx context.Context, filter pagedigest.InsightFilter) ([]*pagedigest.Insight, error)
	UpdateTasksFn     func(ctx context.Context, id string, tasks []pagedigest.Task) (*pagedigest.Insight, error)
	DeleteInsightFn   func(ctx context.Context, id string) error
}

func (s *InsightService) CreateInsight(ctx context.Context, insight *pagedigest.Insight) error {
	return s.CreateInsightFn(ctx, insight)
}

func (s *InsightService) FindInsightByID(ctx context.Context, id string) (*pagedigest.Insight, error) {
	return s.FindInsightByIDFn(ctx, id)
}

func (s *InsightService) FindInsights(ctx context.Context, filter pagedigest.InsightFilter) ([]*pagedigest.Insight, error) {
	return s.FindInsightsFn(ctx, filter)
}

func (s *InsightService) UpdateTasks(ctx context.Context, id string, tasks []pagedigest.Task) (*pagedigest.Insight, error) {
	return s.UpdateTasksFn(ctx, id, tasks)
}

func (s *InsightService) DeleteInsight(ctx context.Context, id string) error {
	return s.DeleteInsightFn(ctx, id)
}
