package pagedigest

import (
	"context"
	"time"
)

// Insight is a persisted digest.
type Insight struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	URL         *string   `json:"url"`
	ContentHash string    `json:"contentHash,omitempty"`

	// Markdown is an optional rendition of the page content.
	Markdown string `json:"markdown,omitempty"`

	AnalysisResult
}

// Validate returns an error if the insight contains invalid fields.
func (i *Insight) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "insight title required")
	}
	return ValidateTasks(i.Tasks)
}

// ValidateTasks validates each task and rejects duplicate IDs.
func ValidateTasks(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return err
		}
		if seen[tasks[i].ID] {
			return Errorf(EINVALID, "duplicate task id %q", tasks[i].ID)
		}
		seen[tasks[i].ID] = true
	}
	return nil
}

// InsightService represents a service for managing persisted digests.
type InsightService interface {
	// CreateInsight stores a new insight, assigning its ID and CreatedAt.
	CreateInsight(ctx context.Context, insight *Insight) error

	// FindInsightByID retrieves an insight by ID.
	// Returns ENOTFOUND if the insight does not exist.
	FindInsightByID(ctx context.Context, id string) (*Insight, error)

	// FindInsights retrieves insights matching the filter, newest first.
	FindInsights(ctx context.Context, filter InsightFilter) ([]*Insight, error)

	// UpdateTasks replaces the task list of an insight.
	// Returns ENOTFOUND if the insight does not exist.
	UpdateTasks(ctx context.Context, id string, tasks []Task) (*Insight, error)

	// DeleteInsight permanently removes an insight.
	// Returns ENOTFOUND if the insight does not exist.
	DeleteInsight(ctx context.Context, id string) error
}

// InsightFilter represents a filter for FindInsights.
type InsightFilter struct {
	ID          *string `json:"id"`
	URL         *string `json:"url"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ToggleTask flips the status of the task with the given ID and returns the
// updated task list. The input slice is not modified.
// Returns ENOTFOUND if no task has that ID.
func ToggleTask(tasks []Task, taskID string) ([]Task, error) {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID != taskID {
			continue
		}
		if out[i].Status == TaskCompleted {
			out[i].Status = TaskPending
		} else {
			out[i].Status = TaskCompleted
		}
		return out, nil
	}
	return nil, Errorf(ENOTFOUND, "task %q not found", taskID)
}
