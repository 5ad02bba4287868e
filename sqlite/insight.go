package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/pagedigest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagedigest.InsightService = (*InsightService)(nil)

// InsightService implements pagedigest.InsightService using SQLite.
type InsightService struct {
	db *DB
}

// NewInsightService creates a new InsightService.
func NewInsightService(db *DB) *InsightService {
	return &InsightService{db: db}
}

const insightColumns = "id, created_at, url, content_hash, title, summary, key_points, tasks, metadata, markdown"

// CreateInsight stores a new insight with a generated ID and timestamp.
func (s *InsightService) CreateInsight(ctx context.Context, insight *pagedigest.Insight) error {
	if err := insight.Validate(); err != nil {
		return err
	}

	insight.ID = uuid.New().String()
	insight.CreatedAt = time.Now().UTC()
	if insight.KeyPoints == nil {
		insight.KeyPoints = []string{}
	}
	if insight.Tasks == nil {
		insight.Tasks = []pagedigest.Task{}
	}

	keyPoints, err := marshalJSON(insight.KeyPoints, "key_points")
	if err != nil {
		return err
	}
	tasks, err := marshalJSON(insight.Tasks, "tasks")
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(insight.Metadata, "metadata")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO page_insights (`+insightColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, insight.ID, insight.CreatedAt.Format(timeFormat), nullString(insight.URL), insight.ContentHash,
		insight.Title, insight.Summary, keyPoints, tasks, metadata, insight.Markdown)

	return err
}

// FindInsightByID retrieves an insight by ID.
func (s *InsightService) FindInsightByID(ctx context.Context, id string) (*pagedigest.Insight, error) {
	insights, err := s.FindInsights(ctx, pagedigest.InsightFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(insights) == 0 {
		return nil, pagedigest.Errorf(pagedigest.ENOTFOUND, "insight not found")
	}
	return insights[0], nil
}

// FindInsights retrieves insights matching the filter, newest first.
func (s *InsightService) FindInsights(ctx context.Context, filter pagedigest.InsightFilter) ([]*pagedigest.Insight, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + insightColumns + " FROM page_insights WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	insights := []*pagedigest.Insight{}
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}

	return insights, rows.Err()
}

// UpdateTasks replaces the task list of an insight.
func (s *InsightService) UpdateTasks(ctx context.Context, id string, tasks []pagedigest.Task) (*pagedigest.Insight, error) {
	if err := pagedigest.ValidateTasks(tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []pagedigest.Task{}
	}

	encoded, err := marshalJSON(tasks, "tasks")
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, "UPDATE page_insights SET tasks = ? WHERE id = ?", encoded, id)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, pagedigest.Errorf(pagedigest.ENOTFOUND, "insight not found")
	}

	return s.FindInsightByID(ctx, id)
}

// DeleteInsight permanently removes an insight.
func (s *InsightService) DeleteInsight(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM page_insights WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagedigest.Errorf(pagedigest.ENOTFOUND, "insight not found")
	}

	return nil
}

// scanInsight reads one row selected with insightColumns.
func scanInsight(rows *sql.Rows) (*pagedigest.Insight, error) {
	var insight pagedigest.Insight
	var createdAt, keyPoints, tasks, metadata string
	var url sql.NullString

	if err := rows.Scan(&insight.ID, &createdAt, &url, &insight.ContentHash, &insight.Title,
		&insight.Summary, &keyPoints, &tasks, &metadata, &insight.Markdown); err != nil {
		return nil, err
	}

	var err error
	if insight.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if url.Valid {
		insight.URL = &url.String
	}
	if err := unmarshalJSON(keyPoints, &insight.KeyPoints, "key_points"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tasks, &insight.Tasks, "tasks"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(metadata, &insight.Metadata, "metadata"); err != nil {
		return nil, err
	}

	return &insight, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
