package main

import (
	"fmt"

	"github.com/fwojciec/pagedigest"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Limit < 1 {
		fmt.Fprintf(deps.Stderr, "error: limit must be positive\n")
		return pagedigest.Errorf(pagedigest.EINVALID, "limit must be positive")
	}

	insights, err := deps.Insights.FindInsights(deps.Ctx, pagedigest.InsightFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if insights == nil {
			insights = []*pagedigest.Insight{}
		}
		return writeJSON(deps.Stdout, insights)
	}

	if len(insights) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved digests. Use 'pagedigest analyze --save' to create one.")
		return nil
	}

	for _, in := range insights {
		source := "(pasted)"
		if in.URL != nil {
			source = *in.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			in.ID, in.CreatedAt.Local().Format("2006-01-02 15:04"), taskCounts(in.Tasks), in.Title, source)
	}
	return nil
}

// taskCounts renders completed/total, e.g. "1/3".
func taskCounts(tasks []pagedigest.Task) string {
	done := 0
	for _, t := range tasks {
		if t.Status == pagedigest.TaskCompleted {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(tasks))
}
