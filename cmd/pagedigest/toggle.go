package main

import (
	"fmt"

	"github.com/fwojciec/pagedigest"
)

// Run executes the toggle command.
func (c *ToggleCmd) Run(deps *Dependencies) error {
	insight, err := deps.Insights.FindInsightByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	tasks, err := pagedigest.ToggleTask(insight.Tasks, c.TaskID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	updated, err := deps.Insights.UpdateTasks(deps.Ctx, insight.ID, tasks)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	for _, t := range updated.Tasks {
		if t.ID == c.TaskID {
			fmt.Fprintf(deps.Stdout, "Task %s is now %s\n", t.ID, t.Status)
		}
	}
	return nil
}
