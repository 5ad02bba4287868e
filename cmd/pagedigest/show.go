package main

import (
	"fmt"

	"github.com/fwojciec/pagedigest"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	insight, err := deps.Insights.FindInsightByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	switch {
	case c.JSON:
		return writeJSON(deps.Stdout, insight)
	case c.Markdown:
		if insight.Markdown == "" {
			fmt.Fprintf(deps.Stderr, "error: digest %s has no stored markdown\n", insight.ID)
			return pagedigest.Errorf(pagedigest.ENOTFOUND, "digest %s has no stored markdown", insight.ID)
		}
		fmt.Fprintln(deps.Stdout, insight.Markdown)
		return nil
	}

	fmt.Fprint(deps.Stdout, pagedigest.FormatAnalysis(&insight.AnalysisResult))
	if len(insight.Tasks) > 0 {
		fmt.Fprintln(deps.Stdout)
		for _, t := range insight.Tasks {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", t.ID, t.Text)
		}
	}
	return nil
}
