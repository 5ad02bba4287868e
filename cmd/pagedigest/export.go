package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	insights, err := deps.Insights.FindInsights(deps.Ctx, pagedigest.InsightFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	if len(insights) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved digests to export.")
		return nil
	}

	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	exporter := fs.NewExporter(filepath.Dir(dir), filepath.Base(dir))
	paths, err := exporter.Export(deps.Ctx, insights)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d digests to %s\n", len(paths), exporter.Dir())
	return nil
}
