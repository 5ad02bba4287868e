package main

import (
	"fmt"

	pdhttp "github.com/fwojciec/pagedigest/http"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := pdhttp.NewServer(deps.Analyzer, deps.Fetcher, deps.Logger)
	srv.Insights = deps.Insights
	srv.Converter = deps.Converter
	srv.MaxBodyBytes = int64(deps.Config.MaxDocumentBytes) + 1<<20

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	if err := srv.ListenAndServe(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
