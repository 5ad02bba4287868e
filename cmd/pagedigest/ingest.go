package main

import (
	"fmt"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/ingest"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	filter, err := pagedigest.NewURLFilter(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	urls := c.URLs
	if c.Sitemap {
		urls = nil
		for _, site := range c.URLs {
			found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, site, filter)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
				return err
			}
			urls = append(urls, found...)
		}
	} else if filter != nil {
		urls = nil
		for _, u := range c.URLs {
			if filter.Match(u) {
				urls = append(urls, u)
			}
		}
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to ingest.")
		return nil
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case ingest.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  unchanged %s\n", ingest.TruncateURL(event.URL, 80))
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Ingester.Ingest(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error ingesting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Done: %s, %s\n", result, ingest.FormatBytes(result.Bytes))
	return nil
}
