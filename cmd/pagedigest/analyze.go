package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	if c.URL == "" && c.File == "" {
		fmt.Fprintf(deps.Stderr, "error: provide a URL or --file\n")
		return pagedigest.Errorf(pagedigest.EINVALID, "url or file required")
	}

	document, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	result, err := deps.Analyzer.Analyze(document, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
		return err
	}

	var insight *pagedigest.Insight
	if c.Save {
		insight = &pagedigest.Insight{
			ContentHash:    analyze.ContentHash(document),
			AnalysisResult: *result,
		}
		if c.URL != "" {
			insight.URL = &c.URL
		}
		if deps.Converter != nil {
			md, err := deps.Converter.Convert(document, c.URL)
			if err != nil {
				deps.Logger.Warn("markdown conversion failed", "error", err)
			} else {
				insight.Markdown = md
			}
		}
		if err := deps.Insights.CreateInsight(deps.Ctx, insight); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagedigest.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		var v any = result
		if insight != nil {
			v = insight
		}
		return writeJSON(deps.Stdout, v)
	}

	fmt.Fprint(deps.Stdout, pagedigest.FormatAnalysis(result))
	if insight != nil {
		fmt.Fprintf(deps.Stdout, "\nSaved as %s\n", insight.ID)
	}
	return nil
}

// read returns the document from --file, stdin or the network.
func (c *AnalyzeCmd) read(deps *Dependencies) (string, error) {
	switch c.File {
	case "":
		return deps.Fetcher.Fetch(deps.Ctx, c.URL)
	case "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", pagedigest.Errorf(pagedigest.EINVALID, "reading %s: %v", c.File, err)
		}
		return string(data), nil
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
