package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    pagedigest.Config
	Analyzer  pagedigest.Analyzer
	Fetcher   pagedigest.Fetcher
	Insights  pagedigest.InsightService
	Converter pagedigest.Converter
	Sitemaps  pagedigest.SitemapService
	Ingester  *ingest.Ingester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"PAGEDIGEST_DB" help:"SQLite database path"`
	Lexicon   string `env:"PAGEDIGEST_LEXICON" help:"YAML lexicon overriding the built-in word lists"`
	Config    string `env:"PAGEDIGEST_CONFIG" help:"YAML file overriding analysis limits and weights"`
	Extractor string `enum:"none,goquery,trafilatura,readability" default:"none" help:"Main-content extractor applied before analysis (${enum})"`
	Browser   bool   `help:"Render pages in headless Chrome before analysis"`
	Verbose   bool   `short:"v" help:"Log every service call"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze a page and print its digest"`
	History HistoryCmd `cmd:"" help:"List saved digests, newest first"`
	Show    ShowCmd    `cmd:"" help:"Show a saved digest"`
	Toggle  ToggleCmd  `cmd:"" help:"Flip a task between pending and completed"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved digest"`
	Ingest  IngestCmd  `cmd:"" help:"Analyze and save many pages"`
	Export  ExportCmd  `cmd:"" help:"Write saved digests as markdown files"`
	Serve   ServeCmd   `cmd:"" help:"Serve the JSON API"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL  string `arg:"" optional:"" help:"Page URL; with --file it only resolves relative links"`
	File string `short:"f" help:"Read HTML from a file instead of fetching ('-' for stdin)"`
	Save bool   `short:"s" help:"Save the digest"`
	JSON bool   `help:"Print JSON instead of markdown"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int  `short:"n" default:"20" help:"Number of digests to list"`
	JSON  bool `help:"Print JSON"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID       string `arg:"" help:"Digest ID"`
	JSON     bool   `help:"Print JSON"`
	Markdown bool   `help:"Print the stored page markdown"`
}

// ToggleCmd is the "toggle" subcommand.
type ToggleCmd struct {
	ID     string `arg:"" help:"Digest ID"`
	TaskID string `arg:"" help:"Task ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Digest ID"`
	Force bool   `help:"Confirm deletion"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs, or site URLs with --sitemap"`
	Sitemap     bool     `help:"Discover pages from each site's sitemap"`
	Filter      []string `short:"F" name:"filter" help:"Only ingest URLs matching regex (repeatable)"`
	Preview     bool     `short:"p" help:"Print the URLs without ingesting"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"2" help:"Requests per second per host"`
	CountTokens bool     `help:"Estimate stored markdown size in tokens"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir   string `arg:"" help:"Output directory (replaced atomically)"`
	Limit int    `short:"n" help:"Export only the newest N digests"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}
