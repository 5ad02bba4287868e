package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/analyze"
	"github.com/fwojciec/pagedigest/gemini"
	"github.com/fwojciec/pagedigest/goquery"
	"github.com/fwojciec/pagedigest/htmltomarkdown"
	pdhttp "github.com/fwojciec/pagedigest/http"
	"github.com/fwojciec/pagedigest/ingest"
	"github.com/fwojciec/pagedigest/readability"
	"github.com/fwojciec/pagedigest/rod"
	pdslog "github.com/fwojciec/pagedigest/slog"
	"github.com/fwojciec/pagedigest/sqlite"
	"github.com/fwojciec/pagedigest/trafilatura"
	"github.com/fwojciec/pagedigest/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the fetcher built from flags. Used by tests.
	Fetcher pagedigest.Fetcher

	// Stdin is read by "analyze --file -".
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagedigest"),
		kong.Description("Summarize web pages into titles, key points and action items."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagedigest --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	lex := pagedigest.DefaultLexicon()
	if cli.Lexicon != "" {
		if lex, err = yaml.LoadLexicon(cli.Lexicon); err != nil {
			return fmt.Errorf("failed to load lexicon: %w", err)
		}
	}
	cfg := pagedigest.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = yaml.LoadConfig(cli.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEDIGEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	engine := analyze.NewEngine(goquery.NewNormalizer(), lex, cfg)
	engine.Extractor = newExtractor(cli.Extractor)

	deps.Config = cfg
	deps.Analyzer = pdslog.NewLoggingAnalyzer(engine, logger)
	deps.Insights = pdslog.NewLoggingInsightService(sqlite.NewInsightService(m.DB), logger)
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Sitemaps = pdslog.NewLoggingSitemapService(pdhttp.NewSitemapService(nil), logger)

	if needsFetcher(cmd, cli) {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli.Browser, cfg); err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
		}
		deps.Fetcher = pdslog.NewLoggingFetcher(fetcher, logger)
	}

	if cmd == "ingest" {
		deps.Ingester = &ingest.Ingester{
			Fetcher:     deps.Fetcher,
			Analyzer:    deps.Analyzer,
			Insights:    deps.Insights,
			Converter:   deps.Converter,
			RateLimiter: ingest.NewDomainLimiter(cli.Ingest.RPS, 1),
			Concurrency: cli.Ingest.Concurrency,
			Logf: func(format string, args ...any) {
				logger.Info(fmt.Sprintf(format, args...))
			},
		}
		if cli.Ingest.CountTokens {
			counter, err := gemini.NewTokenCounter(gemini.DefaultModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.Ingester.TokenCounter = counter
		}
	}

	return kongCtx.Run(deps)
}

// needsFetcher reports whether cmd reads pages from the network.
func needsFetcher(cmd string, cli *CLI) bool {
	switch cmd {
	case "ingest", "serve":
		return true
	case "analyze":
		return cli.Analyze.File == ""
	}
	return false
}

func newFetcher(browser bool, cfg pagedigest.Config) (pagedigest.Fetcher, error) {
	if browser {
		f, err := rod.NewFetcher(rod.WithUserAgent(pdhttp.DefaultUserAgent))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return pdhttp.NewFetcher(pdhttp.WithMaxBytes(int64(cfg.MaxDocumentBytes))), nil
}

// newExtractor returns the main-content extractor selected by name, or nil.
func newExtractor(name string) pagedigest.Extractor {
	switch name {
	case "goquery":
		return goquery.NewContentExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagedigest.db"
	}
	dir := filepath.Join(home, ".pagedigest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagedigest.db")
}
