// Package fs exports stored digests as markdown files.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagedigest"
	"gopkg.in/yaml.v3"
)

// PastedDir holds digests of pasted content, which have no URL.
const PastedDir = "pasted"

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagedigest.Errorf(pagedigest.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return "", pagedigest.Errorf(pagedigest.EINVALID, "URL %q has no host", rawURL)
	}

	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", pagedigest.Errorf(pagedigest.EINVALID, "path traversal in %q", rawURL)
		}
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		p = "index.md"
	case strings.HasSuffix(p, "/"):
		p += "index.md"
	default:
		p += ".md"
	}
	return path.Join(u.Hostname(), p), nil
}

// InsightPath returns the relative file path of an exported insight.
func InsightPath(insight *pagedigest.Insight) (string, error) {
	if insight.URL == nil || *insight.URL == "" {
		return path.Join(PastedDir, insight.ID+".md"), nil
	}
	return URLToPath(*insight.URL)
}

type frontMatter struct {
	ID        string `yaml:"id"`
	Source    string `yaml:"source,omitempty"`
	Title     string `yaml:"title"`
	Created   string `yaml:"created"`
	WordCount int    `yaml:"word_count"`
	Tasks     int    `yaml:"tasks"`
	Hash      string `yaml:"content_hash,omitempty"`
}

// FormatInsight renders an insight with YAML front matter followed by the
// formatted digest and, when stored, the page markdown.
func FormatInsight(insight *pagedigest.Insight) (string, error) {
	fm := frontMatter{
		ID:        insight.ID,
		Title:     insight.Title,
		Created:   insight.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		WordCount: insight.Metadata.WordCount,
		Tasks:     len(insight.Tasks),
		Hash:      insight.ContentHash,
	}
	if insight.URL != nil {
		fm.Source = *insight.URL
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(pagedigest.FormatAnalysis(&insight.AnalysisResult))
	buf.WriteString("\n")

	if md := strings.TrimSpace(insight.Markdown); md != "" {
		buf.WriteString("\n## Content\n\n")
		buf.WriteString(md)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// Exporter writes insights under baseDir/name with atomic update semantics.
// Files are written to baseDir/name.tmp and moved into place on Commit.
type Exporter struct {
	baseDir string
	name    string
	written map[string]bool
}

// NewExporter creates a new Exporter.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
		written: make(map[string]bool),
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

// Dir returns the final output directory.
func (e *Exporter) Dir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes one insight to the temporary directory and returns its
// relative path. When two insights map to the same path, the later one is
// suffixed with its ID.
func (e *Exporter) Save(ctx context.Context, insight *pagedigest.Insight) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := InsightPath(insight)
	if err != nil {
		return "", err
	}
	if e.written[rel] {
		rel = strings.TrimSuffix(rel, ".md") + "-" + insight.ID + ".md"
	}

	content, err := FormatInsight(insight)
	if err != nil {
		return "", err
	}

	full := filepath.Join(e.tempDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return "", err
	}
	e.written[rel] = true
	return rel, nil
}

// Commit replaces the output directory with the temporary one.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.Dir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.Dir())
}

// Abort discards the temporary directory.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// Export writes every insight and commits, or aborts on the first error.
// It returns the relative paths written.
func (e *Exporter) Export(ctx context.Context, insights []*pagedigest.Insight) ([]string, error) {
	paths := make([]string, 0, len(insights))
	for _, insight := range insights {
		rel, err := e.Save(ctx, insight)
		if err != nil {
			_ = e.Abort()
			return nil, err
		}
		paths = append(paths, rel)
	}
	if err := e.Commit(); err != nil {
		_ = e.Abort()
		return nil, err
	}
	return paths, nil
}
