package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagedigest"
)

// DefaultMaxSitemaps bounds how many sitemap documents one discovery reads.
const DefaultMaxSitemaps = 200

// Ensure SitemapService implements pagedigest.SitemapService.
var _ pagedigest.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client

	// MaxSitemaps caps the sitemaps read per discovery, index files included.
	MaxSitemaps int
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, MaxSitemaps: DefaultMaxSitemaps}
}

// DiscoverURLs returns page URLs listed in the site's sitemaps, in first-seen
// order and without duplicates. It returns an empty slice if the site has no
// sitemap.
//
// When baseURL has a non-root path (e.g. https://example.com/docs/), only URLs
// below that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	queue, err := s.sitemapLocations(ctx, root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenURLs := make(map[string]bool)
	seenSitemaps := make(map[string]bool)

	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]
		if seenSitemaps[loc] {
			continue
		}
		if s.MaxSitemaps > 0 && len(seenSitemaps) >= s.MaxSitemaps {
			break
		}
		seenSitemaps[loc] = true

		pages, nested, err := s.readSitemap(ctx, loc)
		if err != nil {
			return nil, err
		}
		queue = append(queue, nested...)

		for _, page := range pages {
			if seenURLs[page] || !underPath(page, prefix) || !filter.Match(page) {
				continue
			}
			seenURLs[page] = true
			urls = append(urls, page)
		}
	}

	return urls, nil
}

// underPath reports whether rawURL's path is prefix or lies below it.
// /docs matches /docs and /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// sitemapLocations lists the Sitemap directives of robots.txt, falling back
// to /sitemap.xml when robots.txt names none.
func (s *SitemapService) sitemapLocations(ctx context.Context, root *url.URL) ([]string, error) {
	if locs, err := s.robotsSitemaps(ctx, root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()); err == nil && len(locs) > 0 {
		return locs, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var locs []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if loc := strings.TrimSpace(line[len(directive):]); loc != "" {
			locs = append(locs, loc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return locs, nil
}

// readSitemap returns the page URLs of a <urlset> or the child sitemap
// URLs of a <sitemapindex>.
func (s *SitemapService) readSitemap(ctx context.Context, loc string) (pages, nested []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	body, err := s.get(ctx, loc)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, nil, fmt.Errorf("parsing sitemap %s: %w", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("parsing sitemap %s: empty document", loc)
	}

	switch root.Tag {
	case "sitemapindex":
		return nil, locs(root, "sitemap"), nil
	default:
		return locs(root, "url"), nil, nil
	}
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
