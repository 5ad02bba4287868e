package analyze

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagedigest"
)

// collectMetadata gathers headings and outbound links in document order.
// Links are unique by (href, label) and relative hrefs are resolved
// against sourceURL when it is an absolute URL.
func collectMetadata(doc *pagedigest.NormalizedDocument, sourceURL string) ([]string, []pagedigest.LinkRef) {
	var base *url.URL
	if sourceURL != "" {
		if u, err := url.Parse(sourceURL); err == nil && u.IsAbs() {
			base = u
		}
	}

	headings := []string{}
	links := []pagedigest.LinkRef{}
	seen := make(map[pagedigest.LinkRef]bool)

	for _, n := range doc.Nodes {
		switch n.Kind {
		case pagedigest.NodeHeading:
			if text := strings.TrimSpace(n.Text); text != "" {
				headings = append(headings, text)
			}
		case pagedigest.NodeAnchor:
			href := resolveHref(base, strings.TrimSpace(n.Href))
			if href == "" {
				continue
			}
			label := strings.TrimSpace(n.Text)
			if label == "" {
				label = href
			}
			link := pagedigest.LinkRef{Href: href, Label: label}
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}
	}
	return headings, links
}

// resolveHref returns href resolved against base, or href unchanged if it
// cannot be resolved. Script links resolve to the empty string.
func resolveHref(base *url.URL, href string) string {
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
