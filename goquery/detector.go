package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform identifies the publishing system that produced a page.
type Platform string

// Platform constants.
const (
	PlatformUnknown    Platform = ""
	PlatformWordPress  Platform = "wordpress"
	PlatformGhost      Platform = "ghost"
	PlatformSubstack   Platform = "substack"
	PlatformMedium     Platform = "medium"
	PlatformHugo       Platform = "hugo"
	PlatformJekyll     Platform = "jekyll"
	PlatformDocusaurus Platform = "docusaurus"
	PlatformMkDocs     Platform = "mkdocs"
	PlatformSphinx     Platform = "sphinx"
	PlatformVitePress  Platform = "vitepress"
)

// platformRule describes how to recognize a platform and where it puts
// the main content.
type platformRule struct {
	platform  Platform
	generator string   // substring of <meta name="generator">
	markers   []string // any match identifies the platform
	content   []string // main content containers, most specific first
}

// platformRules are checked in order. Generator tags are consulted for
// every rule before any marker selector.
var platformRules = []platformRule{
	{
		platform:  PlatformWordPress,
		generator: "wordpress",
		markers:   []string{"link[href*='/wp-content/']", "body.wp-singular", ".wp-block-post-content"},
		content:   []string{".entry-content", ".wp-block-post-content", "article"},
	},
	{
		platform:  PlatformGhost,
		generator: "ghost",
		markers:   []string{".gh-content", "body.post-template .gh-article"},
		content:   []string{".gh-content", ".post-content", "article"},
	},
	{
		platform:  PlatformSubstack,
		generator: "substack",
		markers:   []string{".available-content", "link[href*='substackcdn.com']"},
		content:   []string{".available-content .body", ".available-content"},
	},
	{
		platform:  PlatformMedium,
		generator: "medium",
		markers:   []string{"meta[property='al:android:package'][content='com.medium.reader']", "article [data-testid='storyTitle']"},
		content:   []string{"article section", "article"},
	},
	{
		platform:  PlatformDocusaurus,
		generator: "docusaurus",
		markers:   []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"},
		content:   []string{".theme-doc-markdown", "article"},
	},
	{
		platform:  PlatformMkDocs,
		generator: "mkdocs",
		markers:   []string{"[data-md-component]", "[data-md-color-scheme]"},
		content:   []string{".md-content__inner", ".md-content"},
	},
	{
		platform:  PlatformSphinx,
		generator: "sphinx",
		markers:   []string{".wy-nav-side", ".sphinxsidebar", ".toctree-wrapper"},
		content:   []string{"[role='main']", ".rst-content .document", ".body"},
	},
	{
		platform:  PlatformVitePress,
		generator: "vitepress",
		markers:   []string{"#VPContent", ".VPDoc"},
		content:   []string{".vp-doc", "#VPContent"},
	},
	{
		platform:  PlatformHugo,
		generator: "hugo",
		content:   []string{".post-content", "article", "main"},
	},
	{
		platform:  PlatformJekyll,
		generator: "jekyll",
		markers:   []string{"article.post .post-content"},
		content:   []string{".post-content", ".post", "article"},
	},
}

// genericContent is tried when the platform is unknown.
var genericContent = []string{"main article", "article", "main", "[role='main']"}

// Detector identifies publishing platforms from generator tags and the
// class names, ids and asset paths their themes leave in the markup.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect parses html and returns its platform, or PlatformUnknown.
func (d *Detector) Detect(html string) Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PlatformUnknown
	}
	return d.DetectDocument(doc)
}

// DetectDocument is Detect for an already parsed document.
func (d *Detector) DetectDocument(doc *goquery.Document) Platform {
	if r := d.ruleFor(doc); r != nil {
		return r.platform
	}
	return PlatformUnknown
}

// ContentSelectors returns the main content selectors for p.
func ContentSelectors(p Platform) []string {
	for _, r := range platformRules {
		if r.platform == p {
			return r.content
		}
	}
	return genericContent
}

func (d *Detector) ruleFor(doc *goquery.Document) *platformRule {
	if generator := strings.ToLower(doc.Find("meta[name='generator']").AttrOr("content", "")); generator != "" {
		for i := range platformRules {
			if strings.Contains(generator, platformRules[i].generator) {
				return &platformRules[i]
			}
		}
	}

	for i := range platformRules {
		for _, sel := range platformRules[i].markers {
			if doc.Find(sel).Length() > 0 {
				return &platformRules[i]
			}
		}
	}
	return nil
}
