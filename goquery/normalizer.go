// Package goquery normalizes raw HTML into content nodes and plain text
// using goquery and the golang.org/x/net/html tree.
package goquery

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Normalizer implements pagedigest.Normalizer at compile time.
var _ pagedigest.Normalizer = (*Normalizer)(nil)

// pruneSelector matches elements that never carry readable content.
const pruneSelector = "head, script, style, noscript, template, svg, canvas, iframe, object, " +
	"[hidden], [aria-hidden='true'], input[type='hidden']"

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
}

var (
	titleRe     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	svgRe       = regexp.MustCompile(`(?is)<svg\b.*?</svg>`)
	blankLineRe = regexp.MustCompile(`\n[ \t\r\f]*\n`)
)

// DefaultMaxDepth is the deepest element nesting walked as a tree.
const DefaultMaxDepth = 256

// Normalizer strips scripts, styles, comments and hidden elements and
// flattens the remaining markup into block nodes.
// Normalizer is safe for concurrent use.
type Normalizer struct {
	// MaxDepth bounds the element nesting of documents walked as a tree.
	// Deeper documents are reduced to text instead.
	MaxDepth int

	fallback *bluemonday.Policy
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return &Normalizer{MaxDepth: DefaultMaxDepth, fallback: p}
}

// Normalize parses raw HTML. Unclosed tags are closed by the HTML5 parser
// and unknown tags are treated as inline containers. If the parser gives up
// or the tree nests deeper than MaxDepth, the document is reduced to text
// by the fallback policy and marked degraded.
func (n *Normalizer) Normalize(raw string) *pagedigest.NormalizedDocument {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return n.degrade(raw)
	}
	if n.MaxDepth > 0 && deeperThan(doc.Nodes, n.MaxDepth) {
		return n.degrade(raw)
	}

	title := collapse(doc.Find("head > title").First().Text())

	doc.Find(pruneSelector).Remove()
	doc.Find("[style]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		return isHiddenStyle(style)
	}).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	w := &walker{}
	for _, node := range root.Nodes {
		w.walk(node)
	}
	w.flush()

	return &pagedigest.NormalizedDocument{
		Title: title,
		Nodes: w.nodes,
		Text:  strings.Join(w.lines, "\n"),
	}
}

// degrade extracts text without a tree. Block structure is approximated
// from the line breaks of the source.
func (n *Normalizer) degrade(raw string) *pagedigest.NormalizedDocument {
	var title string
	if m := titleRe.FindStringSubmatch(svgRe.ReplaceAllString(raw, "")); m != nil {
		title = collapse(html.UnescapeString(m[1]))
	}

	text := html.UnescapeString(n.fallback.Sanitize(raw))

	var nodes []pagedigest.Node
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = collapse(line)
		if line == "" {
			continue
		}
		nodes = append(nodes, pagedigest.Node{Kind: pagedigest.NodeOther, Order: len(nodes), Text: line})
		lines = append(lines, line)
	}

	return &pagedigest.NormalizedDocument{
		Title:    title,
		Nodes:    nodes,
		Text:     strings.Join(lines, "\n"),
		Degraded: true,
	}
}

type block struct {
	kind  pagedigest.NodeKind
	level int
}

// walker flattens a DOM subtree. Text accumulates until a block boundary,
// where it is emitted with the kind of the innermost enclosing block.
type walker struct {
	nodes []pagedigest.Node
	lines []string
	buf   strings.Builder
	stack []block
}

func (w *walker) walk(n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		parts := blankLineRe.Split(n.Data, -1)
		for i, part := range parts {
			if i > 0 {
				w.flush()
			}
			w.buf.WriteString(part)
		}
		return
	case nethtml.CommentNode, nethtml.DoctypeNode:
		return
	case nethtml.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		return
	}

	if n.DataAtom == atom.Br || n.DataAtom == atom.Hr {
		w.flush()
		return
	}

	if n.DataAtom == atom.A {
		w.nodes = append(w.nodes, pagedigest.Node{
			Kind:  pagedigest.NodeAnchor,
			Order: len(w.nodes),
			Text:  collapse(textOf(n)),
			Href:  strings.TrimSpace(attr(n, "href")),
		})
	}

	b, isBlock := w.classify(n)
	if isBlock {
		w.flush()
		w.stack = append(w.stack, b)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if isBlock {
		w.flush()
		w.stack = w.stack[:len(w.stack)-1]
	}
}

// classify reports whether n starts a new block and which kind it has.
// Generic containers inherit the kind of the enclosing block.
func (w *walker) classify(n *nethtml.Node) (block, bool) {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return block{kind: pagedigest.NodeHeading, level: int(n.Data[1] - '0')}, true
	case atom.P:
		return block{kind: pagedigest.NodeParagraph}, true
	case atom.Li:
		return block{kind: pagedigest.NodeListItem}, true
	case atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer,
		atom.Nav, atom.Aside, atom.Ul, atom.Ol, atom.Dl, atom.Dt, atom.Dd,
		atom.Table, atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Td, atom.Th,
		atom.Caption, atom.Blockquote, atom.Pre, atom.Figure, atom.Figcaption,
		atom.Form, atom.Fieldset, atom.Legend, atom.Address, atom.Details,
		atom.Summary, atom.Body, atom.Html:
		return w.current(), true
	}
	return block{}, false
}

func (w *walker) current() block {
	if len(w.stack) == 0 {
		return block{kind: pagedigest.NodeOther}
	}
	return w.stack[len(w.stack)-1]
}

// flush emits buffered text as a node and a plain-text line.
func (w *walker) flush() {
	text := collapse(w.buf.String())
	w.buf.Reset()
	if text == "" {
		return
	}
	b := w.current()
	w.nodes = append(w.nodes, pagedigest.Node{
		Kind:  b.kind,
		Level: b.level,
		Order: len(w.nodes),
		Text:  text,
	})
	w.lines = append(w.lines, text)
}

// deeperThan reports whether any node below roots sits more than limit
// levels down.
func deeperThan(roots []*nethtml.Node, limit int) bool {
	type level struct {
		node  *nethtml.Node
		depth int
	}
	stack := make([]level, 0, len(roots))
	for _, r := range roots {
		stack = append(stack, level{r, 0})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > limit {
			return true
		}
		for c := top.node.FirstChild; c != nil; c = c.NextSibling {
			stack = append(stack, level{c, top.depth + 1})
		}
	}
	return false
}

// textOf returns the concatenated text of a subtree, skipping comments.
func textOf(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isHiddenStyle(style string) bool {
	for _, pat := range hiddenStylePatterns {
		if pat.MatchString(style) {
			return true
		}
	}
	return false
}

// collapse trims s and replaces every whitespace run with a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
