package analyze

import (
	"strings"

	"github.com/fwojciec/pagedigest"
)

// unit is a segment plus the layout context the scorer needs.
type unit struct {
	pagedigest.Segment

	// afterHeading is set on the first segment of a paragraph or loose
	// text block that directly follows a heading block.
	afterHeading bool
}

// Segments splits a normalized document into ordered segments. Headings
// and list items are kept whole; other blocks are split into sentences.
// Segments with fewer than cfg.MinSegmentTokens words are dropped and at
// most cfg.MaxSegments are returned.
func Segments(doc *pagedigest.NormalizedDocument, cfg pagedigest.Config) []pagedigest.Segment {
	units := segment(doc, cfg)
	segs := make([]pagedigest.Segment, len(units))
	for i, u := range units {
		segs[i] = u.Segment
	}
	return segs
}

func segment(doc *pagedigest.NormalizedDocument, cfg pagedigest.Config) []unit {
	var units []unit
	prevHeading := false

	for _, n := range doc.Nodes {
		if n.Kind == pagedigest.NodeAnchor {
			continue
		}
		if cfg.MaxSegments > 0 && len(units) >= cfg.MaxSegments {
			break
		}

		kind := blockKind(n.Kind)
		var parts []string
		switch kind {
		case pagedigest.BlockHeading, pagedigest.BlockListItem:
			parts = []string{n.Text}
		default:
			parts = splitSentences(n.Text)
		}

		first := true
		for _, text := range parts {
			words := len(strings.Fields(text))
			if words < cfg.MinSegmentTokens {
				continue
			}
			if cfg.MaxSegments > 0 && len(units) >= cfg.MaxSegments {
				break
			}
			units = append(units, unit{
				Segment: pagedigest.Segment{
					Text:      text,
					Kind:      kind,
					Order:     len(units),
					WordCount: words,
				},
				afterHeading: prevHeading && first && kind != pagedigest.BlockHeading && kind != pagedigest.BlockListItem,
			})
			first = false
		}
		prevHeading = kind == pagedigest.BlockHeading
	}
	return units
}

func blockKind(k pagedigest.NodeKind) pagedigest.BlockKind {
	switch k {
	case pagedigest.NodeHeading:
		return pagedigest.BlockHeading
	case pagedigest.NodeParagraph:
		return pagedigest.BlockParagraph
	case pagedigest.NodeListItem:
		return pagedigest.BlockListItem
	default:
		return pagedigest.BlockOther
	}
}

// splitSentences cuts text after '.', '!' or '?' followed by a space.
// The input has its whitespace collapsed already.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' {
				if s := strings.TrimSpace(text[start : i+1]); s != "" {
					out = append(out, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
