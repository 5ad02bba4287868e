package pagedigest

// NodeKind categorizes a normalized markup node.
type NodeKind string

// NodeKind constants.
const (
	NodeHeading   NodeKind = "heading"
	NodeParagraph NodeKind = "paragraph"
	NodeListItem  NodeKind = "list-item"
	NodeAnchor    NodeKind = "anchor"
	NodeOther     NodeKind = "other"
)

// Node is a flattened block or anchor from a normalized document.
// Anchors are reported in addition to the text block that contains them.
type Node struct {
	Kind  NodeKind
	Level int // 1-6 for headings, 0 otherwise
	Order int
	Text  string
	Href  string // anchors only
}

// NormalizedDocument is markup reduced to content nodes and plain text.
type NormalizedDocument struct {
	// Title is the text of the document-level <title> element.
	Title string

	// Nodes are in document order.
	Nodes []Node

	// Text holds one line per text block with whitespace collapsed.
	Text string

	// Degraded is set when the fallback text extractor was used.
	Degraded bool
}

// Normalizer strips non-content markup from raw HTML.
type Normalizer interface {
	// Normalize never fails: malformed markup degrades to best-effort
	// text extraction.
	Normalize(html string) *NormalizedDocument
}

// BlockKind is the block type a segment originated from.
type BlockKind string

// BlockKind constants.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockListItem  BlockKind = "list-item"
	BlockOther     BlockKind = "other"
)

// Segment is a sentence, heading or list item used as the unit of scoring.
type Segment struct {
	Text      string    `json:"text"`
	Kind      BlockKind `json:"kind"`
	Order     int       `json:"order"`
	WordCount int       `json:"wordCount"`
}
