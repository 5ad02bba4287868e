package pagedigest

// Default scoring and limit values.
const (
	DefaultSummarySize          = 3
	DefaultKeyPointCount        = 6
	DefaultMinSegmentTokens     = 3
	DefaultMaxSegments          = 5000
	DefaultMaxDocumentBytes     = 8 << 20
	DefaultTitleMaxLength       = 180
	DefaultTitleMinLineLength   = 8
	DefaultPositionWeight       = 0.25
	DefaultHeadingAdjacentBonus = 0.15

	// UntitledPage is used when no title candidate exists.
	UntitledPage = "Untitled page"
)

// Fixed confidence per task signal.
const (
	ConfidenceMarker         = 0.9
	ConfidenceImperativeList = 0.7
	ConfidenceDeadline       = 0.6
	ConfidenceImperativeText = 0.5
)

// Config holds analysis limits and scoring weights.
type Config struct {
	// SummarySize is the number of segments joined into the summary.
	SummarySize int `yaml:"summary_size"`

	// KeyPointCount caps the number of key points.
	KeyPointCount int `yaml:"key_point_count"`

	// MinSegmentTokens drops shorter segments as noise.
	MinSegmentTokens int `yaml:"min_segment_tokens"`

	// MaxSegments bounds per-document work; later segments are ignored.
	MaxSegments int `yaml:"max_segments"`

	// MaxDocumentBytes truncates oversized input before parsing.
	MaxDocumentBytes int `yaml:"max_document_bytes"`

	TitleMaxLength     int `yaml:"title_max_length"`
	TitleMinLineLength int `yaml:"title_min_line_length"`

	// PositionWeight is the bonus of the first segment, decaying with order.
	PositionWeight float64 `yaml:"position_weight"`

	// HeadingAdjacentBonus rewards the segment right after a heading.
	HeadingAdjacentBonus float64 `yaml:"heading_adjacent_bonus"`

	MarkerConfidence         float64 `yaml:"marker_confidence"`
	ImperativeListConfidence float64 `yaml:"imperative_list_confidence"`
	DeadlineConfidence       float64 `yaml:"deadline_confidence"`
	ImperativeTextConfidence float64 `yaml:"imperative_text_confidence"`
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		SummarySize:              DefaultSummarySize,
		KeyPointCount:            DefaultKeyPointCount,
		MinSegmentTokens:         DefaultMinSegmentTokens,
		MaxSegments:              DefaultMaxSegments,
		MaxDocumentBytes:         DefaultMaxDocumentBytes,
		TitleMaxLength:           DefaultTitleMaxLength,
		TitleMinLineLength:       DefaultTitleMinLineLength,
		PositionWeight:           DefaultPositionWeight,
		HeadingAdjacentBonus:     DefaultHeadingAdjacentBonus,
		MarkerConfidence:         ConfidenceMarker,
		ImperativeListConfidence: ConfidenceImperativeList,
		DeadlineConfidence:       ConfidenceDeadline,
		ImperativeTextConfidence: ConfidenceImperativeText,
	}
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.SummarySize < 0 || c.KeyPointCount < 0 {
		return Errorf(EINVALID, "summary size and key point count must not be negative")
	}
	if c.MinSegmentTokens < 1 {
		return Errorf(EINVALID, "min segment tokens must be at least 1")
	}
	if c.MaxSegments < 1 {
		return Errorf(EINVALID, "max segments must be at least 1")
	}
	if c.MaxDocumentBytes < 1 {
		return Errorf(EINVALID, "max document bytes must be at least 1")
	}
	if c.TitleMaxLength < 1 {
		return Errorf(EINVALID, "title max length must be at least 1")
	}
	for _, v := range []float64{c.MarkerConfidence, c.ImperativeListConfidence, c.DeadlineConfidence, c.ImperativeTextConfidence} {
		if v < 0 || v > 1 {
			return Errorf(EINVALID, "confidence values must be between 0 and 1")
		}
	}
	return nil
}
