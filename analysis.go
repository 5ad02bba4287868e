package pagedigest

import "time"

// TaskStatus is the completion state of an action item.
type TaskStatus string

// TaskStatus constants. Tasks are always created as pending; only callers
// outside the analysis engine flip them to completed.
const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskCompleted
}

// Signal names recorded in Task.Source.
const (
	SignalMarker         = "marker"
	SignalImperativeList = "imperative-list"
	SignalDeadline       = "deadline"
	SignalImperativeText = "imperative-text"
)

// Task is a candidate action item found in a document.
type Task struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Status     TaskStatus `json:"status"`
	Confidence float64    `json:"confidence"`
	Source     string     `json:"source,omitempty"`
}

// Validate returns an error if the task contains invalid fields.
func (t *Task) Validate() error {
	if t.ID == "" {
		return Errorf(EINVALID, "task id required")
	}
	if t.Text == "" {
		return Errorf(EINVALID, "task %q text required", t.ID)
	}
	if !t.Status.Valid() {
		return Errorf(EINVALID, "task %q has invalid status %q", t.ID, t.Status)
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return Errorf(EINVALID, "task %q confidence must be between 0 and 1", t.ID)
	}
	return nil
}

// LinkRef is an outbound link found in a document.
// Links are unique by (Href, Label); the first occurrence wins.
type LinkRef struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// Metadata describes the analyzed page.
type Metadata struct {
	URL         *string   `json:"url"`
	Headings    []string  `json:"headings"`
	Links       []LinkRef `json:"links"`
	ExtractedAt time.Time `json:"extractedAt"`
	WordCount   int       `json:"wordCount"`

	// Degraded is set when the markup could not be parsed as a tree and
	// text was recovered by the fallback extractor.
	Degraded bool `json:"degraded,omitempty"`
}

// AnalysisResult is the digest produced for one document.
type AnalysisResult struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	Tasks     []Task   `json:"tasks"`
	Metadata  Metadata `json:"metadata"`
}

// Analyzer turns raw markup into a digest.
type Analyzer interface {
	// Analyze returns the digest for document. sourceURL is the page the
	// document came from, or empty for pasted content; it is used to
	// resolve relative links.
	//
	// Returns EEMPTY if the document is empty or whitespace-only. Malformed
	// markup never fails the analysis.
	Analyze(document string, sourceURL string) (*AnalysisResult, error)
}
