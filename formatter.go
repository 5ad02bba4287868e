package pagedigest

import (
	"fmt"
	"strings"
)

// FormatAnalysis renders a digest as Markdown for display or export.
// Empty sections are omitted.
func FormatAnalysis(r *AnalysisResult) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# " + r.Title + "\n")

	if r.Summary != "" {
		b.WriteString("\n" + r.Summary + "\n")
	}

	if len(r.KeyPoints) > 0 {
		b.WriteString("\n## Key points\n\n")
		for _, p := range r.KeyPoints {
			b.WriteString("- " + p + "\n")
		}
	}

	if len(r.Tasks) > 0 {
		b.WriteString("\n## Tasks\n\n")
		for _, t := range r.Tasks {
			box := "[ ]"
			if t.Status == TaskCompleted {
				box = "[x]"
			}
			fmt.Fprintf(&b, "- %s %s (%.2f, %s) `%s`\n", box, t.Text, t.Confidence, t.Source, t.ID)
		}
	}

	if len(r.Metadata.Headings) > 0 {
		b.WriteString("\n## Headings\n\n")
		for _, h := range r.Metadata.Headings {
			b.WriteString("- " + h + "\n")
		}
	}

	if len(r.Metadata.Links) > 0 {
		b.WriteString("\n## Links\n\n")
		for _, l := range r.Metadata.Links {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Label, l.Href)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
