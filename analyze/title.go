package analyze

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagedigest"
)

// resolveTitle picks the document title, the first level-1 heading or the
// first substantial line, in that order.
func resolveTitle(doc *pagedigest.NormalizedDocument, cfg pagedigest.Config) string {
	if t := strings.TrimSpace(doc.Title); t != "" {
		return truncate(t, cfg.TitleMaxLength)
	}
	for _, n := range doc.Nodes {
		if n.Kind == pagedigest.NodeHeading && n.Level == 1 && strings.TrimSpace(n.Text) != "" {
			return truncate(strings.TrimSpace(n.Text), cfg.TitleMaxLength)
		}
	}
	for _, line := range strings.Split(doc.Text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > cfg.TitleMinLineLength {
			return truncate(line, cfg.TitleMaxLength)
		}
	}
	return pagedigest.UntitledPage
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:limit]))
}
