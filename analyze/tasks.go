package analyze

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagedigest"
)

// dateRe matches numeric dates such as 2024-05-01, 5/1 or 01/05/24.
var dateRe = regexp.MustCompile(`\b\d{1,4}[/-]\d{1,2}(?:[/-]\d{1,4})?\b`)

// detectTasks returns one candidate per segment that matches a signal, in
// document order. When several signals match, the one with the highest
// confidence is kept; ties go to the earlier signal in the order marker,
// imperative-list, deadline, imperative-text.
func detectTasks(units []unit, lex *lexicon, cfg pagedigest.Config) []pagedigest.Task {
	tasks := []pagedigest.Task{}
	for _, u := range units {
		source, confidence, ok := matchSignal(u.Segment, lex, cfg)
		if !ok {
			continue
		}
		tasks = append(tasks, pagedigest.Task{
			ID:         taskID(u.Order, u.Text),
			Text:       u.Text,
			Status:     pagedigest.TaskPending,
			Confidence: confidence,
			Source:     source,
		})
	}
	return tasks
}

// DetectTasks runs task detection over already segmented text.
func DetectTasks(segments []pagedigest.Segment, lex *pagedigest.Lexicon, cfg pagedigest.Config) []pagedigest.Task {
	if lex == nil {
		lex = pagedigest.DefaultLexicon()
	}
	units := make([]unit, len(segments))
	for i, s := range segments {
		units[i] = unit{Segment: s}
	}
	return detectTasks(units, compileLexicon(lex), cfg)
}

func matchSignal(seg pagedigest.Segment, lex *lexicon, cfg pagedigest.Config) (string, float64, bool) {
	tokens := tokenize(seg.Text)
	startsImperative := len(tokens) > 0 && lex.imperative[tokens[0]]

	var (
		best       string
		confidence float64
		found      bool
	)
	consider := func(source string, c float64) {
		if !found || c > confidence {
			best, confidence, found = source, c, true
		}
	}

	if hasMarker(seg.Text, lex.markers) {
		consider(pagedigest.SignalMarker, cfg.MarkerConfidence)
	}
	if seg.Kind == pagedigest.BlockListItem && startsImperative {
		consider(pagedigest.SignalImperativeList, cfg.ImperativeListConfidence)
	}
	if hasDeadline(seg.Text, tokens, lex) && hasVerb(tokens, lex) {
		consider(pagedigest.SignalDeadline, cfg.DeadlineConfidence)
	}
	if seg.Kind != pagedigest.BlockListItem && startsImperative {
		consider(pagedigest.SignalImperativeText, cfg.ImperativeTextConfidence)
	}
	return best, confidence, found
}

// hasMarker reports whether text starts with a marker, case-insensitively.
// A marker ending in a letter must not run into the next word, so "todo"
// matches "TODO fix" but not "Todoist".
func hasMarker(text string, markers []string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, m := range markers {
		if !strings.HasPrefix(lower, m) {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(m)
		if !unicode.IsLetter(last) && !unicode.IsDigit(last) {
			return true
		}
		next, _ := utf8.DecodeRuneInString(lower[len(m):])
		if len(lower) == len(m) || (!unicode.IsLetter(next) && !unicode.IsDigit(next)) {
			return true
		}
	}
	return false
}

func hasDeadline(text string, tokens []string, lex *lexicon) bool {
	if dateRe.MatchString(text) {
		return true
	}
	for _, tok := range tokens {
		if lex.deadlineWords[tok] || lex.dateWords[tok] {
			return true
		}
	}
	if len(lex.deadlineMulti) > 0 {
		joined := " " + strings.Join(tokens, " ") + " "
		for _, phrase := range lex.deadlineMulti {
			if strings.Contains(joined, phrase) {
				return true
			}
		}
	}
	return false
}

func hasVerb(tokens []string, lex *lexicon) bool {
	for _, tok := range tokens {
		if lex.verbs[tok] {
			return true
		}
	}
	return false
}

// taskID hashes the segment position and text so identical input always
// yields identical ids.
func taskID(order int, text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fmt.Sprintf("%d:%s", order, text)))
}

// ContentHash returns a stable hash of a document, used by callers to skip
// re-analysis of unchanged content.
func ContentHash(document string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(document))
}
