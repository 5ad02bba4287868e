package analyze

import (
	"strings"
	"unicode"

	"github.com/fwojciec/pagedigest"
)

// lexicon is a pagedigest.Lexicon compiled into lookup sets.
type lexicon struct {
	imperative    map[string]bool
	verbs         map[string]bool
	markers       []string
	deadlineWords map[string]bool
	deadlineMulti []string
	dateWords     map[string]bool
	stopWords     map[string]bool
}

func compileLexicon(l *pagedigest.Lexicon) *lexicon {
	c := &lexicon{
		imperative:    toSet(l.ImperativeVerbs),
		verbs:         toSet(l.ImperativeVerbs),
		deadlineWords: make(map[string]bool),
		dateWords:     toSet(l.DateWords),
		stopWords:     toSet(l.StopWords),
	}
	for _, v := range l.Verbs {
		if v = normalizeWord(v); v != "" {
			c.verbs[v] = true
		}
	}
	for _, m := range l.Markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			c.markers = append(c.markers, m)
		}
	}
	for _, w := range l.DeadlineWords {
		words := tokenize(w)
		switch len(words) {
		case 0:
		case 1:
			c.deadlineWords[words[0]] = true
		default:
			c.deadlineMulti = append(c.deadlineMulti, " "+strings.Join(words, " ")+" ")
		}
	}
	return c
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if w = normalizeWord(w); w != "" {
			set[w] = true
		}
	}
	return set
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// tokenize splits text into lowercase words. Apostrophes inside a word are
// kept so contractions stay whole.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
