package analyze

import (
	"sort"
	"strings"

	"github.com/fwojciec/pagedigest"
)

// termFrequencies returns the frequency of each non-stop word in text
// divided by the frequency of the most common one.
func termFrequencies(text string, lex *lexicon) map[string]float64 {
	counts := make(map[string]int)
	top := 0
	for _, tok := range tokenize(text) {
		if lex.stopWords[tok] {
			continue
		}
		counts[tok]++
		if counts[tok] > top {
			top = counts[tok]
		}
	}
	freq := make(map[string]float64, len(counts))
	for tok, n := range counts {
		freq[tok] = float64(n) / float64(top)
	}
	return freq
}

// score is the mean normalized frequency of the segment's content words,
// plus a bonus decaying with position and a bonus for the first text
// after a heading.
func score(u unit, freq map[string]float64, cfg pagedigest.Config, lex *lexicon) float64 {
	var sum float64
	var n int
	for _, tok := range tokenize(u.Text) {
		if lex.stopWords[tok] {
			continue
		}
		sum += freq[tok]
		n++
	}
	var s float64
	if n > 0 {
		s = sum / float64(n)
	}
	s += cfg.PositionWeight / float64(1+u.Order)
	if u.afterHeading {
		s += cfg.HeadingAdjacentBonus
	}
	return s
}

// summarize selects the summary and key points. The summary joins the top
// cfg.SummarySize segments in document order. Key points are the top
// cfg.KeyPointCount distinct segments in rank order that are not already
// part of the summary. Equal scores rank by document order.
func summarize(units []unit, freq map[string]float64, cfg pagedigest.Config, lex *lexicon) (string, []string) {
	ranked := make([]int, len(units))
	scores := make([]float64, len(units))
	for i, u := range units {
		ranked[i] = i
		scores[i] = score(u, freq, cfg, lex)
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		ia, ib := ranked[a], ranked[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return units[ia].Order < units[ib].Order
	})

	picked := ranked[:min(cfg.SummarySize, len(ranked))]
	inOrder := append([]int(nil), picked...)
	sort.Ints(inOrder)
	parts := make([]string, len(inOrder))
	for i, idx := range inOrder {
		parts[i] = units[idx].Text
	}
	summary := strings.Join(parts, " ")

	keyPoints := []string{}
	seen := make(map[string]bool, len(units))
	for _, idx := range picked {
		seen[normalizeText(units[idx].Text)] = true
	}
	for _, idx := range ranked {
		if len(keyPoints) >= cfg.KeyPointCount {
			break
		}
		key := normalizeText(units[idx].Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		keyPoints = append(keyPoints, units[idx].Text)
	}
	return summary, keyPoints
}

// normalizeText lowercases s and collapses its whitespace.
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
