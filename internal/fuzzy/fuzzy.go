// Package fuzzy ranks picker entries against a typed query.
//
// Matching is subsequence-based and case-insensitive: every query rune
// must appear in the candidate in order. Scoring favors consecutive
// runs and matches on word boundaries, so "mgo" ranks "main.go" above
// "imago".
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Scoring bonuses and penalties.
const (
	bonusConsecutive  = 16
	bonusBoundary     = 8
	bonusFirstRune    = 8
	penaltyGap        = 1
	penaltyLongerText = 1
)

// Result is one ranked candidate.
type Result struct {
	// Text is the matched candidate.
	Text string

	// Index is the candidate's position in the input slice.
	Index int

	// Score orders results; higher is better.
	Score int
}

// Match ranks candidates against query, best first. An empty query
// keeps the input order. Candidates that do not contain the query as a
// subsequence are omitted.
func Match(query string, candidates []string) []Result {
	query = strings.TrimSpace(strings.ToLower(query))

	if query == "" {
		out := make([]Result, len(candidates))
		for i, c := range candidates {
			out[i] = Result{Text: c, Index: i}
		}
		return out
	}

	queryRunes := []rune(query)
	var out []Result
	for i, c := range candidates {
		score, ok := score(queryRunes, c)
		if !ok {
			continue
		}
		out = append(out, Result{Text: c, Index: i, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Strings is Match reduced to the ranked candidate texts.
func Strings(query string, candidates []string) []string {
	results := Match(query, candidates)
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

// score matches queryRunes greedily left to right and totals bonuses.
func score(queryRunes []rune, text string) (int, bool) {
	textRunes := []rune(strings.ToLower(text))

	total := 0
	qi := 0
	lastMatch := -1

	for ti := 0; ti < len(textRunes) && qi < len(queryRunes); ti++ {
		if textRunes[ti] != queryRunes[qi] {
			continue
		}

		switch {
		case ti == 0:
			total += bonusFirstRune
		case lastMatch == ti-1:
			total += bonusConsecutive
		case isBoundary(textRunes, ti):
			total += bonusBoundary
		}
		if lastMatch >= 0 {
			total -= (ti - lastMatch - 1) * penaltyGap
		}

		lastMatch = ti
		qi++
	}

	if qi < len(queryRunes) {
		return 0, false
	}
	total -= (len(textRunes) - len(queryRunes)) * penaltyLongerText
	return total, true
}

// isBoundary reports whether the rune at idx starts a word: it follows
// a separator or an underscore-style break.
func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := runes[idx-1]
	return prev == '/' || prev == '\\' || prev == '-' || prev == '_' ||
		prev == '.' || unicode.IsSpace(prev)
}
