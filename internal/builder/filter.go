package builder

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterCandidates lowercases every corpus word and keeps those that are
// exactly length runes long and made only of letters. Corpus order is kept.
// Lowercasing uses full Unicode case mapping, so "İ" becomes "i̇" (two runes)
// and a word-final "Σ" becomes "ς".
func FilterCandidates(corpus []string, length int) []string {
	lower := cases.Lower(language.Und)
	out := make([]string, 0, len(corpus)/8)
	for _, w := range corpus {
		w = lower.String(w)
		if utf8.RuneCountInString(w) != length || !isAlpha(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// DeduplicatePreserveOrder drops repeated words, keeping first occurrences.
func DeduplicatePreserveOrder(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
