// Package game implements the rules of the word guessing game played with a
// generated word list.
package game

// Status is the evaluation of one guessed letter.
type Status int

// Letter statuses, ordered by priority for keyboard display.
const (
	Unknown Status = iota
	Absent
	Present
	Correct
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Score compares a guess against the answer. Exact matches are marked first;
// remaining letters are marked present only while unmatched copies remain in
// the answer. Both words must have the same rune length.
func Score(guess, answer string) []Status {
	g := []rune(guess)
	a := []rune(answer)
	result := make([]Status, len(g))
	remaining := make(map[rune]int, len(a))
	for i, r := range a {
		if i < len(g) && g[i] == r {
			result[i] = Correct
			continue
		}
		remaining[r]++
	}
	for i, r := range g {
		if result[i] == Correct {
			continue
		}
		if remaining[r] > 0 {
			result[i] = Present
			remaining[r]--
			continue
		}
		result[i] = Absent
	}
	return result
}

// Solved reports whether every letter is correct.
func Solved(result []Status) bool {
	if len(result) == 0 {
		return false
	}
	for _, s := range result {
		if s != Correct {
			return false
		}
	}
	return true
}

// Keyboard tracks the best status seen for each letter.
type Keyboard map[rune]Status

// Apply records a scored guess. A letter never drops to a lower status.
func (k Keyboard) Apply(guess string, result []Status) {
	for i, r := range []rune(guess) {
		if i >= len(result) {
			return
		}
		if result[i] > k[r] {
			k[r] = result[i]
		}
	}
}
