package game

import "math"

// Stats summarizes finished games.
type Stats struct {
	Played        int
	Wins          int
	CurrentStreak int
	MaxStreak     int
	// Distribution[i] counts wins on guess i+1.
	Distribution []int
}

// NewStats returns empty stats for maxGuesses rows.
func NewStats(maxGuesses int) Stats {
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	return Stats{Distribution: make([]int, maxGuesses)}
}

// Record adds a finished game. guesses is the number of rows used.
func (s *Stats) Record(won bool, guesses int) {
	s.Played++
	if !won {
		s.CurrentStreak = 0
		return
	}
	s.Wins++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	if len(s.Distribution) == 0 {
		return
	}
	idx := guesses - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Distribution) {
		idx = len(s.Distribution) - 1
	}
	s.Distribution[idx]++
}

// WinRate returns the win percentage rounded to a whole number.
func (s Stats) WinRate() int {
	if s.Played == 0 {
		return 0
	}
	return int(math.Round(float64(s.Wins) / float64(s.Played) * 100))
}
