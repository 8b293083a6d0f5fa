// Package model defines shared data structures.
package model

import "time"

// BuildConfig defines one word list build.
type BuildConfig struct {
	Lang       string
	Size       int
	Length     int
	OutputPath string
	Source     string
	AsciiOnly  bool
}

// Summary describes a finished build.
type Summary struct {
	RunID      string
	Lang       string
	Size       int
	Length     int
	Source     string
	OutputPath string
	Count      int
	StartedAt  time.Time
	Duration   time.Duration
}

// BuildRecord is a stored build history row.
type BuildRecord struct {
	RunID      string
	StartedAt  time.Time
	EndedAt    time.Time
	Lang       string
	Size       int
	Length     int
	Source     string
	OutputPath string
	Count      int
}

// GameRecord captures a finished game.
type GameRecord struct {
	StartedAt time.Time
	EndedAt   time.Time
	Solution  string
	Guesses   []string
	Won       bool
	WordsPath string
}

// PlayConfig defines settings for the guessing game.
type PlayConfig struct {
	WordsPath  string
	Length     int
	MaxGuesses int
}

// SavedGame is an unfinished game kept between sessions.
type SavedGame struct {
	StartedAt  time.Time
	Solution   string
	Guesses    []string
	Current    string
	MaxGuesses int
	WordsPath  string
}
