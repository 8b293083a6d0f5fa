package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxGuesses is the number of rows on the board.
const DefaultMaxGuesses = 6

// State is the lifecycle state of a game.
type State int

// Game states.
const (
	InProgress State = iota
	Won
	Lost
)

var (
	// ErrNotEnoughLetters is returned when submitting an incomplete row.
	ErrNotEnoughLetters = errors.New("not enough letters")
	// ErrNotInWordList is returned when the guess is not an allowed word.
	ErrNotInWordList = errors.New("not in word list")
	// ErrGameOver is returned when the game has already ended.
	ErrGameOver = errors.New("game is over")
)

// Game holds one round: the solution, submitted guesses and the row being typed.
type Game struct {
	solution   string
	length     int
	maxGuesses int

	guesses  []string
	results  [][]Status
	current  []rune
	state    State
	keyboard Keyboard
}

// New starts a game for solution. maxGuesses <= 0 uses DefaultMaxGuesses.
func New(solution string, maxGuesses int) *Game {
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	solution = strings.ToLower(solution)
	return &Game{
		solution:   solution,
		length:     utf8.RuneCountInString(solution),
		maxGuesses: maxGuesses,
		keyboard:   Keyboard{},
	}
}

// Restore rebuilds an unfinished game by replaying submitted guesses and the
// partially typed row.
func Restore(solution string, maxGuesses int, guesses []string, current string) (*Game, error) {
	g := New(solution, maxGuesses)
	for _, guess := range guesses {
		if g.state != InProgress {
			return nil, ErrGameOver
		}
		if utf8.RuneCountInString(guess) != g.length {
			return nil, fmt.Errorf("guess %q does not match solution length %d", guess, g.length)
		}
		g.current = []rune(strings.ToLower(guess))
		if _, err := g.Submit(nil); err != nil {
			return nil, err
		}
	}
	if g.state != InProgress {
		return nil, ErrGameOver
	}
	for _, r := range current {
		if !g.AddLetter(r) {
			return nil, fmt.Errorf("invalid partial row %q", current)
		}
	}
	return g, nil
}

// AddLetter appends a letter to the current row if there is room.
func (g *Game) AddLetter(r rune) bool {
	if g.state != InProgress || len(g.current) >= g.length || !unicode.IsLetter(r) {
		return false
	}
	g.current = append(g.current, unicode.ToLower(r))
	return true
}

// DeleteLetter removes the last letter of the current row.
func (g *Game) DeleteLetter() bool {
	if g.state != InProgress || len(g.current) == 0 {
		return false
	}
	g.current = g.current[:len(g.current)-1]
	return true
}

// Submit scores the current row. valid decides whether the word is allowed;
// a nil valid accepts every word.
func (g *Game) Submit(valid func(string) bool) ([]Status, error) {
	if g.state != InProgress {
		return nil, ErrGameOver
	}
	if len(g.current) < g.length {
		return nil, ErrNotEnoughLetters
	}
	guess := string(g.current)
	if valid != nil && !valid(guess) {
		return nil, ErrNotInWordList
	}

	result := Score(guess, g.solution)
	g.guesses = append(g.guesses, guess)
	g.results = append(g.results, result)
	g.keyboard.Apply(guess, result)
	g.current = nil

	switch {
	case Solved(result):
		g.state = Won
	case len(g.guesses) >= g.maxGuesses:
		g.state = Lost
	}
	return result, nil
}

// Solution returns the word being guessed.
func (g *Game) Solution() string { return g.solution }

// Length returns the word length.
func (g *Game) Length() int { return g.length }

// MaxGuesses returns the number of rows.
func (g *Game) MaxGuesses() int { return g.maxGuesses }

// State returns the game state.
func (g *Game) State() State { return g.state }

// Guesses returns the submitted guesses.
func (g *Game) Guesses() []string { return append([]string(nil), g.guesses...) }

// Result returns the score of a submitted row.
func (g *Game) Result(row int) []Status {
	if row < 0 || row >= len(g.results) {
		return nil
	}
	return g.results[row]
}

// Current returns the letters typed in the active row.
func (g *Game) Current() string { return string(g.current) }

// Row returns the index of the active row.
func (g *Game) Row() int { return len(g.guesses) }

// Keyboard returns the letter statuses seen so far.
func (g *Game) Keyboard() Keyboard { return g.keyboard }
