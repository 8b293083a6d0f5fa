package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func typeWord(g *Game, word string) {
	for _, r := range word {
		g.AddLetter(r)
	}
}

func allow(words ...string) func(string) bool {
	set := map[string]bool{}
	for _, w := range words {
		set[w] = true
	}
	return func(w string) bool { return set[w] }
}

func TestGameWin(t *testing.T) {
	g := New("CRANE", 0)
	if g.MaxGuesses() != DefaultMaxGuesses || g.Length() != 5 {
		t.Fatalf("unexpected board %dx%d", g.MaxGuesses(), g.Length())
	}
	valid := allow("crane", "trace")

	typeWord(g, "trace")
	if _, err := g.Submit(valid); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if g.State() != InProgress || g.Row() != 1 {
		t.Fatalf("unexpected state %v row %d", g.State(), g.Row())
	}

	typeWord(g, "CRANE")
	result, err := g.Submit(valid)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !Solved(result) || g.State() != Won {
		t.Fatalf("expected win, got %v", g.State())
	}
	if diff := cmp.Diff([]string{"trace", "crane"}, g.Guesses()); diff != "" {
		t.Fatalf("unexpected guesses (-want +got):\n%s", diff)
	}
	if _, err := g.Submit(valid); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if g.AddLetter('a') {
		t.Fatalf("typing after the game ended must be ignored")
	}
}

func TestGameLose(t *testing.T) {
	g := New("crane", 2)
	for i := 0; i < 2; i++ {
		typeWord(g, "sound")
		if _, err := g.Submit(nil); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if g.State() != Lost {
		t.Fatalf("expected loss, got %v", g.State())
	}
}

func TestGameSubmitValidation(t *testing.T) {
	g := New("crane", 6)
	typeWord(g, "cra")
	if _, err := g.Submit(nil); !errors.Is(err, ErrNotEnoughLetters) {
		t.Fatalf("expected ErrNotEnoughLetters, got %v", err)
	}
	typeWord(g, "zzzzz")
	if g.Current() != "crazz" {
		t.Fatalf("row should stop at word length, got %q", g.Current())
	}
	if _, err := g.Submit(allow("crane")); !errors.Is(err, ErrNotInWordList) {
		t.Fatalf("expected ErrNotInWordList, got %v", err)
	}
	if g.Row() != 0 || g.Current() != "crazz" {
		t.Fatalf("rejected guess must not consume a row")
	}
}

func TestGameEditing(t *testing.T) {
	g := New("crane", 6)
	if g.DeleteLetter() {
		t.Fatalf("delete on empty row must be ignored")
	}
	if g.AddLetter('1') {
		t.Fatalf("digits must be ignored")
	}
	typeWord(g, "ab")
	g.DeleteLetter()
	if g.Current() != "a" {
		t.Fatalf("expected a, got %q", g.Current())
	}
}

func TestStatsRecord(t *testing.T) {
	s := NewStats(6)
	s.Record(true, 3)
	s.Record(true, 1)
	s.Record(false, 6)
	s.Record(true, 9)

	if s.Played != 4 || s.Wins != 3 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.CurrentStreak != 1 || s.MaxStreak != 2 {
		t.Fatalf("unexpected streaks %+v", s)
	}
	if diff := cmp.Diff([]int{1, 0, 1, 0, 0, 1}, s.Distribution); diff != "" {
		t.Fatalf("unexpected distribution (-want +got):\n%s", diff)
	}
	if s.WinRate() != 75 {
		t.Fatalf("expected 75%% win rate, got %d", s.WinRate())
	}
	if (Stats{}).WinRate() != 0 {
		t.Fatalf("expected 0 win rate without games")
	}
}

func TestPicker(t *testing.T) {
	p := NewPickerWithSeed(1)
	if _, err := p.Pick(nil); err == nil {
		t.Fatalf("expected error for empty list")
	}
	words := []string{"apple", "crane"}
	for i := 0; i < 10; i++ {
		w, err := p.Pick(words)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		if w != "apple" && w != "crane" {
			t.Fatalf("unexpected pick %q", w)
		}
	}
}

func TestRestore(t *testing.T) {
	g, err := Restore("Crane", 6, []string{"trace", "CRATE"}, "cr")
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if diff := cmp.Diff([]string{"trace", "crate"}, g.Guesses()); diff != "" {
		t.Fatalf("guesses mismatch (-want +got):\n%s", diff)
	}
	if g.Row() != 2 || g.Current() != "cr" || g.State() != InProgress {
		t.Fatalf("unexpected state: row=%d current=%q state=%v", g.Row(), g.Current(), g.State())
	}
	if diff := cmp.Diff(Score("trace", "crane"), g.Result(0)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if g.Keyboard()['c'] != Correct {
		t.Fatalf("keyboard not replayed: %v", g.Keyboard())
	}
}

func TestRestoreRejectsInvalidState(t *testing.T) {
	cases := []struct {
		name    string
		guesses []string
		current string
	}{
		{name: "solved", guesses: []string{"crane"}},
		{name: "out of rows", guesses: []string{"trace", "slate"}},
		{name: "short guess", guesses: []string{"tra"}},
		{name: "long partial", current: "cranes"},
		{name: "non-letter partial", current: "c1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Restore("crane", 2, tc.guesses, tc.current); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
