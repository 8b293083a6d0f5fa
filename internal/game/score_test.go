package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScore(t *testing.T) {
	cases := []struct {
		guess  string
		answer string
		want   []Status
	}{
		{guess: "crane", answer: "crane", want: []Status{Correct, Correct, Correct, Correct, Correct}},
		{guess: "trace", answer: "crane", want: []Status{Absent, Correct, Correct, Present, Correct}},
		{guess: "speed", answer: "abide", want: []Status{Absent, Absent, Present, Absent, Present}},
		{guess: "allee", answer: "eagle", want: []Status{Present, Present, Absent, Present, Correct}},
		{guess: "geese", answer: "those", want: []Status{Absent, Absent, Absent, Correct, Correct}},
		{guess: "mamma", answer: "madam", want: []Status{Correct, Correct, Present, Absent, Present}},
	}
	for _, tc := range cases {
		t.Run(tc.guess+"/"+tc.answer, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Score(tc.guess, tc.answer)); diff != "" {
				t.Fatalf("unexpected score (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSolved(t *testing.T) {
	if Solved(nil) {
		t.Fatalf("empty result must not be solved")
	}
	if !Solved(Score("apple", "apple")) {
		t.Fatalf("expected solved")
	}
	if Solved(Score("apply", "apple")) {
		t.Fatalf("expected unsolved")
	}
}

func TestKeyboardKeepsBestStatus(t *testing.T) {
	k := Keyboard{}
	k.Apply("trace", []Status{Absent, Present, Absent, Absent, Correct})
	k.Apply("retro", []Status{Correct, Absent, Absent, Absent, Absent})
	if k['r'] != Correct {
		t.Fatalf("expected r to be correct, got %v", k['r'])
	}
	if k['e'] != Correct {
		t.Fatalf("expected e to stay correct, got %v", k['e'])
	}
	if k['t'] != Absent {
		t.Fatalf("expected t absent, got %v", k['t'])
	}
	if k['z'] != Unknown {
		t.Fatalf("expected z unknown")
	}
}
