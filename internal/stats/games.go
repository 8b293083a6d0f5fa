package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/fivewords/internal/game"
)

const (
	minBarWidth         = 1
	terminalWidthBackup = 80
)

// TerminalWidth returns the stdout width, or a fallback when stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderGameStats prints totals, streaks and the guess distribution.
// Bars are scaled so the longest one fits in width columns.
func RenderGameStats(w io.Writer, s game.Stats, width int) error {
	if s.Played == 0 {
		_, err := fmt.Fprintln(w, "No games played yet.")
		return err
	}
	summary := []string{
		fmt.Sprintf("Played: %d", s.Played),
		fmt.Sprintf("Win %%: %d", s.WinRate()),
		fmt.Sprintf("Current streak: %d", s.CurrentStreak),
		fmt.Sprintf("Max streak: %d", s.MaxStreak),
	}
	if _, err := fmt.Fprintln(w, strings.Join(summary, "  ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Guess distribution"); err != nil {
		return err
	}
	for _, line := range DistributionBars(s.Distribution, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// DistributionBars renders one bar per guess count, labelled 1..n.
func DistributionBars(dist []int, width int) []string {
	maxValue := 1
	countWidth := 1
	for _, v := range dist {
		if v > maxValue {
			maxValue = v
		}
		if l := len(strconv.Itoa(v)); l > countWidth {
			countWidth = l
		}
	}
	labelWidth := len(strconv.Itoa(len(dist)))
	avail := width - labelWidth - countWidth - 2
	if avail < minBarWidth {
		avail = minBarWidth
	}
	lines := make([]string, 0, len(dist))
	for i, v := range dist {
		bar := v * avail / maxValue
		if bar < minBarWidth {
			bar = minBarWidth
		}
		lines = append(lines, fmt.Sprintf("%*d %s %d", labelWidth, i+1, strings.Repeat("#", bar), v))
	}
	return lines
}
