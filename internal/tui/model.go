// Package tui provides the Bubble Tea word guessing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/fivewords/internal/game"
	"github.com/verte-zerg/fivewords/internal/model"
)

// GameStore persists finished games and the game in progress.
type GameStore interface {
	InsertGame(ctx context.Context, rec model.GameRecord) (int64, error)
	GameStats(ctx context.Context, maxGuesses int) (game.Stats, error)
	SaveGame(ctx context.Context, rec model.SavedGame) error
	LoadSavedGame(ctx context.Context) (model.SavedGame, bool, error)
	ClearSavedGame(ctx context.Context) error
}

// Model implements the Bubble Tea game UI.
type Model struct {
	config model.PlayConfig
	store  GameStore
	picker *game.Picker
	logger *zap.Logger

	words []string
	valid map[string]struct{}

	game      *game.Game
	startedAt time.Time
	stats     game.Stats

	message string
	isError bool

	keys keyMap
	help help.Model

	width  int
	height int
}

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

var (
	tileBase     = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	emptyStyle   = tileBase.Foreground(lipgloss.Color("#4A4A4A"))
	filledStyle  = tileBase.Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle = tileBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#538D4E"))
	presentStyle = tileBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B59F3B"))
	absentStyle  = tileBase.Foreground(lipgloss.Color("#B0B0B0")).Background(lipgloss.Color("#3A3A3C"))
	unknownKey   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#D0D0D0"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a game model over words. store may be nil.
func NewModel(cfg model.PlayConfig, store GameStore, picker *game.Picker, words []string, logger *zap.Logger) (*Model, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no solutions loaded")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		config: cfg,
		store:  store,
		picker: picker,
		logger: logger,
		words:  words,
		valid:  make(map[string]struct{}, len(words)),
		stats:  game.NewStats(cfg.MaxGuesses),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, w := range words {
		m.valid[w] = struct{}{}
	}
	m.loadStats()
	if m.resumeGame() {
		return m, nil
	}
	if err := m.newGame(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submit()
		case key.Matches(msg, m.keys.Delete):
			if m.game.DeleteLetter() {
				m.clearMessage()
				m.saveProgress()
			}
		case key.Matches(msg, m.keys.NewGame):
			if err := m.newGame(); err != nil {
				m.setError(err.Error())
			}
		case msg.Type == tea.KeyRunes:
			changed := false
			for _, r := range msg.Runes {
				if m.game.AddLetter(r) {
					changed = true
				}
			}
			if changed {
				m.clearMessage()
				m.saveProgress()
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) submit() {
	_, err := m.game.Submit(m.isValid)
	switch {
	case errors.Is(err, game.ErrNotEnoughLetters):
		m.setError("Not enough letters")
		return
	case errors.Is(err, game.ErrNotInWordList):
		m.setError("Not in word list")
		return
	case errors.Is(err, game.ErrGameOver):
		return
	case err != nil:
		m.setError(err.Error())
		return
	}

	switch m.game.State() {
	case game.InProgress:
		m.saveProgress()
	case game.Won:
		m.finishGame(true)
		m.setMessage("You got it! 🎉")
	case game.Lost:
		m.finishGame(false)
		m.setMessage(fmt.Sprintf("Out of tries! The word was %s", strings.ToUpper(m.game.Solution())))
	}
}

func (m *Model) isValid(word string) bool {
	_, ok := m.valid[word]
	return ok
}

func (m *Model) newGame() error {
	solution, err := m.picker.Pick(m.words)
	if err != nil {
		return err
	}
	m.game = game.New(solution, m.config.MaxGuesses)
	m.startedAt = time.Now()
	m.clearMessage()
	m.saveProgress()
	m.logger.Debug("new game", zap.Int("length", m.game.Length()))
	return nil
}

// resumeGame restores the saved game when it fits the current word list and board.
func (m *Model) resumeGame() bool {
	if m.store == nil {
		return false
	}
	saved, ok, err := m.store.LoadSavedGame(context.Background())
	if err != nil {
		m.logger.Warn("failed to load saved game", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if saved.WordsPath != m.config.WordsPath || saved.MaxGuesses != m.config.MaxGuesses ||
		utf8.RuneCountInString(saved.Solution) != m.config.Length {
		m.logger.Debug("discarding saved game from another word list")
		return false
	}
	g, err := game.Restore(saved.Solution, saved.MaxGuesses, saved.Guesses, saved.Current)
	if err != nil {
		m.logger.Warn("failed to restore saved game", zap.Error(err))
		return false
	}
	m.game = g
	m.startedAt = saved.StartedAt
	return true
}

func (m *Model) saveProgress() {
	if m.store == nil || m.game.State() != game.InProgress {
		return
	}
	rec := model.SavedGame{
		StartedAt:  m.startedAt,
		Solution:   m.game.Solution(),
		Guesses:    m.game.Guesses(),
		Current:    m.game.Current(),
		MaxGuesses: m.game.MaxGuesses(),
		WordsPath:  m.config.WordsPath,
	}
	if err := m.store.SaveGame(context.Background(), rec); err != nil {
		m.logger.Warn("failed to save game", zap.Error(err))
	}
}

func (m *Model) finishGame(won bool) {
	guesses := m.game.Guesses()
	m.stats.Record(won, len(guesses))
	if m.store == nil {
		return
	}
	if err := m.store.ClearSavedGame(context.Background()); err != nil {
		m.logger.Warn("failed to clear saved game", zap.Error(err))
	}
	rec := model.GameRecord{
		StartedAt: m.startedAt,
		EndedAt:   time.Now(),
		Solution:  m.game.Solution(),
		Guesses:   guesses,
		Won:       won,
		WordsPath: m.config.WordsPath,
	}
	if _, err := m.store.InsertGame(context.Background(), rec); err != nil {
		m.logger.Warn("failed to save game", zap.Error(err))
	}
}

func (m *Model) loadStats() {
	if m.store == nil {
		return
	}
	stats, err := m.store.GameStats(context.Background(), m.config.MaxGuesses)
	if err != nil {
		m.logger.Warn("failed to load game stats", zap.Error(err))
		return
	}
	m.stats = stats
}

func (m *Model) setMessage(text string) {
	m.message = text
	m.isError = false
}

func (m *Model) setError(text string) {
	m.message = text
	m.isError = true
}

func (m *Model) clearMessage() {
	m.setMessage("")
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.renderBoard(),
		"",
		m.renderKeyboard(),
		"",
		m.renderMessage(),
		m.renderFooter(),
		m.help.View(m.keys),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderBoard() string {
	rows := make([]string, 0, m.game.MaxGuesses())
	guesses := m.game.Guesses()
	for row := 0; row < m.game.MaxGuesses(); row++ {
		var tiles []string
		switch {
		case row < len(guesses):
			result := m.game.Result(row)
			for i, r := range []rune(guesses[row]) {
				tiles = append(tiles, statusStyle(result[i]).Render(strings.ToUpper(string(r))))
			}
		case row == m.game.Row() && m.game.State() == game.InProgress:
			current := []rune(m.game.Current())
			for i := 0; i < m.game.Length(); i++ {
				if i < len(current) {
					tiles = append(tiles, filledStyle.Render(strings.ToUpper(string(current[i]))))
				} else {
					tiles = append(tiles, emptyStyle.Render("_"))
				}
			}
		default:
			for i := 0; i < m.game.Length(); i++ {
				tiles = append(tiles, emptyStyle.Render("_"))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) renderKeyboard() string {
	kb := m.game.Keyboard()
	rows := make([]string, 0, len(keyboardRows))
	for _, letters := range keyboardRows {
		keys := make([]string, 0, len(letters))
		for _, r := range letters {
			style := unknownKey
			if status := kb[r]; status != game.Unknown {
				style = statusStyle(status)
			}
			keys = append(keys, style.Render(strings.ToUpper(string(r))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) renderMessage() string {
	if m.message == "" {
		return " "
	}
	if m.isError {
		return errorStyle.Render(m.message)
	}
	return messageStyle.Render(m.message)
}

func (m *Model) renderFooter() string {
	s := m.stats
	segments := []string{
		fmt.Sprintf("Played %d", s.Played),
		fmt.Sprintf("Win %d%%", s.WinRate()),
		fmt.Sprintf("Streak %d", s.CurrentStreak),
		fmt.Sprintf("Best %d", s.MaxStreak),
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}

func statusStyle(s game.Status) lipgloss.Style {
	switch s {
	case game.Correct:
		return correctStyle
	case game.Present:
		return presentStyle
	case game.Absent:
		return absentStyle
	default:
		return filledStyle
	}
}
