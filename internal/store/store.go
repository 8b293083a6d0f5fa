// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/fivewords/internal/game"
	"github.com/verte-zerg/fivewords/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for build history and finished games.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			run_id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			size INTEGER NOT NULL,
			length INTEGER NOT NULL,
			source TEXT NOT NULL,
			output_path TEXT NOT NULL,
			word_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			solution TEXT NOT NULL,
			guesses TEXT NOT NULL,
			rows_used INTEGER NOT NULL,
			won INTEGER NOT NULL,
			words_path TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS saved_game (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			started_at TEXT NOT NULL,
			solution TEXT NOT NULL,
			guesses TEXT NOT NULL,
			current TEXT NOT NULL,
			max_guesses INTEGER NOT NULL,
			words_path TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertBuild records a finished build.
func (s *Store) InsertBuild(ctx context.Context, summary model.Summary) error {
	ended := summary.StartedAt.Add(summary.Duration)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (run_id, started_at, ended_at, lang, size, length, source, output_path, word_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.Format(time.RFC3339Nano),
		ended.Format(time.RFC3339Nano),
		summary.Lang,
		summary.Size,
		summary.Length,
		summary.Source,
		summary.OutputPath,
		summary.Count,
	)
	return err
}

// ListBuilds returns the most recent builds, newest first. limit <= 0 returns all.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]model.BuildRecord, error) {
	query := `SELECT run_id, started_at, ended_at, lang, size, length, source, output_path, word_count
		FROM builds
		ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var builds []model.BuildRecord
	for rows.Next() {
		var rec model.BuildRecord
		var startedAt, endedAt string
		if err := rows.Scan(&rec.RunID, &startedAt, &endedAt, &rec.Lang, &rec.Size, &rec.Length, &rec.Source, &rec.OutputPath, &rec.Count); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		builds = append(builds, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return builds, nil
}

// InsertGame records a finished game.
func (s *Store) InsertGame(ctx context.Context, rec model.GameRecord) (int64, error) {
	won := 0
	if rec.Won {
		won = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, solution, guesses, rows_used, won, words_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Solution,
		strings.Join(rec.Guesses, ","),
		len(rec.Guesses),
		won,
		rec.WordsPath,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GameStats replays finished games in the order they ended.
func (s *Store) GameStats(ctx context.Context, maxGuesses int) (game.Stats, error) {
	stats := game.NewStats(maxGuesses)
	rows, err := s.db.QueryContext(ctx, `SELECT won, rows_used FROM games ORDER BY ended_at ASC, id ASC`)
	if err != nil {
		return stats, err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var won, used int
		if err := rows.Scan(&won, &used); err != nil {
			return stats, err
		}
		stats.Record(won == 1, used)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// SaveGame stores the unfinished game, replacing any previous one.
func (s *Store) SaveGame(ctx context.Context, rec model.SavedGame) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO saved_game (id, started_at, solution, guesses, current, max_guesses, words_path)
		 VALUES (1, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.Solution,
		strings.Join(rec.Guesses, ","),
		rec.Current,
		rec.MaxGuesses,
		rec.WordsPath,
	)
	return err
}

// LoadSavedGame returns the unfinished game, if any.
func (s *Store) LoadSavedGame(ctx context.Context) (model.SavedGame, bool, error) {
	var rec model.SavedGame
	var startedAt, guesses string
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at, solution, guesses, current, max_guesses, words_path FROM saved_game WHERE id = 1`,
	).Scan(&startedAt, &rec.Solution, &guesses, &rec.Current, &rec.MaxGuesses, &rec.WordsPath)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedGame{}, false, nil
	}
	if err != nil {
		return model.SavedGame{}, false, err
	}
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.SavedGame{}, false, err
	}
	if guesses != "" {
		rec.Guesses = strings.Split(guesses, ",")
	}
	return rec, true, nil
}

// ClearSavedGame removes the unfinished game.
func (s *Store) ClearSavedGame(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_game`)
	return err
}
