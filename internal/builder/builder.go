// Package builder turns a ranked word corpus into a deduplicated list of
// fixed-length alphabetic words and writes it as JSON.
package builder

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/fivewords/internal/model"
)

// Defaults for a build.
const (
	DefaultLang   = "en"
	DefaultSize   = 50000
	DefaultLength = 5
	DefaultOutput = "allowed-guesses.json"
)

// CorpusProvider returns the top size words for a language, most frequent first.
type CorpusProvider interface {
	Corpus(ctx context.Context, lang string, size int) ([]string, error)
}

// Builder runs word list builds against a corpus provider.
type Builder struct {
	provider CorpusProvider
	out      io.Writer
	logger   *zap.Logger
	now      func() time.Time
}

// New returns a Builder that reports counts to out.
func New(provider CorpusProvider, out io.Writer, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{provider: provider, out: out, logger: logger, now: time.Now}
}

// Run fetches the corpus, filters and deduplicates it, reports the count and
// writes the JSON output. Nothing is written when fetching fails.
func (b *Builder) Run(ctx context.Context, cfg model.BuildConfig) (model.Summary, error) {
	if cfg.Length <= 0 {
		return model.Summary{}, fmt.Errorf("word length must be greater than 0")
	}
	if cfg.OutputPath == "" {
		return model.Summary{}, fmt.Errorf("output path is required")
	}
	started := b.now()

	corpus, err := b.fetch(ctx, cfg)
	if err != nil {
		return model.Summary{}, err
	}
	b.logger.Debug("corpus fetched", zap.Int("words", len(corpus)))

	candidates := FilterCandidates(corpus, cfg.Length)
	if cfg.AsciiOnly {
		candidates = keep(candidates, alphabetFilter(cfg.Lang))
	}
	words := DeduplicatePreserveOrder(candidates)
	b.logger.Debug("filtered corpus",
		zap.Int("candidates", len(candidates)),
		zap.Int("unique", len(words)))

	if err := Report(b.out, cfg.Length, len(words)); err != nil {
		return model.Summary{}, fmt.Errorf("failed to write report: %w", err)
	}
	if err := WriteJSON(cfg.OutputPath, words); err != nil {
		return model.Summary{}, err
	}
	b.logger.Info("wrote word list", zap.String("path", cfg.OutputPath), zap.Int("words", len(words)))

	return model.Summary{
		RunID:      uuid.NewString(),
		Lang:       cfg.Lang,
		Size:       cfg.Size,
		Length:     cfg.Length,
		Source:     cfg.Source,
		OutputPath: cfg.OutputPath,
		Count:      len(words),
		StartedAt:  started,
		Duration:   b.now().Sub(started),
	}, nil
}

func (b *Builder) fetch(ctx context.Context, cfg model.BuildConfig) ([]string, error) {
	if cfg.Lang == "" {
		return nil, &DataSourceError{Lang: cfg.Lang, Size: cfg.Size, Err: fmt.Errorf("language code is required")}
	}
	if cfg.Size <= 0 {
		return nil, &DataSourceError{Lang: cfg.Lang, Size: cfg.Size, Err: fmt.Errorf("size must be greater than 0")}
	}
	if b.provider == nil {
		return nil, &DataSourceError{Lang: cfg.Lang, Size: cfg.Size, Err: fmt.Errorf("no corpus provider configured")}
	}
	corpus, err := b.provider.Corpus(ctx, cfg.Lang, cfg.Size)
	if err != nil {
		return nil, &DataSourceError{Lang: cfg.Lang, Size: cfg.Size, Err: err}
	}
	return corpus, nil
}

func keep(words []string, filter func(string) bool) []string {
	out := words[:0]
	for _, w := range words {
		if filter(w) {
			out = append(out, w)
		}
	}
	return out
}
