// Package main provides the CLI entrypoint for fivewords.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/fivewords/internal/builder"
	"github.com/verte-zerg/fivewords/internal/config"
	"github.com/verte-zerg/fivewords/internal/game"
	"github.com/verte-zerg/fivewords/internal/logging"
	"github.com/verte-zerg/fivewords/internal/model"
	"github.com/verte-zerg/fivewords/internal/stats"
	"github.com/verte-zerg/fivewords/internal/store"
	"github.com/verte-zerg/fivewords/internal/tui"
	"github.com/verte-zerg/fivewords/internal/wordfreq"
	"github.com/verte-zerg/fivewords/internal/wordlist"
)

const (
	sourceWordfreq = "wordfreq"
	sourceFile     = "file"

	defaultHistoryLast = 20
)

var (
	verbose bool
	logger  = zap.NewNop()

	buildLang        string
	buildSize        int
	buildLength      int
	buildOutput      string
	buildSource      string
	buildCorpus      string
	buildAsciiOnly   bool
	buildAttribution bool

	playWords      string
	playLength     int
	playMaxGuesses int

	historyLast int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fivewords",
		Short: "Build a five-letter word list from word frequencies",
		Long: `fivewords extracts fixed-length alphabetic words from a ranked
word-frequency list, keeps them in frequency order without duplicates and
writes them to a JSON array.

Run without a subcommand to build allowed-guesses.json.`,
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
		RunE: runBuildCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	addBuildFlags(rootCmd)

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the word list (same as running without a subcommand)",
		Args:  cobra.NoArgs,
		RunE:  runBuildCmd,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&buildLang, "lang", builder.DefaultLang, "language code")
	cmd.Flags().IntVar(&buildSize, "size", builder.DefaultSize, "number of top-ranked words to read")
	cmd.Flags().IntVar(&buildLength, "length", builder.DefaultLength, "word length to keep")
	cmd.Flags().StringVarP(&buildOutput, "output", "o", builder.DefaultOutput, "output JSON path")
	cmd.Flags().StringVar(&buildSource, "source", sourceWordfreq, "corpus source: wordfreq or file")
	cmd.Flags().StringVar(&buildCorpus, "corpus", "", "ranked corpus file, one word per line (with --source file)")
	cmd.Flags().BoolVar(&buildAsciiOnly, "ascii-only", false, "drop words outside the language's basic alphabet")
	cmd.Flags().BoolVar(&buildAttribution, "attribution", false, "write wordfreq attribution files next to the output")
}

func initLogger(*cobra.Command, []string) error {
	l, err := logging.New(verbose)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "lang", &buildLang, fileCfg.Build.Lang)
	applyConfig(cmd, "size", &buildSize, fileCfg.Build.Size)
	applyConfig(cmd, "length", &buildLength, fileCfg.Build.Length)
	applyConfig(cmd, "output", &buildOutput, fileCfg.Build.Output)
	applyConfig(cmd, "source", &buildSource, fileCfg.Build.Source)
	applyConfig(cmd, "corpus", &buildCorpus, fileCfg.Build.Corpus)
	applyConfig(cmd, "ascii-only", &buildAsciiOnly, fileCfg.Build.AsciiOnly)
	applyConfig(cmd, "attribution", &buildAttribution, fileCfg.Build.Attribution)

	cfg := model.BuildConfig{
		Lang:       strings.ToLower(strings.TrimSpace(buildLang)),
		Size:       buildSize,
		Length:     buildLength,
		OutputPath: buildOutput,
		Source:     buildSource,
		AsciiOnly:  buildAsciiOnly,
	}

	provider, err := newProvider(cfg.Source, buildCorpus)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	summary, err := builder.New(provider, cmd.OutOrStdout(), logger).Run(ctx, cfg)
	if err != nil {
		return err
	}

	if buildAttribution {
		if err := writeAttribution(ctx, provider, filepath.Dir(cfg.OutputPath)); err != nil {
			return err
		}
	}

	recordBuild(ctx, summary)
	return nil
}

func newProvider(source, corpusPath string) (builder.CorpusProvider, error) {
	switch source {
	case sourceWordfreq:
		return &wordfreq.Provider{
			CacheDir: config.DefaultWordfreqCacheDir(),
			ListType: "best",
			Logger:   logger,
		}, nil
	case sourceFile:
		if corpusPath == "" {
			return nil, fmt.Errorf("--corpus is required with --source file")
		}
		return wordlist.FileProvider{Path: corpusPath}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want %s or %s)", source, sourceWordfreq, sourceFile)
	}
}

func writeAttribution(ctx context.Context, provider builder.CorpusProvider, dir string) error {
	wp, ok := provider.(*wordfreq.Provider)
	if !ok {
		logger.Warn("attribution is only written for the wordfreq source")
		return nil
	}
	wheel, err := wp.Wheel(ctx)
	if err != nil {
		return err
	}
	if err := wordfreq.WriteAttribution(wheel.Path, dir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logger.Info("wrote attribution files", zap.String("dir", dir))
	return nil
}

func recordBuild(ctx context.Context, summary model.Summary) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history db", zap.Error(err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close history db", zap.Error(cerr))
		}
	}()
	if err := st.InsertBuild(ctx, summary); err != nil {
		logger.Warn("failed to record build", zap.Error(err))
	}
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List languages available in the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	provider := &wordfreq.Provider{CacheDir: config.DefaultWordfreqCacheDir(), Logger: logger}
	wheel, err := provider.Wheel(cmd.Context())
	if err != nil {
		return err
	}
	types, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	for _, lang := range wordfreq.LanguagesFromTypes(types) {
		listTypes := make([]string, 0, len(types[lang]))
		for t := range types[lang] {
			listTypes = append(listTypes, t)
		}
		sort.Strings(listTypes)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", lang, strings.Join(listTypes, ", ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent word list builds",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "number of builds to show (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()
	builds, err := st.ListBuilds(cmd.Context(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list builds: %w", err)
	}
	return stats.RenderBuilds(cmd.OutOrStdout(), builds)
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a guessing game with a generated word list",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	cmd.Flags().StringVar(&playWords, "words", builder.DefaultOutput, "generated JSON word list")
	cmd.Flags().IntVar(&playLength, "length", builder.DefaultLength, "word length")
	cmd.Flags().IntVar(&playMaxGuesses, "max-guesses", game.DefaultMaxGuesses, "number of guesses per game")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPlayConfig(cmd)
	if err != nil {
		return err
	}
	words, err := wordlist.LoadJSON(cfg.WordsPath, cfg.Length)
	if err != nil {
		return fmt.Errorf("%w\nGenerate one with: fivewords --length %d --output %s", err, cfg.Length, cfg.WordsPath)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", zap.Error(cerr))
		}
	}()

	m, err := tui.NewModel(cfg, st, game.NewPicker(), words, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}

func loadPlayConfig(cmd *cobra.Command) (model.PlayConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.PlayConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "words", &playWords, fileCfg.Play.Words)
	applyConfig(cmd, "length", &playLength, fileCfg.Play.Length)
	applyConfig(cmd, "max-guesses", &playMaxGuesses, fileCfg.Play.MaxGuesses)
	if playLength <= 0 {
		return model.PlayConfig{}, fmt.Errorf("--length must be > 0")
	}
	if playMaxGuesses <= 0 {
		return model.PlayConfig{}, fmt.Errorf("--max-guesses must be > 0")
	}
	return model.PlayConfig{
		WordsPath:  playWords,
		Length:     playLength,
		MaxGuesses: playMaxGuesses,
	}, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&playMaxGuesses, "max-guesses", game.DefaultMaxGuesses, "number of guesses per game")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "max-guesses", &playMaxGuesses, fileCfg.Play.MaxGuesses)
	if playMaxGuesses <= 0 {
		return fmt.Errorf("--max-guesses must be > 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()
	s, err := st.GameStats(cmd.Context(), playMaxGuesses)
	if err != nil {
		return fmt.Errorf("failed to load game stats: %w", err)
	}
	return stats.RenderGameStats(cmd.OutOrStdout(), s, stats.TerminalWidth())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyConfig copies a file value into target unless the flag was set explicitly.
func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fivewords configuration
# Uncomment a value to enable it. CLI flags override config values.

[build]
# lang = %q              # Language code
# size = %d             # Number of top-ranked words to read
# length = %d               # Word length to keep
# output = %q  # Output JSON path
# source = %q        # wordfreq or file
# corpus = ""              # Ranked corpus file for source = "file"
# ascii-only = false       # Drop words outside the basic alphabet
# attribution = false      # Write wordfreq attribution files

[play]
# words = %q   # Generated word list
# length = %d               # Word length
# max-guesses = %d          # Guesses per game
`,
		builder.DefaultLang,
		builder.DefaultSize,
		builder.DefaultLength,
		builder.DefaultOutput,
		sourceWordfreq,
		builder.DefaultOutput,
		builder.DefaultLength,
		game.DefaultMaxGuesses,
	)
}
