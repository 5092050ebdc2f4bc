// Package main provides the CLI entrypoint for wordsieve.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordsieve/internal/config"
	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/question"
	"github.com/verte-zerg/wordsieve/internal/session"
	"github.com/verte-zerg/wordsieve/internal/shape"
	"github.com/verte-zerg/wordsieve/internal/store"
	"github.com/verte-zerg/wordsieve/internal/tui"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

const (
	defaultList       = "en"
	defaultStrategy   = question.NameMaxVariance
	defaultShapeMap   = "two"
	defaultSearchMode = string(wordlist.SearchContains)
	defaultLogLevel   = "warn"
	defaultWidth      = 80
)

var (
	sessionList       string
	sessionWordsFrom  []string
	sessionStrategy   string
	sessionMinLetters int
	sessionShapeMap   string
	sessionSearchMode string
	sessionPositions  []int
	sessionDisabled   []string
	sessionLogLevel   string
	sessionVerbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordsieve",
		Short:         "Narrow a word list down by answering questions",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sessionList, "list", defaultList, "word list name in the list directory")
	flags.StringSliceVar(&sessionWordsFrom, "words-from", nil, "word list files tried in order (overrides --list)")
	flags.StringVar(&sessionStrategy, "strategy", defaultStrategy, "shape question strategy ("+strings.Join(question.StrategyNames(), ", ")+")")
	flags.IntVar(&sessionMinLetters, "min-letters", question.DefaultMinLetters, "distinct letters a position needs before variance strategies ask about it")
	flags.StringVar(&sessionShapeMap, "shape-map", defaultShapeMap, "shape map (two, three)")
	flags.StringVar(&sessionSearchMode, "search-mode", defaultSearchMode, "search mode (contains, prefix-overlap)")
	flags.IntSliceVar(&sessionPositions, "positions", []int{1, 2, 3}, "1-based positions asked by the positional feature")
	flags.StringSliceVar(&sessionDisabled, "disable", nil, "features to skip ("+featureNames()+")")
	flags.StringVar(&sessionLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.BoolVarP(&sessionVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSessionConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	words, listPath, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cfg, logger)
	if err != nil {
		return err
	}
	sess, err := session.New(words, opts)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ui, err := tui.NewModel(cfg, st, sess, listPath, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadSessionConfig merges the config file into flags that were not set
// explicitly and validates the result.
func loadSessionConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	sc := fileCfg.Session
	applyStringConfig(cmd, "list", &sessionList, sc.List)
	applyStringSliceConfig(cmd, "words-from", &sessionWordsFrom, sc.Lists)
	applyStringConfig(cmd, "strategy", &sessionStrategy, sc.Strategy)
	applyIntConfig(cmd, "min-letters", &sessionMinLetters, sc.MinLetters)
	applyStringConfig(cmd, "shape-map", &sessionShapeMap, sc.ShapeMap)
	applyStringConfig(cmd, "search-mode", &sessionSearchMode, sc.SearchMode)
	applyIntSliceConfig(cmd, "positions", &sessionPositions, sc.Positions)
	applyStringSliceConfig(cmd, "disable", &sessionDisabled, sc.Disabled)
	applyStringConfig(cmd, "log-level", &sessionLogLevel, sc.LogLevel)

	cfg := model.Config{
		List:       sessionList,
		ListPaths:  resolveListPaths(sessionList, sessionWordsFrom),
		Strategy:   sessionStrategy,
		ShapeMap:   sessionShapeMap,
		SearchMode: sessionSearchMode,
		Positions:  append([]int(nil), sessionPositions...),
		Disabled:   append([]string(nil), sessionDisabled...),
		LogLevel:   sessionLogLevel,
	}
	if sessionVerbose {
		cfg.LogLevel = "debug"
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if sessionMinLetters < 0 {
		return fmt.Errorf("--min-letters must be >= 0")
	}
	if len(cfg.Positions) > wordlist.MaxPositions {
		return fmt.Errorf("--positions accepts at most %d positions", wordlist.MaxPositions)
	}
	for _, p := range cfg.Positions {
		if p < 1 {
			return fmt.Errorf("--positions must be >= 1, got %d", p)
		}
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	return nil
}

func resolveListPaths(list string, explicit []string) []string {
	if len(explicit) > 0 {
		return append([]string(nil), explicit...)
	}
	return append([]string{config.DefaultListPath(list)}, config.FallbackListPaths()...)
}

func loadCorpus(cfg model.Config) ([]string, string, error) {
	words, path, err := wordlist.LoadFirst(cfg.ListPaths...)
	if err != nil {
		return nil, "", wordListLoadError(cfg.List, err)
	}
	return words, path, nil
}

// sessionOptions resolves the named settings of cfg into session options.
func sessionOptions(cfg model.Config, logger *slog.Logger) (session.Options, error) {
	shapes, err := shape.ByName(cfg.ShapeMap)
	if err != nil {
		return session.Options{}, err
	}
	strategy, err := strategyFor(cfg.Strategy, sessionMinLetters)
	if err != nil {
		return session.Options{}, err
	}
	disabled := make([]session.Feature, 0, len(cfg.Disabled))
	for _, name := range cfg.Disabled {
		f, err := session.ParseFeature(name)
		if err != nil {
			return session.Options{}, err
		}
		disabled = append(disabled, f)
	}
	return session.Options{
		Disabled:   disabled,
		SearchMode: wordlist.SearchMode(cfg.SearchMode),
		Positions:  cfg.Positions,
		Shapes:     shapes,
		Strategy:   strategy,
		Logger:     logger,
	}, nil
}

func strategyFor(name string, minLetters int) (question.Strategy, error) {
	s, err := question.StrategyByName(name)
	if err != nil {
		return nil, err
	}
	switch v := s.(type) {
	case question.MaxVariance:
		v.MinLetters = minLetters
		return v, nil
	case question.FilteringPotential:
		v.MinLetters = minLetters
		return v, nil
	default:
		return s, nil
	}
}

func featureNames() string {
	features := session.Features()
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func newLogger(level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn, err
	}
	return lvl, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target, value *[]int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), (*value)...)
}

func wordListLoadError(list string, err error) error {
	lines := []string{
		err.Error(),
		fmt.Sprintf("list %q not found in %s", list, config.DefaultListDir()),
		"Run: wordsieve lists",
		"Or pass files with: wordsieve --words-from <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
