package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/question"
	"github.com/verte-zerg/wordsieve/internal/shape"
	"github.com/verte-zerg/wordsieve/internal/stats"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

var (
	filterKind      string
	filterQuery     string
	filterAt        string
	filterWindow    string
	filterMinShared int
	filterLetters   string
	filterInclude   bool
	filterPosition  int
	filterCategory  string
	filterCurved    []int
	filterStdin     bool
	filterPlain     bool

	askFrom      int
	askTo        int
	askSecondary bool
	askStdin     bool
)

func newFilterCmd() *cobra.Command {
	kinds := wordlist.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Apply one filter to a word list and print the candidates",
		Args:  cobra.NoArgs,
		RunE:  runFilterCmd,
	}
	cmd.Flags().StringVar(&filterKind, "kind", string(wordlist.KindContains), "filter kind ("+strings.Join(names, ", ")+")")
	cmd.Flags().StringVar(&filterQuery, "query", "", "query text")
	cmd.Flags().StringVar(&filterAt, "at", "", "positional letters, e.g. 1=c,3=a (blank letter: 2=)")
	cmd.Flags().StringVar(&filterWindow, "window", string(wordlist.WindowLeading), "consonant window (leading, inner)")
	cmd.Flags().IntVar(&filterMinShared, "min-shared", 1, "consonants a word must share with the query")
	cmd.Flags().StringVar(&filterLetters, "letters", "", "letters for adjacent-pair or vowel")
	cmd.Flags().BoolVar(&filterInclude, "include", true, "keep words that match (false keeps the rest)")
	cmd.Flags().IntVar(&filterPosition, "position", 1, "1-based letter position for shape")
	cmd.Flags().StringVar(&filterCategory, "category", string(shape.Straight), "shape category")
	cmd.Flags().IntSliceVar(&filterCurved, "curved", nil, "1-based positions whose letters are curved")
	cmd.Flags().BoolVar(&filterStdin, "stdin", false, "read candidates from stdin instead of the list")
	cmd.Flags().BoolVar(&filterPlain, "plain", false, "print one word per line")
	return cmd
}

func runFilterCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSessionConfig(cmd)
	if err != nil {
		return err
	}
	words, err := candidatesFrom(cmd, cfg, filterStdin)
	if err != nil {
		return err
	}
	shapes, err := shape.ByName(cfg.ShapeMap)
	if err != nil {
		return err
	}
	params, err := filterParams(shapes)
	if err != nil {
		return err
	}
	keep, err := wordlist.Build(wordlist.Kind(filterKind), params)
	if err != nil {
		return fmt.Errorf("failed to build filter: %w", err)
	}
	newLogger(cfg.LogLevel).Debug("filter built", "kind", filterKind, "candidates", len(words))
	return printCandidates(cmd.OutOrStdout(), wordlist.Apply(words, keep), filterPlain)
}

func filterParams(shapes *shape.Map) (wordlist.Params, error) {
	positions, err := parsePositionLetters(filterAt)
	if err != nil {
		return wordlist.Params{}, err
	}
	category := shape.Unknown
	if filterCategory != "" {
		if category, err = shape.ParseCategory(filterCategory); err != nil {
			return wordlist.Params{}, err
		}
	}
	return wordlist.Params{
		Query:     filterQuery,
		Positions: positions,
		Window:    wordlist.Window(filterWindow),
		MinShared: filterMinShared,
		Letters:   []rune(filterLetters),
		Include:   filterInclude,
		Position:  filterPosition - 1,
		Category:  category,
		Curved:    filterCurved,
		Shapes:    shapes,
	}, nil
}

// parsePositionLetters reads "1=c,3=a". A position with no letter is
// length-only.
func parsePositionLetters(value string) ([]wordlist.PositionLetter, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	out := make([]wordlist.PositionLetter, 0, len(parts))
	for _, part := range parts {
		pos, letter, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("invalid --at entry %q (want position=letter)", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(pos))
		if err != nil {
			return nil, fmt.Errorf("invalid --at position %q: %w", pos, err)
		}
		pl := wordlist.PositionLetter{Position: n}
		letters := []rune(strings.TrimSpace(letter))
		switch len(letters) {
		case 0:
		case 1:
			pl.Letter = letters[0]
		default:
			return nil, fmt.Errorf("invalid --at letter %q (want one letter)", letter)
		}
		out = append(out, pl)
	}
	return out, nil
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Analyze letter positions and print the next shape question",
		Args:  cobra.NoArgs,
		RunE:  runAskCmd,
	}
	cmd.Flags().IntVar(&askFrom, "from", question.PrimaryRange.Start+1, "first 1-based position to scan")
	cmd.Flags().IntVar(&askTo, "to", question.PrimaryRange.End, "last 1-based position to scan")
	cmd.Flags().BoolVar(&askSecondary, "secondary", false, "scan the secondary range (letters 4-6, bounded by the shortest word)")
	cmd.Flags().BoolVar(&askStdin, "stdin", false, "read candidates from stdin instead of the list")
	return cmd
}

func runAskCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSessionConfig(cmd)
	if err != nil {
		return err
	}
	words, err := candidatesFrom(cmd, cfg, askStdin)
	if err != nil {
		return err
	}
	shapes, err := shape.ByName(cfg.ShapeMap)
	if err != nil {
		return err
	}
	strategy, err := strategyFor(cfg.Strategy, sessionMinLetters)
	if err != nil {
		return err
	}
	r := question.Range{Start: askFrom - 1, End: askTo}
	if askSecondary {
		r = question.SecondaryRange(words)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for p := r.Start; p < r.End; p++ {
		if err := stats.RenderAnalysis(out, question.Analyze(words, shapes, p)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	q, ok, err := question.Select(words, shapes, strategy, r)
	if err != nil {
		return err
	}
	if !ok {
		_, err := fmt.Fprintf(out, "No question for letters %d-%d (%s).\n", r.Start+1, r.End, strategy.Name())
		return err
	}
	return stats.RenderQuestion(out, q)
}

func candidatesFrom(cmd *cobra.Command, cfg model.Config, stdin bool) ([]string, error) {
	if stdin {
		words, err := wordlist.ReadWords(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return words, nil
	}
	words, _, err := loadCorpus(cfg)
	return words, err
}

func printCandidates(w io.Writer, words []string, plain bool) error {
	if !plain {
		return stats.RenderCandidates(w, words, terminalWidth())
	}
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
