package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsieve/internal/config"
	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/stats"
	"github.com/verte-zerg/wordsieve/internal/store"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

var (
	historyList  string
	historySince string
	historyLast  int
	historySteps string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyList, "for-list", "", "list filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&historySteps, "steps", "", "show the steps of the session with this id prefix")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.HistoryConfig{
		List:  historyList,
		Since: sinceTime,
		Last:  historyLast,
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

	ctx := context.Background()
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	if historySteps == "" {
		return report.Render(out)
	}

	all, err := st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	rec, err := findSession(all, historySteps)
	if err != nil {
		return err
	}
	steps, err := st.ListSteps(ctx, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to load steps: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Session %s (%s, %d words)\n", rec.ID, rec.List, rec.CorpusSize); err != nil {
		return err
	}
	return stats.RenderSteps(out, rec.CorpusSize, steps)
}

func findSession(sessions []model.SessionRecord, prefix string) (model.SessionRecord, error) {
	var matches []model.SessionRecord
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return model.SessionRecord{}, fmt.Errorf("no session with id prefix %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return model.SessionRecord{}, fmt.Errorf("id prefix %q matches %d sessions", prefix, len(matches))
	}
}

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "List word lists in the list directory",
		Args:  cobra.NoArgs,
		RunE:  runListsCmd,
	}
}

func runListsCmd(cmd *cobra.Command, _ []string) error {
	dir := config.DefaultListDir()
	names, err := wordlist.Lists(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrf("No word lists found. Put newline-separated lists in %s\n", dir)
			return fmt.Errorf("list directory does not exist")
		}
		return fmt.Errorf("failed to read list directory: %w", err)
	}
	if len(names) == 0 {
		logErrln("No word lists found. Put newline-separated .txt files in", dir)
		return fmt.Errorf("no word lists found")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}
