package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsieve/internal/oracle"
	"github.com/verte-zerg/wordsieve/internal/session"
	"github.com/verte-zerg/wordsieve/internal/stats"
)

var (
	simulateSecret string
	simulateSeed   int64
	simulateBlank  float64
	simulateRuns   int
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play sessions against a hidden word and print the transcript",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simulateSecret, "secret", "", "hidden word (default: random from the list)")
	cmd.Flags().Int64Var(&simulateSeed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().Float64Var(&simulateBlank, "blank", 0, "probability of leaving a positional letter blank (0-1)")
	cmd.Flags().IntVar(&simulateRuns, "runs", 1, "number of sessions to play")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	if simulateRuns <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}
	if simulateBlank < 0 || simulateBlank > 1 {
		return fmt.Errorf("--blank must be between 0 and 1")
	}
	cfg, err := loadSessionConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	words, _, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	if simulateSecret != "" && !slices.Contains(words, simulateSecret) {
		logErrf("%q is not in the list; the session cannot find it\n", simulateSecret)
	}
	opts, err := sessionOptions(cfg, logger)
	if err != nil {
		return err
	}
	sess, err := session.New(words, opts)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	o := oracle.New()
	if cmd.Flags().Changed("seed") {
		o = oracle.NewSeeded(simulateSeed)
	}
	o.SetBlankPct(simulateBlank)

	out := cmd.OutOrStdout()
	var results []simulation
	for i := 0; i < simulateRuns; i++ {
		if simulateSecret != "" {
			o.SetSecret(simulateSecret)
		} else {
			o.Pick(words)
		}
		played, err := o.Play(sess.Reset())
		if err != nil {
			return fmt.Errorf("failed to play session: %w", err)
		}
		res := simulation{secret: o.Secret(), session: played}
		results = append(results, res)
		if simulateRuns == 1 {
			return renderSimulation(out, res, terminalWidth())
		}
	}
	return renderSimulationSummary(out, results)
}

type simulation struct {
	secret  string
	session session.Session
}

func (s simulation) found() bool {
	c := s.session.Candidates()
	return len(c) == 1 && c[0] == s.secret
}

func renderSimulation(w io.Writer, res simulation, width int) error {
	if _, err := fmt.Fprintf(w, "Secret: %s\n\n", strings.ToUpper(res.secret)); err != nil {
		return err
	}
	_, steps := stats.SessionRecords(res.session, "", "", time.Now())
	if err := stats.RenderSteps(w, len(res.session.Corpus()), steps); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return stats.RenderCandidates(w, res.session.Candidates(), width)
}

func renderSimulationSummary(w io.Writer, results []simulation) error {
	var found, steps, remaining int
	for _, res := range results {
		if res.found() {
			found++
		}
		steps += len(res.session.Steps())
		remaining += len(res.session.Candidates())
	}
	n := float64(len(results))
	lines := []string{
		fmt.Sprintf("Runs: %d", len(results)),
		fmt.Sprintf("Found: %d (%.1f%%)", found, float64(found)/n*100),
		fmt.Sprintf("Avg steps: %.2f", float64(steps)/n),
		fmt.Sprintf("Avg candidates left: %.2f", float64(remaining)/n),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
