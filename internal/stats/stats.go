package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/question"
)

const sparkChars = " .:-=+*#%@"

// KeptFraction returns the share of candidates that survived a step.
func KeptFraction(before, remaining int64) float64 {
	if before <= 0 {
		return 0
	}
	return float64(remaining) / float64(before)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderAnalysis prints the per-category table for one position.
func RenderAnalysis(w io.Writer, a question.Analysis) error {
	if _, err := fmt.Fprintf(w, "Letter %d\n", a.Position+1); err != nil {
		return err
	}
	headers := []string{"Category", "Letters", "Distinct", "Occurrences", "Share"}
	fractions := a.Fractions()
	rows := make([][]string, 0, len(a.Categories))
	for i, c := range a.Categories {
		rows = append(rows, []string{
			c.Category.String(),
			spaced(c.Letters),
			fmt.Sprintf("%d", c.Distinct()),
			fmt.Sprintf("%d", c.Occurrences),
			fmt.Sprintf("%.0f%%", fractions[i]*100),
		})
	}
	rows = append(rows, []string{"total", "", fmt.Sprintf("%d", a.Total), fmt.Sprintf("%d", a.Occurrences), ""})
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderQuestion prints a shape question with numbered options.
func RenderQuestion(w io.Writer, q question.Question) error {
	if _, err := fmt.Fprintf(w, "What shape is letter %d? (%s, score %.4f)\n", q.Position+1, q.Strategy, q.Score); err != nil {
		return err
	}
	for i, o := range q.Options {
		if _, err := fmt.Fprintf(w, "  %d) %s: %s\n", i+1, o.Label, spaced(o.Letters)); err != nil {
			return err
		}
	}
	return nil
}

// RenderSteps prints the answers of one session and how each narrowed the
// candidates.
func RenderSteps(w io.Writer, corpusSize int, steps []model.StepRecord) error {
	if len(steps) == 0 {
		_, err := fmt.Fprintln(w, "No steps.")
		return err
	}
	headers := []string{"#", "Feature", "Answer", "Before", "After", "Kept"}
	rows := make([][]string, 0, len(steps))
	curve := make([]float64, 0, len(steps)+1)
	curve = append(curve, float64(corpusSize))
	for _, st := range steps {
		rows = append(rows, []string{
			fmt.Sprintf("%d", st.Index+1),
			st.Feature,
			st.Answer,
			fmt.Sprintf("%d", st.Before),
			fmt.Sprintf("%d", st.Remaining),
			fmt.Sprintf("%.1f%%", KeptFraction(int64(st.Before), int64(st.Remaining))*100),
		})
		curve = append(curve, float64(st.Remaining))
	}
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 3: true, 4: true, 5: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Narrowing: [%s]\n", Sparkline(curve))
	return err
}

// RenderHistory prints one row per finished session.
func RenderHistory(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	headers := []string{"Ended", "ID", "List", "Strategy", "Map", "Words", "Left", "Result"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			shortID(s.ID),
			s.List,
			s.Strategy,
			s.ShapeMap,
			fmt.Sprintf("%d", s.CorpusSize),
			fmt.Sprintf("%d", s.Remaining),
			resultLabel(s),
		})
	}
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{5: true, 6: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderFeatureTable prints how much each feature narrowed candidates on
// average, most effective first.
func RenderFeatureTable(w io.Writer, aggs []model.FeatureAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No feature stats found.")
		return err
	}
	rows := make([]model.FeatureAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ki := KeptFraction(rows[i].BeforeSum, rows[i].RemainingSum)
		kj := KeptFraction(rows[j].BeforeSum, rows[j].RemainingSum)
		if ki == kj {
			return rows[i].Feature < rows[j].Feature
		}
		return ki < kj
	})

	if _, err := fmt.Fprintln(w, "Per-Feature"); err != nil {
		return err
	}
	headers := []string{"Feature", "Asked", "Kept"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Feature,
			fmt.Sprintf("%d", r.Asked),
			fmt.Sprintf("%.1f%%", KeptFraction(r.BeforeSum, r.RemainingSum)*100),
		})
	}
	if err := writeLines(w, formatTable(headers, tableRows, map[int]bool{1: true, 2: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func spaced(letters []rune) string {
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func resultLabel(s model.SessionRecord) string {
	switch {
	case s.Remaining == 0:
		return "no match"
	case len(s.Result) > 0 && len(s.Result) <= 3:
		return strings.ToUpper(strings.Join(s.Result, " "))
	case !s.Exhausted:
		return "abandoned"
	default:
		return ""
	}
}
