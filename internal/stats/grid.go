package stats

import (
	"fmt"
	"io"
	"strings"
)

const (
	columnGap    = 2
	defaultWidth = 80
)

// GridLines lays words out upper-cased in columns that fit width. Words
// fill the grid row by row.
func GridLines(words []string, width int) []string {
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		width = defaultWidth
	}
	cells := make([]string, len(words))
	cellWidth := 0
	for i, w := range words {
		cells[i] = strings.ToUpper(w)
		cellWidth = max(cellWidth, displayWidth(cells[i]))
	}
	cols := max(1, (width+columnGap)/(cellWidth+columnGap))
	lines := make([]string, 0, (len(cells)+cols-1)/cols)
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		var b strings.Builder
		for i, cell := range cells[start:end] {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", columnGap))
			}
			b.WriteString(padCell(cell, cellWidth, false))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// RenderCandidates prints the candidate grid followed by a count.
func RenderCandidates(w io.Writer, words []string, width int) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}
	if err := writeLines(w, GridLines(words, width)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", CountLabel(len(words)))
	return err
}

// CountLabel describes a number of candidates.
func CountLabel(n int) string {
	switch n {
	case 0:
		return "No matches."
	case 1:
		return "1 candidate"
	default:
		return fmt.Sprintf("%d candidates", n)
	}
}
