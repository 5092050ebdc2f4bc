package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const columnGap = 2

type styledWord struct {
	s     string
	width int
}

// buildStyledWords upper-cases words and highlights the first occurrence of
// query in each.
func buildStyledWords(words []string, query string) []styledWord {
	needle := []rune(strings.ToLower(query))
	out := make([]styledWord, 0, len(words))
	for _, w := range words {
		runes := []rune(strings.ToUpper(w))
		start := indexFold([]rune(w), needle)
		var s string
		if start < 0 || len(needle) == 0 {
			s = candidateStyle.Render(string(runes))
		} else {
			end := start + len(needle)
			s = candidateStyle.Render(string(runes[:start])) +
				matchStyle.Render(string(runes[start:end])) +
				candidateStyle.Render(string(runes[end:]))
		}
		out = append(out, styledWord{s: s, width: runewidth.StringWidth(string(runes))})
	}
	return out
}

func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// gridLayout returns the column count and cell width for words in width.
func gridLayout(words []styledWord, width int) (cols, cellWidth int) {
	for _, w := range words {
		cellWidth = max(cellWidth, w.width)
	}
	cols = max(1, (width+columnGap)/(cellWidth+columnGap))
	return cols, cellWidth
}

func wrapStyledWords(words []styledWord, width, maxLines int) string {
	if len(words) == 0 {
		return ""
	}
	cols, cellWidth := gridLayout(words, width)
	rows := (len(words) + cols - 1) / cols
	hidden := 0
	if maxLines > 0 && rows > maxLines {
		rows = max(maxLines-1, 1)
		hidden = len(words) - rows*cols
	}
	lines := make([]string, 0, rows+1)
	for r := 0; r < rows; r++ {
		start := r * cols
		end := min(start+cols, len(words))
		var b strings.Builder
		for i, w := range words[start:end] {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", columnGap))
			}
			b.WriteString(w.s)
			if start+i < end-1 {
				b.WriteString(strings.Repeat(" ", cellWidth-w.width))
			}
		}
		lines = append(lines, b.String())
	}
	if hidden > 0 {
		lines = append(lines, footerStyle.Render(fmt.Sprintf("… and %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

func renderCandidates(words []string, query string, width, maxLines int) string {
	if len(words) == 0 {
		return statusStyle.Render("No matches.")
	}
	return wrapStyledWords(buildStyledWords(words, query), width, maxLines)
}
