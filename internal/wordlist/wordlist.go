// Package wordlist loads word lists and filters candidate words.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyList is returned when a source yields no usable words.
var ErrEmptyList = errors.New("word list is empty")

// LoadError reports a word list that could not be loaded from any source.
type LoadError struct {
	Sources []string
	Err     error
}

func (e *LoadError) Error() string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("failed to load word list: %v", e.Err)
	}
	return fmt.Sprintf("failed to load word list from %s: %v", strings.Join(e.Sources, ", "), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Sources: []string{path}, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	words, err := ReadWords(file)
	if err != nil {
		return nil, &LoadError{Sources: []string{path}, Err: err}
	}
	return words, nil
}

// Normalize returns s in NFC form, the form words are stored in. Queries
// must be normalized the same way to match decomposed input.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// ReadWords reads one word per line, trimming whitespace and skipping blank
// lines. Words are NFC-normalized so accented letters are single runes.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, Normalize(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyList
	}
	return words, nil
}

// LoadFirst tries each path in order and returns the words of the first one
// that loads, together with that path.
func LoadFirst(paths ...string) ([]string, string, error) {
	if len(paths) == 0 {
		return nil, "", &LoadError{Err: errors.New("no word list sources configured")}
	}
	var errs []error
	for _, path := range paths {
		words, err := LoadWords(path)
		if err == nil {
			return words, path, nil
		}
		errs = append(errs, err)
	}
	return nil, "", &LoadError{Sources: append([]string(nil), paths...), Err: errors.Join(errs...)}
}

// Lists returns the names of the *.txt word lists in dir, sorted.
func Lists(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

// Shortest returns the rune length of the shortest word, or 0 when empty.
func Shortest(words []string) int {
	shortest := 0
	for i, w := range words {
		n := len([]rune(w))
		if i == 0 || n < shortest {
			shortest = n
		}
	}
	return shortest
}
