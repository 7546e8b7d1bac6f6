// Package lexicon answers one question: is this a word? The engine
// consults a Lexicon for every word a play forms; building and
// importing the word lists themselves happens elsewhere.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// A Lexicon is the word-membership oracle for a single language's
// word list. Lookups are synchronous, fast, and side-effect-free; a
// validator makes several per move.
type Lexicon interface {
	Name() string
	HasWord(word string) bool
}

// AcceptAll considers every word good. Useful for tests and for
// playing without a word list.
type AcceptAll struct{}

func (lex AcceptAll) Name() string {
	return "AcceptAll"
}

func (lex AcceptAll) HasWord(word string) bool {
	return true
}

// A WordSet is an in-memory lexicon. It is immutable once built, so
// it can be shared across games without locking.
type WordSet struct {
	name  string
	words map[string]struct{}
}

// NewWordSet builds a WordSet from a list of words. Words are
// uppercased; empty strings are dropped.
func NewWordSet(name string, words []string) *WordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &WordSet{name: name, words: set}
}

// ScanWordSet reads one word per line.
func ScanWordSet(name string, r io.Reader) (*WordSet, error) {
	words := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning word list %v: %w", name, err)
	}
	return NewWordSet(name, words), nil
}

// LoadWordSetFile reads a word list file, one word per line.
func LoadWordSetFile(name, path string) (*WordSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ScanWordSet(name, file)
}

func (lex *WordSet) Name() string {
	return lex.name
}

func (lex *WordSet) HasWord(word string) bool {
	_, ok := lex.words[strings.ToUpper(word)]
	return ok
}

// NumWords returns the size of the set.
func (lex *WordSet) NumWords() int {
	return len(lex.words)
}
