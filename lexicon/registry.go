package lexicon

import (
	"fmt"
	"sync"

	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

// A Registry routes word lookups by language. Unlike a single game,
// which holds one Lexicon, a registry is shared by many games in many
// languages, so it locks.
type Registry struct {
	mu     sync.RWMutex
	lexica map[string]Lexicon
}

func NewRegistry() *Registry {
	return &Registry{lexica: make(map[string]Lexicon)}
}

// canonical maps a language name or BCP-47 tag onto the name the
// lexicon was registered under.
func canonical(language string) string {
	if ld, err := tilemapping.ResolveLetterDistribution(language); err == nil {
		return ld.Name
	}
	return language
}

// Register adds a lexicon for a language.
func (r *Registry) Register(language string, lex Lexicon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lexica[canonical(language)] = lex
}

// Lexicon returns the lexicon registered for a language.
func (r *Registry) Lexicon(language string) (Lexicon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lex, ok := r.lexica[canonical(language)]
	if !ok {
		return nil, fmt.Errorf("no lexicon registered for language %v", language)
	}
	return lex, nil
}

// Contains reports whether the word is valid in the given language.
// An unregistered language has no valid words.
func (r *Registry) Contains(word, language string) bool {
	lex, err := r.Lexicon(language)
	if err != nil {
		return false
	}
	return lex.HasWord(word)
}
