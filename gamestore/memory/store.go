// Package memory is an in-process game store, for tests and
// single-node setups. Snapshots are stored as JSON bytes, the same
// shape the redis store writes, so the two are interchangeable.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jabibo/wordbattle-backend-sub000/game"
	"github.com/jabibo/wordbattle-backend-sub000/gamestore"
)

type Store struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func New() *Store {
	return &Store{games: make(map[string][]byte)}
}

var _ gamestore.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, snap *game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[snap.GameID] = data
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*game.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, gamestore.ErrNotFound
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids, nil
}
