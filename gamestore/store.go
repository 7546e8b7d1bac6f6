// Package gamestore persists game snapshots by game id. A store
// holds bytes, not live games: callers snapshot a game to save it and
// rebuild from the snapshot to resume it.
package gamestore

import (
	"context"
	"errors"

	"github.com/jabibo/wordbattle-backend-sub000/game"
)

// ErrNotFound is returned when no game with the requested id exists.
var ErrNotFound = errors.New("game not found")

// Store is the persistence interface. Implementations must be safe
// for concurrent use.
type Store interface {
	// Save writes a snapshot under its own game id, replacing any
	// previous save of the same game.
	Save(ctx context.Context, snap *game.Snapshot) error
	// Get returns the saved snapshot, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Snapshot, error)
	// Delete removes a saved game. Deleting an unknown id is not an
	// error.
	Delete(ctx context.Context, id string) error
	// List returns the ids of every saved game, in no particular
	// order.
	List(ctx context.Context) ([]string, error)
}
