package game

import (
	"errors"
	"fmt"
)

// Everything that can go wrong with a move comes back as one of these
// values (or as board.ErrOccupiedCell / tilemapping.ErrTileNotInRack
// from the packages that own those checks). They are plain value
// returns, recoverable, and never mutate the game.
var (
	// ErrNotPlayersTurn is returned when a player moves out of turn.
	ErrNotPlayersTurn = errors.New("it is not that player's turn")
	// ErrGameNotInProgress covers moves before the start and after
	// the end of a game.
	ErrGameNotInProgress = errors.New("the game is not in progress")
	// ErrNonContiguousPlacement is returned when the placed tiles do
	// not form a single line, or leave gaps no existing tile fills.
	ErrNonContiguousPlacement = errors.New("your play must form one contiguous line")
	// ErrMustCoverCenter is returned when the first play of a game
	// misses the center square.
	ErrMustCoverCenter = errors.New("the first play must cover the center square")
	// ErrDisconnectedMove is returned when a later play touches no
	// tile already on the board.
	ErrDisconnectedMove = errors.New("your play must border a tile already on the board")
	// ErrPlacementOffBoard is returned when a placement lies outside
	// the board.
	ErrPlacementOffBoard = errors.New("your play extends off of the board")
	// ErrBlankNotDesignated is returned when a blank is played
	// without saying which letter it stands for.
	ErrBlankNotDesignated = errors.New("a played blank must be designated as a letter")
	// ErrInsufficientBagForExchange is returned when the bag holds
	// fewer tiles than a full exchange needs.
	ErrInsufficientBagForExchange = errors.New("not enough tiles in the bag to exchange")
	// ErrMustExchangeExactlySeven is returned for partial exchanges.
	// Exchanging fewer than seven tiles is never allowed, even for a
	// player holding fewer than seven.
	ErrMustExchangeExactlySeven = errors.New("exchanges must swap exactly seven tiles")
	// ErrNotEnoughPlayers is returned when a game is created with
	// fewer than two players.
	ErrNotEnoughPlayers = errors.New("a game needs at least two players")
)

// InvalidWordError reports the first formed word the lexicon does not
// contain.
type InvalidWordError struct {
	Word string
}

func (e InvalidWordError) Error() string {
	return fmt.Sprintf("%v is not a valid word", e.Word)
}
