package game

import (
	"fmt"

	"github.com/jabibo/wordbattle-backend-sub000/board"
	"github.com/jabibo/wordbattle-backend-sub000/move"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

// A ValidatedMove is a move that passed every rule: its tile values
// re-stamped from the letter distribution, and, for a play, the words
// it forms (main word first).
type ValidatedMove struct {
	Move  *move.Move
	Words []board.FormedWord
}

// ValidateMove checks a move against the full rule set without
// touching any state. It returns the normalized move, or an error
// naming the first rule the move breaks. Checks run in a fixed order:
// game phase, then turn, then the per-type rules.
func (g *Game) ValidateMove(playerID string, m *move.Move) (*ValidatedMove, error) {
	if g.phase != PhaseInProgress {
		return nil, ErrGameNotInProgress
	}
	if g.players[g.onturn].id != playerID {
		return nil, ErrNotPlayersTurn
	}
	switch m.Action() {
	case move.MoveTypePass:
		return &ValidatedMove{Move: m}, nil
	case move.MoveTypeExchange:
		return g.validateExchange(m)
	case move.MoveTypePlay:
		return g.validatePlacement(m)
	}
	return nil, fmt.Errorf("unknown move type %v", m.Action())
}

func (g *Game) validateExchange(m *move.Move) (*ValidatedMove, error) {
	if g.bag.TilesRemaining() < ExchangeLimit {
		return nil, ErrInsufficientBagForExchange
	}
	if len(m.Exchanged()) != ExchangeLimit {
		return nil, ErrMustExchangeExactlySeven
	}
	tiles := g.normalizeTiles(m.Exchanged())
	if !g.players[g.onturn].rack.Has(tiles) {
		return nil, tilemapping.ErrTileNotInRack
	}
	return &ValidatedMove{Move: move.NewExchangeMove(tiles)}, nil
}

// normalizeTiles re-stamps tile values from the letter distribution.
// Values submitted by the caller are never trusted.
func (g *Game) normalizeTiles(tiles []tilemapping.Tile) []tilemapping.Tile {
	norm := make([]tilemapping.Tile, len(tiles))
	for i, t := range tiles {
		t.Value = g.rules.LetterDistribution().Score(t)
		norm[i] = t
	}
	return norm
}

func (g *Game) validatePlacement(m *move.Move) (*ValidatedMove, error) {
	placements := m.Placements()
	if len(placements) == 0 {
		return nil, fmt.Errorf("a play must place at least one tile")
	}

	// Geometry first: on the board, on empty squares, no cell twice.
	seen := map[int]bool{}
	for _, p := range placements {
		if !g.board.PosExists(p.Row, p.Col) {
			return nil, ErrPlacementOffBoard
		}
		if g.board.HasTile(p.Row, p.Col) {
			return nil, board.ErrOccupiedCell
		}
		key := p.Row*g.board.Dim() + p.Col
		if seen[key] {
			return nil, board.ErrOccupiedCell
		}
		seen[key] = true
		if p.Tile.Blank && p.Tile.Letter == tilemapping.BlankLetter {
			return nil, ErrBlankNotDesignated
		}
	}

	norm := make([]move.TilePlacement, len(placements))
	for i, p := range placements {
		p.Tile.Value = g.rules.LetterDistribution().Score(p.Tile)
		norm[i] = p
	}
	nm := move.NewPlacementMove(norm)

	if !g.players[g.onturn].rack.Has(nm.PlacedTiles()) {
		return nil, tilemapping.ErrTileNotInRack
	}
	if err := g.checkGeometry(nm); err != nil {
		return nil, err
	}

	words, err := g.board.FormedWords(nm)
	if err != nil {
		return nil, err
	}
	// A lone tile that touches nothing forms no word at all. Only
	// possible on the very first play.
	if len(words) == 1 && len(words[0].Cells) < 2 {
		return nil, InvalidWordError{Word: words[0].Word()}
	}
	for _, w := range words {
		if len(w.Cells) < 2 {
			continue
		}
		if !g.rules.Lexicon().HasWord(w.Word()) {
			return nil, InvalidWordError{Word: w.Word()}
		}
	}
	return &ValidatedMove{Move: nm, Words: words}, nil
}

// checkGeometry enforces the line rules: one row or one column, no
// holes, cover the center on an empty board, touch something on a
// non-empty one.
func (g *Game) checkGeometry(m *move.Move) error {
	placements := m.Placements()

	sameRow, sameCol := true, true
	minRow, maxRow := placements[0].Row, placements[0].Row
	minCol, maxCol := placements[0].Col, placements[0].Col
	for _, p := range placements {
		sameRow = sameRow && p.Row == placements[0].Row
		sameCol = sameCol && p.Col == placements[0].Col
		minRow, maxRow = min(minRow, p.Row), max(maxRow, p.Row)
		minCol, maxCol = min(minCol, p.Col), max(maxCol, p.Col)
	}
	if !sameRow && !sameCol {
		return ErrNonContiguousPlacement
	}

	// Walk the span. Every cell is either being placed now or already
	// holds a tile; a hole sinks the play.
	placed := map[int]bool{}
	for _, p := range placements {
		placed[p.Row*g.board.Dim()+p.Col] = true
	}
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if !placed[r*g.board.Dim()+c] && !g.board.HasTile(r, c) {
				return ErrNonContiguousPlacement
			}
		}
	}

	if g.board.IsEmpty() {
		if !placed[g.board.CenterRow()*g.board.Dim()+g.board.CenterCol()] {
			return ErrMustCoverCenter
		}
		return nil
	}
	for _, p := range placements {
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := p.Row+d[0], p.Col+d[1]
			if g.board.PosExists(nr, nc) && g.board.HasTile(nr, nc) {
				return nil
			}
		}
	}
	return ErrDisconnectedMove
}
