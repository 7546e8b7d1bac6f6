package board

import (
	"errors"
	"strings"

	"github.com/jabibo/wordbattle-backend-sub000/move"
	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

// A WordCell is one cell of a formed word: where it is, which tile
// sits there, and whether that tile was placed by the move under
// consideration. Multipliers only ever apply where Placed is true.
type WordCell struct {
	Row    int
	Col    int
	Tile   tilemapping.Tile
	Placed bool
}

// A FormedWord is a maximal run of two or more tiles through at least
// one newly placed tile.
type FormedWord struct {
	Cells []WordCell
}

// Word returns the word as a string. Blanks contribute the letter
// they designate.
func (w FormedWord) Word() string {
	var sb strings.Builder
	for _, c := range w.Cells {
		sb.WriteRune(c.Tile.Letter)
	}
	return sb.String()
}

func (w FormedWord) String() string {
	return w.Word()
}

// overlay resolves a cell against the move first and the board
// second.
type overlay struct {
	board  *GameBoard
	placed map[int]tilemapping.Tile
}

func makeOverlay(g *GameBoard, m *move.Move) overlay {
	placed := make(map[int]tilemapping.Tile, len(m.Placements()))
	for _, p := range m.Placements() {
		placed[p.Row*g.dim+p.Col] = p.Tile
	}
	return overlay{board: g, placed: placed}
}

func (o overlay) at(row, col int) (tilemapping.Tile, bool, bool) {
	if !o.board.PosExists(row, col) {
		return tilemapping.Tile{}, false, false
	}
	if t, ok := o.placed[row*o.board.dim+col]; ok {
		return t, true, true
	}
	t, ok := o.board.GetTile(row, col)
	return t, ok, false
}

// Vertical reports the orientation of a play. Multi-tile plays are
// vertical when the placements share a column. A lone tile takes its
// orientation from whichever neighbors it has, preferring horizontal.
func (g *GameBoard) Vertical(m *move.Move) bool {
	pl := m.Placements()
	if len(pl) > 1 {
		return pl[0].Col == pl[1].Col
	}
	if len(pl) == 1 {
		row, col := pl[0].Row, pl[0].Col
		if (g.PosExists(row, col-1) && g.HasTile(row, col-1)) ||
			(g.PosExists(row, col+1) && g.HasTile(row, col+1)) {
			return false
		}
		if (g.PosExists(row-1, col) && g.HasTile(row-1, col)) ||
			(g.PosExists(row+1, col) && g.HasTile(row+1, col)) {
			return true
		}
	}
	return false
}

// FormedWords returns all words formed by a play: the main word along
// the placement axis first, then every perpendicular word of length
// two or more through a newly placed tile, in placement order. The
// board itself is not mutated; the move is applied as an overlay.
//
// The play's geometry (collinear, contiguous, on the board) must
// already have been checked.
func (g *GameBoard) FormedWords(m *move.Move) ([]FormedWord, error) {
	if m.Action() != move.MoveTypePlay {
		return nil, errors.New("formed words must be called with a tile placement play")
	}
	if len(m.Placements()) == 0 {
		return nil, errors.New("a play needs at least one tile")
	}

	o := makeOverlay(g, m)
	vertical := g.Vertical(m)
	ri, ci := 0, 1
	if vertical {
		ri, ci = ci, ri
	}

	// Reserve space for the main word; the convention is that it is
	// always first.
	words := []FormedWord{{}}

	row, col := m.Placements()[0].Row, m.Placements()[0].Col
	for {
		prow, pcol := row-ri, col-ci
		if _, ok, _ := o.at(prow, pcol); !ok {
			break
		}
		row, col = prow, pcol
	}
	main := FormedWord{}
	for {
		t, ok, placed := o.at(row, col)
		if !ok {
			break
		}
		main.Cells = append(main.Cells, WordCell{Row: row, Col: col, Tile: t, Placed: placed})
		row, col = row+ri, col+ci
	}
	words[0] = main

	for _, p := range m.Placements() {
		cross := g.formedCrossWord(!vertical, p)
		if cross != nil {
			words = append(words, *cross)
		}
	}
	return words, nil
}

// formedCrossWord finds the perpendicular word through one placed
// tile, or nil if that tile has no perpendicular neighbors. There are
// no 1-letter words.
func (g *GameBoard) formedCrossWord(crossVertical bool, p move.TilePlacement) *FormedWord {
	ri, ci := 0, 1
	if crossVertical {
		ri, ci = ci, ri
	}

	// Walk to the top or left edge of the run. Only board tiles can
	// extend a cross word; sibling placements lie on the main axis.
	row, col := p.Row, p.Col
	for g.PosExists(row-ri, col-ci) && g.HasTile(row-ri, col-ci) {
		row, col = row-ri, col-ci
	}

	cross := &FormedWord{}
	for g.PosExists(row, col) {
		if row == p.Row && col == p.Col {
			cross.Cells = append(cross.Cells, WordCell{Row: row, Col: col, Tile: p.Tile, Placed: true})
		} else {
			t, ok := g.GetTile(row, col)
			if !ok {
				break
			}
			cross.Cells = append(cross.Cells, WordCell{Row: row, Col: col, Tile: t, Placed: false})
		}
		row, col = row+ri, col+ci
	}
	if len(cross.Cells) < 2 {
		return nil
	}
	return cross
}

// PlayMove puts a play's tiles on the board. The move must already be
// validated.
func (g *GameBoard) PlayMove(m *move.Move) error {
	for _, p := range m.Placements() {
		if err := g.PlaceTile(p.Row, p.Col, p.Tile); err != nil {
			return err
		}
	}
	return nil
}
