// Package move defines the closed set of move kinds a player can
// submit: placing tiles, exchanging the whole rack, or passing.
package move

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

// MoveType classifies a move.
type MoveType uint8

const (
	MoveTypePlay MoveType = iota
	MoveTypeExchange
	MoveTypePass
)

func (mt MoveType) String() string {
	switch mt {
	case MoveTypePlay:
		return "play"
	case MoveTypeExchange:
		return "exchange"
	case MoveTypePass:
		return "pass"
	}
	return "unknown"
}

// ParseMoveType is the inverse of MoveType.String, for decoding saved
// histories.
func ParseMoveType(s string) (MoveType, error) {
	switch s {
	case "play":
		return MoveTypePlay, nil
	case "exchange":
		return MoveTypeExchange, nil
	case "pass":
		return MoveTypePass, nil
	}
	return 0, fmt.Errorf("unknown move type %v", s)
}

// A TilePlacement puts one tile on one cell.
type TilePlacement struct {
	Row  int
	Col  int
	Tile tilemapping.Tile
}

// A Move is a tagged variant; exactly one of the payloads is relevant
// to its action. Construct moves with the New*Move functions.
type Move struct {
	action     MoveType
	placements []TilePlacement
	exchanged  []tilemapping.Tile
}

// NewPlacementMove creates a tile-placement move. The placement order
// is preserved; cross-words are later reported in this order.
func NewPlacementMove(placements []TilePlacement) *Move {
	return &Move{action: MoveTypePlay, placements: placements}
}

// NewExchangeMove creates an exchange of the given tiles.
func NewExchangeMove(tiles []tilemapping.Tile) *Move {
	return &Move{action: MoveTypeExchange, exchanged: tiles}
}

// NewPassMove creates a pass.
func NewPassMove() *Move {
	return &Move{action: MoveTypePass}
}

// Action returns what kind of move this is.
func (m *Move) Action() MoveType {
	return m.action
}

// Placements returns the tile placements of a play move, in the order
// they were submitted.
func (m *Move) Placements() []TilePlacement {
	return m.placements
}

// Exchanged returns the tiles submitted for exchange.
func (m *Move) Exchanged() []tilemapping.Tile {
	return m.exchanged
}

// TilesPlayed returns the number of newly placed tiles.
func (m *Move) TilesPlayed() int {
	return len(m.placements)
}

// PlacedTiles returns just the tiles of a play move, in placement
// order.
func (m *Move) PlacedTiles() []tilemapping.Tile {
	tiles := make([]tilemapping.Tile, len(m.placements))
	for i, p := range m.placements {
		tiles[i] = p.Tile
	}
	return tiles
}

// coords returns the board coordinates of the first placement, in the
// usual crossword notation.
func (m *Move) coords() string {
	if len(m.placements) == 0 {
		return ""
	}
	vertical := false
	if len(m.placements) > 1 {
		vertical = m.placements[0].Col == m.placements[1].Col
	}
	return ToBoardGameCoords(m.placements[0].Row, m.placements[0].Col, vertical)
}

// ShortDescription turns a move into a compact log-friendly string.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlay:
		return fmt.Sprintf("%v %v", m.coords(),
			tilemapping.TilesToString(m.PlacedTiles()))
	case MoveTypeExchange:
		return fmt.Sprintf("(exch %v)", tilemapping.TilesToString(m.exchanged))
	case MoveTypePass:
		return "(pass)"
	}
	return "(unknown)"
}

func (m *Move) String() string {
	return fmt.Sprintf("<%v %v>", m.action, m.ShortDescription())
}

var reHorizontal = regexp.MustCompile(`^(?P<row>[0-9]+)(?P<col>[A-Z])$`)
var reVertical = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)

// ToBoardGameCoords turns a row, col, and direction into standard
// crossword-game coordinates. Rows are 1-based digits and columns are
// letters; row-first means horizontal ("8H"), column-first vertical
// ("H8").
func ToBoardGameCoords(row, col int, vertical bool) string {
	colCoords := string(rune('A' + col))
	rowCoords := strconv.Itoa(row + 1)
	if vertical {
		return colCoords + rowCoords
	}
	return rowCoords + colCoords
}

// FromBoardGameCoords is the inverse of ToBoardGameCoords.
func FromBoardGameCoords(c string) (row, col int, vertical bool, err error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if matches := reHorizontal.FindStringSubmatch(c); matches != nil {
		row, _ = strconv.Atoi(matches[1])
		return row - 1, int(matches[2][0] - 'A'), false, nil
	}
	if matches := reVertical.FindStringSubmatch(c); matches != nil {
		row, _ = strconv.Atoi(matches[2])
		return row - 1, int(matches[1][0] - 'A'), true, nil
	}
	return 0, 0, false, fmt.Errorf("%v is not a valid coordinate", c)
}
