package board

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/jabibo/wordbattle-backend-sub000/tilemapping"
)

var (
	ColorSupport = os.Getenv("WORDBATTLE_DISABLE_COLOR") != "on"
)

// ErrOccupiedCell is returned when a tile is placed on a cell that
// already holds one.
var ErrOccupiedCell = errors.New("cell already has a tile")

type BonusSquare byte

const (
	// Bonus3WS is a triple word score
	Bonus3WS BonusSquare = '='
	// Bonus3LS is a triple letter score
	Bonus3LS BonusSquare = '"'
	// Bonus2LS is a double letter score
	Bonus2LS BonusSquare = '\''
	// Bonus2WS is a double word score. The center star is one of these.
	Bonus2WS BonusSquare = '-'

	NoBonus BonusSquare = ' '
)

// LetterMultiplier returns the multiplier this square applies to a
// newly placed tile's letter value.
func (b BonusSquare) LetterMultiplier() int {
	switch b {
	case Bonus2LS:
		return 2
	case Bonus3LS:
		return 3
	}
	return 1
}

// WordMultiplier returns the multiplier this square applies to a word
// containing a newly placed tile.
func (b BonusSquare) WordMultiplier() int {
	switch b {
	case Bonus2WS:
		return 2
	case Bonus3WS:
		return 3
	}
	return 1
}

func (b BonusSquare) displayString() string {
	repr := string(rune(b))
	if !ColorSupport {
		return repr
	}
	switch b {
	case Bonus3WS:
		return fmt.Sprintf("\033[31m%s\033[0m", repr)
	case Bonus2WS:
		return fmt.Sprintf("\033[35m%s\033[0m", repr)
	case Bonus3LS:
		return fmt.Sprintf("\033[34m%s\033[0m", repr)
	case Bonus2LS:
		return fmt.Sprintf("\033[36m%s\033[0m", repr)
	default:
		return repr
	}
}

// CrosswordGameBoard is the standard 15x15 bonus layout, center star
// at H8. The glyphs are the BonusSquare constants.
var CrosswordGameBoard = []string{
	`=  '   =   '  =`,
	` -   "   "   - `,
	`  -   ' '   -  `,
	`'  -   '   -  '`,
	`    -     -    `,
	` "   "   "   " `,
	`  '   ' '   '  `,
	`=  '   -   '  =`,
	`  '   ' '   '  `,
	` "   "   "   " `,
	`    -     -    `,
	`'  -   '   -  '`,
	`  -   ' '   -  `,
	` -   "   "   - `,
	`=  '   =   '  =`,
}

// GameBoard stores the board as one-dimensional arrays of tiles and
// bonuses. Bonuses are fixed at construction; tiles are placed at most
// once per cell during normal play.
type GameBoard struct {
	squares     []tilemapping.Tile
	bonuses     []BonusSquare
	tilesPlayed int
	dim         int
}

// MakeBoard turns an array of bonus-layout strings into a GameBoard.
// All strings are assumed to be the same length.
func MakeBoard(desc []string) *GameBoard {
	totalLen := 0
	for _, s := range desc {
		totalLen += len(s)
	}
	sqs := make([]tilemapping.Tile, totalLen)
	bs := make([]BonusSquare, totalLen)
	sqi := 0
	for _, s := range desc {
		for _, c := range s {
			bs[sqi] = BonusSquare(byte(c))
			sqi++
		}
	}
	return &GameBoard{squares: sqs, bonuses: bs, dim: len(desc)}
}

// NewBoard makes a standard crossword game board.
func NewBoard() *GameBoard {
	return MakeBoard(CrosswordGameBoard)
}

// Dim is the dimension of the board. It assumes the board is square.
func (g *GameBoard) Dim() int {
	return g.dim
}

// CenterRow and CenterCol locate the start square.
func (g *GameBoard) CenterRow() int { return g.dim >> 1 }
func (g *GameBoard) CenterCol() int { return g.dim >> 1 }

// TilesPlayed returns the number of tiles on the board.
func (g *GameBoard) TilesPlayed() int {
	return g.tilesPlayed
}

// GetBonus returns the bonus at the given cell.
func (g *GameBoard) GetBonus(row int, col int) BonusSquare {
	return g.bonuses[row*g.dim+col]
}

// GetTile returns the tile at a cell, and whether there is one.
func (g *GameBoard) GetTile(row int, col int) (tilemapping.Tile, bool) {
	t := g.squares[row*g.dim+col]
	return t, t.Letter != 0
}

// HasTile reports whether a cell holds a tile.
func (g *GameBoard) HasTile(row int, col int) bool {
	return g.squares[row*g.dim+col].Letter != 0
}

// PlaceTile puts a tile on an empty cell. It does not check word
// legality; that is the validator's job.
func (g *GameBoard) PlaceTile(row int, col int, t tilemapping.Tile) error {
	if g.HasTile(row, col) {
		return ErrOccupiedCell
	}
	g.squares[row*g.dim+col] = t
	g.tilesPlayed++
	return nil
}

// IsEmpty is true only before the first play.
func (g *GameBoard) IsEmpty() bool {
	return g.tilesPlayed == 0
}

// PosExists reports whether the coordinates are on the board.
func (g *GameBoard) PosExists(row int, col int) bool {
	return row >= 0 && row < g.dim && col >= 0 && col < g.dim
}

// Copy returns a deep copy of this board.
func (g *GameBoard) Copy() *GameBoard {
	squares := make([]tilemapping.Tile, len(g.squares))
	bonuses := make([]BonusSquare, len(g.bonuses))
	copy(squares, g.squares)
	copy(bonuses, g.bonuses)
	return &GameBoard{
		squares:     squares,
		bonuses:     bonuses,
		tilesPlayed: g.tilesPlayed,
		dim:         g.dim,
	}
}

// Equals checks the boards for equality: same dimensions, same
// bonuses, same tiles.
func (g *GameBoard) Equals(g2 *GameBoard) bool {
	if g.dim != g2.dim || g.tilesPlayed != g2.tilesPlayed {
		return false
	}
	for i := range g.squares {
		if g.squares[i] != g2.squares[i] || g.bonuses[i] != g2.bonuses[i] {
			return false
		}
	}
	return true
}

// SetRow fills a row from a letter string, spaces meaning empty.
// Lowercase letters are blanks. It returns the tiles placed, so the
// caller can reconcile the bag. Meant for setting up positions in
// tests and tools.
func (g *GameBoard) SetRow(rowNum int, letters string, ld *tilemapping.LetterDistribution) []tilemapping.Tile {
	placed := []tilemapping.Tile{}
	col := 0
	for _, r := range letters {
		if r != ' ' {
			t := tilemapping.Tile{Letter: unicode.ToUpper(r), Value: int(ld.PointValues[unicode.ToUpper(r)])}
			if unicode.IsLower(r) {
				t = tilemapping.Tile{Letter: unicode.ToUpper(r), Blank: true}
			}
			g.squares[rowNum*g.dim+col] = t
			g.tilesPlayed++
			placed = append(placed, t)
		}
		col++
	}
	return placed
}

func (g *GameBoard) squareDisplayString(row, col int) string {
	if t, ok := g.GetTile(row, col); ok {
		return t.String()
	}
	return g.GetBonus(row, col).displayString()
}

// ToDisplayText produces a human-readable version of the board for
// the shell.
func (g *GameBoard) ToDisplayText() string {
	var str string
	n := g.Dim()
	row := "   "
	for i := 0; i < n; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", n*2) + "\n"
	for i := 0; i < n; i++ {
		row := fmt.Sprintf("%2d|", i+1)
		for j := 0; j < n; j++ {
			row = row + g.squareDisplayString(i, j) + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", n*2) + "\n"
	return "\n" + str
}
