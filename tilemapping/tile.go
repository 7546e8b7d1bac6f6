package tilemapping

import (
	"fmt"
	"strings"
	"unicode"
)

// BlankLetter is the letter of a blank tile that has not yet been
// assigned a letter. Once played, a blank keeps Blank = true but its
// Letter becomes the letter it stands for.
const BlankLetter = '?'

// A Tile is a single physical tile: a letter, whether the tile is a
// blank, and its point value. Blanks are always worth zero, no matter
// which letter they are designated as.
type Tile struct {
	Letter rune
	Blank  bool
	Value  int
}

// String returns a user-visible version of this tile. Blanks show as
// lowercase once designated, and as ? while still in the bag or rack.
func (t Tile) String() string {
	if t.Blank {
		if t.Letter == BlankLetter {
			return string(BlankLetter)
		}
		return string(unicode.ToLower(t.Letter))
	}
	return string(t.Letter)
}

// Designate returns a copy of this blank tile assigned to the given
// letter. The zero point value is retained.
func (t Tile) Designate(letter rune) (Tile, error) {
	if !t.Blank {
		return t, fmt.Errorf("only blanks can be designated (got %c)", t.Letter)
	}
	return Tile{Letter: unicode.ToUpper(letter), Blank: true}, nil
}

// TilesFromString converts a compact tile string into tiles, using the
// distribution for point values. Uppercase runes are regular tiles,
// lowercase runes are blanks designated as that letter, and ? is an
// undesignated blank.
func TilesFromString(s string, ld *LetterDistribution) ([]Tile, error) {
	tiles := make([]Tile, 0, len(s))
	for _, rn := range s {
		switch {
		case rn == BlankLetter:
			tiles = append(tiles, Tile{Letter: BlankLetter, Blank: true})
		case unicode.IsLower(rn):
			tiles = append(tiles, Tile{Letter: unicode.ToUpper(rn), Blank: true})
		default:
			val, ok := ld.PointValues[rn]
			if !ok {
				return nil, fmt.Errorf("letter %c is not in the %v distribution", rn, ld.Name)
			}
			tiles = append(tiles, Tile{Letter: rn, Value: int(val)})
		}
	}
	return tiles, nil
}

// TilesToString is the inverse of TilesFromString.
func TilesToString(tiles []Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteString(t.String())
	}
	return sb.String()
}
