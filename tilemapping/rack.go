package tilemapping

import (
	"errors"
	"sort"

	"github.com/samber/lo"
)

// ErrTileNotInRack is returned when a move or exchange names a tile
// the player does not hold.
var ErrTileNotInRack = errors.New("tile not in rack")

// Rack is a player's set of tiles. It is an unordered multiset; the
// canonical sorted view is TilesOn.
type Rack struct {
	tiles []Tile
	ld    *LetterDistribution
}

// NewRack creates an empty rack for the given distribution.
func NewRack(ld *LetterDistribution) *Rack {
	return &Rack{ld: ld}
}

// RackFromString creates a rack from a compact tile string; see
// TilesFromString for the format.
func RackFromString(s string, ld *LetterDistribution) (*Rack, error) {
	tiles, err := TilesFromString(s, ld)
	if err != nil {
		return nil, err
	}
	return &Rack{tiles: tiles, ld: ld}, nil
}

// AddTile adds one tile to the rack.
func (r *Rack) AddTile(t Tile) {
	r.tiles = append(r.tiles, t)
}

// AddTiles adds the given tiles to the rack.
func (r *Rack) AddTiles(tiles []Tile) {
	r.tiles = append(r.tiles, tiles...)
}

// matches reports whether the rack tile held can be spent as the
// wanted tile. A placed blank (Blank with a designated letter) spends
// any undesignated blank on the rack.
func matches(held, want Tile) bool {
	if want.Blank {
		return held.Blank
	}
	return !held.Blank && held.Letter == want.Letter
}

// Take removes a tile matching t and returns the removed tile. It
// returns ErrTileNotInRack if no matching tile is held.
func (r *Rack) Take(t Tile) (Tile, error) {
	for i, held := range r.tiles {
		if matches(held, t) {
			last := len(r.tiles) - 1
			r.tiles[i] = r.tiles[last]
			r.tiles = r.tiles[:last]
			return held, nil
		}
	}
	return Tile{}, ErrTileNotInRack
}

// Has reports whether every tile in the list can be taken from the
// rack at once, counting duplicates.
func (r *Rack) Has(tiles []Tile) bool {
	scratch := append([]Tile{}, r.tiles...)
	for _, want := range tiles {
		found := -1
		for i, held := range scratch {
			if matches(held, want) {
				found = i
				break
			}
		}
		if found == -1 {
			return false
		}
		last := len(scratch) - 1
		scratch[found] = scratch[last]
		scratch = scratch[:last]
	}
	return true
}

// TakeAll removes every tile in the list, all or nothing, returning
// the removed rack tiles.
func (r *Rack) TakeAll(tiles []Tile) ([]Tile, error) {
	if !r.Has(tiles) {
		return nil, ErrTileNotInRack
	}
	taken := make([]Tile, 0, len(tiles))
	for _, want := range tiles {
		t, err := r.Take(want)
		if err != nil {
			// Has guaranteed these are present.
			return nil, err
		}
		taken = append(taken, t)
	}
	return taken, nil
}

// NumTiles returns the number of tiles on the rack.
func (r *Rack) NumTiles() int {
	return len(r.tiles)
}

// Empty reports whether the rack has no tiles.
func (r *Rack) Empty() bool {
	return len(r.tiles) == 0
}

// ScoreOn returns the sum of the tile values on this rack. Blanks
// contribute nothing.
func (r *Rack) ScoreOn() int {
	return lo.SumBy(r.tiles, func(t Tile) int { return t.Value })
}

// TilesOn returns a sorted copy of the rack's tiles.
func (r *Rack) TilesOn() []Tile {
	tiles := append([]Tile{}, r.tiles...)
	sort.SliceStable(tiles, func(i, j int) bool {
		return r.ld.SortOrder[tiles[i].Letter] < r.ld.SortOrder[tiles[j].Letter]
	})
	return tiles
}

// String returns a user-visible version of this rack, alphabetized.
func (r *Rack) String() string {
	return TilesToString(r.TilesOn())
}

// Clear throws away all tiles. The caller is responsible for putting
// them back in a bag if they should survive.
func (r *Rack) Clear() {
	r.tiles = r.tiles[:0]
}

// Copy returns a deep copy of this rack.
func (r *Rack) Copy() *Rack {
	return &Rack{tiles: append([]Tile{}, r.tiles...), ld: r.ld}
}
