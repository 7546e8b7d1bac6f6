package tilemapping

import "fmt"

// A Bag is the bag o'tiles!
type Bag struct {
	tiles []Tile
	ld    *LetterDistribution
	rng   RandSource
}

// NewBag creates a full bag for the distribution, shuffled with the
// given source.
func NewBag(ld *LetterDistribution, rng RandSource) *Bag {
	tiles := make([]Tile, 0, ld.TotalTiles())
	for _, rn := range ld.sortedLetters() {
		t := Tile{Letter: rn, Value: int(ld.PointValues[rn])}
		if rn == BlankLetter {
			t = Tile{Letter: BlankLetter, Blank: true}
		}
		for i := uint8(0); i < ld.Distribution[rn]; i++ {
			tiles = append(tiles, t)
		}
	}
	b := &Bag{tiles: tiles, ld: ld, rng: rng}
	b.Shuffle()
	return b
}

// BagFromTiles rebuilds a partially drawn bag, for resuming a saved
// game. The tiles are reshuffled.
func BagFromTiles(ld *LetterDistribution, tiles []Tile, rng RandSource) *Bag {
	b := &Bag{tiles: append([]Tile{}, tiles...), ld: ld, rng: rng}
	b.Shuffle()
	return b
}

// Shuffle shuffles the bag.
func (b *Bag) Shuffle() {
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

func (b *Bag) drawOne() Tile {
	idx := b.rng.Intn(len(b.tiles))
	last := len(b.tiles) - 1
	b.tiles[idx], b.tiles[last] = b.tiles[last], b.tiles[idx]
	t := b.tiles[last]
	b.tiles = b.tiles[:last]
	return t
}

// Draw draws up to n tiles from the bag, without replacement. It
// draws fewer than n if the bag runs out, and can draw no tiles at
// all :o — it never errors.
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn := make([]Tile, 0, n)
	for i := 0; i < n; i++ {
		drawn = append(drawn, b.drawOne())
	}
	return drawn
}

// PutBack returns tiles to the bag and reshuffles, so a subsequent
// draw in the same exchange cannot hand back the returned tiles in a
// predictable order.
func (b *Bag) PutBack(tiles []Tile) {
	if len(tiles) == 0 {
		return
	}
	b.tiles = append(b.tiles, tiles...)
	b.Shuffle()
}

// RemoveTiles takes these exact tiles out of the bag, for dealing a
// known rack. All or nothing: a tile the bag does not hold leaves the
// bag untouched and returns an error.
func (b *Bag) RemoveTiles(tiles []Tile) error {
	scratch := append([]Tile{}, b.tiles...)
	for _, want := range tiles {
		found := -1
		for idx, held := range scratch {
			if held.Blank == want.Blank && (held.Blank || held.Letter == want.Letter) {
				found = idx
				break
			}
		}
		if found == -1 {
			return fmt.Errorf("tile %v not in bag", want)
		}
		last := len(scratch) - 1
		scratch[found] = scratch[last]
		scratch = scratch[:last]
	}
	b.tiles = scratch
	return nil
}

// TilesRemaining returns the number of undrawn tiles.
func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

// Peek returns a copy of the bag contents, for serialization and for
// conservation checks. It does not disturb the bag.
func (b *Bag) Peek() []Tile {
	return append([]Tile{}, b.tiles...)
}

// Count returns how many tiles with this letter remain. Blanks count
// under BlankLetter.
func (b *Bag) Count(letter rune) int {
	ct := 0
	for _, t := range b.tiles {
		if t.Letter == letter {
			ct++
		}
	}
	return ct
}

// LetterDistribution returns the distribution this bag was built from.
func (b *Bag) LetterDistribution() *LetterDistribution {
	return b.ld
}
