package tilemapping

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// RandSource is the randomness a bag consumes. Both *frand.RNG and
// *math/rand.Rand satisfy it. The engine never reaches for ambient
// global randomness; callers inject a source so deals and shuffles
// are reproducible.
type RandSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// DefaultSource returns a fast, well-seeded source for regular play.
func DefaultSource() RandSource {
	return frand.New()
}

// SeededSource returns a deterministic source. Two sources with the
// same seed produce identical shuffles and draws.
func SeededSource(seed uint64) RandSource {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return frand.NewCustom(key[:], 1024, 12)
}
