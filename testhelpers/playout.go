package testhelpers

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// NewRNG returns a deterministic random source for seed.
func NewRNG(seed uint64) *frand.RNG {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return frand.NewCustom(s[:], 1024, 12)
}

func RandomPosition(rng *frand.RNG, empties int) board.Position {
	return movegen.RandomPosition(rng, empties)
}

// RandomLivePosition is RandomPosition, retried until the game is not over.
func RandomLivePosition(rng *frand.RNG, empties int) board.Position {
	for {
		pos := movegen.RandomPosition(rng, empties)
		if !movegen.IsGameOver(&pos) {
			return pos
		}
	}
}

// MustParse parses a compact position or panics.
func MustParse(s string) board.Position {
	pos, err := board.ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return pos
}
