package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a disc-flipping game position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64
	// posTable[sq][0] is a black disc on sq, posTable[sq][1] a white one.
	posTable [board.NumSquares][2]uint64
}

func colorIdx(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumSquares; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) Hash(pos *board.Position) uint64 {
	key := uint64(0)
	for c, bb := range [2]uint64{pos.Black, pos.White} {
		for bb != 0 {
			sq := board.PopSquare(&bb)
			key ^= z.posTable[sq][c]
		}
	}
	if pos.ToMove == board.White {
		key ^= z.whiteToMove
	}
	return key
}

// AddMove returns the key of the position after mover plays m. Every term is
// an XOR, so calling it again with the same move recovers the original key.
func (z *Zobrist) AddMove(key uint64, m move.Move, mover board.Color) uint64 {
	if !m.IsPass() {
		own := colorIdx(mover)
		opp := 1 - own
		key ^= z.posTable[m.Square][own]
		flips := m.Flips
		for flips != 0 {
			sq := board.PopSquare(&flips)
			key ^= z.posTable[sq][opp] ^ z.posTable[sq][own]
		}
	}
	key ^= z.whiteToMove
	return key
}
