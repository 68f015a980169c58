package movegen

import (
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

// RandomPosition plays uniformly random legal moves from the starting
// position until at most empties squares are left or the game ends. Forced
// passes are played as they come up.
func RandomPosition(rng *frand.RNG, empties int) board.Position {
	pos := board.NewStartingPosition()
	var buf [MaxMoves]move.Move
	for pos.Empties() > empties && !IsGameOver(&pos) {
		moves := LegalMoves(&pos, pos.ToMove, buf[:0])
		if len(moves) == 0 {
			pos.Apply(board.Pass, 0)
			continue
		}
		moves[rng.Intn(len(moves))].ApplyTo(&pos)
	}
	return pos
}
