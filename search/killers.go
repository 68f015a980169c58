package search

import "github.com/domino14/othello/board"

// MaxPly bounds the distance from the root. Two passes in a row end the
// game, so a search of depth d never goes deeper than 2d plies.
const MaxPly = 128

const MaxKillers = 2

// killerTable remembers, per ply from the root, the last two moves that caused
// a beta cutoff.
type killerTable struct {
	k [MaxPly][MaxKillers]board.Square
}

func (kt *killerTable) clear() {
	for ply := range kt.k {
		kt.k[ply][0] = board.NoSquare
		kt.k[ply][1] = board.NoSquare
	}
}

func (kt *killerTable) store(ply int, sq board.Square) {
	if sq == board.Pass || kt.k[ply][0] == sq {
		return
	}
	kt.k[ply][1] = kt.k[ply][0]
	kt.k[ply][0] = sq
}

// slot returns 0 or 1 if sq is a killer at ply, and -1 otherwise.
func (kt *killerTable) slot(ply int, sq board.Square) int {
	if sq == board.NoSquare {
		return -1
	}
	switch sq {
	case kt.k[ply][0]:
		return 0
	case kt.k[ply][1]:
		return 1
	}
	return -1
}
