// Package movegen generates legal moves and their flip sets using bitboard
// shifts. Nothing here allocates unless the caller's buffer is too small.
package movegen

import (
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

// MaxMoves bounds the number of legal moves in any position; it is a safe
// capacity for caller-supplied buffers.
const MaxMoves = 64

// MoveBits returns the set of empty squares where side may legally play.
func MoveBits(pos *board.Position, side board.Color) uint64 {
	own := pos.Discs(side)
	opp := pos.Discs(side.Opponent())
	empty := pos.EmptyBits()
	var moves uint64
	for _, d := range board.Directions {
		// A bracketed run has at most six opponent discs.
		x := board.Shift(own, d) & opp
		x |= board.Shift(x, d) & opp
		x |= board.Shift(x, d) & opp
		x |= board.Shift(x, d) & opp
		x |= board.Shift(x, d) & opp
		x |= board.Shift(x, d) & opp
		moves |= board.Shift(x, d) & empty
	}
	return moves
}

// HasAnyLegalMove reports whether side has at least one legal move. It stops
// at the first direction that yields one.
func HasAnyLegalMove(pos *board.Position, side board.Color) bool {
	own := pos.Discs(side)
	opp := pos.Discs(side.Opponent())
	empty := pos.EmptyBits()
	if own == 0 || opp == 0 || empty == 0 {
		return false
	}
	for _, d := range board.Directions {
		x := board.Shift(own, d) & opp
		for x != 0 {
			if board.Shift(x, d)&empty != 0 {
				return true
			}
			x = board.Shift(x, d) & opp
		}
	}
	return false
}

// Mobility is the number of legal moves for side.
func Mobility(pos *board.Position, side board.Color) int {
	return board.PopCount(MoveBits(pos, side))
}

// Flips returns the opponent discs that side would flip by playing sq, or 0
// if the move is illegal.
func Flips(pos *board.Position, side board.Color, sq board.Square) uint64 {
	bit := sq.Bit()
	own := pos.Discs(side)
	opp := pos.Discs(side.Opponent())
	if bit == 0 || (own|opp)&bit != 0 {
		return 0
	}
	var flips uint64
	for _, d := range board.Directions {
		var run uint64
		x := board.Shift(bit, d)
		for x&opp != 0 {
			run |= x
			x = board.Shift(x, d)
		}
		if x&own != 0 {
			flips |= run
		}
	}
	return flips
}

// LegalMoves appends side's legal moves, in ascending square order and each
// with its flip set, to buf and returns the result. With a buffer of capacity
// MaxMoves it never allocates. The position is not modified.
func LegalMoves(pos *board.Position, side board.Color, buf []move.Move) []move.Move {
	bits := MoveBits(pos, side)
	for bits != 0 {
		sq := board.PopSquare(&bits)
		buf = append(buf, move.Move{Square: sq, Flips: Flips(pos, side, sq)})
	}
	return buf
}

// GenerateMoves returns side's legal moves in a newly allocated slice.
func GenerateMoves(pos *board.Position, side board.Color) []move.Move {
	return LegalMoves(pos, side, make([]move.Move, 0, 16))
}

// IsGameOver reports whether neither side can move. A full board is always
// game over.
func IsGameOver(pos *board.Position) bool {
	if pos.Empties() == 0 {
		return true
	}
	return !HasAnyLegalMove(pos, board.Black) && !HasAnyLegalMove(pos, board.White)
}

// FinalDiscDiff is side's disc count minus the opponent's. Empty squares left
// at the end of the game are not awarded to either side.
func FinalDiscDiff(pos *board.Position, side board.Color) int {
	return pos.DiscDiff(side)
}
