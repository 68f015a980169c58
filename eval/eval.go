// Package eval scores non-terminal positions. Scores are from Black's point of
// view: positive is good for Black.
package eval

import (
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// MaxHeuristic bounds the magnitude of any Evaluate result. Search scores for
// finished games are kept well above it.
const MaxHeuristic = 1_000_000

type cornerEdge struct {
	corner board.Square
	dirs   [2]board.Direction
}

var cornerEdges = [4]cornerEdge{
	{cornerA1, [2]board.Direction{board.North, board.East}},
	{cornerH1, [2]board.Direction{board.North, board.West}},
	{cornerA8, [2]board.Direction{board.South, board.East}},
	{cornerH8, [2]board.Direction{board.South, board.West}},
}

// Evaluate returns the heuristic score of pos for Black.
func Evaluate(pos *board.Position) int32 {
	phase := PhaseOf(pos.Ply)
	w := phaseWeights[phase]

	score := w.Material*Material(pos) +
		w.Mobility*MobilityScore(pos) +
		w.Positional*Positional(pos, phase) +
		w.Frontier*Frontier(pos) +
		w.Stability*Stability(pos) +
		w.Corner*CornerControl(pos) +
		w.Parity*Parity(pos)

	if score > MaxHeuristic {
		return MaxHeuristic
	} else if score < -MaxHeuristic {
		return -MaxHeuristic
	}
	return score
}

// EvaluateFor returns the score from side's point of view.
func EvaluateFor(pos *board.Position, side board.Color) int32 {
	if side == board.White {
		return -Evaluate(pos)
	}
	return Evaluate(pos)
}

// Material is the disc difference.
func Material(pos *board.Position) int32 {
	return int32(pos.DiscDiff(board.Black))
}

// MobilityScore is the difference in legal move counts, normalized to
// [-100, 100].
func MobilityScore(pos *board.Position) int32 {
	mb := int32(movegen.Mobility(pos, board.Black))
	mw := int32(movegen.Mobility(pos, board.White))
	if mb+mw == 0 {
		return 0
	}
	return 100 * (mb - mw) / (mb + mw)
}

// Positional sums SquareWeight over each side's discs.
func Positional(pos *board.Position, phase Phase) int32 {
	var score int32
	bb := pos.Black
	for bb != 0 {
		score += SquareWeight(pos, board.PopSquare(&bb), phase)
	}
	bb = pos.White
	for bb != 0 {
		score -= SquareWeight(pos, board.PopSquare(&bb), phase)
	}
	return score
}

// FrontierDiscs returns the discs of c that touch at least one empty square.
func FrontierDiscs(pos *board.Position, c board.Color) uint64 {
	return pos.Discs(c) & board.Neighbors(pos.EmptyBits())
}

// Frontier rewards having fewer frontier discs than the opponent, normalized
// to [-100, 100].
func Frontier(pos *board.Position) int32 {
	fb := int32(board.PopCount(FrontierDiscs(pos, board.Black)))
	fw := int32(board.PopCount(FrontierDiscs(pos, board.White)))
	if fb+fw == 0 {
		return 0
	}
	return 100 * (fw - fb) / (fb + fw)
}

// StableDiscs approximates the stable discs of c: owned corners plus the
// unbroken runs of c's discs along the edges leading away from them.
func StableDiscs(pos *board.Position, c board.Color) uint64 {
	own := pos.Discs(c)
	var stable uint64
	for _, ce := range cornerEdges {
		cb := ce.corner.Bit()
		if own&cb == 0 {
			continue
		}
		stable |= cb
		for _, d := range ce.dirs {
			x := board.Shift(cb, d)
			for x&own != 0 {
				stable |= x
				x = board.Shift(x, d)
			}
		}
	}
	return stable
}

func Stability(pos *board.Position) int32 {
	return int32(board.PopCount(StableDiscs(pos, board.Black)) -
		board.PopCount(StableDiscs(pos, board.White)))
}

// CornerControl is the difference in corners owned.
func CornerControl(pos *board.Position) int32 {
	return int32(board.PopCount(pos.Black&board.CornerMask) -
		board.PopCount(pos.White&board.CornerMask))
}

// Parity favors the side expected to make the last move once few squares
// remain: with an odd number of empties that is the side to move.
func Parity(pos *board.Position) int32 {
	empties := pos.Empties()
	if empties == 0 || empties > ParityEmpties {
		return 0
	}
	v := int32(-1)
	if empties%2 == 1 {
		v = 1
	}
	if pos.ToMove == board.White {
		v = -v
	}
	return v
}
