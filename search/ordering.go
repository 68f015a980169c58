package search

import (
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/movegen"
)

const (
	HashMoveOffset = 1_000_000
	Killer0Offset  = 500_000
	Killer1Offset  = 400_000
	cornerBonus    = 10_000
)

// staticMoveScore ranks a move without searching it: the square's current
// positional weight, a bonus for corners, and a slight preference for moves
// that flip fewer discs.
func staticMoveScore(pos *board.Position, m move.Move) int32 {
	if m.IsPass() {
		return 0
	}
	s := eval.SquareWeight(pos, m.Square, eval.PhaseOf(pos.Ply)) * 100
	if m.Square.IsCorner() {
		s += cornerBonus
	}
	return s - int32(m.NumFlips())
}

// orderMoves sorts moves best-first: the transposition table move, then the
// killers for this ply, then by static score. Ties keep generation order.
// scores must be as long as moves. killers may be nil.
func orderMoves(pos *board.Position, moves []move.Move, scores []int32,
	ttMove board.Square, killers *killerTable, ply int) {

	for i, m := range moves {
		s := staticMoveScore(pos, m)
		if m.Square == ttMove {
			s += HashMoveOffset
		} else if killers != nil {
			switch killers.slot(ply, m.Square) {
			case 0:
				s += Killer0Offset
			case 1:
				s += Killer1Offset
			}
		}
		scores[i] = s
	}
	sortByScore(moves, scores)
}

// orderFastestFirst is endgame ordering: moves that leave the opponent the
// fewest replies go first.
func orderFastestFirst(pos *board.Position, moves []move.Move, scores []int32, ttMove board.Square) {
	opp := pos.ToMove.Opponent()
	for i, m := range moves {
		m.ApplyTo(pos)
		mob := int32(movegen.Mobility(pos, opp))
		m.UndoFrom(pos)
		s := -mob*cornerBonus + staticMoveScore(pos, m)/100
		if m.Square == ttMove {
			s += HashMoveOffset
		}
		scores[i] = s
	}
	sortByScore(moves, scores)
}

// sortByScore is a stable insertion sort, descending. Move lists are short and
// this does not allocate.
func sortByScore(moves []move.Move, scores []int32) {
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < s {
			moves[j+1], scores[j+1] = moves[j], scores[j]
			j--
		}
		moves[j+1], scores[j+1] = m, s
	}
}
