package search

import (
	"context"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

const (
	// Below these empty counts the exact solver skips the transposition
	// table and the fastest-first ordering; both cost more than they save.
	exactTTMinEmpties      = 7
	fastestFirstMinEmpties = 8
)

// solveExact searches s.pos to the end of the game. It never calls the
// evaluator; every score is a TerminalScore.
func (s *Solver) solveExact(ctx context.Context, nodeKey uint64, ply int, α, β int32, pv *PVLine) (int32, error) {
	if err := s.countNode(ctx); err != nil {
		return 0, err
	}
	pos := &s.pos
	empties := pos.Empties()
	if empties == 0 {
		pv.Clear()
		return TerminalScore(pos.DiscDiff(pos.ToMove)), nil
	}

	useTT := s.transpositionTableOptim && empties >= exactTTMinEmpties
	ttMove := board.NoSquare
	if useTT {
		ttEntry := s.ttable.lookup(nodeKey)
		if ttEntry.valid() {
			if int(ttEntry.depth()) >= empties {
				score := ttEntry.score
				switch ttEntry.flag() {
				case TTExact:
					pv.Clear()
					return score, nil
				case TTLower:
					α = max(α, score)
				case TTUpper:
					β = min(β, score)
				}
				if α >= β {
					pv.Clear()
					return score, nil
				}
			}
			ttMove = ttEntry.move()
		}
	}

	alphaOrig := α
	mover := pos.ToMove
	children := movegen.LegalMoves(pos, mover, s.moveBufs[ply][:0])
	if len(children) == 0 {
		if !movegen.HasAnyLegalMove(pos, mover.Opponent()) {
			pv.Clear()
			return TerminalScore(pos.DiscDiff(mover)), nil
		}
		return s.pass(ctx, nodeKey, empties, ply, α, β, pv, s.solveExactAt)
	}

	scores := s.scoreBufs[ply][:len(children)]
	if empties >= fastestFirstMinEmpties {
		orderFastestFirst(pos, children, scores, ttMove)
	} else {
		orderMoves(pos, children, scores, ttMove, nil, ply)
	}

	var childPV PVLine
	bestValue := -Infinity
	bestMove := board.NoSquare
	for _, child := range children {
		child.ApplyTo(pos)
		childKey := s.zobrist.AddMove(nodeKey, child, mover)
		value, err := s.solveExact(ctx, childKey, ply+1, -β, -α, &childPV)
		child.UndoFrom(pos)
		if err != nil {
			return 0, err
		}
		value = -value
		if value > bestValue {
			bestValue = value
			bestMove = child.Square
			pv.Update(child.Square, &childPV, bestValue)
		}
		α = max(α, bestValue)
		if bestValue >= β {
			break
		}
		childPV.Clear()
	}
	if useTT {
		s.storeResult(nodeKey, bestValue, alphaOrig, β, empties, bestMove)
	}
	return bestValue, nil
}

// solveExactAt adapts solveExact to searchFunc; depth is implied by the
// number of empty squares.
func (s *Solver) solveExactAt(ctx context.Context, nodeKey uint64, _ int, ply int, α, β int32, pv *PVLine) (int32, error) {
	return s.solveExact(ctx, nodeKey, ply, α, β, pv)
}
