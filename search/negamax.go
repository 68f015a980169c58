package search

import (
	"context"
	"errors"
	"time"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/movegen"
)

// errSearchAborted unwinds an iteration that ran out of time. The driver
// discards whatever that iteration found.
var errSearchAborted = errors.New("search aborted")

const abortCheckMask = 1<<10 - 1

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

func (s *Solver) countNode(ctx context.Context) error {
	n := s.nodes.Add(1)
	if !s.abortable || n&abortCheckMask != 0 {
		return nil
	}
	if ctx.Err() != nil {
		return errSearchAborted
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return errSearchAborted
	}
	return nil
}

// negamax returns the value of s.pos for the side to move. A pass does not
// use up depth. ply is the distance from the root.
func (s *Solver) negamax(ctx context.Context, nodeKey uint64, depth, ply int, α, β int32, pv *PVLine) (int32, error) {
	pos := &s.pos
	empties := pos.Empties()
	if depth >= empties && empties <= s.endgameEmpties {
		return s.solveExact(ctx, nodeKey, ply, α, β, pv)
	}
	if err := s.countNode(ctx); err != nil {
		return 0, err
	}

	ttMove := board.NoSquare

	if s.transpositionTableOptim {
		ttEntry := s.ttable.lookup(nodeKey)
		if ttEntry.valid() {
			if int(ttEntry.depth()) >= depth {
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
			// search hash move first, even from a shallower search.
			ttMove = ttEntry.move()
		}
	}

	// bounds are classified against the window actually searched.
	alphaOrig := α

	if depth == 0 || empties == 0 {
		pv.Clear()
		if movegen.IsGameOver(pos) {
			return TerminalScore(pos.DiscDiff(pos.ToMove)), nil
		}
		return eval.EvaluateFor(pos, pos.ToMove), nil
	}

	mover := pos.ToMove
	var childPV PVLine
	children := movegen.LegalMoves(pos, mover, s.moveBufs[ply][:0])
	if len(children) == 0 {
		if !movegen.HasAnyLegalMove(pos, mover.Opponent()) {
			pv.Clear()
			return TerminalScore(pos.DiscDiff(mover)), nil
		}
		return s.pass(ctx, nodeKey, depth, ply, α, β, pv, s.negamax)
	}

	var killers *killerTable
	if s.killerPlayOptim {
		killers = &s.killers
	}
	scores := s.scoreBufs[ply][:len(children)]
	orderMoves(pos, children, scores, ttMove, killers, ply)

	bestValue := -Infinity
	bestMove := board.NoSquare
	for _, child := range children {
		child.ApplyTo(pos)
		childKey := s.zobrist.AddMove(nodeKey, child, mover)
		value, err := s.negamax(ctx, childKey, depth-1, ply+1, -β, -α, &childPV)
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
			if s.killerPlayOptim {
				s.killers.store(ply, child.Square)
			}
			break // beta cut-off
		}
		childPV.Clear()
	}
	if s.transpositionTableOptim {
		s.storeResult(nodeKey, bestValue, alphaOrig, β, depth, bestMove)
	}
	return bestValue, nil
}

type searchFunc func(ctx context.Context, nodeKey uint64, depth, ply int, α, β int32, pv *PVLine) (int32, error)

// pass plays the forced pass for the side to move and searches the reply with
// the same depth.
func (s *Solver) pass(ctx context.Context, nodeKey uint64, depth, ply int, α, β int32, pv *PVLine, next searchFunc) (int32, error) {
	pos := &s.pos
	var childPV PVLine
	p := move.NewPass()
	childKey := s.zobrist.AddMove(nodeKey, p, pos.ToMove)
	p.ApplyTo(pos)
	value, err := next(ctx, childKey, depth, ply+1, -β, -α, &childPV)
	p.UndoFrom(pos)
	if err != nil {
		return 0, err
	}
	pv.Update(board.Pass, &childPV, -value)
	return -value, nil
}

func (s *Solver) storeResult(nodeKey uint64, bestValue, alphaOrig, β int32, depth int, bestMove board.Square) {
	var flag uint8
	if bestValue <= alphaOrig {
		flag = TTUpper
	} else if bestValue >= β {
		flag = TTLower
	} else {
		flag = TTExact
	}
	s.ttable.store(nodeKey, newEntry(bestValue, flag, depth, bestMove))
}
