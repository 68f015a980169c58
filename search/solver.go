// Package search picks moves: an iterative-deepening negamax search with a
// transposition table and killer moves, and an exact solver for the last
// empty squares.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/zobrist"
)

const (
	// warmupDepth is how deep the heuristic iterations go before the exact
	// solve when the endgame has already been reached.
	warmupDepth = 4
)

var ErrGameOver = errors.New("game is over")

// Result is what a search found. Score is from the point of view of the side
// to move. DiscDiff is only meaningful when Exact is set.
type Result struct {
	Move     move.Move
	Score    int32
	Depth    int
	Exact    bool
	DiscDiff int
	Nodes    uint64
	PV       []board.Square
	Elapsed  time.Duration
}

type rootMove struct {
	m        move.Move
	estimate int32
}

// Solver searches positions. A Solver is not safe for concurrent use; it owns
// the position being searched, the transposition table, and the killer table.
type Solver struct {
	zobrist *zobrist.Zobrist
	ttable  *TranspositionTable
	killers killerTable

	pos       board.Position
	rootMoves []rootMove
	moveBufs  [MaxPly][movegen.MaxMoves]move.Move
	scoreBufs [MaxPly][movegen.MaxMoves]int32

	iterativeDeepeningOptim bool
	killerPlayOptim         bool
	transpositionTableOptim bool

	endgameEmpties int
	ttMemFraction  float64
	ttSizePower    int

	nodes     atomic.Uint64
	abortable bool
	started   time.Time
	deadline  time.Time

	logStream io.Writer
}

func NewSolver(cfg *config.Config) *Solver {
	s := &Solver{
		zobrist:                 &zobrist.Zobrist{},
		ttable:                  &TranspositionTable{},
		iterativeDeepeningOptim: true,
		killerPlayOptim:         true,
		transpositionTableOptim: true,
		endgameEmpties:          cfg.GetInt(config.ConfigEndgameEmpties),
		ttMemFraction:           cfg.GetFloat64(config.ConfigTTableMemFraction),
		ttSizePower:             cfg.GetInt(config.ConfigTTableSizePower),
	}
	s.zobrist.Initialize()
	s.ttable.SetSingleThreadedMode()
	s.killers.clear()
	return s
}

func (s *Solver) SetIterativeDeepening(id bool) {
	s.iterativeDeepeningOptim = id
}

func (s *Solver) SetKillerPlayOptim(k bool) {
	s.killerPlayOptim = k
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetEndgameEmpties(n int) {
	s.endgameEmpties = n
}

// Nodes returns the number of nodes visited by the current or last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// ChooseMove returns the best move it can find for the side to move in pos
// within the budget. If the side to move has no legal move the pass is
// returned without searching.
func (s *Solver) ChooseMove(ctx context.Context, pos *board.Position, budget Budget) (Result, error) {
	if err := budget.Validate(); err != nil {
		return Result{}, err
	}
	if res, done, err := s.checkRoot(pos); done {
		return res, err
	}
	s.setup(pos)
	if budget.TimeLimit > 0 {
		s.deadline = s.started.Add(budget.TimeLimit)
	}
	return s.run(ctx, s.iterationDepths(budget.depthLimit()), true)
}

// Search runs a single alpha-beta search of pos to the given depth, with no
// iterative deepening and no time limit.
func (s *Solver) Search(ctx context.Context, pos *board.Position, depth int) (Result, error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: depth %d", ErrInvalidBudget, depth)
	}
	if res, done, err := s.checkRoot(pos); done {
		return res, err
	}
	s.setup(pos)
	return s.run(ctx, []int{min(depth, s.pos.Empties())}, false)
}

// SolveExact searches pos to the end of the game.
func (s *Solver) SolveExact(ctx context.Context, pos *board.Position) (Result, error) {
	if res, done, err := s.checkRoot(pos); done {
		return res, err
	}
	s.setup(pos)
	return s.run(ctx, []int{s.pos.Empties()}, false)
}

// checkRoot handles the positions that need no search.
func (s *Solver) checkRoot(pos *board.Position) (Result, bool, error) {
	if err := pos.Validate(); err != nil {
		return Result{}, true, err
	}
	if movegen.IsGameOver(pos) {
		return Result{}, true, ErrGameOver
	}
	if !movegen.HasAnyLegalMove(pos, pos.ToMove) {
		return Result{Move: move.NewPass(), PV: []board.Square{board.Pass}}, true, nil
	}
	return Result{}, false, nil
}

func (s *Solver) setup(pos *board.Position) {
	s.pos = *pos
	s.nodes.Store(0)
	s.started = time.Now()
	s.deadline = time.Time{}
	s.killers.clear()
	if s.transpositionTableOptim {
		if s.ttSizePower > 0 {
			s.ttable.ResetWithPower(s.ttSizePower)
		} else {
			s.ttable.Reset(s.ttMemFraction)
		}
	}
	var buf [movegen.MaxMoves]move.Move
	var scores [movegen.MaxMoves]int32
	moves := movegen.LegalMoves(&s.pos, s.pos.ToMove, buf[:0])
	orderMoves(&s.pos, moves, scores[:len(moves)], board.NoSquare, nil, 0)
	s.rootMoves = s.rootMoves[:0]
	for i, m := range moves {
		s.rootMoves = append(s.rootMoves, rootMove{m: m, estimate: scores[i]})
	}
}

// iterationDepths lists the depths the driver should search, in order. Once
// the endgame threshold is reached the last iteration is an exact solve.
func (s *Solver) iterationDepths(maxDepth int) []int {
	empties := s.pos.Empties()
	final := min(maxDepth, empties)
	if empties <= s.endgameEmpties {
		final = empties
	}
	if !s.iterativeDeepeningOptim {
		return []int{final}
	}
	depths := make([]int, 0, final)
	if empties <= s.endgameEmpties {
		for d := 1; d <= warmupDepth && d < final; d++ {
			depths = append(depths, d)
		}
		return append(depths, final)
	}
	for d := 1; d <= final; d++ {
		depths = append(depths, d)
	}
	return depths
}

func (s *Solver) budgetSpent(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

func (s *Solver) run(ctx context.Context, depths []int, mustAnswer bool) (Result, error) {
	var res Result
	var completed bool

	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		var err error
		completed, err = s.iterativelyDeepen(ctx, depths, &res)
		if err != nil || completed || !mustAnswer {
			return err
		}
		// Not even the first iteration finished in time. Depth 1 is always
		// played out so there is a move to return.
		log.Debug().Msg("no-iteration-completed")
		completed, err = s.iterativelyDeepen(ctx, []int{1}, &res)
		return err
	})

	err := g.Wait()
	res.Nodes = s.nodes.Load()
	res.Elapsed = time.Since(s.started)

	log.Info().
		Uint64("ttable-created", s.ttable.created.Load()).
		Uint64("ttable-lookups", s.ttable.lookups.Load()).
		Uint64("ttable-hits", s.ttable.hits.Load()).
		Uint64("ttable-t2collisions", s.ttable.t2collisions.Load()).
		Uint64("nodes", res.Nodes).
		Int("depth", res.Depth).
		Bool("exact", res.Exact).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")

	if err != nil {
		return Result{}, err
	}
	if !completed {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, errors.New("search did not complete")
	}
	return res, nil
}

// iterativelyDeepen searches each depth in turn and keeps the result of the
// deepest one that completed. It reports whether any iteration completed.
func (s *Solver) iterativelyDeepen(ctx context.Context, depths []int, res *Result) (bool, error) {
	initialHashKey := s.zobrist.Hash(&s.pos)
	empties := s.pos.Empties()
	completed := false

	for i, d := range depths {
		if i > 0 && s.budgetSpent(ctx) {
			break
		}
		// depth 1 always runs to completion.
		s.abortable = d > 1
		log.Debug().Int("depth", d).Msg("deepening-iteratively")

		var pv PVLine
		val, best, err := s.searchRoot(ctx, initialHashKey, d, &pv)
		if errors.Is(err, errSearchAborted) {
			log.Debug().Int("depth", d).Msg("iteration-abandoned")
			break
		}
		if err != nil {
			return completed, err
		}
		completed = true
		*res = Result{
			Move:  best,
			Score: val,
			Depth: d,
			Exact: d >= empties,
			PV:    append([]board.Square(nil), pv.Moves()...),
		}
		if res.Exact {
			res.DiscDiff = DiscDiffFromScore(val)
		}
		log.Info().Int32("score", val).Int("depth", d).Str("pv", pv.String()).Msg("best-val")
		s.writeIterationLog(IterationLog{
			Depth:     d,
			Score:     val,
			Move:      best.Square.String(),
			PV:        pv.Strings(),
			Nodes:     s.nodes.Load(),
			ElapsedMs: time.Since(s.started).Milliseconds(),
			Exact:     res.Exact,
		})
		// Sort top layer of moves by value for the next time around.
		sortRootMoves(s.rootMoves)
	}
	return completed, nil
}

// searchRoot searches every root move and records its value as the estimate
// for ordering the next iteration. Alpha rises as better moves are found, so a
// move that fails low only gets an upper bound as its estimate.
func (s *Solver) searchRoot(ctx context.Context, nodeKey uint64, depth int, pv *PVLine) (int32, move.Move, error) {
	pos := &s.pos
	mover := pos.ToMove
	s.nodes.Add(1)

	α, β := -Infinity, Infinity
	bestValue := -Infinity
	var best move.Move
	var childPV PVLine
	for i := range s.rootMoves {
		rm := &s.rootMoves[i]
		rm.m.ApplyTo(pos)
		childKey := s.zobrist.AddMove(nodeKey, rm.m, mover)
		value, err := s.negamax(ctx, childKey, depth-1, 1, -β, -α, &childPV)
		rm.m.UndoFrom(pos)
		if err != nil {
			return 0, move.Move{}, err
		}
		value = -value
		rm.estimate = value
		if value > bestValue {
			bestValue = value
			best = rm.m
			pv.Update(rm.m.Square, &childPV, bestValue)
		}
		α = max(α, bestValue)
		childPV.Clear()
	}
	return bestValue, best, nil
}

func sortRootMoves(rms []rootMove) {
	for i := 1; i < len(rms); i++ {
		rm := rms[i]
		j := i - 1
		for j >= 0 && rms[j].estimate < rm.estimate {
			rms[j+1] = rms[j]
			j--
		}
		rms[j+1] = rm
	}
}
