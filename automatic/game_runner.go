// Package automatic plays the engine against itself, for collecting game
// records and comparing search settings.
package automatic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/search"
)

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	config  *config.Config
	solver  *search.Solver
	budgets [2]search.Budget
	rng     *frand.RNG

	pos          board.Position
	history      []move.Move
	gameID       int
	randomOpener int

	logchan chan string
}

// NewGameRunner returns a runner where both sides use the budget from cfg.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	r := &GameRunner{logchan: logchan, config: cfg}
	b := search.BudgetFromConfig(cfg)
	r.Init(b, b, frand.New())
	return r
}

// Init sets the search budget for each side and the random source used to
// pick opening moves.
func (r *GameRunner) Init(black, white search.Budget, rng *frand.RNG) {
	if r.solver == nil {
		r.solver = search.NewSolver(r.config)
	}
	r.budgets[0] = black
	r.budgets[1] = white
	r.rng = rng
}

// SetRandomOpener makes the first n plies of every game uniformly random, so
// that repeated games between deterministic players differ.
func (r *GameRunner) SetRandomOpener(n int) {
	r.randomOpener = n
}

func (r *GameRunner) Position() board.Position {
	return r.pos
}

// History returns the moves of the current game. Each game gets its own
// slice, so a returned history stays valid after the next StartGame.
func (r *GameRunner) History() []move.Move {
	return r.history
}

func (r *GameRunner) StartGame() {
	r.gameID++
	r.pos = board.NewStartingPosition()
	r.history = nil
	var buf [movegen.MaxMoves]move.Move
	for r.pos.Ply < r.randomOpener && !movegen.IsGameOver(&r.pos) {
		moves := movegen.LegalMoves(&r.pos, r.pos.ToMove, buf[:0])
		m := move.NewPass()
		if len(moves) > 0 {
			m = moves[r.rng.Intn(len(moves))]
		}
		m.ApplyTo(&r.pos)
		r.history = append(r.history, m)
	}
}

func budgetIdx(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

// PlayBestTurn searches for the side to move, plays the result and reports
// it on the log channel.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	mover := r.pos.ToMove
	res, err := r.solver.ChooseMove(ctx, &r.pos, r.budgets[budgetIdx(mover)])
	if err != nil {
		return err
	}
	res.Move.ApplyTo(&r.pos)
	r.history = append(r.history, res.Move)

	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			mover,
			r.gameID,
			r.pos.Ply,
			res.Move,
			res.Score,
			res.Exact,
			res.Depth,
			res.Nodes,
			res.Elapsed.Milliseconds(),
			r.pos.Empties())
	}
	return nil
}

// PlayGame plays a full game from the start and returns the final disc
// difference for Black.
func (r *GameRunner) PlayGame(ctx context.Context) (int, error) {
	r.StartGame()
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		err := r.PlayBestTurn(ctx)
		if errors.Is(err, search.ErrGameOver) {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	diff := movegen.FinalDiscDiff(&r.pos, board.Black)
	log.Debug().Int("game", r.gameID).Int("black-disc-diff", diff).
		Str("moves", move.MovesString(r.history)).Msg("game-over")
	return diff, nil
}
