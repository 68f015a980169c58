package search

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

type fixture struct {
	Name          string   `yaml:"name"`
	Position      string   `yaml:"position"`
	GameOver      bool     `yaml:"game_over"`
	NumMoves      int      `yaml:"num_moves"`
	ExactDiscDiff *int     `yaml:"exact_disc_diff"`
	BestMoves     []string `yaml:"best_moves"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	bts, err := os.ReadFile("testdata/positions.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var fixtures []fixture
	if err := yaml.Unmarshal(bts, &fixtures); err != nil {
		t.Fatal(err)
	}
	return fixtures
}

func newTestSolver() *Solver {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTTableSizePower, 16)
	return NewSolver(&cfg)
}

// exhaustive is plain negamax with no pruning, no table and no ordering. Its
// leaf and pass rules are the solver's.
func exhaustive(pos *board.Position, depth int) int32 {
	if depth == 0 || pos.Empties() == 0 {
		if movegen.IsGameOver(pos) {
			return TerminalScore(pos.DiscDiff(pos.ToMove))
		}
		return eval.EvaluateFor(pos, pos.ToMove)
	}
	moves := movegen.GenerateMoves(pos, pos.ToMove)
	if len(moves) == 0 {
		if !movegen.HasAnyLegalMove(pos, pos.ToMove.Opponent()) {
			return TerminalScore(pos.DiscDiff(pos.ToMove))
		}
		pos.Apply(board.Pass, 0)
		v := -exhaustive(pos, depth)
		pos.Undo(board.Pass, 0)
		return v
	}
	best := -Infinity
	for _, m := range moves {
		m.ApplyTo(pos)
		best = max(best, -exhaustive(pos, depth-1))
		m.UndoFrom(pos)
	}
	return best
}

func TestFixtures(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	for _, f := range loadFixtures(t) {
		t.Run(f.Name, func(t *testing.T) {
			is := is.New(t)
			pos, err := board.ParsePosition(f.Position)
			is.NoErr(err)
			is.Equal(movegen.IsGameOver(&pos), f.GameOver)
			is.Equal(len(movegen.GenerateMoves(&pos, pos.ToMove)), f.NumMoves)

			res, err := s.ChooseMove(context.Background(), &pos, Budget{MaxDepth: 2})
			switch {
			case f.GameOver:
				is.True(errors.Is(err, ErrGameOver))
			case f.NumMoves == 0:
				is.NoErr(err)
				is.True(res.Move.IsPass())
			default:
				is.NoErr(err)
				is.True(movegen.Flips(&pos, pos.ToMove, res.Move.Square) != 0)
			}
			if f.ExactDiscDiff == nil {
				return
			}
			// The endgame threshold is reached, so even a depth 2 budget
			// gives an exact answer.
			is.True(res.Exact)
			is.Equal(res.DiscDiff, *f.ExactDiscDiff)
			is.True(contains(f.BestMoves, res.Move.Square.String()))
		})
	}
	is.True(s.Nodes() > 0)
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

func TestOpeningChooseMove(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	pos := board.NewStartingPosition()
	res, err := s.ChooseMove(context.Background(), &pos, Budget{MaxDepth: 4})
	is.NoErr(err)
	is.Equal(res.Depth, 4)
	is.True(!res.Exact)
	is.Equal(res.Move.NumFlips(), 1)
	is.True(len(res.PV) > 0)
	is.Equal(res.PV[0], res.Move.Square)
	is.True(res.Nodes > 0)
	// the position was copied, not searched in place.
	is.Equal(pos, board.NewStartingPosition())
}

func TestAlphaBetaMatchesExhaustiveSearch(t *testing.T) {
	is := is.New(t)
	rng := testhelpers.NewRNG(42)
	solvers := map[string]*Solver{
		"all":       newTestSolver(),
		"no-tt":     newTestSolver(),
		"no-killer": newTestSolver(),
	}
	solvers["no-tt"].SetTranspositionTableOptim(false)
	solvers["no-killer"].SetKillerPlayOptim(false)

	for i := 0; i < 25; i++ {
		pos := testhelpers.RandomLivePosition(rng, 14+rng.Intn(40))
		if !movegen.HasAnyLegalMove(&pos, pos.ToMove) {
			continue
		}
		depth := 1 + rng.Intn(3)
		want := exhaustive(&pos, depth)
		for name, s := range solvers {
			res, err := s.Search(context.Background(), &pos, depth)
			is.NoErr(err)
			if res.Score != want {
				t.Fatalf("%s: position %s depth %d: got %d want %d", name, pos.String(), depth, res.Score, want)
			}
			// The chosen move achieves the root value.
			m := res.Move
			m.ApplyTo(&pos)
			is.Equal(-exhaustive(&pos, depth-1), want)
			m.UndoFrom(&pos)
		}
	}
}

func TestEndgameSolverIsExact(t *testing.T) {
	is := is.New(t)
	rng := testhelpers.NewRNG(99)
	s := newTestSolver()
	for i := 0; i < 12; i++ {
		empties := 6 + rng.Intn(4)
		pos := testhelpers.RandomLivePosition(rng, empties)
		if !movegen.HasAnyLegalMove(&pos, pos.ToMove) {
			continue
		}
		want := exhaustive(&pos, board.NumSquares)

		res, err := s.SolveExact(context.Background(), &pos)
		is.NoErr(err)
		is.True(res.Exact)
		is.Equal(res.Score, want)
		is.Equal(res.DiscDiff, DiscDiffFromScore(want))

		res, err = s.ChooseMove(context.Background(), &pos, Budget{MaxDepth: 1})
		is.NoErr(err)
		is.True(res.Exact)
		is.Equal(res.Score, want)
	}
}

func TestEndgameWithoutIterativeDeepening(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	s.SetIterativeDeepening(false)
	pos := testhelpers.RandomLivePosition(testhelpers.NewRNG(3), 9)
	if !movegen.HasAnyLegalMove(&pos, pos.ToMove) {
		t.Skip("side to move must pass")
	}
	res, err := s.ChooseMove(context.Background(), &pos, Budget{MaxDepth: 3})
	is.NoErr(err)
	is.True(res.Exact)
	is.Equal(res.Score, exhaustive(&pos, board.NumSquares))
}

func TestChooseMoveErrors(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	pos := board.NewStartingPosition()

	_, err := s.ChooseMove(context.Background(), &pos, Budget{})
	is.True(errors.Is(err, ErrInvalidBudget))
	_, err = s.ChooseMove(context.Background(), &pos, Budget{MaxDepth: -1})
	is.True(errors.Is(err, ErrInvalidBudget))
	_, err = s.Search(context.Background(), &pos, 0)
	is.True(errors.Is(err, ErrInvalidBudget))

	bad := pos
	bad.White |= bad.Black
	_, err = s.ChooseMove(context.Background(), &bad, Budget{MaxDepth: 2})
	is.True(errors.Is(err, board.ErrBadPosition))

	over := testhelpers.MustParse("XXX------------------------------------------------------------- O 10")
	_, err = s.ChooseMove(context.Background(), &over, Budget{MaxDepth: 2})
	is.True(errors.Is(err, ErrGameOver))
}

func TestChooseMoveRespectsTimeLimit(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	pos := testhelpers.RandomLivePosition(testhelpers.NewRNG(8), 40)
	if !movegen.HasAnyLegalMove(&pos, pos.ToMove) {
		t.Skip("side to move must pass")
	}
	res, err := s.ChooseMove(context.Background(), &pos, Budget{TimeLimit: 50 * time.Millisecond})
	is.NoErr(err)
	is.True(res.Depth >= 1)
	is.True(res.Depth < MaxSearchDepth)
	is.True(res.Elapsed < 2*time.Second)
	is.True(movegen.Flips(&pos, pos.ToMove, res.Move.Square) != 0)
}

func TestCancelledSearchStillReturnsMove(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	pos := board.NewStartingPosition()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.ChooseMove(ctx, &pos, Budget{MaxDepth: 8})
	is.NoErr(err)
	is.Equal(res.Depth, 1)
	is.Equal(res.Move.NumFlips(), 1)

	// Without iterative deepening the first iteration is abandoned and a
	// depth 1 search is run instead.
	s.SetIterativeDeepening(false)
	res, err = s.ChooseMove(ctx, &pos, Budget{MaxDepth: 8})
	is.NoErr(err)
	is.Equal(res.Depth, 1)

	// A fixed-depth search has no fallback.
	pos = testhelpers.RandomLivePosition(testhelpers.NewRNG(4), 40)
	if movegen.HasAnyLegalMove(&pos, pos.ToMove) {
		_, err = s.Search(ctx, &pos, 8)
		is.True(errors.Is(err, context.Canceled))
	}
}

func TestIterationLog(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	pos := board.NewStartingPosition()
	res, err := s.ChooseMove(context.Background(), &pos, Budget{MaxDepth: 3})
	is.NoErr(err)

	var iters []IterationLog
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &iters))
	is.Equal(len(iters), 3)
	for i, it := range iters {
		is.Equal(it.Depth, i+1)
		is.True(len(it.PV) > 0)
		is.Equal(it.PV[0], it.Move)
	}
	is.Equal(iters[2].Score, res.Score)
	is.Equal(iters[2].Move, res.Move.Square.String())
}

func TestIterationDepths(t *testing.T) {
	is := is.New(t)
	s := newTestSolver()

	s.pos = board.NewStartingPosition()
	is.Equal(s.iterationDepths(3), []int{1, 2, 3})

	s.pos = testhelpers.RandomLivePosition(testhelpers.NewRNG(1), 10)
	is.Equal(s.iterationDepths(2), []int{1, 2, 3, 4, 10})
	s.SetEndgameEmpties(8)
	is.Equal(s.iterationDepths(20), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	s.SetIterativeDeepening(false)
	is.Equal(s.iterationDepths(6), []int{6})
}
