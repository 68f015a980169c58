package movegen_test

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func sq(s string) board.Square {
	q, err := board.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return q
}

func onBoard(c, r int) bool {
	return c >= 0 && c < board.Dim && r >= 0 && r < board.Dim
}

// walkFlips finds the flips for a move by walking each line one square at a
// time.
func walkFlips(pos *board.Position, side board.Color, at board.Square) uint64 {
	if pos.At(at) != board.Empty {
		return 0
	}
	var flips uint64
	for _, d := range board.Directions {
		dc, dr := d.Step()
		c, r := at.Col()+dc, at.Row()+dr
		var run uint64
		for onBoard(c, r) && pos.At(board.SquareAt(c, r)) == side.Opponent() {
			run |= board.SquareAt(c, r).Bit()
			c, r = c+dc, r+dr
		}
		if run != 0 && onBoard(c, r) && pos.At(board.SquareAt(c, r)) == side {
			flips |= run
		}
	}
	return flips
}

func TestOpeningMoves(t *testing.T) {
	is := is.New(t)
	pos := board.NewStartingPosition()
	moves := movegen.GenerateMoves(&pos, board.Black)
	is.Equal(len(moves), 4)
	is.Equal(move.MovesString(moves), "d3 c4 f5 e6")
	for _, m := range moves {
		is.Equal(m.NumFlips(), 1)
	}
	is.Equal(len(movegen.GenerateMoves(&pos, board.White)), 4)
}

func TestOpeningScenario(t *testing.T) {
	is := is.New(t)
	pos := board.NewStartingPosition()
	m, err := movegen.Play(&pos, sq("f5"))
	is.NoErr(err)
	is.Equal(m.Flips, sq("e5").Bit())
	is.Equal(pos.Count(board.Black), 4)
	is.Equal(pos.Count(board.White), 1)
	is.Equal(pos.ToMove, board.White)
	is.Equal(pos.Ply, 1)
}

func TestMoveLegalitySoundness(t *testing.T) {
	is := is.New(t)
	rng := testhelpers.NewRNG(1)
	for i := 0; i < 300; i++ {
		pos := testhelpers.RandomPosition(rng, rng.Intn(60))
		for _, side := range []board.Color{board.Black, board.White} {
			legal := movegen.MoveBits(&pos, side)
			var want uint64
			for s := board.Square(0); s < board.NumSquares; s++ {
				f := walkFlips(&pos, side, s)
				is.Equal(movegen.Flips(&pos, side, s), f)
				if f != 0 {
					want |= s.Bit()
				}
			}
			is.Equal(legal, want)
			is.Equal(movegen.HasAnyLegalMove(&pos, side), want != 0)
			for _, m := range movegen.GenerateMoves(&pos, side) {
				is.True(m.Flips != 0)
				is.True(pos.EmptyBits()&m.Square.Bit() != 0)
				is.Equal(m.Flips&pos.Discs(side.Opponent()), m.Flips)
			}
		}
	}
}

func TestApplyUndoInverse(t *testing.T) {
	is := is.New(t)
	rng := testhelpers.NewRNG(2)
	var buf [movegen.MaxMoves]move.Move
	for game := 0; game < 50; game++ {
		pos := board.NewStartingPosition()
		for !movegen.IsGameOver(&pos) {
			moves := movegen.LegalMoves(&pos, pos.ToMove, buf[:0])
			if len(moves) == 0 {
				moves = append(moves, move.NewPass())
			}
			for _, m := range moves {
				before := pos
				m.ApplyTo(&pos)
				m.UndoFrom(&pos)
				is.Equal(pos, before)
			}
			m := moves[rng.Intn(len(moves))]
			mover := pos.ToMove
			own, opp := pos.Count(mover), pos.Count(mover.Opponent())
			m.ApplyTo(&pos)

			is.NoErr(pos.Validate())
			is.Equal(pos.Count(board.Black)+pos.Count(board.White)+pos.Empties(), board.NumSquares)
			if m.IsPass() {
				is.Equal(pos.Count(mover), own)
			} else {
				is.Equal(pos.Count(mover), own+m.NumFlips()+1)
				is.Equal(pos.Count(mover.Opponent()), opp-m.NumFlips())
			}
		}
	}
}

func TestLegalMovesDoesNotAllocate(t *testing.T) {
	pos := testhelpers.RandomPosition(testhelpers.NewRNG(3), 30)
	var buf [movegen.MaxMoves]move.Move
	allocs := testing.AllocsPerRun(100, func() {
		movegen.LegalMoves(&pos, pos.ToMove, buf[:0])
	})
	if allocs != 0 {
		t.Errorf("LegalMoves allocated %v times", allocs)
	}
}

func TestTerminalDetection(t *testing.T) {
	is := is.New(t)
	empty := "--------"

	// White has no move; Black does.
	pos, err := board.FromRows([]string{"XO------", empty, empty, empty, empty, empty, empty, empty}, board.White, 10)
	is.NoErr(err)
	is.True(!movegen.IsGameOver(&pos))
	is.True(!movegen.HasAnyLegalMove(&pos, board.White))
	is.True(movegen.HasAnyLegalMove(&pos, board.Black))

	// Neither side can move.
	pos, err = board.FromRows([]string{"X-------", empty, empty, empty, empty, empty, empty, "-------O"}, board.Black, 10)
	is.NoErr(err)
	is.True(movegen.IsGameOver(&pos))

	// White wiped out.
	pos, err = board.FromRows([]string{"XXX-----", empty, empty, empty, empty, empty, empty, empty}, board.White, 10)
	is.NoErr(err)
	is.True(movegen.IsGameOver(&pos))
	is.Equal(movegen.FinalDiscDiff(&pos, board.Black), 3)

	// Full board.
	full := "XXXXXXXX"
	pos, err = board.FromRows([]string{full, full, full, full, "OOOOOOOO", "OOOOOOOO", "OOOOOOOO", "OOOOOOOX"}, board.Black, 60)
	is.NoErr(err)
	is.True(movegen.IsGameOver(&pos))
	is.Equal(movegen.FinalDiscDiff(&pos, board.White), -2)
}

func TestPlay(t *testing.T) {
	is := is.New(t)
	pos := board.NewStartingPosition()
	played, err := movegen.PlayMoveList(&pos, "f5d6c3 d3,c4")
	is.NoErr(err)
	is.Equal(len(played), 5)
	is.Equal(pos.Ply, 5)
	is.Equal(pos.ToMove, board.White)

	pos = board.NewStartingPosition()
	_, err = movegen.PlayMoveList(&pos, "f5f5")
	is.True(err != nil)
	is.Equal(pos.Ply, 1)

	pos = board.NewStartingPosition()
	_, err = movegen.Play(&pos, board.Pass)
	is.True(err != nil)

	pos, err = board.FromRows([]string{"XO------", "--------", "--------", "--------", "--------", "--------", "--------", "--------"}, board.White, 3)
	is.NoErr(err)
	m, err := movegen.Play(&pos, board.Pass)
	is.NoErr(err)
	is.True(m.IsPass())
	is.Equal(pos.ToMove, board.Black)
}
