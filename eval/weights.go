package eval

import "github.com/domino14/othello/board"

// Phase selects a weight regime. Phases are keyed off the ply count.
type Phase int

const (
	Opening Phase = iota
	Midgame
	Endgame
)

const (
	// MidgameStartPly is the first ply scored with midgame weights.
	MidgameStartPly = 20
	// EndgameStartPly is the first ply scored with endgame weights. In a game
	// without passes, 14 empty squares remain at this point.
	EndgameStartPly = 46
	// ParityEmpties is the number of empty squares at or below which the
	// parity term applies.
	ParityEmpties = 14
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	}
	return "endgame"
}

func PhaseOf(ply int) Phase {
	switch {
	case ply < MidgameStartPly:
		return Opening
	case ply < EndgameStartPly:
		return Midgame
	}
	return Endgame
}

// Weights are the multipliers applied to each evaluation term.
type Weights struct {
	Material   int32
	Mobility   int32
	Positional int32
	Frontier   int32
	Stability  int32
	Corner     int32
	Parity     int32
}

// Mobility and frontier lead in the opening, the square table and stability
// in the midgame, and disc count in the endgame.
var phaseWeights = [3]Weights{
	Opening: {Material: 1, Mobility: 12, Positional: 2, Frontier: 8, Stability: 4, Corner: 20, Parity: 0},
	Midgame: {Material: 3, Mobility: 5, Positional: 6, Frontier: 3, Stability: 12, Corner: 40, Parity: 20},
	Endgame: {Material: 30, Mobility: 2, Positional: 2, Frontier: 1, Stability: 10, Corner: 30, Parity: 60},
}

func WeightsFor(p Phase) Weights {
	return phaseWeights[p]
}

// BaseWeights is the static square table, row 1 first. Corners beat edges,
// edges beat the interior, and the X-squares (diagonally next to a corner)
// and C-squares (orthogonally next to a corner on the edge) are penalized.
var BaseWeights = [board.NumSquares]int32{
	120, -25, 20, 10, 10, 20, -25, 120,
	-25, -20, -3, -3, -3, -3, -20, -25,
	20, -3, 4, 2, 2, 4, -3, 20,
	10, -3, 2, 1, 1, 2, -3, 10,
	10, -3, 2, 1, 1, 2, -3, 10,
	20, -3, 4, 2, 2, 4, -3, 20,
	-25, -20, -3, -3, -3, -3, -20, -25,
	120, -25, 20, 10, 10, 20, -25, 120,
}

// penaltyScale shrinks X- and C-square penalties as the game goes on, in
// tenths.
var penaltyScale = [3]int32{Opening: 10, Midgame: 7, Endgame: 4}

const (
	cornerA1 = board.Square(0)
	cornerH1 = board.Square(7)
	cornerA8 = board.Square(56)
	cornerH8 = board.Square(63)
)

var Corners = [4]board.Square{cornerA1, cornerH1, cornerA8, cornerH8}

// adjacentCorner maps each X- and C-square to the corner it guards.
var adjacentCorner [board.NumSquares]board.Square

// XSquares and CSquares are bitboards of the penalized squares.
var XSquares, CSquares uint64

func init() {
	for i := range adjacentCorner {
		adjacentCorner[i] = board.NoSquare
	}
	for _, c := range Corners {
		col, row := c.Col(), c.Row()
		dc, dr := 1, 1
		if col == board.Dim-1 {
			dc = -1
		}
		if row == board.Dim-1 {
			dr = -1
		}
		x := board.SquareAt(col+dc, row+dr)
		c1 := board.SquareAt(col+dc, row)
		c2 := board.SquareAt(col, row+dr)
		adjacentCorner[x] = c
		adjacentCorner[c1] = c
		adjacentCorner[c2] = c
		XSquares |= x.Bit()
		CSquares |= c1.Bit() | c2.Bit()
	}
}

// SquareWeight is the positional value of sq in pos. An X- or C-square
// penalty is scaled down by phase and disappears once its corner is taken.
func SquareWeight(pos *board.Position, sq board.Square, phase Phase) int32 {
	w := BaseWeights[sq]
	corner := adjacentCorner[sq]
	if corner == board.NoSquare {
		return w
	}
	if pos.At(corner) != board.Empty {
		return 0
	}
	return w * penaltyScale[phase] / 10
}
