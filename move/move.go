package move

import (
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/othello/board"
)

// A Move is a square to place a disc on (or board.Pass) together with the
// opponent discs it flips. Moves are small values and are copied freely.
type Move struct {
	Square board.Square
	Flips  uint64
}

// NewPass returns the pass move.
func NewPass() Move {
	return Move{Square: board.Pass}
}

func (m Move) IsPass() bool {
	return m.Square == board.Pass
}

func (m Move) NumFlips() int {
	return board.PopCount(m.Flips)
}

// Equals compares target squares only; flip sets are implied by the position.
func (m Move) Equals(o Move) bool {
	return m.Square == o.Square
}

func (m Move) String() string {
	return m.Square.String()
}

// ApplyTo plays m on pos for the side to move.
func (m Move) ApplyTo(pos *board.Position) {
	pos.Apply(m.Square, m.Flips)
}

// UndoFrom takes m back on pos.
func (m Move) UndoFrom(pos *board.Position) {
	pos.Undo(m.Square, m.Flips)
}

// MovesString joins move coordinates with spaces, e.g. "f5 d6 c3".
func MovesString(moves []Move) string {
	return strings.Join(lo.Map(moves, func(m Move, _ int) string {
		return m.String()
	}), " ")
}
