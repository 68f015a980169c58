package search

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/othello/board"
)

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	moves [MaxPly]board.Square
	n     int
	score int32
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.n = 0
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(sq board.Square, child *PVLine, score int32) {
	pvLine.moves[0] = sq
	pvLine.n = 1 + copy(pvLine.moves[1:], child.moves[:child.n])
	pvLine.score = score
}

func (pvLine *PVLine) Moves() []board.Square {
	return pvLine.moves[:pvLine.n]
}

func (pvLine *PVLine) Score() int32 {
	return pvLine.score
}

// Strings returns the line as square names.
func (pvLine *PVLine) Strings() []string {
	return lo.Map(pvLine.Moves(), func(sq board.Square, _ int) string {
		return sq.String()
	})
}

func (pvLine PVLine) String() string {
	return fmt.Sprintf("PV; val %d; %s", pvLine.score, strings.Join(pvLine.Strings(), " "))
}
