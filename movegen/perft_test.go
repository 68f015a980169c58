package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

func TestPerft(t *testing.T) {
	expected := []uint64{1, 4, 12, 56, 244, 1396, 8200}
	for depth, want := range expected {
		pos := board.NewStartingPosition()
		assert.Equal(t, want, movegen.Perft(&pos, depth), "depth %d", depth)
		assert.Equal(t, board.NewStartingPosition(), pos)
	}
}

func TestPerftUnique(t *testing.T) {
	pos := board.NewStartingPosition()
	nodes, unique := movegen.PerftUnique(&pos, 1)
	assert.Equal(t, uint64(4), nodes)
	assert.Equal(t, 4, unique)

	nodes, unique = movegen.PerftUnique(&pos, 4)
	assert.Equal(t, uint64(244), nodes)
	assert.LessOrEqual(t, uint64(unique), nodes)
	assert.Greater(t, unique, 0)
}

func TestPerftCountsForcedPass(t *testing.T) {
	empty := "--------"
	pos, err := board.FromRows([]string{"XO------", empty, empty, empty, empty, empty, empty, empty}, board.White, 3)
	assert.NoError(t, err)
	// White passes, then Black has exactly one reply (c1).
	assert.Equal(t, uint64(1), movegen.Perft(&pos, 1))
	assert.Equal(t, uint64(1), movegen.Perft(&pos, 2))
}
