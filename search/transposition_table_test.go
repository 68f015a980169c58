package search

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
)

func TestTableStoreAndLookup(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.SetSingleThreadedMode()
	tt.ResetWithPower(10)
	is.Equal(tt.Size(), 1024)

	key := uint64(0xdeadbeefcafe1234)
	tt.store(key, newEntry(-35, TTLower, 7, board.Square(19)))
	e := tt.lookup(key)
	is.True(e.valid())
	is.Equal(e.score, int32(-35))
	is.Equal(e.flag(), uint8(TTLower))
	is.Equal(e.depth(), uint8(7))
	is.Equal(e.move(), board.Square(19))
	is.Equal(tt.hits.Load(), uint64(1))

	// Same slot, different position: a miss, never a wrong answer.
	other := key ^ 1<<40
	is.Equal(other&tt.sizeMask, key&tt.sizeMask)
	is.True(!tt.lookup(other).valid())
	is.Equal(tt.t2collisions.Load(), uint64(1))

	// Stores overwrite.
	tt.store(other, newEntry(12, TTExact, 2, board.Square(44)))
	is.True(!tt.lookup(key).valid())
	is.Equal(tt.lookup(other).score, int32(12))
	is.Equal(tt.created.Load(), uint64(2))

	tt.ResetWithPower(10)
	is.True(!tt.lookup(other).valid())
	is.Equal(tt.created.Load(), uint64(0))
}

func TestTableSizeIsClamped(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.ResetWithPower(2)
	is.Equal(tt.Size(), 1<<minSizePowerOf2)
	tt.ResetWithPower(40)
	is.Equal(tt.Size(), 1<<maxSizePowerOf2)
	tt.Reset(0)
	is.Equal(tt.Size(), 1<<minSizePowerOf2)
}

func TestTableMultiThreadedMode(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.SetMultiThreadedMode()
	tt.ResetWithPower(12)
	done := make(chan bool)
	for g := 0; g < 4; g++ {
		go func(g int) {
			for i := 0; i < 1000; i++ {
				k := uint64(g<<32 | i)
				tt.store(k, newEntry(int32(i), TTExact, 3, board.Square(i%64)))
				tt.lookup(k)
			}
			done <- true
		}(g)
	}
	for g := 0; g < 4; g++ {
		<-done
	}
	is.Equal(tt.created.Load(), uint64(4000))
}

func TestEntryDepthFitsExactSolves(t *testing.T) {
	is := is.New(t)
	e := newEntry(ExactOffset+64, TTExact, MaxSearchDepth, board.Pass)
	is.Equal(int(e.depth()), MaxSearchDepth)
	is.Equal(e.flag(), uint8(TTExact))
}
