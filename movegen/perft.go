package movegen

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

// Perft counts the leaf nodes of the legal game tree to the given depth. A
// forced pass counts as a move; a finished game counts as a single leaf.
func Perft(pos *board.Position, depth int) uint64 {
	return perft(pos, depth, nil)
}

// PerftUnique is Perft that also reports how many distinct positions (board
// plus side to move) appear among the leaves.
func PerftUnique(pos *board.Position, depth int) (uint64, int) {
	seen := make(map[uint64]struct{})
	n := perft(pos, depth, seen)
	return n, len(seen)
}

func positionDigest(pos *board.Position) uint64 {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:8], pos.Black)
	binary.LittleEndian.PutUint64(buf[8:16], pos.White)
	buf[16] = byte(pos.ToMove)
	return xxhash.Sum64(buf[:])
}

func perft(pos *board.Position, depth int, seen map[uint64]struct{}) uint64 {
	if depth == 0 {
		if seen != nil {
			seen[positionDigest(pos)] = struct{}{}
		}
		return 1
	}
	var buf [MaxMoves]move.Move
	moves := LegalMoves(pos, pos.ToMove, buf[:0])
	if len(moves) == 0 {
		if !HasAnyLegalMove(pos, pos.ToMove.Opponent()) {
			if seen != nil {
				seen[positionDigest(pos)] = struct{}{}
			}
			return 1
		}
		pos.Apply(board.Pass, 0)
		n := perft(pos, depth-1, seen)
		pos.Undo(board.Pass, 0)
		return n
	}
	if depth == 1 && seen == nil {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		m.ApplyTo(pos)
		nodes += perft(pos, depth-1, seen)
		m.UndoFrom(pos)
	}
	return nodes
}
