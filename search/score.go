package search

import "github.com/domino14/othello/board"

const (
	// ExactOffset is added to the disc difference of a won game (and
	// subtracted for a lost one) so that any proven result outranks every
	// heuristic score.
	ExactOffset = 10_000_000
	// Infinity bounds the search window.
	Infinity = int32(1 << 30)
)

// TerminalScore is the score of a finished game for the side whose disc
// difference is diff.
func TerminalScore(diff int) int32 {
	switch {
	case diff > 0:
		return ExactOffset + int32(diff)
	case diff < 0:
		return -ExactOffset + int32(diff)
	}
	return 0
}

// IsExactScore reports whether s is a proven win or loss. A draw scores 0 and
// cannot be told apart from a level heuristic score by value alone.
func IsExactScore(s int32) bool {
	return s > ExactOffset-board.NumSquares || s < -ExactOffset+board.NumSquares
}

// DiscDiffFromScore recovers the final disc difference from an exact score.
func DiscDiffFromScore(s int32) int {
	switch {
	case s > ExactOffset-board.NumSquares:
		return int(s - ExactOffset)
	case s < -ExactOffset+board.NumSquares:
		return int(s + ExactOffset)
	}
	return 0
}
