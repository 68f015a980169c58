package movegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

var ErrIllegalMove = errors.New("illegal move")

// Play validates and plays sq for the side to move. A pass is only legal when
// the side to move has no other move and the game is not over.
func Play(pos *board.Position, sq board.Square) (move.Move, error) {
	if sq == board.Pass {
		if HasAnyLegalMove(pos, pos.ToMove) {
			return move.Move{}, fmt.Errorf("%w: %s cannot pass with moves available", ErrIllegalMove, pos.ToMove)
		}
		if IsGameOver(pos) {
			return move.Move{}, fmt.Errorf("%w: game is over", ErrIllegalMove)
		}
		m := move.NewPass()
		m.ApplyTo(pos)
		return m, nil
	}
	flips := Flips(pos, pos.ToMove, sq)
	if flips == 0 {
		return move.Move{}, fmt.Errorf("%w: %s at %s", ErrIllegalMove, pos.ToMove, sq)
	}
	m := move.Move{Square: sq, Flips: flips}
	m.ApplyTo(pos)
	return m, nil
}

// splitHistory breaks a move history such as "f5d6c3", "f5 d6 pass c3" or
// "f5,d6,p9" into coordinate tokens.
func splitHistory(history string) []string {
	h := strings.ToLower(history)
	h = strings.NewReplacer(",", "", " ", "", "\n", "", "\t", "").Replace(h)
	var tokens []string
	for len(h) > 0 {
		switch {
		case strings.HasPrefix(h, "pass"):
			tokens = append(tokens, "pass")
			h = h[4:]
		case len(h) >= 2:
			tokens = append(tokens, h[:2])
			h = h[2:]
		default:
			tokens = append(tokens, h)
			h = ""
		}
	}
	return tokens
}

// PlayMoveList replays a move history on pos, validating each move, and
// returns the moves played. On error pos is left at the last legal move.
func PlayMoveList(pos *board.Position, history string) ([]move.Move, error) {
	var played []move.Move
	for i, tok := range splitHistory(history) {
		sq, err := board.ParseSquare(tok)
		if err != nil {
			return played, fmt.Errorf("move %d: %w", i+1, err)
		}
		m, err := Play(pos, sq)
		if err != nil {
			return played, fmt.Errorf("move %d: %w", i+1, err)
		}
		played = append(played, m)
	}
	return played, nil
}
