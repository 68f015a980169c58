package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Dim is the number of rows and columns on the board.
	Dim = 8
	// NumSquares is the total number of squares.
	NumSquares = Dim * Dim
)

var ErrInvalidSquare = errors.New("invalid square")

// A Square is an index into the board. Square 0 is a1 and square 63 is h8;
// the index is row*8 + col.
type Square uint8

const (
	// Pass is the sentinel square for a move that places no disc.
	Pass Square = NumSquares
	// NoSquare marks the absence of a move (for example, an empty
	// transposition table slot).
	NoSquare Square = 255
)

// SquareAt returns the square for a zero-based column and row.
func SquareAt(col, row int) Square {
	return Square(row*Dim + col)
}

func (s Square) Col() int {
	return int(s) % Dim
}

func (s Square) Row() int {
	return int(s) / Dim
}

// Bit returns the bitboard with only this square set. It returns 0 for Pass
// and NoSquare.
func (s Square) Bit() uint64 {
	if s >= NumSquares {
		return 0
	}
	return 1 << s
}

func (s Square) Valid() bool {
	return s < NumSquares
}

func (s Square) IsCorner() bool {
	return s.Bit()&CornerMask != 0
}

func (s Square) String() string {
	switch {
	case s == Pass:
		return "pass"
	case s == NoSquare:
		return "none"
	case s > Pass:
		return fmt.Sprintf("sq(%d)", int(s))
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}

// ParseSquare parses coordinates such as "f5" (column letter, row number).
// "pass", "pa" and "p9" all parse to Pass.
func ParseSquare(coords string) (Square, error) {
	c := strings.ToLower(strings.TrimSpace(coords))
	switch c {
	case "pass", "pa", "p9", "ps":
		return Pass, nil
	}
	if len(c) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, coords)
	}
	col := int(c[0]) - 'a'
	row := int(c[1]) - '1'
	if col < 0 || col >= Dim || row < 0 || row >= Dim {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, coords)
	}
	return SquareAt(col, row), nil
}
