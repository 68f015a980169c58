package board

import (
	"errors"
	"fmt"
)

// Color is the occupant of a square, or the side to move.
type Color uint8

const (
	Empty Color = iota
	// Black moves first. Evaluations are reported from Black's point of view.
	Black
	// White moves second.
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Symbol is the single character used for this color in board diagrams.
func (c Color) Symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

var ErrBadPosition = errors.New("bad position")

// Position is the full state of a game: the discs of each side, whose turn it
// is, and how many moves (passes included) have been played. It is a small
// value type; search mutates one Position in place with Apply and Undo.
type Position struct {
	Black  uint64
	White  uint64
	ToMove Color
	Ply    int
}

// NewStartingPosition returns the standard four-disc opening position with
// Black to move.
func NewStartingPosition() Position {
	return Position{
		Black:  SquareAt(3, 4).Bit() | SquareAt(4, 3).Bit(), // d5, e4
		White:  SquareAt(3, 3).Bit() | SquareAt(4, 4).Bit(), // d4, e5
		ToMove: Black,
	}
}

// Discs returns the bitboard of discs owned by c.
func (p *Position) Discs(c Color) uint64 {
	switch c {
	case Black:
		return p.Black
	case White:
		return p.White
	}
	return p.EmptyBits()
}

func (p *Position) EmptyBits() uint64 {
	return ^(p.Black | p.White)
}

func (p *Position) Count(c Color) int {
	return PopCount(p.Discs(c))
}

func (p *Position) Empties() int {
	return NumSquares - PopCount(p.Black|p.White)
}

// DiscDiff returns c's disc count minus the opponent's.
func (p *Position) DiscDiff(c Color) int {
	return p.Count(c) - p.Count(c.Opponent())
}

func (p *Position) At(sq Square) Color {
	b := sq.Bit()
	switch {
	case p.Black&b != 0:
		return Black
	case p.White&b != 0:
		return White
	}
	return Empty
}

// Set puts a disc of color c (or Empty) on sq. It is meant for building
// positions, not for playing moves.
func (p *Position) Set(sq Square, c Color) {
	b := sq.Bit()
	p.Black &^= b
	p.White &^= b
	switch c {
	case Black:
		p.Black |= b
	case White:
		p.White |= b
	}
}

func (p *Position) sides(c Color) (own, opp *uint64) {
	if c == Black {
		return &p.Black, &p.White
	}
	return &p.White, &p.Black
}

// Apply plays a move for the side to move: a disc goes on sq and every square
// in flips changes to the mover's color. A Pass only hands the turn over.
// Apply does not check legality; the caller supplies a generated flip set.
func (p *Position) Apply(sq Square, flips uint64) {
	if sq != Pass {
		own, opp := p.sides(p.ToMove)
		*own |= sq.Bit() | flips
		*opp &^= flips
	}
	p.ToMove = p.ToMove.Opponent()
	p.Ply++
}

// Undo is the exact inverse of Apply called with the same arguments.
func (p *Position) Undo(sq Square, flips uint64) {
	p.Ply--
	p.ToMove = p.ToMove.Opponent()
	if sq != Pass {
		own, opp := p.sides(p.ToMove)
		*own &^= sq.Bit() | flips
		*opp |= flips
	}
}

// Validate checks the structural invariants of a position.
func (p *Position) Validate() error {
	if p.Black&p.White != 0 {
		return fmt.Errorf("%w: squares owned by both sides: %x", ErrBadPosition, p.Black&p.White)
	}
	if p.ToMove != Black && p.ToMove != White {
		return fmt.Errorf("%w: no side to move", ErrBadPosition)
	}
	if p.Ply < 0 {
		return fmt.Errorf("%w: negative ply %d", ErrBadPosition, p.Ply)
	}
	return nil
}

func (p *Position) Equal(o *Position) bool {
	return *p == *o
}
