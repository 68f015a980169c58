package board

import "math/bits"

// Bitboards are plain uint64 values with bit i set when square i is occupied.

const (
	FileA uint64 = 0x0101010101010101
	FileH uint64 = FileA << 7
	Rank1 uint64 = 0xff
	Rank8 uint64 = Rank1 << 56

	notFileA = ^FileA
	notFileH = ^FileH

	CornerMask uint64 = 1<<0 | 1<<7 | 1<<56 | 1<<63
	EdgeMask   uint64 = FileA | FileH | Rank1 | Rank8
)

// Direction is one of the eight compass directions a line of discs can run.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections
)

// Directions lists every direction, for callers that range over them.
var Directions = [NumDirections]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// Step returns the column and row deltas for d. North is toward row 8.
func (d Direction) Step() (dcol, drow int) {
	switch d {
	case North:
		return 0, 1
	case NorthEast:
		return 1, 1
	case East:
		return 1, 0
	case SouthEast:
		return 1, -1
	case South:
		return 0, -1
	case SouthWest:
		return -1, -1
	case West:
		return -1, 0
	case NorthWest:
		return -1, 1
	}
	return 0, 0
}

// Shift moves every set bit one square in direction d, discarding bits that
// fall off the board instead of wrapping to the next row.
func Shift(b uint64, d Direction) uint64 {
	switch d {
	case North:
		return b << 8
	case NorthEast:
		return (b << 9) & notFileA
	case East:
		return (b << 1) & notFileA
	case SouthEast:
		return (b >> 7) & notFileA
	case South:
		return b >> 8
	case SouthWest:
		return (b >> 9) & notFileH
	case West:
		return (b >> 1) & notFileH
	case NorthWest:
		return (b << 7) & notFileH
	}
	return 0
}

// Neighbors returns the squares adjacent (in any direction) to a set bit.
func Neighbors(b uint64) uint64 {
	var n uint64
	for _, d := range Directions {
		n |= Shift(b, d)
	}
	return n
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

// PopSquare removes the lowest set square from *b and returns it.
func PopSquare(b *uint64) Square {
	sq := Square(bits.TrailingZeros64(*b))
	*b &= *b - 1
	return sq
}
