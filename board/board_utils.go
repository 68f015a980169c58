package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ToDisplayText renders the board with row 1 at the top. Legal moves can be
// highlighted by passing their bitboard in marks (0 for none).
func (p *Position) ToDisplayText(marks uint64) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for i := 0; i < Dim; i++ {
		fmt.Fprintf(&sb, "%c ", 'a'+i)
	}
	sb.WriteString("\n   " + strings.Repeat("-", Dim*2) + "\n")
	for row := 0; row < Dim; row++ {
		fmt.Fprintf(&sb, "%2d|", row+1)
		for col := 0; col < Dim; col++ {
			sq := SquareAt(col, row)
			c := p.At(sq)
			if c == Empty && marks&sq.Bit() != 0 {
				sb.WriteString("? ")
				continue
			}
			sb.WriteByte(c.Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	fmt.Fprintf(&sb, "%s to move, ply %d (X %d, O %d)\n",
		p.ToMove, p.Ply, p.Count(Black), p.Count(White))
	return "\n" + sb.String()
}

// String returns the compact form understood by ParsePosition: 64 squares from
// a1 to h8, row by row, then the side to move and the ply.
func (p Position) String() string {
	var sb strings.Builder
	for sq := Square(0); sq < NumSquares; sq++ {
		c := p.At(sq)
		if c == Empty {
			sb.WriteByte('-')
			continue
		}
		sb.WriteByte(c.Symbol())
	}
	fmt.Fprintf(&sb, " %c %d", p.ToMove.Symbol(), p.Ply)
	return sb.String()
}

func colorFromSymbol(ch byte) (Color, bool) {
	switch ch {
	case 'X', 'x', 'B', 'b', '*':
		return Black, true
	case 'O', 'o', 'W', 'w':
		return White, true
	case '-', '.', '_':
		return Empty, true
	}
	return Empty, false
}

// ParsePosition parses the compact form written by String. The ply is
// optional; when missing it is assumed that no passes have happened, so it is
// the number of discs minus four.
func ParsePosition(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 || len(fields) > 3 {
		return Position{}, fmt.Errorf("%w: expected \"<squares> <side> [ply]\", got %q", ErrBadPosition, s)
	}
	if len(fields[0]) != NumSquares {
		return Position{}, fmt.Errorf("%w: need %d squares, got %d", ErrBadPosition, NumSquares, len(fields[0]))
	}
	var p Position
	for i := 0; i < NumSquares; i++ {
		c, ok := colorFromSymbol(fields[0][i])
		if !ok {
			return Position{}, fmt.Errorf("%w: unknown symbol %q at %s", ErrBadPosition, fields[0][i], Square(i))
		}
		p.Set(Square(i), c)
	}
	side, ok := colorFromSymbol(fields[1][0])
	if !ok || side == Empty || len(fields[1]) != 1 {
		return Position{}, fmt.Errorf("%w: bad side to move %q", ErrBadPosition, fields[1])
	}
	p.ToMove = side
	p.Ply = PopCount(p.Black|p.White) - 4
	if len(fields) == 3 {
		ply, err := strconv.Atoi(fields[2])
		if err != nil {
			return Position{}, fmt.Errorf("%w: bad ply: %v", ErrBadPosition, err)
		}
		p.Ply = ply
	}
	if p.Ply < 0 {
		p.Ply = 0
	}
	return p, p.Validate()
}

// FromRows builds a position from eight row strings, row 1 first, each
// listing columns a through h.
func FromRows(rows []string, toMove Color, ply int) (Position, error) {
	if len(rows) != Dim {
		return Position{}, fmt.Errorf("%w: need %d rows, got %d", ErrBadPosition, Dim, len(rows))
	}
	var sb strings.Builder
	for i, r := range rows {
		r = strings.ReplaceAll(r, " ", "")
		if len(r) != Dim {
			return Position{}, fmt.Errorf("%w: row %d has %d squares", ErrBadPosition, i+1, len(r))
		}
		sb.WriteString(r)
	}
	p, err := ParsePosition(fmt.Sprintf("%s %c %d", sb.String(), toMove.Symbol(), ply))
	if err != nil {
		return Position{}, err
	}
	return p, nil
}
