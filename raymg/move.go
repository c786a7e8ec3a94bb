package raymg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadSquare = errors.New("invalid square")
	ErrBadMove   = errors.New("invalid move")
)

// Move is a plain from/to pair with an optional promotion piece ('N', 'B',
// 'R' or 'Q'). It carries no side; the Position it came from implies it.
type Move struct {
	From Square
	To   Square
	Prom byte
}

// NullMove is the zero Move, used as "no move".
var NullMove Move

// String renders the move in coordinate notation from the mover's point of
// view. Callers playing black mirror the move first.
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Prom != 0 {
		s += strings.ToLower(string(m.Prom))
	}
	return s
}

// Mirror reflects both squares through the board centre.
func (m Move) Mirror() Move {
	return Move{From: m.From.Mirror(), To: m.To.Mirror(), Prom: m.Prom}
}

// String renders a square as file and rank, e.g. "e2".
func (s Square) String() string {
	if !s.Interior() {
		return "-"
	}
	file := byte(s%10) - 1
	rank := 10 - byte(s/10)
	return string([]byte{'a' + file, '0' + rank})
}

// ParseSquare converts coordinate text such as "e2" to a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrBadSquare, text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrBadSquare, text)
	}
	return A1 + Square(file-'a') - 10*Square(rank-'1'), nil
}

// ParseMove converts "e2e4" or "e7e8q" to a Move. The squares are returned
// as written; mirroring for black is left to the caller.
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrBadMove, text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q: %w", ErrBadMove, text, err)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q: %w", ErrBadMove, text, err)
	}
	m := Move{From: from, To: to}
	if len(text) == 5 {
		switch prom := toUpper(text[4]); prom {
		case 'N', 'B', 'R', 'Q':
			m.Prom = prom
		default:
			return NullMove, fmt.Errorf("%w: %q: promotion piece", ErrBadMove, text)
		}
	}
	return m, nil
}
