package raymg

import "strings"

// Square is an index into the padded 120 cell board.
type Square int

// Board geometry. Rows 0, 1, 10 and 11 and columns 0 and 9 are border cells,
// so a ray that leaves the board always lands on a border cell first.
const (
	BoardSize = 120

	A1 Square = 91
	H1 Square = 98
	A8 Square = 21
	H8 Square = 28

	N Square = -10
	E Square = 1
	S Square = 10
	W Square = -1

	// NoSquare marks an absent en passant / king passant target.
	NoSquare Square = 0
)

// Cell tokens.
const (
	Border byte = ' '
	Empty  byte = '.'
)

const initialBoard = "" +
	"          " +
	"          " +
	" rnbqkbnr " +
	" pppppppp " +
	" ........ " +
	" ........ " +
	" ........ " +
	" ........ " +
	" PPPPPPPP " +
	" RNBQKBNR " +
	"          " +
	"          "

// Position is a chess position seen from the side to move: own pieces are
// upper case, the opponent's are lower case. It is a value type; every
// operation returns a new Position.
type Position struct {
	Board [BoardSize]byte
	Score int
	WC    [2]bool // own castling rights: west (queen side), east (king side)
	BC    [2]bool // opponent castling rights, in the opponent's west/east order
	EP    Square  // en passant target
	KP    Square  // king passant target (square the castling king passed)
}

// Initial returns the standard starting position with white to move.
func Initial() Position {
	var p Position
	copy(p.Board[:], initialBoard)
	p.WC = [2]bool{true, true}
	p.BC = [2]bool{true, true}
	return p
}

// Rotate flips the board so the opponent becomes the side to move. A null
// rotation (passing the turn) drops the en passant and king passant targets.
func (p Position) Rotate(null bool) Position {
	var r Position
	for i, c := range p.Board {
		r.Board[BoardSize-1-i] = swapCase(c)
	}
	r.Score = -p.Score
	r.WC, r.BC = p.BC, p.WC
	if p.EP != NoSquare && !null {
		r.EP = BoardSize - 1 - p.EP
	}
	if p.KP != NoSquare && !null {
		r.KP = BoardSize - 1 - p.KP
	}
	return r
}

// Mirror reflects a square through the board centre, converting between the
// two sides' points of view.
func (s Square) Mirror() Square {
	if s == NoSquare {
		return NoSquare
	}
	return BoardSize - 1 - s
}

// Interior reports whether s is one of the 64 playing squares.
func (s Square) Interior() bool {
	if s < A8 || s > H1 {
		return false
	}
	col := s % 10
	return col >= 1 && col <= 8
}

// String draws the board from the mover's side, rank 8 on top.
func (p Position) String() string {
	var sb strings.Builder
	for row := 2; row <= 9; row++ {
		sb.WriteByte(byte('8' - (row - 2)))
		sb.WriteByte(' ')
		for col := 1; col <= 8; col++ {
			sb.WriteByte(p.Board[row*10+col])
			if col < 8 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func isOwn(c byte) bool      { return c >= 'A' && c <= 'Z' }
func isOpponent(c byte) bool { return c >= 'a' && c <= 'z' }

func swapCase(c byte) byte {
	switch {
	case isOwn(c):
		return c + ('a' - 'A')
	case isOpponent(c):
		return c - ('a' - 'A')
	}
	return c
}

func toUpper(c byte) byte {
	if isOpponent(c) {
		return c - ('a' - 'A')
	}
	return c
}
