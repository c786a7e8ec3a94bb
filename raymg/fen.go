package raymg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrBadFEN = errors.New("invalid FEN")

// ParseFEN builds a Position from a FEN string. The Position is seen from
// the side to move; whiteToMove tells the caller which side that is.
func ParseFEN(fen string) (pos Position, whiteToMove bool, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, false, fmt.Errorf("%w: need at least 4 fields, got %d", ErrBadFEN, len(fields))
	}
	if fields[1] != "w" && fields[1] != "b" {
		return Position{}, false, fmt.Errorf("%w: side to move %q", ErrBadFEN, fields[1])
	}
	if strings.Count(fields[0], "/") != 7 {
		return Position{}, false, fmt.Errorf("%w: placement %q", ErrBadFEN, fields[0])
	}

	board, err := BitBoard(fen)
	if err != nil {
		return Position{}, false, err
	}

	for i := range pos.Board {
		pos.Board[i] = Border
	}
	for sq := uint8(0); sq < 64; sq++ {
		cell := squareFromIndex(sq)
		pos.Board[cell] = Empty
		if c := pieceAt(&board.White, sq); c != 0 {
			pos.Board[cell] = c
		} else if c := pieceAt(&board.Black, sq); c != 0 {
			pos.Board[cell] = swapCase(c)
		}
	}
	if strings.Count(string(pos.Board[:]), "K") != 1 || strings.Count(string(pos.Board[:]), "k") != 1 {
		return Position{}, false, fmt.Errorf("%w: each side needs exactly one king", ErrBadFEN)
	}

	// Queen side is west for white; for black the east rook is on a8.
	castling := fields[2]
	pos.WC = [2]bool{strings.ContainsRune(castling, 'Q'), strings.ContainsRune(castling, 'K')}
	pos.BC = [2]bool{strings.ContainsRune(castling, 'k'), strings.ContainsRune(castling, 'q')}

	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, false, fmt.Errorf("%w: en passant: %w", ErrBadFEN, err)
		}
		pos.EP = ep
	}

	// Scores are relative to the standard start, which scores zero.
	pos.Score = pos.Evaluate() - Initial().Evaluate()

	whiteToMove = board.Wtomove
	if !whiteToMove {
		pos = pos.Rotate(false)
	}
	return pos, whiteToMove, nil
}

// BitBoard parses fen into a dragontoothmg board. The clock fields are
// optional. dragontoothmg panics on input it cannot index; that comes back
// as ErrBadFEN.
func BitBoard(fen string) (board dragontoothmg.Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return board, fmt.Errorf("%w: need at least 4 fields, got %d", ErrBadFEN, len(fields))
	}
	full := append([]string(nil), fields[:4]...)
	if len(fields) >= 6 {
		full = append(full, fields[4:6]...)
	} else {
		full = append(full, "0", "1")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBadFEN, r)
		}
	}()
	return dragontoothmg.ParseFen(strings.Join(full, " ")), nil
}

func pieceAt(bb *dragontoothmg.Bitboards, sq uint8) byte {
	bit := uint64(1) << sq
	switch {
	case bb.Pawns&bit != 0:
		return 'P'
	case bb.Knights&bit != 0:
		return 'N'
	case bb.Bishops&bit != 0:
		return 'B'
	case bb.Rooks&bit != 0:
		return 'R'
	case bb.Queens&bit != 0:
		return 'Q'
	case bb.Kings&bit != 0:
		return 'K'
	}
	return 0
}

// squareFromIndex maps a 0..63 index (a1 = 0, h8 = 63) to a board cell.
func squareFromIndex(sq uint8) Square {
	file, rank := Square(sq%8), Square(sq/8)
	return A1 + file - 10*rank
}
