package raymg

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Zobrist keys for pieces on cells, castling rights, and the en passant and
// king passant targets.
var (
	zobristPiece  [128][BoardSize]uint64
	zobristCastle [4]uint64
	zobristEP     [BoardSize]uint64
	zobristKP     [BoardSize]uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are stable between runs.
	var seed [32]byte
	copy(seed[:], "raymg zobrist keys")
	rng := frand.NewCustom(seed[:], 1024, 12)
	next := func() uint64 { return binary.LittleEndian.Uint64(rng.Bytes(8)) }
	for _, piece := range []byte("PNBRQKpnbrqk") {
		for sq := range BoardSize {
			zobristPiece[piece][sq] = next()
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = next()
	}
	for sq := range BoardSize {
		zobristEP[sq] = next()
		zobristKP[sq] = next()
	}
}

// Hash returns the Zobrist hash of the position. Equal positions hash
// equally; the score is not hashed because it follows from the board.
func (p Position) Hash() uint64 {
	var key uint64
	for i := A8; i <= H1; i++ {
		if c := p.Board[i]; c != Empty && c != Border {
			key ^= zobristPiece[c][i]
		}
	}
	for i, right := range [4]bool{p.WC[0], p.WC[1], p.BC[0], p.BC[1]} {
		if right {
			key ^= zobristCastle[i]
		}
	}
	key ^= zobristEP[p.EP]
	key ^= zobristKP[p.KP]
	return key
}
