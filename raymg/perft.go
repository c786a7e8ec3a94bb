package raymg

// Perft counts the leaf nodes of the legal move tree to the given depth.
// A move is legal when the reply cannot capture the mover's king, the same
// rule the search relies on.
func Perft(p Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	buf := make([][]Move, depth)
	return perftRec(p, depth, buf)
}

func perftRec(p Position, depth int, buf [][]Move) uint64 {
	moves := p.AppendMoves(buf[depth-1][:0])
	buf[depth-1] = moves
	var nodes uint64
	for _, m := range moves {
		next := p.Move(m)
		if next.KingCapturable() {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		nodes += perftRec(next, depth-1, buf)
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(p Position, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range p.LegalMoves() {
		out[m] = Perft(p.Move(m), depth-1)
	}
	return out
}
