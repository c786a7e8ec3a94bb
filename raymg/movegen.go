package raymg

// Ray directions per piece. Pawn rays are single push, double push and the
// two captures; pawns, knights and kings stop after one step.
var directions = [128][]Square{
	'P': {N, N + N, N + W, N + E},
	'N': {N + N + E, E + N + E, E + S + E, S + S + E, S + S + W, W + S + W, W + N + W, N + N + W},
	'B': {N + E, S + E, S + W, N + W},
	'R': {N, E, S, W},
	'Q': {N, E, S, W, N + E, S + E, S + W, N + W},
	'K': {N, E, S, W, N + E, S + E, S + W, N + W},
}

var promotions = [...]byte{'N', 'B', 'R', 'Q'}

// GenerateMoves returns the pseudo-legal moves of the side to move. Moves
// that leave the own king capturable are included.
func (p Position) GenerateMoves() []Move {
	return p.AppendMoves(make([]Move, 0, 64))
}

// AppendMoves appends the pseudo-legal moves to dst.
func (p Position) AppendMoves(dst []Move) []Move {
	for i := A8; i <= H1; i++ {
		piece := p.Board[i]
		if !isOwn(piece) {
			continue
		}
		for _, d := range directions[piece] {
			for j := i + d; ; j += d {
				q := p.Board[j]
				if q == Border || isOwn(q) {
					break
				}
				if piece == 'P' {
					if (d == N || d == N+N) && q != Empty {
						break
					}
					if d == N+N && (i < A1+N || p.Board[i+N] != Empty) {
						break
					}
					if (d == N+W || d == N+E) && q == Empty && !p.pawnDiagonalTarget(j) {
						break
					}
					if A8 <= j && j <= H8 {
						for _, prom := range promotions {
							dst = append(dst, Move{From: i, To: j, Prom: prom})
						}
						break
					}
				}
				dst = append(dst, Move{From: i, To: j})
				if piece == 'P' || piece == 'N' || piece == 'K' || isOpponent(q) {
					break
				}
				// Castling rides on the rook ray reaching the king.
				if i == A1 && p.Board[j+E] == 'K' && p.WC[0] {
					dst = append(dst, Move{From: j + E, To: j + W})
				}
				if i == H1 && p.Board[j+W] == 'K' && p.WC[1] {
					dst = append(dst, Move{From: j + W, To: j + E})
				}
			}
		}
	}
	return dst
}

// pawnDiagonalTarget reports whether a pawn may step diagonally onto the
// empty square j: the en passant target, or the king passant square and its
// neighbours, where stepping there captures a king that castled through check.
func (p Position) pawnDiagonalTarget(j Square) bool {
	if p.EP != NoSquare && j == p.EP {
		return true
	}
	return p.KP != NoSquare && j >= p.KP-1 && j <= p.KP+1
}

// capturesKing reports whether m takes the opponent king, either directly or
// through the squares the king crossed when castling on the previous ply.
func (p Position) capturesKing(m Move) bool {
	if p.Board[m.To] == 'k' {
		return true
	}
	return p.KP != NoSquare && abs(int(m.To-p.KP)) < 2
}

// KingCapturable reports whether the side to move can take the opponent
// king. A position where this holds was reached by an illegal move.
func (p Position) KingCapturable() bool {
	for _, m := range p.GenerateMoves() {
		if p.capturesKing(m) {
			return true
		}
	}
	return false
}

// LegalMoves returns the moves after which the opponent cannot capture the
// mover's king.
func (p Position) LegalMoves() []Move {
	moves := p.GenerateMoves()
	legal := moves[:0]
	for _, m := range moves {
		if !p.Move(m).KingCapturable() {
			legal = append(legal, m)
		}
	}
	return legal
}

// InCheck reports whether the opponent could capture the mover's king if the
// mover passed.
func (p Position) InCheck() bool {
	return p.Rotate(true).KingCapturable()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
