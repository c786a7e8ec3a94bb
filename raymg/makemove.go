package raymg

// Move plays m and returns the resulting position from the opponent's point
// of view. m must come from GenerateMoves on p.
func (p Position) Move(m Move) Position {
	i, j := m.From, m.To
	piece := p.Board[i]

	next := p
	next.Score = p.Score + p.Value(m)
	next.EP, next.KP = NoSquare, NoSquare
	next.Board[j] = piece
	next.Board[i] = Empty

	// Castling rights: a rook leaves its corner, or the opponent's is taken.
	if i == A1 {
		next.WC[0] = false
	}
	if i == H1 {
		next.WC[1] = false
	}
	if j == A8 {
		next.BC[1] = false
	}
	if j == H8 {
		next.BC[0] = false
	}

	switch piece {
	case 'K':
		next.WC = [2]bool{false, false}
		if abs(int(j-i)) == 2 {
			next.KP = (i + j) / 2
			if j < i {
				next.Board[A1] = Empty
			} else {
				next.Board[H1] = Empty
			}
			next.Board[next.KP] = 'R'
		}
	case 'P':
		if A8 <= j && j <= H8 {
			next.Board[j] = m.Prom
		}
		if j-i == 2*N {
			next.EP = i + N
		}
		if j == p.EP {
			next.Board[j+S] = Empty
		}
	}
	return next.Rotate(false)
}

// Value is the change in Score, from the mover's point of view, caused by m.
func (p Position) Value(m Move) int {
	i, j := m.From, m.To
	piece, captured := p.Board[i], p.Board[j]

	score := pst[piece][j] - pst[piece][i]
	if isOpponent(captured) {
		score += pst[toUpper(captured)][j.Mirror()]
	}
	// Moving onto the squares a castling king crossed takes the king.
	if p.KP != NoSquare && abs(int(j-p.KP)) < 2 {
		score += pst['K'][j.Mirror()]
	}
	if piece == 'K' && abs(int(j-i)) == 2 {
		score += pst['R'][(i+j)/2]
		if j < i {
			score -= pst['R'][A1]
		} else {
			score -= pst['R'][H1]
		}
	}
	if piece == 'P' {
		if A8 <= j && j <= H8 {
			score += pst[m.Prom][j] - pst['P'][j]
		}
		if p.EP != NoSquare && j == p.EP {
			score += pst['P'][(j + S).Mirror()]
		}
	}
	return score
}

// Evaluate recomputes the score from scratch. The search never calls it;
// it seeds positions that were not reached from the initial position.
func (p Position) Evaluate() int {
	score := 0
	for i := A8; i <= H1; i++ {
		c := p.Board[i]
		switch {
		case isOwn(c):
			score += PST(c, i)
		case isOpponent(c):
			score -= PST(toUpper(c), i.Mirror())
		}
	}
	return score
}
