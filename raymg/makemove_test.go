package raymg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"raychess/raymg"
)

func TestMoveScoreIsIncremental(t *testing.T) {
	for range 20 {
		for _, p := range randomGame(raymg.Initial(), 60) {
			// Pseudo-legal moves too: the search scores moves that hang the king.
			for _, m := range p.GenerateMoves() {
				require.Equal(t, -(p.Score + p.Value(m)), p.Move(m).Score, "%s\n%s", m, p)
			}
		}
	}
}

func TestScoreTracksEvaluate(t *testing.T) {
	// The start position is not perfectly symmetric under rotation (king and
	// queen swap files), so Score and Evaluate differ by a constant whose
	// sign flips every ply.
	offset := -raymg.Initial().Evaluate()
	for range 20 {
		drift := offset
		for _, p := range randomGame(raymg.Initial(), 80) {
			require.Equal(t, drift, p.Score-p.Evaluate(), "\n%s", p)
			drift = -drift
		}
	}
}

func TestEvaluateSumsPieceSquares(t *testing.T) {
	e1, err := raymg.ParseSquare("e1")
	require.NoError(t, err)
	e8, err := raymg.ParseSquare("e8")
	require.NoError(t, err)
	d4, err := raymg.ParseSquare("d4")
	require.NoError(t, err)

	// Black's king on e8 is scored from d1 of its own rotated board.
	p := mustFEN(t, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	want := raymg.PST('K', e1) + raymg.PST('N', d4) - raymg.PST('K', e8.Mirror())
	require.Equal(t, want, p.Evaluate())
	require.Greater(t, raymg.PST('N', d4), raymg.PieceValue['N']/2)
}

func TestCastlingRightsOnlyDrop(t *testing.T) {
	for range 20 {
		line := randomGame(raymg.Initial(), 80)
		for i := 2; i < len(line); i++ {
			before, after := line[i-2], line[i]
			for side := range 2 {
				if !before.WC[side] {
					require.False(t, after.WC[side])
				}
				if !before.BC[side] {
					require.False(t, after.BC[side])
				}
			}
		}
	}
}

func TestRookCaptureRemovesRight(t *testing.T) {
	// The a8 rook is black's east rook from black's side of the board.
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := raymg.ParseMove("a1a8")
	require.NoError(t, err)
	after := p.Move(m)
	require.Equal(t, [2]bool{true, false}, after.WC, "black keeps h8 only")
	require.Equal(t, [2]bool{false, true}, after.BC, "white keeps h1 only")
}

func TestTranspositionReturnsToInitial(t *testing.T) {
	p := raymg.Initial()
	for ply, text := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, err := raymg.ParseMove(text)
		require.NoError(t, err)
		if ply%2 == 1 {
			m = m.Mirror()
		}
		p = p.Move(m)
	}
	require.Equal(t, raymg.Initial(), p)
	require.Equal(t, raymg.Initial().Hash(), p.Hash())
}
