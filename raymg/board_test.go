package raymg_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"raychess/raymg"
)

// randomGame plays up to plies random legal moves from p and returns every
// position reached, p included.
func randomGame(p raymg.Position, plies int) []raymg.Position {
	line := []raymg.Position{p}
	for range plies {
		moves := p.LegalMoves()
		if len(moves) == 0 {
			break
		}
		p = p.Move(moves[frand.Intn(len(moves))])
		line = append(line, p)
	}
	return line
}

func TestInitialPosition(t *testing.T) {
	p := raymg.Initial()
	require.Equal(t, byte('R'), p.Board[raymg.A1])
	require.Equal(t, byte('R'), p.Board[raymg.H1])
	require.Equal(t, byte('K'), p.Board[raymg.A1+4])
	require.Equal(t, byte('r'), p.Board[raymg.A8])
	require.Equal(t, byte('k'), p.Board[raymg.A8+4])
	require.Equal(t, 0, p.Score)
	require.Equal(t, [2]bool{true, true}, p.WC)
	require.Equal(t, [2]bool{true, true}, p.BC)
	require.Equal(t, raymg.NoSquare, p.EP)
	require.Equal(t, raymg.NoSquare, p.KP)
	require.Contains(t, p.String(), "1 R N B Q K B N R")
}

func TestRotateTwiceIsIdentity(t *testing.T) {
	for range 20 {
		for _, p := range randomGame(raymg.Initial(), 40) {
			require.Equal(t, p, p.Rotate(false).Rotate(false))

			nulled := p.Rotate(true).Rotate(true)
			want := p
			want.EP, want.KP = raymg.NoSquare, raymg.NoSquare
			require.Equal(t, want, nulled)
		}
	}
}

func TestRotateSwapsSides(t *testing.T) {
	p := raymg.Initial().Move(raymg.Move{From: 85, To: 65}) // e2e4
	require.Equal(t, raymg.Square(44), p.EP, "e3 seen from black")

	r := p.Rotate(false)
	require.Equal(t, -p.Score, r.Score)
	require.Equal(t, p.WC, r.BC)
	require.Equal(t, p.BC, r.WC)
	require.Equal(t, raymg.Square(75), r.EP)
	require.Equal(t, byte('P'), r.Board[65])
	require.Equal(t, byte('p'), p.Board[54])

	n := p.Rotate(true)
	require.Equal(t, raymg.NoSquare, n.EP)
}

func TestInteriorSquares(t *testing.T) {
	count := 0
	for s := raymg.Square(0); s < raymg.BoardSize; s++ {
		if s.Interior() {
			count++
		}
	}
	require.Equal(t, 64, count)
	require.False(t, raymg.Square(20).Interior())
	require.False(t, raymg.Square(29).Interior())
	require.True(t, raymg.A8.Interior())
	require.True(t, raymg.H1.Interior())
}
