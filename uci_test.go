package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"raychess/engine"
)

func newTestSession() (*session, *bytes.Buffer) {
	var out bytes.Buffer
	searcher := engine.NewSearcher(engine.WithHashMB(4), engine.WithLogger(zerolog.Nop()))
	return newSession(&out, searcher), &out
}

func run(t *testing.T, s *session, script ...string) {
	t.Helper()
	require.NoError(t, s.uciLoop(strings.NewReader(strings.Join(script, "\n")+"\n")))
}

func lastLine(out *bytes.Buffer, prefix string) string {
	var found string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, prefix) {
			found = line
		}
	}
	return found
}

func legalStrings(b dragontoothmg.Board) []string {
	var moves []string
	for _, m := range b.GenerateLegalMoves() {
		moves = append(moves, m.String())
	}
	return moves
}

func TestHandshake(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "uci", "isready", "quit", "isready")

	text := out.String()
	require.Contains(t, text, "id name raychess\n")
	require.Contains(t, text, "option name Hash type spin")
	require.Contains(t, text, "uciok\n")
	require.Equal(t, 1, strings.Count(text, "readyok"), "nothing runs after quit")
}

func TestPositionReplaysMoves(t *testing.T) {
	s, _ := newTestSession()
	run(t, s, "position startpos moves e2e4 e7e5 g1f3")

	require.Len(t, s.history, 4)
	require.False(t, s.board.Wtomove)
	require.Len(t, s.root().LegalMoves(), len(s.board.GenerateLegalMoves()))
}

func TestPositionAgreesWithBitBoardAlongGame(t *testing.T) {
	s, _ := newTestSession()
	line := "position startpos moves e2e4 d7d5 e4d5 g8f6 f1b5 c7c6 d5c6 d8a5 c6b7 a5b5 b7a8q e8d8 g1f3"
	run(t, s, line)
	require.Len(t, s.history, 14)
	require.Len(t, s.root().LegalMoves(), len(s.board.GenerateLegalMoves()))
}

func TestPositionStopsAtIllegalMove(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "position startpos moves e2e4 e7e4 g1f3")

	require.Len(t, s.history, 2)
	require.Contains(t, out.String(), "info string illegal move: e7e4")
}

func TestPositionFEN(t *testing.T) {
	s, out := newTestSession()
	run(t, s,
		"position fen 8/8/8/8/8/8/8/8 w - - 0 1",
		"position fen 4k3/8/8/8/8/8/4P3/4K3 b - - 0 1 moves e8d7 e2e4",
		"d",
	)

	require.Contains(t, out.String(), "info string Invalid fen position")
	require.Len(t, s.history, 3)
	require.False(t, s.board.Wtomove)
	require.Contains(t, out.String(), "Fen: 8/3k4/8/8/4P3/8/8/4K3 b")
	require.Contains(t, out.String(), "4 . . . . P . . .")
	require.Contains(t, out.String(), "In check: false")
}

func TestDisplayShowsCheck(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "position fen 7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", "d")
	require.Contains(t, out.String(), "Legal moves: 0")
	require.Contains(t, out.String(), "In check: true")
}

func TestEvalIsFromMoverView(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "eval", "position startpos moves e2e4", "eval")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "info string eval 0 "))
	// Pawn e2 -> e4 gains 42 for white, seen from black.
	require.True(t, strings.HasPrefix(lines[1], "info string eval -42 "))
}

func TestGoDepthReturnsLegalMove(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "position startpos moves e2e4", "go depth 3")

	best := lastLine(out, "bestmove ")
	require.NotEmpty(t, best)
	move := strings.TrimPrefix(best, "bestmove ")
	require.Contains(t, legalStrings(s.board), move)

	info := lastLine(out, "info depth ")
	require.Contains(t, info, "info depth 3 score cp ")
	require.Contains(t, info, " pv "+move)
}

func TestGoFindsMateForBlack(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "position fen r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "go depth 4")

	require.Equal(t, "bestmove a8a1", lastLine(out, "bestmove "))
	require.Contains(t, lastLine(out, "info depth "), "score mate 1")
}

func TestGoWithoutLegalMoves(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "position fen 7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", "go wtime 1000 btime 1000")
	require.Equal(t, "bestmove (none)", lastLine(out, "bestmove"))
}

func TestGoRespectsClock(t *testing.T) {
	s, out := newTestSession()
	// Every reading of the clock advances it by 5ms against a 10ms budget.
	now := time.Unix(0, 0)
	s.now = func() time.Time {
		now = now.Add(5 * time.Millisecond)
		return now
	}
	run(t, s, "go wtime 1000 btime 1000 winc 0 binc 0")

	best := strings.TrimPrefix(lastLine(out, "bestmove "), "bestmove ")
	require.Contains(t, legalStrings(s.board), best)
	require.NotContains(t, out.String(), "info depth 5 ")
}

func TestSetOptionHash(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "setoption name Hash value 8", "setoption name Hash value big", "setoption name Ponder value true")

	text := out.String()
	require.Contains(t, text, "info string Malformed Hash value big")
	require.Contains(t, text, "info string Unknown option Ponder")
}

func TestUnknownCommand(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "", "frobnicate", "go infinite depth 1 nodes")
	text := out.String()
	require.Contains(t, text, "info string Unknown command frobnicate")
	require.Contains(t, text, "info string Unknown go subcommand nodes")
	require.Contains(t, text, "bestmove ")
}

func TestScoreString(t *testing.T) {
	require.Equal(t, "cp 35", scoreString(35, 4))
	require.Equal(t, "mate 1", scoreString(engine.MateLower+3, 4))
	require.Equal(t, "mate 2", scoreString(engine.MateLower+3, 6))
	require.Equal(t, "mate -1", scoreString(-(engine.MateLower + 2), 4))
	require.Equal(t, "cp 69290", scoreString(engine.MateUpper, 4))
}

func TestOpeningLineReference(t *testing.T) {
	s, out := newTestSession()
	run(t, s, "position startpos moves e2e4 e7e5 g1f3", "eval", "d")

	// 14 pawn pushes, 5 knight, 5 bishop, 4 queen and 1 king move.
	require.Len(t, s.root().LegalMoves(), 29)
	require.Contains(t, out.String(), "Legal moves: 29")
	// e4 +42, e5 +46, Nf3 +37, seen from black.
	require.Contains(t, out.String(), "info string eval -33 ")
}
