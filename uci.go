package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"raychess/engine"
	"raychess/raymg"
)

const (
	engineName   = "raychess"
	engineAuthor = "raychess authors"

	// Clock assumed when go carries no time control.
	defaultRemaining = 300 * time.Second
	maxHashMB        = 4096
)

var errIllegalMove = errors.New("illegal move")

func main() {
	logLevel := flag.String("log-level", "info", "diagnostic log level (trace, debug, info, warn, error)")
	hashMB := flag.Int("hash", engine.DefaultHashMB, "search table size in MB")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("bad-log-level")
	}
	zerolog.SetGlobalLevel(level)

	searcher := engine.NewSearcher(
		engine.WithHashMB(engine.Clamp(*hashMB, 1, maxHashMB)),
		engine.WithLogger(log.Logger),
	)
	if err := newSession(os.Stdout, searcher).uciLoop(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("uci-loop")
	}
}

// session is one UCI conversation. history holds every position of the
// game from the mover's point of view; board mirrors it with absolute
// coordinates so incoming moves can be checked for legality.
type session struct {
	out      io.Writer
	searcher *engine.Searcher
	history  []raymg.Position
	board    dragontoothmg.Board
	now      func() time.Time
}

func newSession(out io.Writer, searcher *engine.Searcher) *session {
	s := &session{out: out, searcher: searcher, now: time.Now}
	s.setStart()
	return s
}

func (s *session) setStart() {
	board, err := raymg.BitBoard(raymg.FENStartPos)
	if err != nil {
		panic(err)
	}
	s.history = []raymg.Position{raymg.Initial()}
	s.board = board
}

func (s *session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *session) uciLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name", engineName)
			s.println("id author", engineAuthor)
			s.println("option name Hash type spin default", engine.DefaultHashMB, "min 1 max", maxHashMB)
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.setStart()
			s.searcher.NewGame()
		case "setoption":
			s.setOption(tokens[1:])
		case "position":
			s.position(tokens[1:])
		case "go":
			s.goCommand(tokens[1:])
		case "eval":
			pos := s.root()
			s.println("info string eval", pos.Score, "static", pos.Evaluate())
		case "d":
			s.display()
		case "stop":
			// Searches run to completion before the next line is read.
		case "quit":
			return nil
		default:
			s.println("info string Unknown command", tokens[0])
		}
	}
	return scanner.Err()
}

func (s *session) root() raymg.Position {
	return s.history[len(s.history)-1]
}

func (s *session) setOption(args []string) {
	var name, value []string
	target := &name
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			*target = append(*target, tok)
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "hash":
		mb, err := strconv.Atoi(strings.Join(value, ""))
		if err != nil {
			s.println("info string Malformed Hash value", strings.Join(value, " "))
			return
		}
		mb = engine.Clamp(mb, 1, maxHashMB)
		s.searcher.SetHashMB(mb)
		log.Debug().Int("mb", mb).Msg("hash-resized")
	default:
		s.println("info string Unknown option", strings.Join(name, " "))
	}
}

func (s *session) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}

	movesAt := slices.IndexFunc(args, func(tok string) bool { return strings.EqualFold(tok, "moves") })
	if movesAt < 0 {
		movesAt = len(args)
	}

	switch strings.ToLower(args[0]) {
	case "startpos":
		s.setStart()
	case "fen":
		fen := strings.Join(args[1:movesAt], " ")
		pos, _, err := raymg.ParseFEN(fen)
		if err != nil {
			s.println("info string Invalid fen position:", err)
			return
		}
		board, err := raymg.BitBoard(fen)
		if err != nil {
			s.println("info string Invalid fen position:", err)
			return
		}
		s.history = []raymg.Position{pos}
		s.board = board
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	if movesAt >= len(args) {
		return
	}
	for _, text := range args[movesAt+1:] {
		if err := s.play(text); err != nil {
			// The rest of the list cannot be trusted after an unknown move.
			s.println("info string", err)
			log.Warn().Err(err).Str("move", text).Msg("position-moves-truncated")
			return
		}
	}
}

// play applies one move in absolute coordinates.
func (s *session) play(text string) error {
	legal := s.board.GenerateLegalMoves()
	idx := slices.IndexFunc(legal, func(m dragontoothmg.Move) bool {
		return strings.EqualFold(m.String(), text)
	})
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", errIllegalMove, text, s.board.ToFen())
	}
	m, err := raymg.ParseMove(text)
	if err != nil {
		return err
	}
	if !s.board.Wtomove {
		m = m.Mirror()
	}

	s.board.Apply(legal[idx])
	s.history = append(s.history, s.root().Move(m))
	return nil
}

func (s *session) goCommand(args []string) {
	var wtime, btime, winc, binc, movetime, depth int
	limits := map[string]*int{
		"wtime":    &wtime,
		"btime":    &btime,
		"winc":     &winc,
		"binc":     &binc,
		"movetime": &movetime,
		"depth":    &depth,
	}
	for i := 0; i < len(args); i++ {
		name := strings.ToLower(args[i])
		target, ok := limits[name]
		if !ok {
			if name != "infinite" {
				s.println("info string Unknown go subcommand", name)
			}
			continue
		}
		if i+1 >= len(args) {
			s.println("info string Malformed go command option", name)
			break
		}
		i++
		v, err := strconv.Atoi(args[i])
		if err != nil {
			s.println("info string Malformed go command option; could not convert", name)
			continue
		}
		*target = v
	}

	white := s.board.Wtomove
	remaining, increment := wtime, winc
	if !white {
		remaining, increment = btime, binc
	}
	budget := engine.ThinkTime(defaultRemaining, 0)
	if remaining > 0 {
		budget = engine.ThinkTime(millis(remaining), millis(increment))
	}
	if movetime > 0 {
		budget = millis(movetime)
	}

	// A fixed depth ignores the clock unless movetime asks for both.
	timed := depth <= 0 || movetime > 0
	if depth > 0 {
		s.searcher.SetMaxDepth(depth)
	} else {
		s.searcher.SetMaxDepth(engine.MaxDepth)
	}

	root := s.root()
	if len(root.LegalMoves()) == 0 {
		s.println("bestmove (none)")
		return
	}

	deadline := engine.NewDeadline(s.now)
	deadline.Start(budget)
	best := raymg.NullMove
	for u := range s.searcher.Search(s.history) {
		if u.FailHigh() && u.Move != raymg.NullMove {
			best = u.Move
			s.println("info depth", u.Depth,
				"score", scoreString(u.Score, u.Depth),
				"nodes", s.searcher.Stats().Nodes,
				"time", deadline.Elapsed().Milliseconds(),
				"pv", s.pvString(root, u.Depth, white))
		}
		if timed && best != raymg.NullMove && deadline.Expired(engine.StopFraction) {
			break
		}
	}

	log.Debug().
		Object("stats", s.searcher.Stats()).
		Dur("budget", deadline.Budget()).
		Dur("elapsed", deadline.Elapsed()).
		Msg("search-done")

	if best == raymg.NullMove {
		s.println("bestmove (none)")
		return
	}
	s.println("bestmove", absolute(best, white))
}

func (s *session) display() {
	pos := s.root()
	if !s.board.Wtomove {
		pos = pos.Rotate(false)
	}
	s.println(pos.String())
	s.println("Fen:", s.board.ToFen())
	s.println("Legal moves:", len(s.board.GenerateLegalMoves()))
	s.println("In check:", s.root().InCheck())
}

// pvString renders the stored line from root in absolute coordinates. Plies
// alternate between the two sides' points of view.
func (s *session) pvString(root raymg.Position, n int, white bool) string {
	line := s.searcher.PV(root, n)
	text := make([]string, len(line))
	for i, m := range line {
		text[i] = absolute(m, white == (i%2 == 0))
	}
	return strings.Join(text, " ")
}

func absolute(m raymg.Move, white bool) string {
	if !white {
		m = m.Mirror()
	}
	return m.String()
}

// scoreString reports proven mates as "mate N" (moves, negative when being
// mated) and everything else in centipawns. A mate found with r plies of
// depth remaining scores MateLower+r, so the distance is depth-r plies.
func scoreString(score, depth int) string {
	distance := func(s int) (int, bool) {
		r := s - engine.MateLower
		if r < 0 || r > depth {
			return 0, false
		}
		return depth - r, true
	}
	if plies, ok := distance(score); ok {
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	if plies, ok := distance(-score); ok {
		return fmt.Sprintf("mate -%d", (plies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
