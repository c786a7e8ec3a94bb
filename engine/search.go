package engine

import (
	"iter"

	"github.com/rs/zerolog"

	"raychess/raymg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// King minus ten queens: below this the king is as good as gone.
	MateLower = 60000 - 10*929
	MateUpper = 60000 + 10*929
	DrawScore = 0

	MaxDepth = 100
)

// =============================================================================
// PRUNING PARAMETERS
// =============================================================================
var (
	// Quiescence: at depth d only moves worth at least QS - d*QSA are tried.
	QS  = 40
	QSA = 140
	// The root binary search stops once the window is this narrow.
	EvalRoughness = 15
	// Null move is skipped when the static score is this lopsided.
	NullMoveMargin        = 500
	NullMoveMinDepth      = 3
	NullMoveReduction     = 3
	IIDReduction          = 3
	FutilityMaxDepth      = 1
	MateDetectionMinDepth = 3
)

// Update is one probe of the root binary search.
type Update struct {
	Depth int
	Gamma int
	Score int
	// Move is the best root move known after the probe, NullMove if none.
	Move raymg.Move
}

// FailHigh reports whether the probe proved Score as a lower bound, which is
// when Move is worth playing.
func (u Update) FailHigh() bool { return u.Score >= u.Gamma }

type scoreKey struct {
	pos     raymg.Position
	depth   int
	canNull bool
}

func (k scoreKey) Hash() uint64 {
	h := k.pos.Hash() ^ uint64(k.depth)*0x9E3779B97F4A7C15
	if k.canNull {
		h ^= 0xD6E8FEB86659FD93
	}
	return h
}

type bounds struct {
	lower, upper int
}

// Searcher runs iterative-deepening MTD-bi searches. It is not safe for
// concurrent use.
type Searcher struct {
	scores   *transTable[scoreKey, bounds]
	killers  KillerTable
	history  stateStack
	scratch  []raymg.Move
	stats    CutStatistics
	maxDepth int
	logger   zerolog.Logger
}

func NewSearcher(opts ...Option) *Searcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Searcher{
		maxDepth: Clamp(cfg.maxDepth, 1, MaxDepth),
		logger:   cfg.logger,
		scratch:  make([]raymg.Move, 0, 128),
	}
	s.SetHashMB(cfg.hashMB)
	return s
}

// SetHashMB reallocates both tables, three quarters going to scores.
// Everything learned so far is dropped.
func (s *Searcher) SetHashMB(mb int) {
	size := max(mb, 1) * megabyte
	s.scores = newTransTable[scoreKey, bounds](size * 3 / 4)
	s.killers = newKillerTable(size / 4)
}

// SetMaxDepth bounds the iterative deepening of later searches.
func (s *Searcher) SetMaxDepth(depth int) {
	s.maxDepth = Clamp(depth, 1, MaxDepth)
}

// NewGame forgets everything learned in earlier searches.
func (s *Searcher) NewGame() {
	s.scores.clear()
	s.killers.ClearKillers()
}

// Stats returns the counters of the last search.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// Search deepens from depth 1, binary searching the score at each depth with
// null-window probes. Every probe yields an Update. The last element of
// history is the root; all of history counts for repetition. Stop by
// breaking out of the range loop.
func (s *Searcher) Search(history []raymg.Position) iter.Seq[Update] {
	if len(history) == 0 {
		panic("engine: Search needs at least the root position")
	}
	return func(yield func(Update) bool) {
		s.stats = CutStatistics{}
		s.history.reset(history)
		s.scores.clear()
		root := s.history.current()

		gamma := 0
		for depth := 1; depth <= s.maxDepth; depth++ {
			lower, upper := -MateLower, MateLower
			for lower < upper-EvalRoughness {
				score := s.bound(root, gamma, depth, false)
				if score >= gamma {
					lower = score
				} else {
					upper = score
				}
				m, _ := s.killers.Killer(root)
				if !yield(Update{Depth: depth, Gamma: gamma, Score: score, Move: m}) {
					return
				}
				gamma = floorDiv(lower+upper+1, 2)
			}
			s.logger.Debug().
				Int("depth", depth).
				Int("lower", lower).
				Int("upper", upper).
				Object("stats", s.stats).
				Msg("depth-complete")
		}
	}
}

// bound returns a score r for pos searched to depth such that r >= gamma
// proves the true score is at least r and r < gamma proves it is at most r.
func (s *Searcher) bound(pos raymg.Position, gamma, depth int, canNull bool) int {
	if depth < 0 {
		panic("engine: negative search depth")
	}
	s.stats.Nodes++

	// The opponent already took our king.
	if pos.Score <= -MateLower {
		return -MateUpper
	}

	key := scoreKey{pos: pos, depth: depth, canNull: canNull}
	entry, ok := s.scores.get(key)
	if !ok {
		entry = bounds{lower: -MateUpper, upper: MateUpper}
	}
	if entry.lower >= gamma || entry.upper < gamma {
		s.stats.TTCutoffs++
		if entry.lower >= gamma {
			return entry.lower
		}
		return entry.upper
	}

	if canNull && depth > 0 && s.history.contains(pos) {
		s.stats.RepetitionDraws++
		return DrawScore
	}

	best := -MateUpper
	for m, score := range s.candidates(pos, gamma, depth, canNull) {
		best = max(best, score)
		if best >= gamma {
			switch {
			case m != raymg.NullMove:
				s.stats.BetaCutoffs++
				s.killers.InsertKiller(pos, m)
			case depth == 0:
				s.stats.StandPatCutoffs++
			default:
				s.stats.NullMoveCutoffs++
			}
			break
		}
	}

	// Every move loses the king: mated if in check, otherwise stalemate.
	// Below this depth the distinction is left to the next iteration.
	if depth >= MateDetectionMinDepth && best == -MateUpper {
		if s.bound(pos.Rotate(true), MateUpper, 0, true) == MateUpper {
			s.stats.Mates++
			best = -(MateLower + depth)
		} else {
			s.stats.Stalemates++
			best = DrawScore
		}
	}

	if best >= gamma {
		s.scores.put(key, bounds{lower: best, upper: entry.upper})
	} else {
		s.scores.put(key, bounds{lower: entry.lower, upper: best})
	}
	return best
}

// candidates yields (move, score) pairs for pos in the order they should be
// tried. NullMove marks the null-move probe and the stand-pat score.
func (s *Searcher) candidates(pos raymg.Position, gamma, depth int, canNull bool) iter.Seq2[raymg.Move, int] {
	return func(yield func(raymg.Move, int) bool) {
		if depth >= NullMoveMinDepth && canNull && abs(pos.Score) < NullMoveMargin {
			score := -s.bound(pos.Rotate(true), 1-gamma, max(depth-NullMoveReduction, 0), true)
			if !yield(raymg.NullMove, score) {
				return
			}
		}

		if depth == 0 {
			if !yield(raymg.NullMove, pos.Score) {
				return
			}
		}

		killer, ok := s.killers.Killer(pos)
		if !ok && depth >= IIDReduction {
			s.bound(pos, gamma, depth-IIDReduction, false)
			killer, ok = s.killers.Killer(pos)
		}

		valLower := QS - depth*QSA
		child := max(depth-1, 0)
		if ok && pos.Value(killer) >= valLower {
			if !yield(killer, -s.bound(pos.Move(killer), 1-gamma, child, true)) {
				return
			}
		}

		for _, mv := range scoreMovesList(pos, &s.scratch).moves {
			if mv.value < valLower {
				break
			}
			if depth <= FutilityMaxDepth && pos.Score+mv.value < gamma {
				s.stats.FutilityPrunes++
				score := pos.Score + mv.value
				if mv.value >= MateLower {
					score = MateUpper
				}
				yield(mv.move, score)
				return
			}
			if !yield(mv.move, -s.bound(pos.Move(mv.move), 1-gamma, child, true)) {
				return
			}
		}
	}
}

// BestMove is the move stored for pos by the last fail-high, if any.
func (s *Searcher) BestMove(pos raymg.Position) (raymg.Move, bool) {
	return s.killers.Killer(pos)
}

// PV follows stored best moves from pos for at most n plies. Moves are in the
// mover-relative coordinates of the position they are played from.
func (s *Searcher) PV(pos raymg.Position, n int) []raymg.Move {
	var line []raymg.Move
	seen := map[raymg.Position]bool{pos: true}
	for len(line) < n {
		m, ok := s.killers.Killer(pos)
		if !ok {
			break
		}
		line = append(line, m)
		pos = pos.Move(m)
		if seen[pos] {
			break
		}
		seen[pos] = true
	}
	return line
}
