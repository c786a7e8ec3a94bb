package engine

import (
	"raychess/raymg"
)

// stateStack holds the positions already played in the game. Reaching any of
// them again inside the search is scored as a draw.
type stateStack struct {
	positions []raymg.Position
	seen      map[raymg.Position]struct{}
}

// reset rebuilds the stack from the game history, oldest first.
func (s *stateStack) reset(history []raymg.Position) {
	s.positions = append(s.positions[:0], history...)
	s.seen = make(map[raymg.Position]struct{}, len(history))
	for _, p := range history {
		s.seen[p] = struct{}{}
	}
}

func (s *stateStack) contains(p raymg.Position) bool {
	_, ok := s.seen[p]
	return ok
}

// current is the position to move from.
func (s *stateStack) current() raymg.Position {
	return s.positions[len(s.positions)-1]
}
