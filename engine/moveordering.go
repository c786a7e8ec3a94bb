package engine

import (
	"golang.org/x/exp/slices"

	"raychess/raymg"
)

type move struct {
	move  raymg.Move
	value int
}

type moveList struct {
	moves []move
}

// scoreMovesList generates every pseudo-legal move of pos with its
// incremental value, ordered best first. Equal values keep generation order.
// scratch is reused for generation and may be shared across recursion.
func scoreMovesList(pos raymg.Position, scratch *[]raymg.Move) (movesList moveList) {
	generated := pos.AppendMoves((*scratch)[:0])
	*scratch = generated
	movesList.moves = make([]move, len(generated))
	for i, m := range generated {
		movesList.moves[i] = move{move: m, value: pos.Value(m)}
	}
	slices.SortStableFunc(movesList.moves, func(a, b move) int {
		return b.value - a.value
	})
	return movesList
}
