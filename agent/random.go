package agent

import (
	"context"

	"connect4/game"

	"lukechampine.com/frand"
)

type RandomChooser struct{}

// NewRandomChooser returns a chooser picking uniformly among legal columns.
func NewRandomChooser() RandomChooser {
	return RandomChooser{}
}

func (RandomChooser) ChooseMove(_ context.Context, board game.Board, _ uint8) (int, bool) {
	legal := board.LegalColumns()
	if len(legal) == 0 {
		return -1, false
	}
	return legal[frand.Intn(len(legal))], true
}
