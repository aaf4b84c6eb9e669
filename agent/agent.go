package agent

import (
	"context"

	"connect4/game"
	"connect4/searcher"
)

type Chooser interface {
	// ChooseMove returns a column that is legal on board for player, or false
	// when the board is full. The board is never modified.
	ChooseMove(ctx context.Context, board game.Board, player uint8) (int, bool)
}

// Reporter is implemented by choosers that collect metrics while searching.
type Reporter interface {
	// LastMetrics returns the metrics of the most recent move, if collected
	LastMetrics() searcher.SearchMetrics
}
