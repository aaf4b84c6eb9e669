package agent

import (
	"context"
	"sync"

	"connect4/bitboard"
	"connect4/game"
	"connect4/searcher"
	"connect4/utils"

	"github.com/rs/zerolog/log"
)

type MCTSChooser struct {
	mcts *searcher.MCTS

	mu   sync.Mutex
	last searcher.SearchMetrics
}

// NewMCTSChooser returns a chooser for actual game play: it plays the most
// visited column of every search.
func NewMCTSChooser(mcts *searcher.MCTS) *MCTSChooser {
	return &MCTSChooser{mcts: mcts}
}

func (c *MCTSChooser) ChooseMove(ctx context.Context, board game.Board, player uint8) (int, bool) {
	result, legal, ok := search(ctx, c.mcts, board, player)
	if !ok {
		return -1, false
	}
	c.record(result.Metrics)
	return ensureLegal(result.Column, legal), true
}

func (c *MCTSChooser) LastMetrics() searcher.SearchMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *MCTSChooser) record(metrics searcher.SearchMetrics) {
	c.mu.Lock()
	c.last = metrics
	c.mu.Unlock()
}

// search runs mcts from the perspective of player. It returns false only
// when board has no legal column. A snapshot that is not made of 0, 1 and 2
// or an unknown player is not searched.
func search(ctx context.Context, mcts *searcher.MCTS, board game.Board, player uint8) (searcher.Result, []int, bool) {
	legal := board.LegalColumns()
	if len(legal) == 0 {
		return searcher.Result{}, nil, false
	}
	if player != game.Player1 && player != game.Player2 {
		log.Warn().Uint8("player", player).Ints("legal", legal).Msg("unknown player, falling back to first legal column")
		return searcher.Result{Column: legal[0]}, legal, true
	}
	if err := board.Validate(); err != nil {
		log.Warn().Err(err).Ints("legal", legal).Msg("invalid board snapshot, falling back to first legal column")
		return searcher.Result{Column: legal[0]}, legal, true
	}
	result, err := mcts.Search(ctx, bitboard.FromBoard(&board, player))
	if err != nil {
		// The encoding disagrees with the snapshot, never fatal
		log.Warn().Err(err).Ints("legal", legal).Msg("search failed, falling back to first legal column")
		return searcher.Result{Column: legal[0]}, legal, true
	}
	return result, legal, true
}

// ensureLegal checks col against the columns legal on the external board.
func ensureLegal(col int, legal []int) int {
	if utils.FindIndex(legal, col) < 0 {
		log.Warn().Int("column", col).Ints("legal", legal).Msg("search chose an illegal column, falling back to first legal column")
		return legal[0]
	}
	return col
}
