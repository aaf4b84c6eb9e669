package engine

import (
	"context"
	"testing"

	"connect4/agent"
	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
)

// scripted plays the given columns in order.
type scripted struct {
	cols []int
	next int
}

func (s *scripted) ChooseMove(_ context.Context, board game.Board, _ uint8) (int, bool) {
	if board.IsFull() {
		return -1, false
	}
	col := s.cols[s.next]
	s.next++
	return col, true
}

func TestLocalEngine(t *testing.T) {
	t.Run("panics without two choosers", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(agent.NewRandomChooser(), nil, game.Player1) })
	})

	t.Run("panics on an unknown starting player", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(agent.NewRandomChooser(), agent.NewRandomChooser(), 3) })
	})
}

func TestLocalRun(t *testing.T) {
	ctx := context.Background()

	t.Run("vertical win", func(t *testing.T) {
		e := LocalEngine(&scripted{cols: []int{0, 0, 0, 0}}, &scripted{cols: []int{1, 1, 1}}, game.Player1)
		winner, gameMetric, moves := e.Run(ctx)

		require.Equal(t, game.Player1, winner)
		require.Equal(t, 7, gameMetric.TotalMoves)
		require.Equal(t, game.Player1, gameMetric.StartingPlayer)
		require.Len(t, moves, 7)
		require.Equal(t, 0, moves[6].Column)
		require.Equal(t, 7, moves[6].Step)
	})

	t.Run("second player starting", func(t *testing.T) {
		e := LocalEngine(&scripted{cols: []int{6, 6, 6}}, &scripted{cols: []int{0, 1, 2, 3}}, game.Player2)
		winner, _, moves := e.Run(ctx)

		require.Equal(t, game.Player2, winner)
		require.Equal(t, game.Player2, moves[0].Player)
		require.Equal(t, game.Player1, moves[1].Player)
	})

	t.Run("illegal column is replaced", func(t *testing.T) {
		e := LocalEngine(&scripted{cols: []int{9, 3, 3, 5}}, &scripted{cols: []int{4, 4, 4, 4}}, game.Player1)
		winner, gameMetric, moves := e.Run(ctx)

		require.Equal(t, 0, moves[0].Column, "Should force the first legal column")
		require.Equal(t, game.Player1, e.Board.Cells[0][0])
		require.Equal(t, game.Empty, e.Board.Cells[1][0])
		require.Equal(t, game.Player2, winner, "Player 2 fills column 4 on the eighth move")
		require.Equal(t, 8, gameMetric.TotalMoves)
	})

	t.Run("random games end", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			e := LocalEngine(agent.NewRandomChooser(), agent.NewRandomChooser(), game.Player1)
			winner, gameMetric, moves := e.Run(ctx)

			require.LessOrEqual(t, gameMetric.TotalMoves, game.Cells)
			require.Len(t, moves, gameMetric.TotalMoves)
			require.Equal(t, e.Board.Winner(), winner)
			if winner == game.Empty {
				require.True(t, e.Board.IsFull())
			}
		}
	})

	t.Run("recording search metrics", func(t *testing.T) {
		mcts := searcher.NewMCTS(2, searcher.WithEpisodes(20), searcher.WithMetrics())
		e := LocalEngine(agent.NewMCTSChooser(mcts), agent.NewRandomChooser(), game.Player1)
		_, _, moves := e.Run(ctx)

		require.Equal(t, int64(40), moves[0].Episodes)
		require.Zero(t, moves[1].Episodes, "Random chooser reports nothing")
	})
}
