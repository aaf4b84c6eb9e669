package engine

import (
	"context"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"

	"github.com/rs/zerolog/log"
)

// Local alternates two choosers on a board it owns.
type Local struct {
	Board    game.Board
	choosers [2]agent.Chooser
	starting uint8
}

// LocalEngine pits player1 against player2 on an empty board, with starting
// moving first.
func LocalEngine(player1, player2 agent.Chooser, starting uint8) *Local {
	if player1 == nil || player2 == nil {
		panic("need two choosers")
	}
	if starting != game.Player1 && starting != game.Player2 {
		panic("starting player must be 1 or 2")
	}
	return &Local{
		Board:    game.NewBoard(),
		choosers: [2]agent.Chooser{player1, player2},
		starting: starting,
	}
}

// Run executes the entire game loop until a winner is found or the board is
// full. Cancelling ctx only shortens the remaining searches.
func (e *Local) Run(ctx context.Context) (uint8, metrics.GameMetric, []metrics.MoveMetric) {
	collector := metrics.NewCollector()
	collector.Start(e.starting)

	log.Info().Msgf("player %d is starting", e.starting)

	winner := game.Empty
	player := e.starting
	for step := 1; step <= meta.MaxTurns; step++ {
		chooser := e.choosers[player-1]
		col, ok := chooser.ChooseMove(ctx, e.Board, player)
		if !ok {
			break
		}

		row, ok := e.Board.Play(col, player)
		if !ok {
			fallback := e.Board.LegalColumns()
			log.Warn().Int("column", col).Uint8("player", player).Msg("chooser returned an illegal column, forcing first legal column")
			col = fallback[0]
			row, _ = e.Board.Play(col, player)
		}

		move := metrics.MoveMetric{Step: step, Player: player, Column: col}
		if r, ok := chooser.(agent.Reporter); ok {
			move.SearchMetrics = r.LastMetrics()
		}
		collector.AddMove(move)

		log.Debug().Int("step", step).Uint8("player", player).Int("column", col).Msg("move played")

		if e.Board.CheckWin(row, col) {
			winner = player
			break
		}
		if e.Board.IsFull() {
			break
		}
		player = game.Opponent(player)
	}

	gameMetric, moveMetrics := collector.Complete(winner)
	if winner == game.Empty {
		log.Info().Msgf("game drawn after %d moves", gameMetric.TotalMoves)
	} else {
		log.Info().Msgf("player %d won after %d moves", winner, gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics
}
