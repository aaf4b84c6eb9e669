package engine

import (
	"context"

	"connect4/experiments/metrics"
)

type Engine interface {
	// Run plays a game till there's a winner or the board is full. The winner
	// is game.Empty on a draw.
	Run(ctx context.Context) (winner uint8, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
