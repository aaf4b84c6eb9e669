package agent

import (
	"context"
	"math"
	"sync"

	"connect4/game"
	"connect4/searcher"

	"lukechampine.com/frand"
)

type TrainingChooser struct {
	mcts        *searcher.MCTS
	temperature float64

	mu   sync.Mutex
	last searcher.SearchMetrics
}

// NewTrainingChooser returns a chooser for self-play: it samples a column in
// proportion to its visits raised to 1/temperature, so games diverge from the
// same opening. A non-positive temperature defaults to 1.
func NewTrainingChooser(mcts *searcher.MCTS, temperature float64) *TrainingChooser {
	if temperature <= 0 {
		temperature = 1
	}
	return &TrainingChooser{mcts: mcts, temperature: temperature}
}

func (c *TrainingChooser) ChooseMove(ctx context.Context, board game.Board, player uint8) (int, bool) {
	result, legal, ok := search(ctx, c.mcts, board, player)
	if !ok {
		return -1, false
	}
	c.mu.Lock()
	c.last = result.Metrics
	c.mu.Unlock()

	policy := adjustTemperature(result.Visits, legal, c.temperature)
	return ensureLegal(sample(policy, legal, frand.Float64()), legal), true
}

func (c *TrainingChooser) LastMetrics() searcher.SearchMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// adjustTemperature turns the visit counts of the legal columns into move
// probabilities. All zero visits give a uniform policy.
func adjustTemperature(visits [game.Cols]int, legal []int, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(legal))
	for i, col := range legal {
		policy[i] = math.Pow(float64(visits[col]), exponent)
		sum += policy[i]
	}
	// Normalize
	for i := range policy {
		if sum == 0 {
			policy[i] = 1 / float64(len(policy))
		} else {
			policy[i] /= sum
		}
	}
	return policy
}

// sample picks the legal column whose cumulative probability first exceeds u.
func sample(policy []float64, legal []int, u float64) int {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if u < cumulative {
			return legal[i]
		}
	}
	return legal[len(legal)-1] // Fallback in case of rounding errors
}
