package searcher

import (
	"sync"
	"sync/atomic"

	"connect4/game"
	"connect4/utils"
)

// aggregator merges the root statistics of independently grown worker trees.
// Visit counts per column only ever grow; only node counters cross workers.
type aggregator struct {
	mu     sync.Mutex
	visits [game.Cols]int

	rootVisits atomic.Int64
	rootReward atomic.Int64
}

// merge adds a finished worker tree into the tally. Safe for concurrent use.
func (a *aggregator) merge(root *Node) {
	a.rootVisits.Add(int64(root.visits))
	a.rootReward.Add(int64(root.reward))

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, child := range root.children {
		a.visits[child.action] += child.visits
	}
}

// bestMove returns the legal column with the most merged visits, the lowest
// column on ties. legal must be in ascending order.
func (a *aggregator) bestMove(legal []int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return utils.ArgMaxBy(legal, func(col int) int { return a.visits[col] })
}

func (a *aggregator) snapshot() [game.Cols]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visits
}
