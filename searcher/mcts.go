package searcher

import (
	"context"
	"errors"
	"math"
	"time"

	"connect4/bitboard"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

var ErrNoLegalMoves = errors.New("no legal moves")

type Option func(mcts *MCTS)

// Result is the outcome of one search call.
type Result struct {
	Column     int
	Visits     [game.Cols]int // Merged visits per root move
	RootVisits int
	RootReward int
	Metrics    SearchMetrics
}

type MCTS struct {
	goroutines  int
	exploration float64
	duration    time.Duration
	episodes    int // Per goroutine
	rollouts    int
	seed        uint64
	seeded      bool
	metrics     bool
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes runs a fixed number of iterations in every goroutine instead
// of searching against the clock.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithRollouts sets the number of random playouts simulated per leaf.
func WithRollouts(rollouts int) Option {
	return func(m *MCTS) {
		if rollouts > 0 {
			m.rollouts = rollouts
		}
	}
}

// WithSeed makes searches reproducible: goroutine i draws from seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = true
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  goroutines,
		exploration: DefaultExploration,
		rollouts:    1,
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines < 1 {
		panic("Must search with at least one goroutine")
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search grows one private tree per goroutine from board, merges the root
// visit counts once every goroutine has finished and returns the most visited
// column. Cancelling ctx stops the goroutines after their current iteration.
func (m *MCTS) Search(ctx context.Context, board bitboard.BitBoard) (Result, error) {
	legal := board.LegalMoves()
	if len(legal) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	collector := NewNoMetricsCollector()
	if m.metrics {
		collector = NewMetricsCollector()
	}
	collector.Start(m.goroutines)

	start := time.Now()
	deadline := start.Add(m.duration)
	agg := &aggregator{}

	if m.goroutines == 1 {
		w := m.newWorker(board, 0, collector)
		w.run(ctx, deadline)
		agg.merge(w.root)
	} else {
		g, ctx := errgroup.WithContext(ctx)
		for i := 0; i < m.goroutines; i++ {
			g.Go(func() error {
				w := m.newWorker(board, i, collector)
				w.run(ctx, deadline)
				agg.merge(w.root)
				return nil
			})
		}
		_ = g.Wait() // Workers never fail
	}

	result := Result{
		Column:     agg.bestMove(legal),
		Visits:     agg.snapshot(),
		RootVisits: int(agg.rootVisits.Load()),
		RootReward: int(agg.rootReward.Load()),
		Metrics:    collector.Complete(),
	}

	log.Debug().
		Int("goroutines", m.goroutines).
		Int("rootVisits", result.RootVisits).
		Int("rootReward", result.RootReward).
		Ints("visits", result.Visits[:]).
		Int("column", result.Column).
		Dur("elapsed", time.Since(start)).
		Msg("search complete")

	return result, nil
}

func (m *MCTS) newWorker(board bitboard.BitBoard, i int, collector MetricsCollector) *worker {
	seed := m.seed + uint64(i)
	if !m.seeded {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &worker{
		root:        newRoot(board),
		rng:         rand.New(rand.NewSource(seed)),
		exploration: m.exploration,
		episodes:    m.episodes,
		rollouts:    m.rollouts,
		collector:   collector,
	}
}

// worker owns one tree for the whole search; nothing in it is shared.
type worker struct {
	root        *Node
	rng         *rand.Rand
	path        []*Node
	exploration float64
	episodes    int
	rollouts    int
	collector   MetricsCollector
}

// run iterates until the episode budget is spent or, without one, until the
// deadline passes or ctx is done. At least one iteration always runs.
func (w *worker) run(ctx context.Context, deadline time.Time) {
	var episodes, terminalHits int64
	for {
		if w.simulate() {
			terminalHits++
		}
		episodes++

		if w.episodes > 0 {
			if episodes >= int64(w.episodes) {
				break
			}
		} else if !time.Now().Before(deadline) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	w.collector.AddEpisodes(episodes)
	w.collector.AddPlayouts((episodes - terminalHits) * int64(w.rollouts))
	w.collector.AddTerminalHits(terminalHits)
}

// simulate runs one selection, expansion, simulation and backpropagation pass
// and reports whether it ended on a terminal node.
func (w *worker) simulate() bool {
	node := w.root
	w.path = append(w.path[:0], node)

	// Selection
	for !node.isTerminal() && node.isFullyExpanded() && len(node.children) > 0 {
		node = node.selectChild(w.exploration)
		w.path = append(w.path, node)
	}

	// Expansion
	if !node.isTerminal() && !node.isFullyExpanded() {
		node = node.expand(w.rng)
		w.path = append(w.path, node)
	}

	// Simulation
	reward := node.simulate(w.rng, w.rollouts)

	// Backpropagation
	for _, n := range w.path {
		n.update(reward, w.rollouts)
	}
	return node.isTerminal()
}
