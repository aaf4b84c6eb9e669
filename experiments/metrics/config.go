package metrics

import (
	"time"

	"connect4/searcher"
)

type AgentKind string

const (
	MCTSAgent     AgentKind = "mcts"
	RandomAgent   AgentKind = "random"
	TrainingAgent AgentKind = "training" // MCTS sampling moves by visit temperature
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID          int
	Kind        AgentKind
	Goroutines  int
	Duration    time.Duration
	Episodes    int
	Rollouts    int
	Exploration float64
	Temperature float64 // TrainingAgent only, 1 when unset
}

// SearchConfig returns the searcher settings of an MCTS agent, filling unset
// fields from the defaults. Metrics are always collected.
func (c AgentConfig) SearchConfig() searcher.Config {
	cfg := searcher.DefaultConfig()
	cfg.Metrics = true
	if c.Goroutines > 0 {
		cfg.Goroutines = c.Goroutines
	}
	if c.Exploration > 0 {
		cfg.Exploration = c.Exploration
	}
	if c.Rollouts > 0 {
		cfg.Rollouts = c.Rollouts
	}
	if c.Episodes > 0 {
		cfg.Episodes = c.Episodes
		cfg.Duration = 0
	}
	if c.Duration > 0 {
		cfg.Duration = c.Duration
	}
	return cfg
}
