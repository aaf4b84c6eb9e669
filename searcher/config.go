package searcher

import (
	"errors"
	"fmt"
	"time"

	"connect4/meta"
)

// Config is the tunable surface of the MCTS chooser.
type Config struct {
	Exploration float64
	Goroutines  int
	Duration    time.Duration
	Episodes    int // Fixed iterations per goroutine, overrides Duration when set
	Rollouts    int
	Seed        uint64
	Seeded      bool
	Metrics     bool
}

func DefaultConfig() Config {
	return Config{
		Exploration: meta.Exploration,
		Goroutines:  meta.Goroutines,
		Duration:    meta.Duration,
		Rollouts:    meta.Rollouts,
	}
}

// Validate reports every setting outside its allowed range.
func (c Config) Validate() error {
	var errs []error
	if c.Exploration <= 0 {
		errs = append(errs, fmt.Errorf("exploration constant must be positive, got %v", c.Exploration))
	}
	if c.Goroutines < 1 {
		errs = append(errs, fmt.Errorf("goroutines must be at least 1, got %d", c.Goroutines))
	}
	if c.Rollouts < 1 {
		errs = append(errs, fmt.Errorf("rollouts must be at least 1, got %d", c.Rollouts))
	}
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %v", c.Duration))
	}
	if c.Episodes < 0 {
		errs = append(errs, fmt.Errorf("episodes must not be negative, got %d", c.Episodes))
	}
	if c.Duration <= 0 && c.Episodes <= 0 {
		errs = append(errs, errors.New("must specify search episodes or duration"))
	}
	return errors.Join(errs...)
}

func (c Config) Options() []Option {
	options := []Option{
		WithExploration(c.Exploration),
		WithRollouts(c.Rollouts),
	}
	if c.Episodes > 0 {
		options = append(options, WithEpisodes(c.Episodes))
	}
	if c.Duration > 0 {
		options = append(options, WithDuration(c.Duration))
	}
	if c.Seeded {
		options = append(options, WithSeed(c.Seed))
	}
	if c.Metrics {
		options = append(options, WithMetrics())
	}
	return options
}

// New validates the config and builds the searcher.
func (c Config) New() (*MCTS, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	return NewMCTS(c.Goroutines, c.Options()...), nil
}
