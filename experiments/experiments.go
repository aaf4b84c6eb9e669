package experiments

import (
	"context"
	"fmt"
	"time"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Options controls the size of an experiment and where its CSV files go.
type Options struct {
	Games    int           // Per match up, NumGames when unset
	OutDir   string        // Root directory of the results, "experiments" when unset
	Budget   time.Duration // Thinking time per move, TimeBudget when unset
	Episodes int           // Fixed iterations per goroutine instead of Budget
}

func (o Options) withDefaults() Options {
	if o.Games <= 0 {
		o.Games = NumGames
	}
	if o.OutDir == "" {
		o.OutDir = "experiments"
	}
	if o.Budget <= 0 {
		o.Budget = TimeBudget
	}
	return o
}

func mctsConfig(id, goroutines int, opts Options) metrics.AgentConfig {
	return metrics.AgentConfig{ID: id, Kind: metrics.MCTSAgent, Goroutines: goroutines, Duration: opts.Budget, Episodes: opts.Episodes}
}

func parallelConfigs(opts Options) []metrics.AgentConfig {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{2, 4, 8, 16} {
		configs = append(configs, mctsConfig(i+1, goroutines, opts))
	}
	return configs
}

// RunStrengthExperiment pairs MCTS agents of growing parallelism against a
// uniform random agent.
func RunStrengthExperiment(ctx context.Context, opts Options) (string, error) {
	opts = opts.withDefaults()
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.RandomAgent}
	configs := append([]metrics.AgentConfig{mctsConfig(0, 1, opts)}, parallelConfigs(opts)...)
	for i := range configs {
		configs[i].ID = i + 1
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, "strength", append(configs, baseline), matchUps, opts)
}

// RunParallelizationExperiment pairs each parallel agent against the
// baseline sequential agent under the same time budget.
func RunParallelizationExperiment(ctx context.Context, opts Options) (string, error) {
	opts = opts.withDefaults()
	baseline := mctsConfig(0, 1, opts)
	configs := parallelConfigs(opts)

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, "parallelization", append(configs, baseline), matchUps, opts)
}

// RunSelfPlayExperiment pairs training agents of growing parallelism against
// themselves. Sampling by visit temperature keeps the games apart.
func RunSelfPlayExperiment(ctx context.Context, opts Options) (string, error) {
	opts = opts.withDefaults()
	configs := append([]metrics.AgentConfig{mctsConfig(0, 1, opts)}, parallelConfigs(opts)...)
	for i := range configs {
		configs[i].ID = i + 1
		configs[i].Kind = metrics.TrainingAgent
		configs[i].Temperature = 1
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment(ctx, "selfplay", configs, matchUps, opts)
}

// runExperiment plays opts.Games games per matchup, alternating which agent
// moves first, then writes the configs and records as CSV. It returns the
// directory holding the files.
func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) (string, error) {
	writer, err := metrics.NewWriter(opts.OutDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Str("run", writer.RunID()).Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		wins := [3]int{}
		for i := 0; i < opts.Games; i++ {
			if err := ctx.Err(); err != nil {
				return "", fmt.Errorf("%s experiment interrupted: %w", name, err)
			}

			starting := game.Player1
			if i%2 == 1 {
				starting = game.Player2
			}

			winner, gameMetric, moveMetrics, err := runGame(ctx, config1, config2, starting)
			if err != nil {
				return "", err
			}
			count++
			wins[winner]++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d: agent1 %d wins, agent2 %d wins, %d draws", mi+1, len(matchUps), wins[1], wins[2], wins[0])
	}

	log.Info().Msgf("completed %s experiment", name)

	if err := store(writer, configs, gameRecords, moveRecords); err != nil {
		return "", err
	}
	return writer.Dir(), nil
}

func store(writer *metrics.Writer, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, config1, config2 metrics.AgentConfig, starting uint8) (uint8, metrics.GameMetric, []metrics.MoveMetric, error) {
	chooser1, err := NewChooser(config1)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	chooser2, err := NewChooser(config2)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine(chooser1, chooser2, starting)
	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

// NewChooser builds the chooser described by config.
func NewChooser(config metrics.AgentConfig) (agent.Chooser, error) {
	switch config.Kind {
	case metrics.RandomAgent:
		return agent.NewRandomChooser(), nil
	case metrics.MCTSAgent, "":
		mcts, err := config.SearchConfig().New()
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		return agent.NewMCTSChooser(mcts), nil
	case metrics.TrainingAgent:
		mcts, err := config.SearchConfig().New()
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		return agent.NewTrainingChooser(mcts, config.Temperature), nil
	default:
		return nil, fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}
}
