package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "move", "One of move, play or experiment")
	position := flag.String("position", "", "Board for -mode move, top row first, rows separated by '/'")
	player := flag.Int("player", 1, "Player to move for -mode move")
	opponent := flag.String("opponent", "random", "Opponent of the MCTS chooser for -mode play: random, mcts or training")
	temperature := flag.Float64("temperature", 1, "Sampling temperature of the training opponent")
	experiment := flag.String("experiment", "strength", "One of strength, parallelization, throughput or selfplay")
	games := flag.Int("games", experiments.NumGames, "Games per matchup for -mode experiment")
	out := flag.String("out", "experiments", "Output directory for -mode experiment")

	goroutines := flag.Int("goroutines", meta.Goroutines, "Number of goroutines searching in parallel")
	duration := flag.Duration("duration", meta.Duration, "Thinking time per move")
	episodes := flag.Int("episodes", 0, "Fixed iterations per goroutine, overrides -duration")
	rollouts := flag.Int("rollouts", meta.Rollouts, "Random playouts per expanded leaf")
	exploration := flag.Float64("exploration", meta.Exploration, "UCB1 exploration constant")
	seed := flag.Int64("seed", -1, "Seed for reproducible searches, random when negative")

	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	cpuProfile := flag.Bool("profile", false, "Write a CPU profile to the working directory")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	cfg := searcher.Config{
		Exploration: *exploration,
		Goroutines:  *goroutines,
		Duration:    *duration,
		Rollouts:    *rollouts,
	}
	if *episodes > 0 {
		cfg.Episodes = *episodes
		cfg.Duration = 0
	}
	if *seed >= 0 {
		cfg.Seed = uint64(*seed)
		cfg.Seeded = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "move":
		var id uint8
		id, err = playerID(*player)
		if err == nil {
			err = runMove(ctx, cfg, *position, id)
		}
	case "play":
		err = runPlay(ctx, cfg, *opponent, *temperature)
	case "experiment":
		err = runExperiment(ctx, *experiment, experiments.Options{Games: *games, OutDir: *out, Budget: cfg.Duration, Episodes: cfg.Episodes})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Str("mode", *mode).Msg("failed")
		stop()
		os.Exit(1)
	}
}

// playerID checks the -player flag before narrowing it to a cell value.
func playerID(player int) (uint8, error) {
	if player != int(game.Player1) && player != int(game.Player2) {
		return 0, fmt.Errorf("player must be 1 or 2, got %d", player)
	}
	return uint8(player), nil
}

// runMove prints the column the MCTS chooser plays in position.
func runMove(ctx context.Context, cfg searcher.Config, position string, player uint8) error {
	board := game.NewBoard()
	if position != "" {
		var err error
		board, err = game.ParseBoard(position)
		if err != nil {
			return fmt.Errorf("invalid position: %w", err)
		}
	}

	mcts, err := cfg.New()
	if err != nil {
		return err
	}
	col, ok := agent.NewMCTSChooser(mcts).ChooseMove(ctx, board, player)
	if !ok {
		fmt.Println("none")
		return nil
	}
	fmt.Println(col)
	return nil
}

// runPlay pits the MCTS chooser as player 1 against opponent and prints the
// final board.
func runPlay(ctx context.Context, cfg searcher.Config, opponent string, temperature float64) error {
	mcts, err := cfg.New()
	if err != nil {
		return err
	}
	other, err := newOpponent(cfg, opponent, temperature)
	if err != nil {
		return err
	}

	e := engine.LocalEngine(agent.NewMCTSChooser(mcts), other, game.Player1)
	winner, gameMetric, _ := e.Run(ctx)

	fmt.Print(e.Board.String())
	if winner == game.Empty {
		fmt.Printf("draw after %d moves in %v\n", gameMetric.TotalMoves, gameMetric.Duration)
	} else {
		fmt.Printf("player %d wins after %d moves in %v\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
	}
	return nil
}

func newOpponent(cfg searcher.Config, opponent string, temperature float64) (agent.Chooser, error) {
	switch opponent {
	case "random":
		return agent.NewRandomChooser(), nil
	case "mcts", "training":
		rival, err := cfg.New()
		if err != nil {
			return nil, err
		}
		if opponent == "training" {
			return agent.NewTrainingChooser(rival, temperature), nil
		}
		return agent.NewMCTSChooser(rival), nil
	default:
		return nil, fmt.Errorf("unknown opponent %q", opponent)
	}
}

func runExperiment(ctx context.Context, name string, opts experiments.Options) error {
	run := map[string]func(context.Context, experiments.Options) (string, error){
		"strength":        experiments.RunStrengthExperiment,
		"parallelization": experiments.RunParallelizationExperiment,
		"throughput":      experiments.RunThroughputExperiment,
		"selfplay":        experiments.RunSelfPlayExperiment,
	}[name]
	if run == nil {
		return fmt.Errorf("unknown experiment %q", name)
	}

	dir, err := run(ctx, opts)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msgf("%s results written", name)
	return nil
}
