package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"connect4/agent"
	"connect4/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, dir, file string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, file))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewChooser(t *testing.T) {
	t.Run("random", func(t *testing.T) {
		c, err := NewChooser(metrics.AgentConfig{Kind: metrics.RandomAgent})
		require.NoError(t, err)
		require.IsType(t, agent.RandomChooser{}, c)
	})

	t.Run("mcts", func(t *testing.T) {
		c, err := NewChooser(metrics.AgentConfig{Kind: metrics.MCTSAgent, Goroutines: 2, Episodes: 10})
		require.NoError(t, err)
		require.IsType(t, &agent.MCTSChooser{}, c)
	})

	t.Run("training", func(t *testing.T) {
		c, err := NewChooser(metrics.AgentConfig{Kind: metrics.TrainingAgent, Goroutines: 2, Episodes: 10, Temperature: 0.5})
		require.NoError(t, err)
		require.IsType(t, &agent.TrainingChooser{}, c)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewChooser(metrics.AgentConfig{ID: 3, Kind: "minimax"})
		require.ErrorContains(t, err, `agent 3: unknown kind "minimax"`)
	})
}

func TestRunStrengthExperiment(t *testing.T) {
	dir, err := RunStrengthExperiment(context.Background(), Options{Games: 2, Episodes: 5, OutDir: t.TempDir()})
	require.NoError(t, err)

	configs := readCSV(t, dir, "agent_configs.csv")
	require.Len(t, configs, 1+6, "Five MCTS agents and the random baseline")

	games := readCSV(t, dir, "game_records.csv")
	require.Len(t, games, 1+5*2)
	require.Equal(t, "starting_player", games[0][4])
	require.Equal(t, "1", games[1][4], "First game of a matchup starts with player 1")
	require.Equal(t, "2", games[2][4], "Starts alternate")
	require.Equal(t, "0", games[1][2], "Random baseline plays as player 1")

	moves := readCSV(t, dir, "move_records.csv")
	require.GreaterOrEqual(t, len(moves), 1+5*2*7, "Every game takes at least seven moves")
}

func TestRunParallelizationExperiment(t *testing.T) {
	dir, err := RunParallelizationExperiment(context.Background(), Options{Games: 1, Episodes: 5, OutDir: t.TempDir()})
	require.NoError(t, err)

	games := readCSV(t, dir, "game_records.csv")
	require.Len(t, games, 1+4)
	for _, row := range games[1:] {
		require.Equal(t, "0", row[2], "Sequential baseline in every matchup")
	}
}

func TestRunThroughputExperiment(t *testing.T) {
	dir, err := RunThroughputExperiment(context.Background(), Options{Games: 1, Episodes: 3, OutDir: t.TempDir()})
	require.NoError(t, err)

	games := readCSV(t, dir, "game_records.csv")
	require.Len(t, games, 1+5)
	for _, row := range games[1:] {
		require.Equal(t, row[2], row[3], "Agents play themselves")
	}

	moves := readCSV(t, dir, "move_records.csv")
	require.Equal(t, "episodes", moves[0][7])
	require.Equal(t, "3", moves[1][7], "A single goroutine runs its fixed episodes")
}

func TestRunExperimentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunStrengthExperiment(ctx, Options{Games: 1, Episodes: 5, OutDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunSelfPlayExperiment(t *testing.T) {
	dir, err := RunSelfPlayExperiment(context.Background(), Options{Games: 2, Episodes: 5, OutDir: t.TempDir()})
	require.NoError(t, err)

	configs := readCSV(t, dir, "agent_configs.csv")
	require.Len(t, configs, 1+5)
	for _, row := range configs[1:] {
		require.Equal(t, "training", row[2])
		require.Equal(t, "1", row[8], "Self-play samples at temperature 1")
	}

	games := readCSV(t, dir, "game_records.csv")
	require.Len(t, games, 1+5*2)
	for _, row := range games[1:] {
		require.Equal(t, row[2], row[3], "Agents play themselves")
	}
}
