package experiments

import (
	"context"

	"connect4/experiments/metrics"
)

// RunThroughputExperiment plays each parallel config against itself for the
// same playing strength and similar game length. The move records hold the
// episodes searched per move.
func RunThroughputExperiment(ctx context.Context, opts Options) (string, error) {
	opts = opts.withDefaults()
	configs := append([]metrics.AgentConfig{mctsConfig(0, 1, opts)}, parallelConfigs(opts)...)
	for i := range configs {
		configs[i].ID = i + 1
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment(ctx, "throughput", configs, matchUps, opts)
}
