package searcher

// Hyperparameters for MCTS

const DefaultExploration = 1.414 // Roughly sqrt(2)

// Rewards are always scored from the perspective of the player to move at the root
const (
	Win  = 1
	Loss = -Win
	Draw = 0
)
