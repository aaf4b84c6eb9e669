package searcher

import (
	"math"

	"connect4/bitboard"
	"connect4/game"

	"golang.org/x/exp/rand"
)

// Node is a search tree node owned by a single worker. Rewards and visits are
// accumulated from the perspective of the player to move at the root.
type Node struct {
	board  bitboard.BitBoard
	action int // Column played to reach this node, -1 at the root

	// maximizing is set when the player to move in board is the root player,
	// in which case this node picks the child with the highest win ratio.
	maximizing bool

	visits   int
	reward   int
	children []*Node
	untried  []int

	terminal bool
	result   int // Outcome of a terminal node, fixed at expansion
}

func newRoot(board bitboard.BitBoard) *Node {
	return newNode(board, -1, true)
}

func newNode(board bitboard.BitBoard, action int, maximizing bool) *Node {
	return &Node{
		board:      board,
		action:     action,
		maximizing: maximizing,
		untried:    board.LegalMoves(),
	}
}

func (n *Node) isTerminal() bool {
	return n.terminal
}

func (n *Node) isFullyExpanded() bool {
	return len(n.untried) == 0
}

// selectChild returns the child with the highest UCB1 score, preferring the
// lowest column on ties.
func (n *Node) selectChild(c float64) *Node {
	if len(n.children) == 0 {
		panic("node has no children")
	}
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(c, float64(n.visits))

	var best *Node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := child.score(policy, n.maximizing)
		if best == nil || score > bestScore || (score == bestScore && child.action < best.action) {
			best = child
			bestScore = score
		}
	}
	return best
}

func (n *Node) score(policy *uct, maximizing bool) float64 {
	// Prioritize unexplored nodes
	if n.visits == 0 {
		return math.Inf(1)
	}
	return policy.evaluate(float64(n.reward), float64(n.visits), maximizing)
}

// expand plays one untried move chosen uniformly at random and adds the
// resulting child. A move that wins or fills the board yields a terminal child.
func (n *Node) expand(rng *rand.Rand) *Node {
	if n.isFullyExpanded() {
		panic("cannot expand a fully expanded node")
	}

	i := rng.Intn(len(n.untried))
	move := n.untried[i]
	last := len(n.untried) - 1
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]

	wins := n.board.IsWinningMove(move)
	board := n.board
	board.ApplyMove(move)

	child := newNode(board, move, !n.maximizing)
	switch {
	case wins:
		child.terminal = true
		child.result = outcome(n.maximizing)
		child.untried = nil
	case board.IsFull():
		child.terminal = true
		child.result = Draw
	}

	n.children = append(n.children, child)
	return child
}

// simulate returns the summed reward of rollouts random playouts from this
// node. Terminal nodes reuse their fixed result for every playout.
func (n *Node) simulate(rng *rand.Rand, rollouts int) int {
	if n.terminal {
		return n.result * rollouts
	}

	reward := 0
	for i := 0; i < rollouts; i++ {
		reward += rollout(n.board, n.maximizing, rng)
	}
	return reward
}

func (n *Node) update(reward, visits int) {
	n.visits += visits
	n.reward += reward
}

// rollout plays uniformly random moves until the game ends. rootToMove tells
// whether the player to move in board is the root player.
func rollout(board bitboard.BitBoard, rootToMove bool, rng *rand.Rand) int {
	var buf [game.Cols]int
	for {
		moves := board.AppendLegalMoves(buf[:0])
		if len(moves) == 0 {
			return Draw
		}
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		if board.IsWinningMove(move) {
			return outcome(rootToMove)
		}
		board.ApplyMove(move)
		rootToMove = !rootToMove
	}
}

// outcome is the reward of a win for the player to move.
func outcome(rootToMove bool) int {
	if rootToMove {
		return Win
	}
	return Loss
}
