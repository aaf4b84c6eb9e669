// meta/meta.go
package meta

import "time"

// Goroutines defines the number of search workers per move.
const Goroutines = 4

// Exploration defines the UCB1 exploration constant.
const Exploration = 1.414

// Duration defines the thinking time per move.
const Duration = time.Second

// Rollouts defines the number of random playouts per expanded leaf.
const Rollouts = 10

// MaxTurns bounds a game; a 7x6 board is full after 42 moves.
const MaxTurns = 42
