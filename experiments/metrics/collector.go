package metrics

import (
	"time"

	"connect4/searcher"
)

type MoveMetric struct {
	Step   int
	Player uint8
	Column int
	searcher.SearchMetrics
}

type GameMetric struct {
	StartingPlayer uint8
	Winner         uint8 // game.Empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records the moves of a single game.
type Collector interface {
	Start(startingPlayer uint8)
	AddMove(move MoveMetric)
	Complete(winner uint8) (GameMetric, []MoveMetric)
}

type collector struct {
	startingPlayer uint8
	startTime      time.Time
	moves          []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(startingPlayer uint8) {
	m.startTime = time.Now()
	m.startingPlayer = startingPlayer
	m.moves = m.moves[:0]
}

func (m *collector) AddMove(move MoveMetric) {
	m.moves = append(m.moves, move)
}

func (m *collector) Complete(winner uint8) (GameMetric, []MoveMetric) {
	end := time.Now()
	moves := make([]MoveMetric, len(m.moves))
	copy(moves, m.moves)
	return GameMetric{
		StartingPlayer: m.startingPlayer,
		Winner:         winner,
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		TotalMoves:     len(moves),
	}, moves
}
