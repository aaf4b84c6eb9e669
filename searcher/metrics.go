package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int64
	Playouts     int64
	TerminalHits int64 // Episodes that ended on a terminal node without a rollout
}

type MetricsCollector interface {
	Start(goroutines int)
	AddEpisodes(n int64)
	AddPlayouts(n int64)
	AddTerminalHits(n int64)
	Complete() SearchMetrics
}

type metricsCollector struct {
	goroutines   int
	startTime    time.Time
	episodes     atomic.Int64
	playouts     atomic.Int64
	terminalHits atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *metricsCollector) AddEpisodes(n int64) {
	m.episodes.Add(n)
}

func (m *metricsCollector) AddPlayouts(n int64) {
	m.playouts.Add(n)
}

func (m *metricsCollector) AddTerminalHits(n int64) {
	m.terminalHits.Add(n)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes.Load(),
		Playouts:     m.playouts.Load(),
		TerminalHits: m.terminalHits.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(goroutines int)    {}
func (m *noMetricsCollector) AddEpisodes(n int64)     {}
func (m *noMetricsCollector) AddPlayouts(n int64)     {}
func (m *noMetricsCollector) AddTerminalHits(n int64) {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
