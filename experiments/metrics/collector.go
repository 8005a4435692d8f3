package metrics

import (
	"sync"
	"time"

	"lanes/engine"
)

// Tally holds the failure count per strategy.
type Tally struct {
	WithComm   int `json:"with_comm"`
	NoComm     int `json:"no_comm"`
	Base       int `json:"base"`
	Iterations int `json:"iterations"`
	Skipped    int `json:"skipped"`
}

type StrategyMetric struct {
	Runs       int `json:"runs"`
	Failures   int `json:"failures"`
	Collisions int `json:"collisions"`
}

type Summary struct {
	RunID      string                    `json:"run_id"`
	StartTime  time.Time                 `json:"start_time"`
	EndTime    time.Time                 `json:"end_time"`
	Duration   time.Duration             `json:"duration"`
	Tally      Tally                     `json:"tally"`
	Strategies map[string]StrategyMetric `json:"strategies"`
}

type Collector interface {
	Start()
	AddOutcome(strategy engine.Strategy, failure, collision bool)
	AddIteration()
	AddSkipped()
	Complete() Summary
}

type collector struct {
	mu         sync.Mutex
	startTime  time.Time
	iterations int
	skipped    int
	strategies map[string]StrategyMetric
}

func NewCollector() Collector {
	return &collector{strategies: make(map[string]StrategyMetric)}
}

func (m *collector) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startTime = time.Now()
}

func (m *collector) AddOutcome(strategy engine.Strategy, failure, collision bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.strategies[string(strategy)]
	s.Runs++
	if failure {
		s.Failures++
	}
	if collision {
		s.Collisions++
	}
	m.strategies[string(strategy)] = s
}

func (m *collector) AddIteration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.iterations++
}

func (m *collector) AddSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped++
}

func (m *collector) Complete() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := time.Now()
	strategies := make(map[string]StrategyMetric, len(m.strategies))
	for k, v := range m.strategies {
		strategies[k] = v
	}
	return Summary{
		StartTime: m.startTime,
		EndTime:   end,
		Duration:  end.Sub(m.startTime),
		Tally: Tally{
			WithComm:   strategies[string(engine.WithComm)].Failures,
			NoComm:     strategies[string(engine.NoComm)].Failures,
			Base:       strategies[string(engine.Base)].Failures,
			Iterations: m.iterations,
			Skipped:    m.skipped,
		},
		Strategies: strategies,
	}
}
