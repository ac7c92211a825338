package build

import (
	"sync"
	"time"
)

// Metrics tracks assembly runs across the life of an Assembler.
type Metrics struct {
	TotalRuns       int64
	SuccessfulRuns  int64
	FailedRuns      int64
	Templates       int64
	SkippedViews    int64
	AverageDuration time.Duration
	TotalDuration   time.Duration
	mutex           sync.RWMutex
}

// Result summarizes one assembly run.
type Result struct {
	Descriptor   Descriptor
	Templates    int
	SkippedViews int
	Bytes        int
	Duration     time.Duration
	Error        error
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds a run to the totals.
func (m *Metrics) Record(result Result) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalRuns++
	m.TotalDuration += result.Duration
	m.Templates += int64(result.Templates)
	m.SkippedViews += int64(result.SkippedViews)

	if result.Error != nil {
		m.FailedRuns++
	} else {
		m.SuccessfulRuns++
	}

	m.AverageDuration = m.TotalDuration / time.Duration(m.TotalRuns)
}

// Snapshot returns a copy of the current totals.
func (m *Metrics) Snapshot() Metrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return Metrics{
		TotalRuns:       m.TotalRuns,
		SuccessfulRuns:  m.SuccessfulRuns,
		FailedRuns:      m.FailedRuns,
		Templates:       m.Templates,
		SkippedViews:    m.SkippedViews,
		AverageDuration: m.AverageDuration,
		TotalDuration:   m.TotalDuration,
	}
}

// SuccessRate returns the share of successful runs as a percentage.
func (m *Metrics) SuccessRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.TotalRuns == 0 {
		return 0
	}
	return float64(m.SuccessfulRuns) / float64(m.TotalRuns) * 100
}
