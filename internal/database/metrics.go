// file: internal/database/metrics.go
package database

import (
	"sync"
	"time"
)

// Metrics tracks aggregate query counters for the manager
type Metrics struct {
	mu            sync.Mutex
	queryCount    int64
	errorCount    int64
	totalDuration time.Duration
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	QueryCount       int64         `json:"query_count"`
	ErrorCount       int64         `json:"error_count"`
	AvgQueryDuration time.Duration `json:"avg_query_duration"`
	Timestamp        time.Time     `json:"timestamp"`
}

// NewMetrics creates zeroed metrics
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record registers one query execution
func (m *Metrics) Record(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount++
	m.totalDuration += duration
	if err != nil {
		m.errorCount++
	}
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		QueryCount: m.queryCount,
		ErrorCount: m.errorCount,
		Timestamp:  time.Now(),
	}
	if m.queryCount > 0 {
		snap.AvgQueryDuration = m.totalDuration / time.Duration(m.queryCount)
	}
	return snap
}
