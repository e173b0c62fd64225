// file: internal/database/health.go
package database

import (
	"context"
	"time"
)

// Health check statuses
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus is a point-in-time snapshot of database health
type HealthStatus struct {
	Status          string        `json:"status"`
	Timestamp       time.Time     `json:"timestamp"`
	ResponseTime    time.Duration `json:"response_time"`
	OpenConnections int           `json:"open_connections"`
	Errors          []string      `json:"errors,omitempty"`
}

// CheckHealth pings the database and inspects the connection pool
func (m *Manager) CheckHealth(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{
		Timestamp: start,
		Errors:    make([]string, 0),
	}

	if err := m.Health(ctx); err != nil {
		status.Errors = append(status.Errors, err.Error())
	}

	stats := m.db.Stats()
	status.OpenConnections = stats.OpenConnections

	var warnings int
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections)
		if utilization > 0.8 {
			warnings++
		}
	}
	if stats.WaitCount > 100 {
		warnings++
	}

	status.ResponseTime = time.Since(start)
	status.Status = overallStatus(len(status.Errors), warnings, status.ResponseTime)
	return status
}

// overallStatus ranks errors above warnings above slow responses
func overallStatus(errors, warnings int, responseTime time.Duration) string {
	switch {
	case errors > 0:
		return StatusUnhealthy
	case warnings > 0 || responseTime > time.Second:
		return StatusDegraded
	default:
		return StatusHealthy
	}
}
