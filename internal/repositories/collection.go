// file: internal/repositories/collection.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/database"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	User      UserRepository
	Category  CategoryRepository
	Action    ActionRepository
	Points    PointsRepository
	Badge     BadgeRepository
	Challenge ChallengeRepository

	// Database and logger for custom operations
	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	collection := &Collection{
		db:     db,
		logger: logger,

		User:      NewUserRepository(db, logger),
		Category:  NewCategoryRepository(db, logger),
		Action:    NewActionRepository(db, logger),
		Points:    NewPointsRepository(db, logger),
		Badge:     NewBadgeRepository(db, logger),
		Challenge: NewChallengeRepository(db, logger),
	}

	logger.Info("Repository collection initialized successfully")
	return collection, nil
}

// ===============================
// HEALTH AND MONITORING
// ===============================

// HealthCheck reports database connectivity and query metrics
func (c *Collection) HealthCheck(ctx context.Context) map[string]interface{} {
	health := make(map[string]interface{})

	dbHealth := c.db.CheckHealth(ctx)
	health["database"] = map[string]interface{}{
		"status":           dbHealth.Status,
		"response_time":    dbHealth.ResponseTime,
		"open_connections": dbHealth.OpenConnections,
		"errors":           dbHealth.Errors,
	}

	metrics := c.db.Metrics()
	health["performance"] = map[string]interface{}{
		"query_count":        metrics.QueryCount,
		"error_count":        metrics.ErrorCount,
		"avg_query_duration": metrics.AvgQueryDuration,
	}

	return health
}

// GetDB returns the underlying database manager for advanced operations
func (c *Collection) GetDB() *database.Manager {
	return c.db
}

// GetLogger returns the logger instance
func (c *Collection) GetLogger() *zap.Logger {
	return c.logger
}

// Close closes all repository connections and cleans up resources
func (c *Collection) Close() error {
	c.logger.Info("Closing repository collection")
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// observeSlow logs a warning when a cross-repository operation takes
// longer than expected.
func (c *Collection) observeSlow(name string, start time.Time) {
	if d := time.Since(start); d > 500*time.Millisecond {
		c.logger.Warn("Slow repository operation",
			zap.String("operation", name),
			zap.Duration("duration", d),
		)
	}
}
