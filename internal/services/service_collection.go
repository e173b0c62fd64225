// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/cache"
	"github.com/ktie09rich-crypto/greenloop/internal/config"
	"github.com/ktie09rich-crypto/greenloop/internal/database"
	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
)

// ServiceCollection holds all services with dependency injection
type ServiceCollection struct {
	// Core services
	ActionService    ActionService
	PointsService    PointsService
	ImpactService    ImpactService
	BadgeService     BadgeService
	ChallengeService ChallengeService
	UserService      UserService
	EmailService     EmailService

	// Repository collection
	Repositories *repositories.Collection

	// Infrastructure components
	Cache      cache.Cache
	EventBus   events.EventBus
	Logger     *zap.Logger
	Config     *config.Config
	DBManager  *database.Manager
	Cloudinary *cloudinary.Cloudinary
}

// NewServiceCollection creates the full service graph in dependency order
func NewServiceCollection(
	dbManager *database.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	if dbManager == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	sc := &ServiceCollection{
		DBManager: dbManager,
		Config:    cfg,
		Logger:    logger,
	}

	if err := sc.initializeInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}
	if err := sc.initializeRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	sc.initializeServices()

	logger.Info("Service collection initialized successfully")
	return sc, nil
}

// initializeInfrastructure sets up cache, event bus and Cloudinary
func (sc *ServiceCollection) initializeInfrastructure() error {
	c, err := cache.New(&cache.Config{
		Provider:   sc.Config.Cache.Provider,
		RedisURL:   sc.Config.Cache.RedisURL,
		DefaultTTL: sc.Config.Cache.DefaultTTL,
	}, sc.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	sc.Cache = c

	sc.EventBus = events.NewInMemoryBus(sc.Logger)

	if sc.Config.Cloudinary.CloudName != "" {
		cld, err := cloudinary.NewFromParams(
			sc.Config.Cloudinary.CloudName,
			sc.Config.Cloudinary.APIKey,
			sc.Config.Cloudinary.APISecret,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudinary: %w", err)
		}
		sc.Cloudinary = cld
	}

	return nil
}

// initializeRepositories sets up the repository layer
func (sc *ServiceCollection) initializeRepositories() error {
	repos, err := repositories.NewCollection(sc.DBManager, sc.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository collection: %w", err)
	}
	sc.Repositories = repos
	return nil
}

// initializeServices wires the services over the repositories
func (sc *ServiceCollection) initializeServices() {
	repos := sc.Repositories

	sc.PointsService = NewPointsService(repos.Points, repos.Action, repos.Challenge, sc.Cache, sc.EventBus, sc.Logger)
	sc.ImpactService = NewImpactService(repos.Action, sc.Logger)
	sc.BadgeService = NewBadgeService(repos.Badge, repos.Action, repos.Points, sc.EventBus, sc.Logger)
	sc.ChallengeService = NewChallengeService(repos.Challenge, repos.Action, repos.Points, sc.EventBus, sc.Logger)
	sc.ActionService = NewActionService(
		repos.Action, repos.Category,
		sc.PointsService, sc.BadgeService, sc.ChallengeService,
		sc.EventBus, sc.Logger,
	)
	sc.UserService = NewUserService(
		repos.User, repos.Action, repos.Challenge,
		sc.PointsService, sc.BadgeService, sc.ImpactService,
		sc.Cloudinary, sc.Logger,
	)
	sc.EmailService = NewEmailService(sc.Config.Email, sc.Logger)

	RegisterEmailNotifications(sc.EventBus, sc.EmailService, repos.User, repos.Badge, repos.Challenge, sc.Logger)
}

// ===============================
// LIFECYCLE
// ===============================

// HealthCheck reports the health of the collection's dependencies
func (sc *ServiceCollection) HealthCheck(ctx context.Context) map[string]interface{} {
	health := sc.Repositories.HealthCheck(ctx)
	if err := sc.Cache.Health(ctx); err != nil {
		health["cache"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
	} else {
		health["cache"] = map[string]interface{}{"status": "healthy"}
	}
	return health
}

// Shutdown drains the event bus and closes infrastructure connections
func (sc *ServiceCollection) Shutdown(ctx context.Context) error {
	sc.Logger.Info("Shutting down service collection")

	sc.EventBus.Close()
	if err := sc.Cache.Close(); err != nil {
		sc.Logger.Warn("Failed to close cache", zap.Error(err))
	}
	return sc.Repositories.Close()
}
