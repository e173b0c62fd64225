// ===============================
// FILE: internal/handlers/api/v1/gamification/gamification_controller.go
// ===============================

package gamification

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/contextutils"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/response"
	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

// GamificationController handles the points, badges and leaderboard endpoints
type GamificationController struct {
	pointsService services.PointsService
	badgeService  services.BadgeService
	logger        *zap.Logger
	builder       *response.Builder
}

// NewGamificationController creates a new gamification controller
func NewGamificationController(
	pointsService services.PointsService,
	badgeService services.BadgeService,
	logger *zap.Logger,
	builder *response.Builder,
) *GamificationController {
	return &GamificationController{
		pointsService: pointsService,
		badgeService:  badgeService,
		logger:        logger,
		builder:       builder,
	}
}

// GetPoints handles GET /api/v1/gamification/points
func (c *GamificationController) GetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := c.pointsService.GetUserPoints(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, points)
}

// GetTransactions handles GET /api/v1/gamification/points/transactions
func (c *GamificationController) GetTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	transactions, err := c.pointsService.GetRecentTransactions(r.Context(), contextutils.GetUserID(r.Context()), limit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, transactions)
}

// GetCategoryBreakdown handles GET /api/v1/gamification/points/breakdown
func (c *GamificationController) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := c.pointsService.GetCategoryBreakdown(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, breakdown)
}

// GetLeaderboard handles GET /api/v1/gamification/leaderboard
func (c *GamificationController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	timeframe := models.Timeframe(r.URL.Query().Get("timeframe"))
	if timeframe == "" {
		timeframe = models.TimeframeAll
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := c.pointsService.GetLeaderboard(r.Context(), timeframe, limit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, entries)
}

// GetBadges handles GET /api/v1/gamification/badges
func (c *GamificationController) GetBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := c.badgeService.ListUserBadges(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, badges)
}
