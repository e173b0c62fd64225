// ===============================
// FILE: internal/handlers/api/v1/challenges/challenges_controller.go
// ===============================

package challenges

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/contextutils"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/response"
	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

// ChallengeController handles the challenge API endpoints
type ChallengeController struct {
	challengeService services.ChallengeService
	logger           *zap.Logger
	builder          *response.Builder
}

// NewChallengeController creates a new challenge controller
func NewChallengeController(challengeService services.ChallengeService, logger *zap.Logger, builder *response.Builder) *ChallengeController {
	return &ChallengeController{
		challengeService: challengeService,
		logger:           logger,
		builder:          builder,
	}
}

// ListChallenges handles GET /api/v1/challenges
func (c *ChallengeController) ListChallenges(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	params := models.PaginationParams{}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		params.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		params.Offset = v
	}
	params.Normalize()

	challenges, err := c.challengeService.ListChallenges(r.Context(), activeOnly, params)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccessWithMeta(w, r, challenges, &response.Meta{
		Limit:  params.Limit,
		Offset: params.Offset,
		Count:  len(challenges),
	})
}

// GetChallenge handles GET /api/v1/challenges/{id}
func (c *ChallengeController) GetChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid challenge ID", err))
		return
	}

	userID := contextutils.GetUserID(r.Context())
	challenge, err := c.challengeService.GetChallenge(r.Context(), challengeID, &userID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, challenge)
}

// JoinChallenge handles POST /api/v1/challenges/{id}/join
func (c *ChallengeController) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid challenge ID", err))
		return
	}

	if err := c.challengeService.JoinChallenge(r.Context(), challengeID, contextutils.GetUserID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteCreated(w, r, map[string]string{"status": "joined"})
}

// LeaveChallenge handles DELETE /api/v1/challenges/{id}/join
func (c *ChallengeController) LeaveChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid challenge ID", err))
		return
	}

	if err := c.challengeService.LeaveChallenge(r.Context(), challengeID, contextutils.GetUserID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteNoContent(w, r)
}

// GetLeaderboard handles GET /api/v1/challenges/{id}/leaderboard
func (c *ChallengeController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid challenge ID", err))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	standings, err := c.challengeService.GetChallengeLeaderboard(r.Context(), challengeID, limit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, standings)
}

// CreateChallenge handles POST /api/v1/admin/challenges
func (c *ChallengeController) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req services.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.CreatedBy = contextutils.GetUserID(r.Context())

	challenge, err := c.challengeService.CreateChallenge(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteCreated(w, r, challenge)
}

// DistributeRewards handles POST /api/v1/admin/challenges/{id}/distribute-rewards
func (c *ChallengeController) DistributeRewards(w http.ResponseWriter, r *http.Request) {
	challengeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid challenge ID", err))
		return
	}

	if err := c.challengeService.DistributeRewards(r.Context(), challengeID); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, map[string]string{"status": "rewards distributed"})
}
