// ===============================
// FILE: internal/handlers/api/v1/admin/admin_controller.go
// ===============================

package admin

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

// AdminController handles the admin-only verification and catalog endpoints
type AdminController struct {
	actionService services.ActionService
	badgeService  services.BadgeService
	userService   services.UserService
	logger        *zap.Logger
	builder       *response.Builder
}

// NewAdminController creates a new admin controller
func NewAdminController(
	actionService services.ActionService,
	badgeService services.BadgeService,
	userService services.UserService,
	logger *zap.Logger,
	builder *response.Builder,
) *AdminController {
	return &AdminController{
		actionService: actionService,
		badgeService:  badgeService,
		userService:   userService,
		logger:        logger,
		builder:       builder,
	}
}

// ===============================
// VERIFICATION QUEUE
// ===============================

// ListPendingActions handles GET /api/v1/admin/actions/pending
func (c *AdminController) ListPendingActions(w http.ResponseWriter, r *http.Request) {
	params := parsePagination(r)

	actions, err := c.actionService.ListPendingVerification(r.Context(), params)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccessWithMeta(w, r, actions, &response.Meta{
		Limit:  params.Limit,
		Offset: params.Offset,
		Count:  len(actions),
	})
}

// VerifyAction handles POST /api/v1/admin/actions/{id}/verify
func (c *AdminController) VerifyAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid action ID", err))
		return
	}

	var req services.VerifyActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ActionID = actionID
	req.VerifierID = contextutils.GetUserID(r.Context())

	action, err := c.actionService.VerifyAction(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, action)
}

// BulkVerifyActions handles POST /api/v1/admin/actions/bulk-verify
func (c *AdminController) BulkVerifyActions(w http.ResponseWriter, r *http.Request) {
	var req services.BulkVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.VerifierID = contextutils.GetUserID(r.Context())

	affected, err := c.actionService.BulkVerifyActions(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, map[string]int64{"verified_count": affected})
}

// ===============================
// BADGE CATALOG
// ===============================

// CreateBadge handles POST /api/v1/admin/badges
func (c *AdminController) CreateBadge(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	badge, err := c.badgeService.CreateBadge(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteCreated(w, r, badge)
}

// ===============================
// USER MANAGEMENT
// ===============================

// ListUsers handles GET /api/v1/admin/users
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	req := &services.ListUsersRequest{
		Role:       r.URL.Query().Get("role"),
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("search"),
		Pagination: parsePagination(r),
	}

	users, err := c.userService.ListUsers(r.Context(), req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccessWithMeta(w, r, users, &response.Meta{
		Limit:  req.Pagination.Limit,
		Offset: req.Pagination.Offset,
		Count:  len(users),
	})
}

// DeactivateUser handles DELETE /api/v1/admin/users/{id}
func (c *AdminController) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	if err := c.userService.DeactivateUser(r.Context(), userID); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteNoContent(w, r)
}

func parsePagination(r *http.Request) models.PaginationParams {
	params := models.PaginationParams{}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		params.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		params.Offset = v
	}
	params.Normalize()
	return params
}
