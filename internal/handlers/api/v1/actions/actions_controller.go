// ===============================
// FILE: internal/handlers/api/v1/actions/actions_controller.go
// ===============================

package actions

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

// ActionController handles the action logging API endpoints
type ActionController struct {
	actionService services.ActionService
	logger        *zap.Logger
	builder       *response.Builder
}

// NewActionController creates a new action controller
func NewActionController(actionService services.ActionService, logger *zap.Logger, builder *response.Builder) *ActionController {
	return &ActionController{
		actionService: actionService,
		logger:        logger,
		builder:       builder,
	}
}

// ===============================
// CORE CRUD OPERATIONS
// ===============================

// LogAction handles POST /api/v1/actions
func (c *ActionController) LogAction(w http.ResponseWriter, r *http.Request) {
	var req services.LogActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = contextutils.GetUserID(r.Context())

	action, err := c.actionService.LogAction(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteCreated(w, r, action)
}

// ListActions handles GET /api/v1/actions
func (c *ActionController) ListActions(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	params := parsePagination(r)

	actions, err := c.actionService.ListUserActions(r.Context(), userID, params)
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

// GetAction handles GET /api/v1/actions/{id}
func (c *ActionController) GetAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid action ID", err))
		return
	}

	action, err := c.actionService.GetAction(
		r.Context(), actionID,
		contextutils.GetUserID(r.Context()),
		isAdmin(r),
	)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, action)
}

// UpdateAction handles PUT /api/v1/actions/{id}
func (c *ActionController) UpdateAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid action ID", err))
		return
	}

	var req services.UpdateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ActionID = actionID
	req.RequesterID = contextutils.GetUserID(r.Context())

	action, err := c.actionService.UpdateAction(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, action)
}

// DeleteAction handles DELETE /api/v1/actions/{id}
func (c *ActionController) DeleteAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid action ID", err))
		return
	}

	err = c.actionService.DeleteAction(
		r.Context(), actionID,
		contextutils.GetUserID(r.Context()),
		isAdmin(r),
	)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteNoContent(w, r)
}

// ListCategories handles GET /api/v1/actions/categories
func (c *ActionController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.actionService.ListCategories(r.Context())
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, categories)
}

// ===============================
// HELPERS
// ===============================

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

func isAdmin(r *http.Request) bool {
	role := contextutils.GetUserRole(r.Context())
	return role == models.RoleAdmin || role == models.RoleSustainabilityManager
}
