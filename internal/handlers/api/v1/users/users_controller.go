// ===============================
// FILE: internal/handlers/api/v1/users/users_controller.go
// ===============================

package users

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/contextutils"
	"github.com/ktie09rich-crypto/greenloop/internal/response"
	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

// maxAvatarMemory bounds how much of a multipart upload is buffered in memory.
const maxAvatarMemory = 10 << 20 // 10MB

// UserController handles the profile and dashboard endpoints
type UserController struct {
	userService services.UserService
	logger      *zap.Logger
	builder     *response.Builder
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService, logger *zap.Logger, builder *response.Builder) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
		builder:     builder,
	}
}

// GetProfile handles GET /api/v1/users/me
func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := c.userService.GetUserByID(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, user)
}

// UpdateProfile handles PUT /api/v1/users/me
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = contextutils.GetUserID(r.Context())

	user, err := c.userService.UpdateProfile(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, user)
}

// UploadAvatar handles POST /api/v1/users/me/avatar
func (c *UserController) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid multipart form", err))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("avatar file is required", err))
		return
	}
	defer file.Close()

	url, err := c.userService.UploadAvatar(r.Context(), &services.AvatarUploadRequest{
		UserID:   contextutils.GetUserID(r.Context()),
		File:     file,
		FileName: header.Filename,
		FileSize: header.Size,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.builder.WriteSuccess(w, r, map[string]string{"avatar_url": url})
}

// GetStats handles GET /api/v1/users/me/stats
func (c *UserController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.userService.GetUserStats(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, stats)
}

// GetDashboard handles GET /api/v1/users/me/dashboard
func (c *UserController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := c.userService.GetDashboard(r.Context(), contextutils.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, dashboard)
}
