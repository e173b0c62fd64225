// file: internal/services/user_service.go
package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
	"github.com/ktie09rich-crypto/greenloop/internal/validation"
)

const (
	maxAvatarSize   = 5 * 1024 * 1024
	avatarFolder    = "greenloop/avatars"
	uploadTimeout   = 2 * time.Minute
	dashboardRecent = 5
)

var allowedAvatarExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// userService implements UserService
type userService struct {
	userRepo      repositories.UserRepository
	actionRepo    repositories.ActionRepository
	challengeRepo repositories.ChallengeRepository
	pointsService PointsService
	badgeService  BadgeService
	impactService ImpactService
	cloudinary    *cloudinary.Cloudinary
	logger        *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	actionRepo repositories.ActionRepository,
	challengeRepo repositories.ChallengeRepository,
	pointsService PointsService,
	badgeService BadgeService,
	impactService ImpactService,
	cld *cloudinary.Cloudinary,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:      userRepo,
		actionRepo:    actionRepo,
		challengeRepo: challengeRepo,
		pointsService: pointsService,
		badgeService:  badgeService,
		impactService: impactService,
		cloudinary:    cld,
		logger:        logger,
	}
}

// ===============================
// PROFILE
// ===============================

// GetUserByID returns one active or inactive account
func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, WrapInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}
	return user, nil
}

// UpdateProfile applies a user's own profile edits
func (s *userService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid profile update", err)
	}

	user, err := s.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, NewBusinessError("account is deactivated", CodeUserInactive)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Department != nil {
		user.Department = req.Department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, WrapInternalError("failed to update profile", err)
	}
	return user, nil
}

// UploadAvatar stores a profile image and saves its URL on the account
func (s *userService) UploadAvatar(ctx context.Context, req *AvatarUploadRequest) (string, error) {
	if req.FileSize > maxAvatarSize {
		return "", NewValidationError("avatar exceeds the 5MB limit", nil)
	}
	if ext := strings.ToLower(filepath.Ext(req.FileName)); !slices.Contains(allowedAvatarExtensions, ext) {
		return "", NewValidationError("unsupported avatar file type", nil)
	}

	user, err := s.GetUserByID(ctx, req.UserID)
	if err != nil {
		return "", err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	result, err := s.cloudinary.Upload.Upload(uploadCtx, req.File, uploader.UploadParams{
		Folder:         avatarFolder,
		ResourceType:   "image",
		UseFilename:    boolPtr(false),
		UniqueFilename: boolPtr(true),
		Tags:           []string{"greenloop", "avatar"},
	})
	if err != nil {
		s.logger.Error("Failed to upload avatar",
			zap.Error(err),
			zap.String("user_id", req.UserID.String()),
			zap.String("filename", req.FileName),
		)
		return "", NewInternalError("failed to upload avatar")
	}

	user.AvatarURL = &result.SecureURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", WrapInternalError("failed to save avatar URL", err)
	}

	return result.SecureURL, nil
}

// ===============================
// STATS & DASHBOARD
// ===============================

// GetUserStats aggregates a user's gamification standing
func (s *userService) GetUserStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	stats, err := s.userRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, WrapInternalError("failed to get user stats", err)
	}
	if stats == nil {
		return nil, NewNotFoundError("user not found")
	}
	return stats, nil
}

// GetDashboard assembles everything the employee home screen shows
func (s *userService) GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	stats, err := s.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentActions, err := s.actionRepo.ListByUser(ctx, userID, models.PaginationParams{Limit: dashboardRecent})
	if err != nil {
		return nil, WrapInternalError("failed to load recent actions", err)
	}

	recentTransactions, err := s.pointsService.GetRecentTransactions(ctx, userID, dashboardRecent)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeService.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeChallenges, err := s.challengeRepo.ListActiveJoined(ctx, userID)
	if err != nil {
		return nil, WrapInternalError("failed to load active challenges", err)
	}

	breakdown, err := s.pointsService.GetCategoryBreakdown(ctx, userID)
	if err != nil {
		return nil, err
	}

	impact, err := s.impactService.GetUserImpact(ctx, userID, PeriodMonth)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Stats:              stats,
		RecentActions:      recentActions,
		RecentTransactions: recentTransactions,
		Badges:             badges,
		ActiveChallenges:   activeChallenges,
		CategoryBreakdown:  breakdown,
		Impact:             impact,
	}, nil
}

// ===============================
// ADMIN
// ===============================

// ListUsers returns accounts matching the admin filters
func (s *userService) ListUsers(ctx context.Context, req *ListUsersRequest) ([]*models.User, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid user listing request", err)
	}

	users, err := s.userRepo.List(ctx, repositories.ListUsersOptions{
		Role:       req.Role,
		Department: req.Department,
		Search:     req.Search,
		Pagination: req.Pagination,
	})
	if err != nil {
		return nil, WrapInternalError("failed to list users", err)
	}
	return users, nil
}

// DeactivateUser soft-deletes an account
func (s *userService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	err := s.userRepo.Deactivate(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return NewNotFoundError("user not found")
		}
		return WrapInternalError("failed to deactivate user", err)
	}

	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}

func boolPtr(b bool) *bool { return &b }
