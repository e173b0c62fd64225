// file: internal/services/interfaces.go
package services

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// ===============================
// CORE SERVICE INTERFACES
// ===============================

// ActionService defines the action logging and verification business logic
type ActionService interface {
	// Core CRUD operations
	LogAction(ctx context.Context, req *LogActionRequest) (*models.Action, error)
	GetAction(ctx context.Context, actionID, requesterID uuid.UUID, isAdmin bool) (*models.Action, error)
	UpdateAction(ctx context.Context, req *UpdateActionRequest) (*models.Action, error)
	DeleteAction(ctx context.Context, actionID, requesterID uuid.UUID, isAdmin bool) error
	ListUserActions(ctx context.Context, userID uuid.UUID, params models.PaginationParams) ([]*models.Action, error)

	// Catalog
	ListCategories(ctx context.Context) ([]*models.ActionCategory, error)

	// Admin verification
	VerifyAction(ctx context.Context, req *VerifyActionRequest) (*models.Action, error)
	BulkVerifyActions(ctx context.Context, req *BulkVerifyRequest) (int64, error)
	ListPendingVerification(ctx context.Context, params models.PaginationParams) ([]*models.Action, error)
}

// PointsService defines the points calculation and award business logic
type PointsService interface {
	// CalculatePoints applies the weighted formula to one action.
	// Deterministic: same inputs always yield the same points.
	CalculatePoints(calc PointsCalculation) int

	// AwardActionPoints computes and credits points for a freshly logged
	// action, updating totals, ledger and streak in one transaction.
	AwardActionPoints(ctx context.Context, action *models.Action, category *models.ActionCategory) (int, error)

	// AwardBonusPoints credits points outside the action flow, for
	// challenge rewards and manual adjustments.
	AwardBonusPoints(ctx context.Context, userID uuid.UUID, points int, txType models.TransactionType, description string) error

	// Reads
	GetUserPoints(ctx context.Context, userID uuid.UUID) (*models.UserPoints, error)
	GetLeaderboard(ctx context.Context, timeframe models.Timeframe, limit int) ([]*models.LeaderboardEntry, error)
	GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PointTransaction, error)
	GetCategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*models.CategoryPointsBreakdown, error)
}

// ImpactService defines environmental impact aggregation
type ImpactService interface {
	GetUserImpact(ctx context.Context, userID uuid.UUID, period ImpactPeriod) (*models.ImpactReport, error)
	GetCompanyImpact(ctx context.Context) (*models.ImpactReport, error)
	GetCategoryImpact(ctx context.Context, categoryID uuid.UUID) (*models.ImpactReport, error)
}

// BadgeService defines the badge catalog and award business logic
type BadgeService interface {
	CreateBadge(ctx context.Context, req *CreateBadgeRequest) (*models.Badge, error)
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error)

	// CheckAndAwardBadges evaluates every active unearned badge for the
	// user and awards those whose criteria are met. Safe to call after
	// every action; awards are idempotent.
	CheckAndAwardBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error)
}

// ChallengeService defines the challenge lifecycle business logic
type ChallengeService interface {
	CreateChallenge(ctx context.Context, req *CreateChallengeRequest) (*models.Challenge, error)
	GetChallenge(ctx context.Context, challengeID uuid.UUID, userID *uuid.UUID) (*models.Challenge, error)
	ListChallenges(ctx context.Context, activeOnly bool, params models.PaginationParams) ([]*models.Challenge, error)

	JoinChallenge(ctx context.Context, challengeID, userID uuid.UUID) error
	LeaveChallenge(ctx context.Context, challengeID, userID uuid.UUID) error

	// UpdateProgressForUser recomputes the user's progress in every open
	// challenge they joined, crediting completion rewards once.
	UpdateProgressForUser(ctx context.Context, userID uuid.UUID) error

	GetChallengeLeaderboard(ctx context.Context, challengeID uuid.UUID, limit int) ([]*models.ChallengeParticipant, error)

	// DistributeRewards pays the top-three finisher bonuses after a
	// challenge's window closes.
	DistributeRewards(ctx context.Context, challengeID uuid.UUID) error
}

// UserService defines account and dashboard business logic
type UserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, req *AvatarUploadRequest) (string, error)

	GetUserStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
	GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error)

	// Admin operations
	ListUsers(ctx context.Context, req *ListUsersRequest) ([]*models.User, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
}

// EmailService sends transactional notification emails
type EmailService interface {
	SendBadgeEarned(ctx context.Context, user *models.User, badge *models.Badge) error
	SendChallengeCreated(ctx context.Context, user *models.User, challenge *models.Challenge) error
	SendChallengeCompleted(ctx context.Context, user *models.User, challenge *models.Challenge) error
	SendActionVerified(ctx context.Context, user *models.User, action *models.Action) error
}
