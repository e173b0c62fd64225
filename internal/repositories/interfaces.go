// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// Repositories return (nil, nil) when a single entity is not found;
// services decide whether absence is an error.

// UserRepository provides access to user accounts and aggregate stats
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts ListUsersOptions) ([]*models.User, error)
	ListActive(ctx context.Context) ([]*models.User, error)
	GetUserStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
}

// ListUsersOptions are the admin listing filters
type ListUsersOptions struct {
	Role       string
	Department string
	Search     string
	Pagination models.PaginationParams
}

// CategoryRepository provides access to the action category catalog
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.ActionCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ActionCategory, error)
}

// ActionRepository provides CRUD over logged sustainability actions
type ActionRepository interface {
	Create(ctx context.Context, action *models.Action) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Action, error)
	Update(ctx context.Context, action *models.Action) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPointsEarned(ctx context.Context, actionID uuid.UUID, points int) error
	Verify(ctx context.Context, actionID uuid.UUID, status models.VerificationStatus, notes *string, verifiedBy uuid.UUID) error
	BulkVerify(ctx context.Context, actionIDs []uuid.UUID, status models.VerificationStatus, notes *string, verifiedBy uuid.UUID) (int64, error)

	ListByUser(ctx context.Context, userID uuid.UUID, p models.PaginationParams) ([]*models.Action, error)
	ListPendingVerification(ctx context.Context, p models.PaginationParams) ([]*models.Action, error)
	ListVerifiedInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Action, error)
	ListVerifiedAll(ctx context.Context) ([]*models.Action, error)
	ListVerifiedByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Action, error)

	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	CountByUserInCategory(ctx context.Context, userID, categoryID uuid.UUID) (int, error)
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	SumImpactSince(ctx context.Context, userID uuid.UUID, unit models.ImpactUnit, since time.Time) (float64, error)
	LatestActionDate(ctx context.Context, userID uuid.UUID) (*time.Time, error)
}

// PointsRepository maintains running point totals, the streak record and
// the append-only transaction ledger. The *Tx methods participate in a
// caller-owned transaction so that totals, ledger and streak move together.
type PointsRepository interface {
	WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error

	GetUserPoints(ctx context.Context, userID uuid.UUID) (*models.UserPoints, error)
	Leaderboard(ctx context.Context, timeframe models.Timeframe, limit int) ([]*models.LeaderboardEntry, error)
	RecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PointTransaction, error)
	CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*models.CategoryPointsBreakdown, error)
	SumPointsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	AddPointsTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, points int) error
	InsertTransactionTx(ctx context.Context, tx *sql.Tx, pt *models.PointTransaction) error
	GetStreakTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*models.UserPoints, error)
	UpdateStreakTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, current, longest int, lastActionDate time.Time) error
}

// BadgeRepository provides badge catalog access and one-shot awards
type BadgeRepository interface {
	WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error

	Create(ctx context.Context, badge *models.Badge) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Badge, error)
	ListActiveUnearned(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error)
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error)

	HasBadgeTx(ctx context.Context, tx *sql.Tx, userID, badgeID uuid.UUID) (bool, error)
	InsertUserBadgeTx(ctx context.Context, tx *sql.Tx, userID, badgeID uuid.UUID) error
}

// ChallengeRepository provides challenge and participation access
type ChallengeRepository interface {
	WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error

	Create(ctx context.Context, challenge *models.Challenge) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	List(ctx context.Context, activeOnly bool, p models.PaginationParams) ([]*models.Challenge, error)

	CountActiveJoined(ctx context.Context, userID uuid.UUID) (int, error)
	ListActiveJoined(ctx context.Context, userID uuid.UUID) ([]*models.Challenge, error)

	GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error)
	InsertParticipant(ctx context.Context, challengeID, userID uuid.UUID) error
	DeleteParticipant(ctx context.Context, challengeID, userID uuid.UUID) error
	UpdateParticipantProgress(ctx context.Context, challengeID, userID uuid.UUID, progress float64, completed bool) error
	ListNewlyCompleted(ctx context.Context, challengeID uuid.UUID) ([]*models.ChallengeParticipant, error)
	ListParticipantsByProgress(ctx context.Context, challengeID uuid.UUID, limit int) ([]*models.ChallengeParticipant, error)
	StampCompletedTx(ctx context.Context, tx *sql.Tx, challengeID, userID uuid.UUID, at time.Time) error
}
