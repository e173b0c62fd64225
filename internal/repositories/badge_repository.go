// file: internal/repositories/badge_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/database"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// badgeRepository implements BadgeRepository over badges and user_badges
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const badgeColumns = `
	b.id, b.name, b.description, b.icon_url, b.criteria_type, b.criteria_value,
	b.category_id, b.rarity, b.is_active, b.created_at`

// Create inserts a new badge into the catalog
func (r *badgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	query := `
		INSERT INTO badges (name, description, icon_url, criteria_type, criteria_value, category_id, rarity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at`

	err := r.QueryRowContext(
		ctx, query,
		badge.Name, badge.Description, badge.IconURL,
		badge.CriteriaType, badge.CriteriaValue, badge.CategoryID, badge.Rarity,
	).Scan(&badge.ID, &badge.IsActive, &badge.CreatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create badge",
			zap.Error(err),
			zap.String("name", badge.Name),
		)
		return fmt.Errorf("failed to create badge: %w", err)
	}

	return nil
}

// GetByID retrieves one badge
func (r *badgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges b WHERE b.id = $1`

	badge, err := scanBadge(r.QueryRowContext(ctx, query, id), false)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get badge by ID: %w", err)
	}
	return badge, nil
}

// ListActiveUnearned returns the active badges the user has not earned
// yet; these are the only candidates worth evaluating after an action.
func (r *badgeRepository) ListActiveUnearned(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error) {
	query := `
		SELECT ` + badgeColumns + `
		FROM badges b
		WHERE b.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM user_badges ub
			WHERE ub.badge_id = b.id AND ub.user_id = $1
		  )
		ORDER BY b.created_at`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unearned badges: %w", err)
	}
	defer rows.Close()

	return collectBadges(rows, false)
}

// ListUserBadges returns the badges a user has earned, newest first
func (r *badgeRepository) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error) {
	query := `
		SELECT ` + badgeColumns + `, ub.earned_at
		FROM user_badges ub
		JOIN badges b ON b.id = ub.badge_id
		WHERE ub.user_id = $1
		ORDER BY ub.earned_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}
	defer rows.Close()

	return collectBadges(rows, true)
}

// HasBadgeTx reports whether the award row already exists, inside the
// caller's transaction.
func (r *badgeRepository) HasBadgeTx(ctx context.Context, tx *sql.Tx, userID, badgeID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2)`,
		userID, badgeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check badge ownership: %w", err)
	}
	return exists, nil
}

// InsertUserBadgeTx awards a badge once; the (user_id, badge_id) primary
// key makes a duplicate award a unique violation the service treats as a
// no-op.
func (r *badgeRepository) InsertUserBadgeTx(ctx context.Context, tx *sql.Tx, userID, badgeID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2)`,
		userID, badgeID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user badge: %w", err)
	}
	return nil
}

func scanBadge(row rowScanner, withEarnedAt bool) (*models.Badge, error) {
	var (
		badge      models.Badge
		categoryID uuid.NullUUID
		earnedAt   sql.NullTime
	)

	dest := []interface{}{
		&badge.ID, &badge.Name, &badge.Description, &badge.IconURL,
		&badge.CriteriaType, &badge.CriteriaValue,
		&categoryID, &badge.Rarity, &badge.IsActive, &badge.CreatedAt,
	}
	if withEarnedAt {
		dest = append(dest, &earnedAt)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		badge.CategoryID = &categoryID.UUID
	}
	if earnedAt.Valid {
		badge.EarnedAt = &earnedAt.Time
	}

	return &badge, nil
}

func collectBadges(rows *sql.Rows, withEarnedAt bool) ([]*models.Badge, error) {
	var badges []*models.Badge
	for rows.Next() {
		badge, err := scanBadge(rows, withEarnedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}
