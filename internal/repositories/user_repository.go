// file: internal/repositories/user_repository.go
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

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userColumns = `
	id, email, first_name, last_name, department, avatar_url,
	role, is_active, email_verified, created_at, updated_at`

// Create inserts a new user account
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, department, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, email_verified, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Email, user.FirstName, user.LastName,
		user.Department, user.AvatarURL, user.Role,
	).Scan(&user.ID, &user.IsActive, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email address
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.QueryRowContext(ctx, query, email))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// Update rewrites the user's mutable profile fields
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			first_name = $1, last_name = $2, department = $3,
			avatar_url = $4, role = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.FirstName, user.LastName, user.Department,
		user.AvatarURL, user.Role, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a user account
func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.ExecContext(ctx,
		`UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns users matching the admin listing filters
func (r *userRepository) List(ctx context.Context, opts ListUsersOptions) ([]*models.User, error) {
	opts.Pagination.Normalize()

	filter := NewFilter()
	if opts.Role != "" {
		filter.Where("role = %s", opts.Role)
	}
	if opts.Department != "" {
		filter.Where("department = %s", opts.Department)
	}
	if opts.Search != "" {
		q := "%" + opts.Search + "%"
		filter.Where("(first_name ILIKE %s OR last_name ILIKE %s OR email ILIKE %s)", q, q, q)
	}

	where, _ := filter.SQL()
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC LIMIT ` + filter.NextPlaceholder(1) +
		` OFFSET ` + filter.NextPlaceholder(2)

	rows, err := r.QueryContext(ctx, query, filter.Args(opts.Pagination.Limit, opts.Pagination.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return r.collectUsers(rows)
}

// ListActive returns every active account, for company-wide reporting
func (r *userRepository) ListActive(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = true ORDER BY created_at`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	return r.collectUsers(rows)
}

// GetUserStats aggregates a user's points, streaks, actions and badges
// in one round trip.
func (r *userRepository) GetUserStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	query := `
		SELECT
			COALESCE(up.total_points, 0),
			COALESCE(up.monthly_points, 0),
			COALESCE(up.weekly_points, 0),
			COALESCE(up.current_streak, 0),
			COALESCE(up.longest_streak, 0),
			(SELECT COUNT(*) FROM sustainability_actions WHERE user_id = $1),
			(SELECT COUNT(*) FROM user_badges WHERE user_id = $1)
		FROM users u
		LEFT JOIN user_points up ON up.user_id = u.id
		WHERE u.id = $1`

	var stats models.UserStats
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalPoints, &stats.MonthlyPoints, &stats.WeeklyPoints,
		&stats.CurrentStreak, &stats.LongestStreak,
		&stats.TotalActions, &stats.TotalBadges,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	return &stats, nil
}

func (r *userRepository) scanUser(row rowScanner) (*models.User, error) {
	var (
		user       models.User
		department sql.NullString
		avatarURL  sql.NullString
	)

	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&department, &avatarURL,
		&user.Role, &user.IsActive, &user.EmailVerified,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if department.Valid {
		user.Department = &department.String
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}

	return &user, nil
}

func (r *userRepository) collectUsers(rows *sql.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
