// file: internal/repositories/points_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/database"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// maxLeaderboardSize caps how many rows a single leaderboard query returns
const maxLeaderboardSize = 100

// pointsRepository implements PointsRepository over user_points and
// point_transactions
type pointsRepository struct {
	*BaseRepository
}

// NewPointsRepository creates a new points repository
func NewPointsRepository(db *database.Manager, logger *zap.Logger) PointsRepository {
	return &pointsRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ===============================
// READS
// ===============================

// GetUserPoints returns the user's running record, zero-valued when the
// user has never earned points.
func (r *pointsRepository) GetUserPoints(ctx context.Context, userID uuid.UUID) (*models.UserPoints, error) {
	query := `
		SELECT user_id, total_points, monthly_points, weekly_points,
		       current_streak, longest_streak, last_action_date, updated_at
		FROM user_points
		WHERE user_id = $1`

	points, err := scanUserPoints(r.QueryRowContext(ctx, query, userID))
	if err != nil {
		if r.IsNotFound(err) {
			return &models.UserPoints{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get user points: %w", err)
	}
	return points, nil
}

// Leaderboard ranks active users by the timeframe's point column.
// Equal points share a dense rank; within a rank, rows order by user ID
// ascending so pagination is stable.
func (r *pointsRepository) Leaderboard(ctx context.Context, timeframe models.Timeframe, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	column := "total_points"
	switch timeframe {
	case models.TimeframeWeekly:
		column = "weekly_points"
	case models.TimeframeMonthly:
		column = "monthly_points"
	}

	query := fmt.Sprintf(`
		SELECT up.user_id, u.first_name, u.last_name, u.department,
		       up.%[1]s AS points,
		       DENSE_RANK() OVER (ORDER BY up.%[1]s DESC) AS rank
		FROM user_points up
		JOIN users u ON u.id = up.user_id
		WHERE u.is_active = true
		ORDER BY up.%[1]s DESC, up.user_id ASC
		LIMIT $1`, column)

	rows, err := r.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var (
			entry      models.LeaderboardEntry
			department sql.NullString
		)
		err := rows.Scan(
			&entry.UserID, &entry.FirstName, &entry.LastName, &department,
			&entry.Points, &entry.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if department.Valid {
			entry.Department = &department.String
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// RecentTransactions returns the newest ledger entries for a user
func (r *pointsRepository) RecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PointTransaction, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, user_id, action_id, points, transaction_type, description, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.PointTransaction
	for rows.Next() {
		var (
			pt       models.PointTransaction
			actionID uuid.NullUUID
		)
		err := rows.Scan(
			&pt.ID, &pt.UserID, &actionID, &pt.Points,
			&pt.TransactionType, &pt.Description, &pt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if actionID.Valid {
			pt.ActionID = &actionID.UUID
		}
		transactions = append(transactions, &pt)
	}
	return transactions, rows.Err()
}

// CategoryBreakdown groups a user's verified points by category
func (r *pointsRepository) CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*models.CategoryPointsBreakdown, error) {
	query := `
		SELECT ac.name, ac.color,
		       COALESCE(SUM(sa.points_earned), 0) AS total_points,
		       COUNT(sa.id) AS action_count
		FROM sustainability_actions sa
		JOIN action_categories ac ON ac.id = sa.category_id
		WHERE sa.user_id = $1 AND sa.verification_status = 'verified'
		GROUP BY ac.name, ac.color
		ORDER BY total_points DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []*models.CategoryPointsBreakdown
	for rows.Next() {
		var (
			row   models.CategoryPointsBreakdown
			color sql.NullString
		)
		if err := rows.Scan(&row.CategoryName, &color, &row.TotalPoints, &row.ActionCount); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
		}
		if color.Valid {
			row.Color = &color.String
		}
		breakdown = append(breakdown, &row)
	}
	return breakdown, rows.Err()
}

// SumPointsSince sums a user's ledger entries created at or after since
func (r *pointsRepository) SumPointsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var sum int
	err := r.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(points), 0)
		FROM point_transactions
		WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points since: %w", err)
	}
	return sum, nil
}

// ===============================
// TRANSACTIONAL WRITES
// ===============================

// AddPointsTx adds points to all three running totals, creating the
// record on first use.
func (r *pointsRepository) AddPointsTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, points int) error {
	query := `
		INSERT INTO user_points (user_id, total_points, monthly_points, weekly_points)
		VALUES ($1, $2, $2, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			total_points = user_points.total_points + EXCLUDED.total_points,
			monthly_points = user_points.monthly_points + EXCLUDED.monthly_points,
			weekly_points = user_points.weekly_points + EXCLUDED.weekly_points,
			updated_at = NOW()`

	if _, err := tx.ExecContext(ctx, query, userID, points); err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}
	return nil
}

// InsertTransactionTx appends one immutable ledger entry
func (r *pointsRepository) InsertTransactionTx(ctx context.Context, tx *sql.Tx, pt *models.PointTransaction) error {
	query := `
		INSERT INTO point_transactions (user_id, action_id, points, transaction_type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRowContext(
		ctx, query,
		pt.UserID, pt.ActionID, pt.Points, pt.TransactionType, pt.Description,
	).Scan(&pt.ID, &pt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert point transaction: %w", err)
	}
	return nil
}

// GetStreakTx reads the streak record inside the caller's transaction,
// zero-valued when the user has no record yet.
func (r *pointsRepository) GetStreakTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*models.UserPoints, error) {
	query := `
		SELECT user_id, total_points, monthly_points, weekly_points,
		       current_streak, longest_streak, last_action_date, updated_at
		FROM user_points
		WHERE user_id = $1
		FOR UPDATE`

	points, err := scanUserPoints(tx.QueryRowContext(ctx, query, userID))
	if err != nil {
		if r.IsNotFound(err) {
			return &models.UserPoints{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get streak record: %w", err)
	}
	return points, nil
}

// UpdateStreakTx writes the streak counters inside the caller's transaction
func (r *pointsRepository) UpdateStreakTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, current, longest int, lastActionDate time.Time) error {
	query := `
		INSERT INTO user_points (user_id, current_streak, longest_streak, last_action_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_action_date = EXCLUDED.last_action_date,
			updated_at = NOW()`

	if _, err := tx.ExecContext(ctx, query, userID, current, longest, lastActionDate); err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}

func scanUserPoints(row rowScanner) (*models.UserPoints, error) {
	var (
		points   models.UserPoints
		lastDate sql.NullTime
	)

	err := row.Scan(
		&points.UserID, &points.TotalPoints, &points.MonthlyPoints, &points.WeeklyPoints,
		&points.CurrentStreak, &points.LongestStreak, &lastDate, &points.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastDate.Valid {
		points.LastActionDate = &lastDate.Time
	}

	return &points, nil
}
