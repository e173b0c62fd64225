// file: internal/repositories/action_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/database"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// actionRepository implements ActionRepository over sustainability_actions
type actionRepository struct {
	*BaseRepository
}

// NewActionRepository creates a new action repository
func NewActionRepository(db *database.Manager, logger *zap.Logger) ActionRepository {
	return &actionRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const actionColumns = `
	sa.id, sa.user_id, sa.category_id, sa.title, sa.description,
	sa.impact_value, sa.impact_unit, sa.points_earned,
	sa.verification_status, sa.verification_notes, sa.verified_by, sa.verified_at,
	sa.action_date, sa.attachments, sa.created_at, sa.updated_at`

// ===============================
// BASIC CRUD OPERATIONS
// ===============================

// Create inserts a new action; points are finalized later by the calculator
func (r *actionRepository) Create(ctx context.Context, action *models.Action) error {
	query := `
		INSERT INTO sustainability_actions (
			user_id, category_id, title, description,
			impact_value, impact_unit, action_date, attachments
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, points_earned, verification_status, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		action.UserID, action.CategoryID, action.Title, action.Description,
		action.ImpactValue, action.ImpactUnit, action.ActionDate,
		pq.Array(action.Attachments),
	).Scan(
		&action.ID, &action.PointsEarned, &action.VerificationStatus,
		&action.CreatedAt, &action.UpdatedAt,
	)
	if err != nil {
		r.GetLogger().Error("Failed to create action",
			zap.Error(err),
			zap.String("user_id", action.UserID.String()),
		)
		return fmt.Errorf("failed to create action: %w", err)
	}

	return nil
}

// GetByID retrieves an action with its category annotation
func (r *actionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Action, error) {
	query := `
		SELECT ` + actionColumns + `, ac.name, ac.color
		FROM sustainability_actions sa
		JOIN action_categories ac ON sa.category_id = ac.id
		WHERE sa.id = $1`

	action, err := r.scanActionWithCategory(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get action by ID: %w", err)
	}
	return action, nil
}

// Update rewrites the owner-editable fields and the verification status
func (r *actionRepository) Update(ctx context.Context, action *models.Action) error {
	query := `
		UPDATE sustainability_actions SET
			title = $1, description = $2, impact_value = $3, impact_unit = $4,
			action_date = $5, attachments = $6, verification_status = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		action.Title, action.Description, action.ImpactValue, action.ImpactUnit,
		action.ActionDate, pq.Array(action.Attachments), action.VerificationStatus,
		action.ID,
	).Scan(&action.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update action: %w", err)
	}
	return nil
}

// Delete removes an action
func (r *actionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.ExecContext(ctx, `DELETE FROM sustainability_actions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete action: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetPointsEarned finalizes the action's points once, after creation
func (r *actionRepository) SetPointsEarned(ctx context.Context, actionID uuid.UUID, points int) error {
	_, err := r.ExecContext(ctx,
		`UPDATE sustainability_actions SET points_earned = $1, updated_at = NOW() WHERE id = $2`,
		points, actionID,
	)
	if err != nil {
		return fmt.Errorf("failed to set points earned: %w", err)
	}
	return nil
}

// ===============================
// VERIFICATION
// ===============================

// Verify stamps an admin decision on a single action
func (r *actionRepository) Verify(ctx context.Context, actionID uuid.UUID, status models.VerificationStatus, notes *string, verifiedBy uuid.UUID) error {
	result, err := r.ExecContext(ctx, `
		UPDATE sustainability_actions
		SET verification_status = $1, verification_notes = $2,
		    verified_by = $3, verified_at = NOW(), updated_at = NOW()
		WHERE id = $4`,
		status, notes, verifiedBy, actionID,
	)
	if err != nil {
		return fmt.Errorf("failed to verify action: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkVerify applies one decision to a whole batch in a single statement;
// a failure affects the entire batch.
func (r *actionRepository) BulkVerify(ctx context.Context, actionIDs []uuid.UUID, status models.VerificationStatus, notes *string, verifiedBy uuid.UUID) (int64, error) {
	ids := make([]string, len(actionIDs))
	for i, id := range actionIDs {
		ids[i] = id.String()
	}

	result, err := r.ExecContext(ctx, `
		UPDATE sustainability_actions
		SET verification_status = $1, verification_notes = $2,
		    verified_by = $3, verified_at = NOW(), updated_at = NOW()
		WHERE id = ANY($4)`,
		status, notes, verifiedBy, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk verify actions: %w", err)
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}

// ===============================
// LISTING
// ===============================

// ListByUser returns the user's actions, newest first
func (r *actionRepository) ListByUser(ctx context.Context, userID uuid.UUID, p models.PaginationParams) ([]*models.Action, error) {
	p.Normalize()
	query := `
		SELECT ` + actionColumns + `, ac.name, ac.color
		FROM sustainability_actions sa
		JOIN action_categories ac ON sa.category_id = ac.id
		WHERE sa.user_id = $1
		ORDER BY sa.action_date DESC, sa.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions by user: %w", err)
	}
	defer rows.Close()

	return r.collectActionsWithCategory(rows)
}

// ListPendingVerification returns the admin review queue, oldest first
func (r *actionRepository) ListPendingVerification(ctx context.Context, p models.PaginationParams) ([]*models.Action, error) {
	p.Normalize()
	query := `
		SELECT ` + actionColumns + `, ac.name, ac.color, u.first_name || ' ' || u.last_name
		FROM sustainability_actions sa
		JOIN action_categories ac ON sa.category_id = ac.id
		JOIN users u ON sa.user_id = u.id
		WHERE sa.verification_status = 'pending'
		ORDER BY sa.created_at ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.QueryContext(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	defer rows.Close()

	var actions []*models.Action
	for rows.Next() {
		action, err := scanAction(rows, true, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending action: %w", err)
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

// ListVerifiedInRange returns a user's verified actions within [start, end]
func (r *actionRepository) ListVerifiedInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM sustainability_actions sa
		WHERE sa.user_id = $1
		  AND sa.action_date BETWEEN $2 AND $3
		  AND sa.verification_status = 'verified'
		ORDER BY sa.action_date DESC`

	rows, err := r.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list verified actions in range: %w", err)
	}
	defer rows.Close()

	return r.collectActions(rows)
}

// ListVerifiedAll returns every verified action, for company-wide reporting
func (r *actionRepository) ListVerifiedAll(ctx context.Context) ([]*models.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM sustainability_actions sa
		WHERE sa.verification_status = 'verified'`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list verified actions: %w", err)
	}
	defer rows.Close()

	return r.collectActions(rows)
}

// ListVerifiedByCategory returns verified actions for one category
func (r *actionRepository) ListVerifiedByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM sustainability_actions sa
		WHERE sa.category_id = $1 AND sa.verification_status = 'verified'
		ORDER BY sa.action_date DESC`

	rows, err := r.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list verified actions by category: %w", err)
	}
	defer rows.Close()

	return r.collectActions(rows)
}

// ===============================
// AGGREGATES
// ===============================

// CountByUser counts all actions a user has ever logged
func (r *actionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sustainability_actions WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}

// CountByUserInCategory counts a user's actions within one category
func (r *actionRepository) CountByUserInCategory(ctx context.Context, userID, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sustainability_actions WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count actions in category: %w", err)
	}
	return count, nil
}

// CountSince counts a user's actions created at or after since
func (r *actionRepository) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sustainability_actions WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count actions since: %w", err)
	}
	return count, nil
}

// SumImpactSince sums a user's reported impact in one unit since a date
func (r *actionRepository) SumImpactSince(ctx context.Context, userID uuid.UUID, unit models.ImpactUnit, since time.Time) (float64, error) {
	var sum float64
	err := r.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(impact_value), 0)
		FROM sustainability_actions
		WHERE user_id = $1 AND impact_unit = $2 AND created_at >= $3`,
		userID, unit, since,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum impact since: %w", err)
	}
	return sum, nil
}

// LatestActionDate returns the most recent action date, nil when none exist
func (r *actionRepository) LatestActionDate(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	var latest sql.NullTime
	err := r.QueryRowContext(ctx,
		`SELECT MAX(action_date) FROM sustainability_actions WHERE user_id = $1`, userID,
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest action date: %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

// ===============================
// SCANNING
// ===============================

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAction(row rowScanner, withCategory, withUser bool) (*models.Action, error) {
	var (
		action     models.Action
		impactUnit sql.NullString
		notes      sql.NullString
		verifiedBy uuid.NullUUID
		verifiedAt sql.NullTime
		desc       sql.NullString
	)

	dest := []interface{}{
		&action.ID, &action.UserID, &action.CategoryID, &action.Title, &desc,
		&action.ImpactValue, &impactUnit, &action.PointsEarned,
		&action.VerificationStatus, &notes, &verifiedBy, &verifiedAt,
		&action.ActionDate, pq.Array(&action.Attachments),
		&action.CreatedAt, &action.UpdatedAt,
	}
	var categoryColor sql.NullString
	if withCategory {
		dest = append(dest, &action.CategoryName, &categoryColor)
	}
	if withUser {
		dest = append(dest, &action.UserName)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if desc.Valid {
		action.Description = &desc.String
	}
	if impactUnit.Valid {
		unit := models.ImpactUnit(impactUnit.String)
		action.ImpactUnit = &unit
	}
	if notes.Valid {
		action.VerificationNotes = &notes.String
	}
	if verifiedBy.Valid {
		action.VerifiedBy = &verifiedBy.UUID
	}
	if verifiedAt.Valid {
		action.VerifiedAt = &verifiedAt.Time
	}
	if categoryColor.Valid {
		action.CategoryColor = categoryColor.String
	}

	return &action, nil
}

func (r *actionRepository) scanActionWithCategory(row rowScanner) (*models.Action, error) {
	return scanAction(row, true, false)
}

func (r *actionRepository) collectActions(rows *sql.Rows) ([]*models.Action, error) {
	var actions []*models.Action
	for rows.Next() {
		action, err := scanAction(rows, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

func (r *actionRepository) collectActionsWithCategory(rows *sql.Rows) ([]*models.Action, error) {
	var actions []*models.Action
	for rows.Next() {
		action, err := scanAction(rows, true, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}
