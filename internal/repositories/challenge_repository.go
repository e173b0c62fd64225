// file: internal/repositories/challenge_repository.go
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

// challengeRepository implements ChallengeRepository over challenges and
// challenge_participants
type challengeRepository struct {
	*BaseRepository
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *database.Manager, logger *zap.Logger) ChallengeRepository {
	return &challengeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const challengeColumns = `
	c.id, c.title, c.description, c.challenge_type, c.target_metric, c.target_value,
	c.start_date, c.end_date, c.reward_points, c.reward_description,
	c.is_active, c.created_by, c.created_at, c.updated_at`

// ===============================
// CHALLENGES
// ===============================

// Create inserts a new challenge
func (r *challengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	query := `
		INSERT INTO challenges (
			title, description, challenge_type, target_metric, target_value,
			start_date, end_date, reward_points, reward_description, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_active, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		challenge.Title, challenge.Description, challenge.ChallengeType,
		challenge.TargetMetric, challenge.TargetValue,
		challenge.StartDate, challenge.EndDate,
		challenge.RewardPoints, challenge.RewardDescription, challenge.CreatedBy,
	).Scan(&challenge.ID, &challenge.IsActive, &challenge.CreatedAt, &challenge.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create challenge",
			zap.Error(err),
			zap.String("title", challenge.Title),
		)
		return fmt.Errorf("failed to create challenge: %w", err)
	}

	return nil
}

// GetByID retrieves one challenge with its participant count
func (r *challengeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	query := `
		SELECT ` + challengeColumns + `,
		       (SELECT COUNT(*) FROM challenge_participants cp WHERE cp.challenge_id = c.id)
		FROM challenges c
		WHERE c.id = $1`

	challenge, err := scanChallenge(r.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get challenge by ID: %w", err)
	}
	return challenge, nil
}

// List returns challenges newest first, optionally only those whose
// window is currently open.
func (r *challengeRepository) List(ctx context.Context, activeOnly bool, p models.PaginationParams) ([]*models.Challenge, error) {
	p.Normalize()

	filter := NewFilter()
	if activeOnly {
		filter.Where("c.is_active = true AND c.start_date <= NOW() AND c.end_date > NOW()")
	}
	where, _ := filter.SQL()

	query := `
		SELECT ` + challengeColumns + `,
		       (SELECT COUNT(*) FROM challenge_participants cp WHERE cp.challenge_id = c.id)
		FROM challenges c` + where + `
		ORDER BY c.start_date DESC
		LIMIT ` + filter.NextPlaceholder(1) + ` OFFSET ` + filter.NextPlaceholder(2)

	rows, err := r.QueryContext(ctx, query, filter.Args(p.Limit, p.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	return collectChallenges(rows)
}

// CountActiveJoined counts the open challenges the user participates in
func (r *challengeRepository) CountActiveJoined(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM challenge_participants cp
		JOIN challenges c ON c.id = cp.challenge_id
		WHERE cp.user_id = $1
		  AND c.is_active = true
		  AND c.start_date <= NOW() AND c.end_date > NOW()`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active joined challenges: %w", err)
	}
	return count, nil
}

// ListActiveJoined returns the open challenges the user participates in,
// for progress recomputation after a new action.
func (r *challengeRepository) ListActiveJoined(ctx context.Context, userID uuid.UUID) ([]*models.Challenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM challenges c
		JOIN challenge_participants cp ON cp.challenge_id = c.id
		WHERE cp.user_id = $1
		  AND c.is_active = true
		  AND c.start_date <= NOW() AND c.end_date > NOW()
		ORDER BY c.end_date`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active joined challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*models.Challenge
	for rows.Next() {
		challenge, err := scanChallenge(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}

// ===============================
// PARTICIPANTS
// ===============================

// GetParticipant retrieves one participation row
func (r *challengeRepository) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error) {
	query := `
		SELECT challenge_id, user_id, current_progress, completed, completed_at, joined_at
		FROM challenge_participants
		WHERE challenge_id = $1 AND user_id = $2`

	participant, err := scanParticipant(r.QueryRowContext(ctx, query, challengeID, userID), false)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// InsertParticipant joins a user to a challenge; the composite primary
// key makes a double join a unique violation the service maps to a
// conflict.
func (r *challengeRepository) InsertParticipant(ctx context.Context, challengeID, userID uuid.UUID) error {
	_, err := r.ExecContext(ctx,
		`INSERT INTO challenge_participants (challenge_id, user_id) VALUES ($1, $2)`,
		challengeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// DeleteParticipant removes a user's participation
func (r *challengeRepository) DeleteParticipant(ctx context.Context, challengeID, userID uuid.UUID) error {
	result, err := r.ExecContext(ctx,
		`DELETE FROM challenge_participants WHERE challenge_id = $1 AND user_id = $2`,
		challengeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateParticipantProgress stores a freshly recomputed progress value.
// completed never transitions back to false once set.
func (r *challengeRepository) UpdateParticipantProgress(ctx context.Context, challengeID, userID uuid.UUID, progress float64, completed bool) error {
	_, err := r.ExecContext(ctx, `
		UPDATE challenge_participants
		SET current_progress = $1,
		    completed = completed OR $2
		WHERE challenge_id = $3 AND user_id = $4`,
		progress, completed, challengeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant progress: %w", err)
	}
	return nil
}

// ListNewlyCompleted returns completed participants not yet stamped with
// a completion time, i.e. those whose completion rewards are still owed.
func (r *challengeRepository) ListNewlyCompleted(ctx context.Context, challengeID uuid.UUID) ([]*models.ChallengeParticipant, error) {
	query := `
		SELECT challenge_id, user_id, current_progress, completed, completed_at, joined_at
		FROM challenge_participants
		WHERE challenge_id = $1 AND completed = true AND completed_at IS NULL`

	rows, err := r.QueryContext(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list newly completed participants: %w", err)
	}
	defer rows.Close()

	return collectParticipants(rows, false)
}

// ListParticipantsByProgress returns the challenge standings, best first.
// Ties order by user ID ascending so ranks are stable.
func (r *challengeRepository) ListParticipantsByProgress(ctx context.Context, challengeID uuid.UUID, limit int) ([]*models.ChallengeParticipant, error) {
	if limit <= 0 || limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	query := `
		SELECT cp.challenge_id, cp.user_id, cp.current_progress, cp.completed,
		       cp.completed_at, cp.joined_at,
		       u.first_name, u.last_name, u.department
		FROM challenge_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.challenge_id = $1
		ORDER BY cp.current_progress DESC, cp.user_id ASC
		LIMIT $2`

	rows, err := r.QueryContext(ctx, query, challengeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants by progress: %w", err)
	}
	defer rows.Close()

	participants, err := collectParticipants(rows, true)
	if err != nil {
		return nil, err
	}
	for i, p := range participants {
		p.Rank = i + 1
	}
	return participants, nil
}

// StampCompletedTx records the completion time inside the caller's
// transaction, alongside the reward point credit.
func (r *challengeRepository) StampCompletedTx(ctx context.Context, tx *sql.Tx, challengeID, userID uuid.UUID, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE challenge_participants
		SET completed_at = $1
		WHERE challenge_id = $2 AND user_id = $3 AND completed_at IS NULL`,
		at, challengeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to stamp completion: %w", err)
	}
	return nil
}

// ===============================
// SCANNING
// ===============================

func scanChallenge(row rowScanner, withCount bool) (*models.Challenge, error) {
	var (
		challenge models.Challenge
		rewardDes sql.NullString
	)

	dest := []interface{}{
		&challenge.ID, &challenge.Title, &challenge.Description,
		&challenge.ChallengeType, &challenge.TargetMetric, &challenge.TargetValue,
		&challenge.StartDate, &challenge.EndDate,
		&challenge.RewardPoints, &rewardDes,
		&challenge.IsActive, &challenge.CreatedBy,
		&challenge.CreatedAt, &challenge.UpdatedAt,
	}
	if withCount {
		dest = append(dest, &challenge.ParticipantCount)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if rewardDes.Valid {
		challenge.RewardDescription = &rewardDes.String
	}

	return &challenge, nil
}

func collectChallenges(rows *sql.Rows) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	for rows.Next() {
		challenge, err := scanChallenge(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}

func scanParticipant(row rowScanner, withUser bool) (*models.ChallengeParticipant, error) {
	var (
		participant models.ChallengeParticipant
		completedAt sql.NullTime
		department  sql.NullString
	)

	dest := []interface{}{
		&participant.ChallengeID, &participant.UserID,
		&participant.CurrentProgress, &participant.Completed,
		&completedAt, &participant.JoinedAt,
	}
	if withUser {
		dest = append(dest, &participant.FirstName, &participant.LastName, &department)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if completedAt.Valid {
		participant.CompletedAt = &completedAt.Time
	}
	if department.Valid {
		participant.Department = &department.String
	}

	return &participant, nil
}

func collectParticipants(rows *sql.Rows, withUser bool) ([]*models.ChallengeParticipant, error) {
	var participants []*models.ChallengeParticipant
	for rows.Next() {
		participant, err := scanParticipant(rows, withUser)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}
