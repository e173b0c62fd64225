// file: internal/services/challenge_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
	"github.com/ktie09rich-crypto/greenloop/internal/validation"
)

// placementBonuses are the fixed finisher rewards for places one
// through three.
var placementBonuses = []int{100, 50, 25}

// challengeService implements ChallengeService
type challengeService struct {
	challengeRepo repositories.ChallengeRepository
	actionRepo    repositories.ActionRepository
	pointsRepo    repositories.PointsRepository
	eventBus      events.EventBus
	logger        *zap.Logger
}

// NewChallengeService creates a new challenge service
func NewChallengeService(
	challengeRepo repositories.ChallengeRepository,
	actionRepo repositories.ActionRepository,
	pointsRepo repositories.PointsRepository,
	eventBus events.EventBus,
	logger *zap.Logger,
) ChallengeService {
	return &challengeService{
		challengeRepo: challengeRepo,
		actionRepo:    actionRepo,
		pointsRepo:    pointsRepo,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// ===============================
// LIFECYCLE
// ===============================

// CreateChallenge defines a new challenge
func (s *challengeService) CreateChallenge(ctx context.Context, req *CreateChallengeRequest) (*models.Challenge, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid challenge definition", err)
	}
	if !req.TargetMetric.Valid() {
		return nil, NewBusinessError("unknown challenge target metric", CodeInvalidCriteria)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, NewBusinessError("challenge end date must be after start date", CodeChallengeDateOrder)
	}

	challenge := &models.Challenge{
		Title:             req.Title,
		Description:       req.Description,
		ChallengeType:     req.ChallengeType,
		TargetMetric:      req.TargetMetric,
		TargetValue:       req.TargetValue,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RewardPoints:      req.RewardPoints,
		RewardDescription: req.RewardDescription,
		CreatedBy:         req.CreatedBy,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, WrapInternalError("failed to create challenge", err)
	}

	s.eventBus.Publish(ctx, events.NewChallengeCreatedEvent(
		challenge.CreatedBy, challenge.ID, challenge.Title,
		string(challenge.ChallengeType), challenge.EndDate,
	))
	s.logger.Info("Challenge created",
		zap.String("challenge_id", challenge.ID.String()),
		zap.String("metric", string(challenge.TargetMetric)),
	)
	return challenge, nil
}

// GetChallenge retrieves a challenge, marking whether the caller joined it
func (s *challengeService) GetChallenge(ctx context.Context, challengeID uuid.UUID, userID *uuid.UUID) (*models.Challenge, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, WrapInternalError("failed to get challenge", err)
	}
	if challenge == nil {
		return nil, NewNotFoundError("challenge not found")
	}

	if userID != nil {
		participant, err := s.challengeRepo.GetParticipant(ctx, challengeID, *userID)
		if err != nil {
			return nil, WrapInternalError("failed to get participation", err)
		}
		challenge.Joined = participant != nil
	}

	return challenge, nil
}

// ListChallenges returns challenges, optionally only open ones
func (s *challengeService) ListChallenges(ctx context.Context, activeOnly bool, params models.PaginationParams) ([]*models.Challenge, error) {
	challenges, err := s.challengeRepo.List(ctx, activeOnly, params)
	if err != nil {
		return nil, WrapInternalError("failed to list challenges", err)
	}
	return challenges, nil
}

// ===============================
// PARTICIPATION
// ===============================

// JoinChallenge enrolls a user with zero progress. Joining twice is a
// conflict, enforced by the participant table's composite key.
func (s *challengeService) JoinChallenge(ctx context.Context, challengeID, userID uuid.UUID) error {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return WrapInternalError("failed to get challenge", err)
	}
	if challenge == nil {
		return NewNotFoundError("challenge not found")
	}
	if !challenge.Open(time.Now().UTC()) {
		return NewBusinessError("challenge is not open for joining", CodeChallengeClosed)
	}

	if err := s.challengeRepo.InsertParticipant(ctx, challengeID, userID); err != nil {
		if isUniqueViolation(err) {
			return NewConflictError("already joined this challenge", CodeAlreadyJoined)
		}
		return WrapInternalError("failed to join challenge", err)
	}

	s.logger.Info("Challenge joined",
		zap.String("challenge_id", challengeID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// LeaveChallenge removes a user's participation
func (s *challengeService) LeaveChallenge(ctx context.Context, challengeID, userID uuid.UUID) error {
	err := s.challengeRepo.DeleteParticipant(ctx, challengeID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return NewBusinessError("not a participant of this challenge", CodeNotJoined)
		}
		return WrapInternalError("failed to leave challenge", err)
	}
	return nil
}

// ===============================
// PROGRESS
// ===============================

// UpdateProgressForUser recomputes the user's progress in every open
// challenge they joined. Progress is derived from source tables rather
// than incremented, so running this repeatedly cannot double-count.
func (s *challengeService) UpdateProgressForUser(ctx context.Context, userID uuid.UUID) error {
	challenges, err := s.challengeRepo.ListActiveJoined(ctx, userID)
	if err != nil {
		return WrapInternalError("failed to list joined challenges", err)
	}

	for _, challenge := range challenges {
		progress, err := s.computeProgress(ctx, userID, challenge)
		if err != nil {
			return err
		}

		completed := progress >= challenge.TargetValue
		if err := s.challengeRepo.UpdateParticipantProgress(ctx, challenge.ID, userID, progress, completed); err != nil {
			return WrapInternalError("failed to update progress", err)
		}

		if completed {
			if err := s.settleCompletions(ctx, challenge); err != nil {
				return err
			}
		}
	}

	return nil
}

// computeProgress measures the metric from the challenge start until now
func (s *challengeService) computeProgress(ctx context.Context, userID uuid.UUID, challenge *models.Challenge) (float64, error) {
	switch challenge.TargetMetric {
	case models.MetricActionsCount:
		count, err := s.actionRepo.CountSince(ctx, userID, challenge.StartDate)
		if err != nil {
			return 0, WrapInternalError("failed to count actions for challenge", err)
		}
		return float64(count), nil

	case models.MetricPointsTotal:
		points, err := s.pointsRepo.SumPointsSince(ctx, userID, challenge.StartDate)
		if err != nil {
			return 0, WrapInternalError("failed to sum points for challenge", err)
		}
		return float64(points), nil

	case models.MetricImpactValue:
		impact, err := s.actionRepo.SumImpactSince(ctx, userID, models.UnitKgCO2, challenge.StartDate)
		if err != nil {
			return 0, WrapInternalError("failed to sum impact for challenge", err)
		}
		return impact, nil
	}

	return 0, NewBusinessError(
		fmt.Sprintf("challenge has unknown target metric %q", challenge.TargetMetric),
		CodeInvalidCriteria,
	)
}

// settleCompletions pays the completion reward to every participant who
// finished but has not been stamped yet. The stamp and the point credit
// commit together, so a reward is paid at most once.
func (s *challengeService) settleCompletions(ctx context.Context, challenge *models.Challenge) error {
	newlyCompleted, err := s.challengeRepo.ListNewlyCompleted(ctx, challenge.ID)
	if err != nil {
		return WrapInternalError("failed to list completed participants", err)
	}

	for _, participant := range newlyCompleted {
		userID := participant.UserID
		err := s.challengeRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
			if err := s.challengeRepo.StampCompletedTx(ctx, tx, challenge.ID, userID, time.Now().UTC()); err != nil {
				return err
			}
			if challenge.RewardPoints <= 0 {
				return nil
			}
			if err := s.pointsRepo.AddPointsTx(ctx, tx, userID, challenge.RewardPoints); err != nil {
				return err
			}
			return s.pointsRepo.InsertTransactionTx(ctx, tx, &models.PointTransaction{
				UserID:          userID,
				Points:          challenge.RewardPoints,
				TransactionType: models.TransactionBonus,
				Description:     "Challenge completed: " + challenge.Title,
			})
		})
		if err != nil {
			return WrapInternalError("failed to settle challenge completion", err)
		}

		s.eventBus.Publish(ctx, events.NewChallengeCompletedEvent(
			userID, challenge.ID, challenge.Title, challenge.RewardPoints,
		))
		s.logger.Info("Challenge completed",
			zap.String("challenge_id", challenge.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Int("reward_points", challenge.RewardPoints),
		)
	}

	return nil
}

// ===============================
// STANDINGS & REWARDS
// ===============================

// GetChallengeLeaderboard returns the current standings
func (s *challengeService) GetChallengeLeaderboard(ctx context.Context, challengeID uuid.UUID, limit int) ([]*models.ChallengeParticipant, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, WrapInternalError("failed to get challenge", err)
	}
	if challenge == nil {
		return nil, NewNotFoundError("challenge not found")
	}

	participants, err := s.challengeRepo.ListParticipantsByProgress(ctx, challengeID, limit)
	if err != nil {
		return nil, WrapInternalError("failed to list standings", err)
	}
	return participants, nil
}

// DistributeRewards pays the fixed top-three bonuses once a challenge's
// window has closed. Each placement credit is its own transaction so one
// failure does not claw back another finisher's bonus.
func (s *challengeService) DistributeRewards(ctx context.Context, challengeID uuid.UUID) error {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return WrapInternalError("failed to get challenge", err)
	}
	if challenge == nil {
		return NewNotFoundError("challenge not found")
	}
	if !challenge.Ended(time.Now().UTC()) {
		return NewBusinessError("challenge has not ended yet", CodeChallengeClosed)
	}

	top, err := s.challengeRepo.ListParticipantsByProgress(ctx, challengeID, len(placementBonuses))
	if err != nil {
		return WrapInternalError("failed to list final standings", err)
	}

	for i, participant := range top {
		bonus := placementBonuses[i]
		userID := participant.UserID
		err := s.pointsRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
			if err := s.pointsRepo.AddPointsTx(ctx, tx, userID, bonus); err != nil {
				return err
			}
			return s.pointsRepo.InsertTransactionTx(ctx, tx, &models.PointTransaction{
				UserID:          userID,
				Points:          bonus,
				TransactionType: models.TransactionBonus,
				Description:     fmt.Sprintf("Challenge placement #%d: %s", i+1, challenge.Title),
			})
		})
		if err != nil {
			return WrapInternalError("failed to distribute placement bonus", err)
		}

		s.logger.Info("Placement bonus distributed",
			zap.String("challenge_id", challengeID.String()),
			zap.String("user_id", userID.String()),
			zap.Int("place", i+1),
			zap.Int("bonus", bonus),
		)
	}

	return nil
}
