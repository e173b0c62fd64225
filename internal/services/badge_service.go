// file: internal/services/badge_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
	"github.com/ktie09rich-crypto/greenloop/internal/validation"
)

// badgeService implements BadgeService
type badgeService struct {
	badgeRepo  repositories.BadgeRepository
	actionRepo repositories.ActionRepository
	pointsRepo repositories.PointsRepository
	eventBus   events.EventBus
	logger     *zap.Logger
}

// NewBadgeService creates a new badge service
func NewBadgeService(
	badgeRepo repositories.BadgeRepository,
	actionRepo repositories.ActionRepository,
	pointsRepo repositories.PointsRepository,
	eventBus events.EventBus,
	logger *zap.Logger,
) BadgeService {
	return &badgeService{
		badgeRepo:  badgeRepo,
		actionRepo: actionRepo,
		pointsRepo: pointsRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// ===============================
// CATALOG
// ===============================

// CreateBadge adds a badge to the catalog
func (s *badgeService) CreateBadge(ctx context.Context, req *CreateBadgeRequest) (*models.Badge, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid badge definition", err)
	}
	if !req.CriteriaType.Valid() {
		return nil, NewBusinessError("unknown badge criteria type", CodeInvalidCriteria)
	}
	if req.CriteriaType == models.CriteriaCategoryMaster && req.CategoryID == nil {
		return nil, NewBusinessError("category_master badges require a category", CodeInvalidCriteria)
	}

	badge := &models.Badge{
		Name:          req.Name,
		Description:   req.Description,
		IconURL:       req.IconURL,
		CriteriaType:  req.CriteriaType,
		CriteriaValue: req.CriteriaValue,
		CategoryID:    req.CategoryID,
		Rarity:        req.Rarity,
	}
	if err := s.badgeRepo.Create(ctx, badge); err != nil {
		return nil, WrapInternalError("failed to create badge", err)
	}

	s.logger.Info("Badge created",
		zap.String("badge_id", badge.ID.String()),
		zap.String("criteria", string(badge.CriteriaType)),
	)
	return badge, nil
}

// ListUserBadges returns the badges a user has earned
func (s *badgeService) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error) {
	badges, err := s.badgeRepo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, WrapInternalError("failed to list user badges", err)
	}
	return badges, nil
}

// ===============================
// AWARDS
// ===============================

// CheckAndAwardBadges evaluates every active unearned badge and awards
// those the user now qualifies for. A badge with criteria the service
// does not recognize is never awarded.
func (s *badgeService) CheckAndAwardBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error) {
	candidates, err := s.badgeRepo.ListActiveUnearned(ctx, userID)
	if err != nil {
		return nil, WrapInternalError("failed to list candidate badges", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var awarded []*models.Badge
	for _, badge := range candidates {
		eligible, err := s.eligible(ctx, userID, badge)
		if err != nil {
			return nil, err
		}
		if !eligible {
			continue
		}

		awardedNow, err := s.award(ctx, userID, badge)
		if err != nil {
			return nil, err
		}
		if !awardedNow {
			continue
		}
		awarded = append(awarded, badge)
	}

	return awarded, nil
}

// eligible evaluates one badge's criteria against live aggregates
func (s *badgeService) eligible(ctx context.Context, userID uuid.UUID, badge *models.Badge) (bool, error) {
	switch badge.CriteriaType {
	case models.CriteriaActionCount:
		var (
			count int
			err   error
		)
		if badge.CategoryID != nil {
			count, err = s.actionRepo.CountByUserInCategory(ctx, userID, *badge.CategoryID)
		} else {
			count, err = s.actionRepo.CountByUser(ctx, userID)
		}
		if err != nil {
			return false, WrapInternalError("failed to count actions for badge", err)
		}
		return count >= badge.CriteriaValue, nil

	case models.CriteriaPointsTotal:
		points, err := s.pointsRepo.GetUserPoints(ctx, userID)
		if err != nil {
			return false, WrapInternalError("failed to load points for badge", err)
		}
		return points.TotalPoints >= badge.CriteriaValue, nil

	case models.CriteriaStreakDays:
		points, err := s.pointsRepo.GetUserPoints(ctx, userID)
		if err != nil {
			return false, WrapInternalError("failed to load streak for badge", err)
		}
		return points.CurrentStreak >= badge.CriteriaValue, nil

	case models.CriteriaCategoryMaster:
		// A category_master badge without a category can never be met.
		if badge.CategoryID == nil {
			return false, nil
		}
		count, err := s.actionRepo.CountByUserInCategory(ctx, userID, *badge.CategoryID)
		if err != nil {
			return false, WrapInternalError("failed to count category actions for badge", err)
		}
		return count >= badge.CriteriaValue, nil
	}

	// Unknown criteria fail closed.
	s.logger.Warn("Badge with unknown criteria type skipped",
		zap.String("badge_id", badge.ID.String()),
		zap.String("criteria", string(badge.CriteriaType)),
	)
	return false, nil
}

// errBadgeAlreadyHeld aborts the award transaction when the user badge
// row already exists. It never leaves the award method.
var errBadgeAlreadyHeld = errors.New("badge already held")

// award inserts the user badge exactly once and reports whether this
// call performed the award. A badge already held, or a concurrent award
// of the same badge surfacing as a unique violation, skips silently so
// the holder is not notified a second time.
func (s *badgeService) award(ctx context.Context, userID uuid.UUID, badge *models.Badge) (bool, error) {
	err := s.badgeRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
		has, err := s.badgeRepo.HasBadgeTx(ctx, tx, userID, badge.ID)
		if err != nil {
			return err
		}
		if has {
			return errBadgeAlreadyHeld
		}
		return s.badgeRepo.InsertUserBadgeTx(ctx, tx, userID, badge.ID)
	})
	if err != nil {
		if errors.Is(err, errBadgeAlreadyHeld) || isUniqueViolation(err) {
			return false, nil
		}
		return false, WrapInternalError("failed to award badge", err)
	}

	now := time.Now().UTC()
	badge.EarnedAt = &now

	s.eventBus.Publish(ctx, events.NewBadgeAwardedEvent(
		userID, badge.ID, badge.Name, string(badge.Rarity),
	))
	s.logger.Info("Badge awarded",
		zap.String("user_id", userID.String()),
		zap.String("badge_id", badge.ID.String()),
		zap.String("badge", badge.Name),
	)
	return true, nil
}
