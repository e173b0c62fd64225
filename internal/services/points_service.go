// file: internal/services/points_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/cache"
	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
)

// Formula constants. Points are awarded once per action and never
// recalculated, so changing these only affects future actions.
const (
	basePoints            = 10
	impactBonusFactor     = 2.0
	impactBonusCap        = 50.0
	streakBonusPerDay     = 0.05
	streakBonusCap        = 0.5
	challengeBonusPerJoin = 0.1
	challengeBonusCap     = 0.3
	minPointsPerAction    = 1
)

const leaderboardCacheTTL = time.Minute

// pointsService implements PointsService
type pointsService struct {
	pointsRepo    repositories.PointsRepository
	actionRepo    repositories.ActionRepository
	challengeRepo repositories.ChallengeRepository
	cache         cache.Cache
	eventBus      events.EventBus
	logger        *zap.Logger
}

// NewPointsService creates a new points service
func NewPointsService(
	pointsRepo repositories.PointsRepository,
	actionRepo repositories.ActionRepository,
	challengeRepo repositories.ChallengeRepository,
	cacheService cache.Cache,
	eventBus events.EventBus,
	logger *zap.Logger,
) PointsService {
	return &pointsService{
		pointsRepo:    pointsRepo,
		actionRepo:    actionRepo,
		challengeRepo: challengeRepo,
		cache:         cacheService,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// ===============================
// POINTS CALCULATION
// ===============================

// CalculatePoints applies the weighted formula:
//
//	round((base + impactBonus) * categoryMultiplier * (1 + streakBonus) * challengeMultiplier)
//
// where impactBonus = min(impact*2, 50), streakBonus = min(streak*0.05, 0.5)
// and challengeMultiplier = 1 + min(0.1*activeChallenges, 0.3). The streak
// used here is the value before this action updates it. An action is never
// worth less than one point.
func (s *pointsService) CalculatePoints(calc PointsCalculation) int {
	impactBonus := 0.0
	if calc.ImpactValue != nil {
		impactBonus = math.Min(*calc.ImpactValue*impactBonusFactor, impactBonusCap)
	}

	categoryMultiplier := calc.CategoryMultiplier
	if categoryMultiplier <= 0 {
		categoryMultiplier = 1.0
	}

	streakBonus := math.Min(float64(calc.CurrentStreak)*streakBonusPerDay, streakBonusCap)
	challengeMultiplier := 1.0 + math.Min(float64(calc.ActiveChallenges)*challengeBonusPerJoin, challengeBonusCap)

	points := int(math.Round(
		(basePoints + impactBonus) * categoryMultiplier * (1 + streakBonus) * challengeMultiplier,
	))
	if points < minPointsPerAction {
		points = minPointsPerAction
	}
	return points
}

// ===============================
// AWARDS
// ===============================

// AwardActionPoints computes and credits the points for a freshly logged
// action. Totals, the ledger entry and the streak update commit in one
// transaction; the streak bonus reads the streak as it was before. The
// streak anchors to the action's own date, and a backdated action leaves
// the streak untouched because a newer action already anchors it.
func (s *pointsService) AwardActionPoints(ctx context.Context, action *models.Action, category *models.ActionCategory) (int, error) {
	activeChallenges, err := s.challengeRepo.CountActiveJoined(ctx, action.UserID)
	if err != nil {
		return 0, WrapInternalError("failed to count active challenges", err)
	}

	actionDay := action.ActionDate
	if actionDay.IsZero() {
		actionDay = time.Now().UTC()
	}

	// The actions table already holds this action, so latest is the
	// user's most recent action date including it.
	latest, err := s.actionRepo.LatestActionDate(ctx, action.UserID)
	if err != nil {
		return 0, WrapInternalError("failed to read latest action date", err)
	}
	backdated := latest != nil && truncateToDay(*latest).After(truncateToDay(actionDay))

	categoryMultiplier := 1.0
	if category != nil {
		categoryMultiplier = category.PointsMultiplier
	}

	var awarded int
	err = s.pointsRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
		record, err := s.pointsRepo.GetStreakTx(ctx, tx, action.UserID)
		if err != nil {
			return err
		}

		awarded = s.CalculatePoints(PointsCalculation{
			CategoryMultiplier: categoryMultiplier,
			ImpactValue:        action.ImpactValue,
			CurrentStreak:      record.CurrentStreak,
			ActiveChallenges:   activeChallenges,
		})

		if err := s.pointsRepo.AddPointsTx(ctx, tx, action.UserID, awarded); err != nil {
			return err
		}

		description := "Action logged: " + action.Title
		if err := s.pointsRepo.InsertTransactionTx(ctx, tx, &models.PointTransaction{
			UserID:          action.UserID,
			ActionID:        &action.ID,
			Points:          awarded,
			TransactionType: models.TransactionEarned,
			Description:     description,
		}); err != nil {
			return err
		}

		if backdated {
			return nil
		}
		current, longest := nextStreak(record, actionDay)
		return s.pointsRepo.UpdateStreakTx(ctx, tx, action.UserID, current, longest, actionDay)
	})
	if err != nil {
		return 0, WrapInternalError("failed to award action points", err)
	}

	s.invalidateLeaderboards(ctx)
	s.eventBus.Publish(ctx, events.NewPointsAwardedEvent(
		action.UserID, awarded, string(models.TransactionEarned), action.Title,
	))

	s.logger.Info("Points awarded",
		zap.String("user_id", action.UserID.String()),
		zap.String("action_id", action.ID.String()),
		zap.Int("points", awarded),
	)

	return awarded, nil
}

// AwardBonusPoints credits points outside the action flow
func (s *pointsService) AwardBonusPoints(ctx context.Context, userID uuid.UUID, points int, txType models.TransactionType, description string) error {
	if points == 0 {
		return nil
	}

	err := s.pointsRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.pointsRepo.AddPointsTx(ctx, tx, userID, points); err != nil {
			return err
		}
		return s.pointsRepo.InsertTransactionTx(ctx, tx, &models.PointTransaction{
			UserID:          userID,
			Points:          points,
			TransactionType: txType,
			Description:     description,
		})
	})
	if err != nil {
		return WrapInternalError("failed to award bonus points", err)
	}

	s.invalidateLeaderboards(ctx)
	s.eventBus.Publish(ctx, events.NewPointsAwardedEvent(userID, points, string(txType), description))
	return nil
}

// ===============================
// READS
// ===============================

// GetUserPoints returns the user's running record
func (s *pointsService) GetUserPoints(ctx context.Context, userID uuid.UUID) (*models.UserPoints, error) {
	points, err := s.pointsRepo.GetUserPoints(ctx, userID)
	if err != nil {
		return nil, WrapInternalError("failed to get user points", err)
	}
	return points, nil
}

// GetLeaderboard returns the ranked standings for a timeframe, served
// from cache when fresh.
func (s *pointsService) GetLeaderboard(ctx context.Context, timeframe models.Timeframe, limit int) ([]*models.LeaderboardEntry, error) {
	if !timeframe.Valid() {
		return nil, NewBusinessError("unknown leaderboard timeframe", CodeInvalidTimeframe)
	}
	if limit <= 0 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d", timeframe, limit)
	var cached []*models.LeaderboardEntry
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	entries, err := s.pointsRepo.Leaderboard(ctx, timeframe, limit)
	if err != nil {
		return nil, WrapInternalError("failed to get leaderboard", err)
	}

	if err := s.cache.Set(ctx, cacheKey, entries, leaderboardCacheTTL); err != nil {
		s.logger.Warn("Failed to cache leaderboard", zap.Error(err))
	}

	return entries, nil
}

// GetRecentTransactions returns the user's newest ledger entries
func (s *pointsService) GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PointTransaction, error) {
	transactions, err := s.pointsRepo.RecentTransactions(ctx, userID, limit)
	if err != nil {
		return nil, WrapInternalError("failed to get recent transactions", err)
	}
	return transactions, nil
}

// GetCategoryBreakdown returns verified points grouped by category
func (s *pointsService) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*models.CategoryPointsBreakdown, error) {
	breakdown, err := s.pointsRepo.CategoryBreakdown(ctx, userID)
	if err != nil {
		return nil, WrapInternalError("failed to get category breakdown", err)
	}
	return breakdown, nil
}

// ===============================
// HELPERS
// ===============================

// nextStreak computes the streak counters after one more action on the
// given day. Logging again the same day leaves the streak unchanged;
// logging on the next calendar day extends it; any gap resets to one.
func nextStreak(record *models.UserPoints, actionDate time.Time) (current, longest int) {
	today := truncateToDay(actionDate)

	switch {
	case record.LastActionDate == nil:
		current = 1
	case truncateToDay(*record.LastActionDate).Equal(today):
		current = record.CurrentStreak
		if current == 0 {
			current = 1
		}
	case truncateToDay(*record.LastActionDate).Equal(today.AddDate(0, 0, -1)):
		current = record.CurrentStreak + 1
	default:
		current = 1
	}

	longest = record.LongestStreak
	if current > longest {
		longest = current
	}
	return current, longest
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *pointsService) invalidateLeaderboards(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "leaderboard:*"); err != nil {
		s.logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}
}
