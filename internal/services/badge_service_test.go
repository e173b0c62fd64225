// file: internal/services/badge_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

func newBadgeServiceForTest(badgeRepo *mockBadgeRepo, actionRepo *mockActionRepo, pointsRepo *mockPointsRepo) (BadgeService, *recordingBus) {
	bus := &recordingBus{}
	svc := NewBadgeService(badgeRepo, actionRepo, pointsRepo, bus, zap.NewNop())
	return svc, bus
}

func testBadge(criteria models.BadgeCriteria, value int, categoryID *uuid.UUID) *models.Badge {
	return &models.Badge{
		ID:            newUUID(),
		Name:          "Test Badge",
		CriteriaType:  criteria,
		CriteriaValue: value,
		CategoryID:    categoryID,
		Rarity:        models.RarityCommon,
		IsActive:      true,
	}
}

func TestCreateBadge(t *testing.T) {
	t.Run("creates a valid badge", func(t *testing.T) {
		badgeRepo := &mockBadgeRepo{}
		svc, _ := newBadgeServiceForTest(badgeRepo, &mockActionRepo{}, &mockPointsRepo{})

		badge, err := svc.CreateBadge(context.Background(), &CreateBadgeRequest{
			Name:          "Energy Saver",
			CriteriaType:  models.CriteriaActionCount,
			CriteriaValue: 10,
			Rarity:        models.RarityRare,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, badge.ID)
		assert.True(t, badge.IsActive)
		assert.Len(t, badgeRepo.createdIDs, 1)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		svc, _ := newBadgeServiceForTest(&mockBadgeRepo{}, &mockActionRepo{}, &mockPointsRepo{})

		_, err := svc.CreateBadge(context.Background(), &CreateBadgeRequest{
			CriteriaType: models.CriteriaActionCount,
			Rarity:       models.RarityCommon,
		})
		require.Error(t, err)
		svcErr, ok := AsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
	})

	t.Run("rejects unknown criteria type", func(t *testing.T) {
		svc, _ := newBadgeServiceForTest(&mockBadgeRepo{}, &mockActionRepo{}, &mockPointsRepo{})

		_, err := svc.CreateBadge(context.Background(), &CreateBadgeRequest{
			Name:          "Mystery",
			CriteriaType:  models.BadgeCriteria("vibes"),
			CriteriaValue: 1,
			Rarity:        models.RarityCommon,
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeInvalidCriteria, svcErr.Code)
	})

	t.Run("category_master requires a category", func(t *testing.T) {
		svc, _ := newBadgeServiceForTest(&mockBadgeRepo{}, &mockActionRepo{}, &mockPointsRepo{})

		_, err := svc.CreateBadge(context.Background(), &CreateBadgeRequest{
			Name:          "Transport Master",
			CriteriaType:  models.CriteriaCategoryMaster,
			CriteriaValue: 25,
			Rarity:        models.RarityEpic,
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeInvalidCriteria, svcErr.Code)
	})
}

func TestCheckAndAwardBadges(t *testing.T) {
	userID := newUUID()

	t.Run("no candidates means no awards", func(t *testing.T) {
		svc, bus := newBadgeServiceForTest(&mockBadgeRepo{}, &mockActionRepo{}, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
		assert.Empty(t, bus.events)
	})

	t.Run("action count badge awarded at threshold", func(t *testing.T) {
		badge := testBadge(models.CriteriaActionCount, 10, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		actionRepo := &mockActionRepo{countByUser: 10}
		svc, bus := newBadgeServiceForTest(badgeRepo, actionRepo, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, awarded, 1)
		assert.NotNil(t, awarded[0].EarnedAt)
		assert.Equal(t, []uuid.UUID{badge.ID}, badgeRepo.awardedIDs)
		assert.Len(t, bus.published("badge.awarded"), 1)
	})

	t.Run("action count badge withheld below threshold", func(t *testing.T) {
		badge := testBadge(models.CriteriaActionCount, 10, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		svc, _ := newBadgeServiceForTest(badgeRepo, &mockActionRepo{countByUser: 9}, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
		assert.Empty(t, badgeRepo.awardedIDs)
	})

	t.Run("action count badge scoped to a category", func(t *testing.T) {
		categoryID := newUUID()
		badge := testBadge(models.CriteriaActionCount, 5, &categoryID)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		// category count qualifies even though the overall count does not
		actionRepo := &mockActionRepo{countByUser: 0, countInCategory: 5}
		svc, _ := newBadgeServiceForTest(badgeRepo, actionRepo, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Len(t, awarded, 1)
	})

	t.Run("points total badge checks the running total", func(t *testing.T) {
		badge := testBadge(models.CriteriaPointsTotal, 1000, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		pointsRepo := &mockPointsRepo{points: &models.UserPoints{UserID: userID, TotalPoints: 1200}}
		svc, _ := newBadgeServiceForTest(badgeRepo, &mockActionRepo{}, pointsRepo)

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Len(t, awarded, 1)
	})

	t.Run("streak badge checks the current streak", func(t *testing.T) {
		badge := testBadge(models.CriteriaStreakDays, 7, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		pointsRepo := &mockPointsRepo{points: &models.UserPoints{UserID: userID, CurrentStreak: 6}}
		svc, _ := newBadgeServiceForTest(badgeRepo, &mockActionRepo{}, pointsRepo)

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
	})

	t.Run("category master without a category is never eligible", func(t *testing.T) {
		badge := testBadge(models.CriteriaCategoryMaster, 1, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		svc, _ := newBadgeServiceForTest(badgeRepo, &mockActionRepo{countInCategory: 100}, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
	})

	t.Run("unknown criteria fail closed", func(t *testing.T) {
		badge := testBadge(models.BadgeCriteria("vibes"), 0, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}}
		svc, _ := newBadgeServiceForTest(badgeRepo, &mockActionRepo{countByUser: 100}, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
	})

	t.Run("already held badge is not inserted or announced twice", func(t *testing.T) {
		badge := testBadge(models.CriteriaActionCount, 1, nil)
		badgeRepo := &mockBadgeRepo{unearned: []*models.Badge{badge}, hasBadge: true}
		svc, bus := newBadgeServiceForTest(badgeRepo, &mockActionRepo{countByUser: 5}, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
		assert.Empty(t, badgeRepo.awardedIDs)
		assert.Empty(t, bus.events)
		assert.Nil(t, badge.EarnedAt)
	})

	t.Run("concurrent insert of the same badge is tolerated silently", func(t *testing.T) {
		badge := testBadge(models.CriteriaActionCount, 1, nil)
		badgeRepo := &mockBadgeRepo{
			unearned:    []*models.Badge{badge},
			insertTxErr: uniqueViolation(),
		}
		svc, bus := newBadgeServiceForTest(badgeRepo, &mockActionRepo{countByUser: 5}, &mockPointsRepo{})

		awarded, err := svc.CheckAndAwardBadges(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
		assert.Empty(t, bus.events)
	})
}
