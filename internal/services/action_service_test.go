// file: internal/services/action_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

type actionServiceFixture struct {
	svc           ActionService
	actionRepo    *mockActionRepo
	categoryRepo  *mockCategoryRepo
	pointsRepo    *mockPointsRepo
	badgeRepo     *mockBadgeRepo
	challengeRepo *mockChallengeRepo
	bus           *recordingBus
}

// newActionServiceFixture wires the action service over real points,
// badge and challenge services so the full logging flow runs.
func newActionServiceFixture() *actionServiceFixture {
	logger := zap.NewNop()
	bus := &recordingBus{}
	actionRepo := &mockActionRepo{}
	categoryRepo := &mockCategoryRepo{}
	pointsRepo := &mockPointsRepo{}
	badgeRepo := &mockBadgeRepo{}
	challengeRepo := &mockChallengeRepo{}

	pointsService := NewPointsService(pointsRepo, actionRepo, challengeRepo, newStubCache(), bus, logger)
	badgeService := NewBadgeService(badgeRepo, actionRepo, pointsRepo, bus, logger)
	challengeService := NewChallengeService(challengeRepo, actionRepo, pointsRepo, bus, logger)

	return &actionServiceFixture{
		svc:           NewActionService(actionRepo, categoryRepo, pointsService, badgeService, challengeService, bus, logger),
		actionRepo:    actionRepo,
		categoryRepo:  categoryRepo,
		pointsRepo:    pointsRepo,
		badgeRepo:     badgeRepo,
		challengeRepo: challengeRepo,
		bus:           bus,
	}
}

func activeCategory(multiplier float64) *models.ActionCategory {
	return &models.ActionCategory{
		ID:               newUUID(),
		Name:             "Energy",
		PointsMultiplier: multiplier,
		IsActive:         true,
	}
}

func TestLogAction(t *testing.T) {
	t.Run("creates, scores and finalizes the action", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.5)
		f.categoryRepo.category = category

		action, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:     newUUID(),
			CategoryID: category.ID,
			Title:      "Switched to LED bulbs",
			ActionDate: time.Now().UTC(),
		})
		require.NoError(t, err)

		assert.Equal(t, models.VerificationPending, action.VerificationStatus)
		assert.Equal(t, 15, action.PointsEarned)
		assert.Equal(t, "Energy", action.CategoryName)

		require.Len(t, f.actionRepo.created, 1)
		assert.Equal(t, 15, f.actionRepo.pointsSet[action.ID])
		require.Len(t, f.pointsRepo.transactions, 1)
		assert.Equal(t, "Action logged: Switched to LED bulbs", f.pointsRepo.transactions[0].Description)
		assert.Len(t, f.bus.published("action.logged"), 1)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newActionServiceFixture()

		_, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:     newUUID(),
			CategoryID: newUUID(),
			Title:      "Mystery action",
			ActionDate: time.Now().UTC(),
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, "NOT_FOUND", svcErr.Type)
		assert.Empty(t, f.actionRepo.created)
	})

	t.Run("rejects inactive category", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.0)
		category.IsActive = false
		f.categoryRepo.category = category

		_, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:     newUUID(),
			CategoryID: category.ID,
			Title:      "Old habits",
			ActionDate: time.Now().UTC(),
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeCategoryInactive, svcErr.Code)
	})

	t.Run("rejects impact value without a unit", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.0)
		f.categoryRepo.category = category

		_, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:      newUUID(),
			CategoryID:  category.ID,
			Title:       "Saved some energy",
			ImpactValue: float64Ptr(5),
			ActionDate:  time.Now().UTC(),
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
	})

	t.Run("rejects unknown impact unit", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.0)
		f.categoryRepo.category = category
		unit := models.ImpactUnit("furlongs")

		_, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:      newUUID(),
			CategoryID:  category.ID,
			Title:       "Traveled oddly",
			ImpactValue: float64Ptr(5),
			ImpactUnit:  &unit,
			ActionDate:  time.Now().UTC(),
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeInvalidImpactUnit, svcErr.Code)
	})

	t.Run("impact raises the award", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.0)
		f.categoryRepo.category = category
		unit := models.UnitKWh

		action, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:      newUUID(),
			CategoryID:  category.ID,
			Title:       "Unplugged the server closet",
			ImpactValue: float64Ptr(10),
			ImpactUnit:  &unit,
			ActionDate:  time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, 30, action.PointsEarned)
	})

	t.Run("qualifying badges are awarded alongside", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.0)
		f.categoryRepo.category = category
		badge := testBadge(models.CriteriaActionCount, 1, nil)
		f.badgeRepo.unearned = []*models.Badge{badge}
		f.actionRepo.countByUser = 1

		_, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:     newUUID(),
			CategoryID: category.ID,
			Title:      "First steps",
			ActionDate: time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Len(t, f.badgeRepo.awardedIDs, 1)
		assert.Len(t, f.bus.published("badge.awarded"), 1)
	})

	t.Run("challenge progress is recomputed alongside", func(t *testing.T) {
		f := newActionServiceFixture()
		category := activeCategory(1.0)
		f.categoryRepo.category = category
		challenge := openChallenge(models.MetricActionsCount, 10)
		f.challengeRepo.joinedList = []*models.Challenge{challenge}
		f.actionRepo.countSince = 3

		_, err := f.svc.LogAction(context.Background(), &LogActionRequest{
			UserID:     newUUID(),
			CategoryID: category.ID,
			Title:      "Bike commute",
			ActionDate: time.Now().UTC(),
		})
		require.NoError(t, err)
		require.Len(t, f.challengeRepo.progressWrites, 1)
		assert.Equal(t, 3.0, f.challengeRepo.progressWrites[0].progress)
	})
}

func TestGetAction(t *testing.T) {
	owner := newUUID()
	stranger := newUUID()

	t.Run("owner can view", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{ID: newUUID(), UserID: owner}

		got, err := f.svc.GetAction(context.Background(), f.actionRepo.action.ID, owner, false)
		require.NoError(t, err)
		assert.Equal(t, owner, got.UserID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{ID: newUUID(), UserID: owner}

		_, err := f.svc.GetAction(context.Background(), f.actionRepo.action.ID, stranger, false)
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, "FORBIDDEN", svcErr.Type)
	})

	t.Run("admin can view any action", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{ID: newUUID(), UserID: owner}

		_, err := f.svc.GetAction(context.Background(), f.actionRepo.action.ID, stranger, true)
		require.NoError(t, err)
	})
}

func TestUpdateAction(t *testing.T) {
	owner := newUUID()

	pendingAction := func() *models.Action {
		return &models.Action{
			ID:                 newUUID(),
			UserID:             owner,
			Title:              "Original title",
			VerificationStatus: models.VerificationPending,
		}
	}

	t.Run("owner edits a pending action", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = pendingAction()
		newTitle := "Corrected title"

		updated, err := f.svc.UpdateAction(context.Background(), &UpdateActionRequest{
			ActionID:    f.actionRepo.action.ID,
			RequesterID: owner,
			Title:       &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, "Corrected title", updated.Title)
		assert.Len(t, f.actionRepo.updated, 1)
	})

	t.Run("verified actions are locked", func(t *testing.T) {
		f := newActionServiceFixture()
		action := pendingAction()
		action.VerificationStatus = models.VerificationVerified
		f.actionRepo.action = action
		newTitle := "Too late"

		_, err := f.svc.UpdateAction(context.Background(), &UpdateActionRequest{
			ActionID:    action.ID,
			RequesterID: owner,
			Title:       &newTitle,
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeActionNotEditable, svcErr.Code)
	})

	t.Run("editing a rejected action resubmits it", func(t *testing.T) {
		f := newActionServiceFixture()
		action := pendingAction()
		action.VerificationStatus = models.VerificationRejected
		f.actionRepo.action = action
		newTitle := "With better evidence"

		updated, err := f.svc.UpdateAction(context.Background(), &UpdateActionRequest{
			ActionID:    action.ID,
			RequesterID: owner,
			Title:       &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, models.VerificationPending, updated.VerificationStatus)
	})

	t.Run("non-owner cannot edit", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = pendingAction()
		newTitle := "Hijacked"

		_, err := f.svc.UpdateAction(context.Background(), &UpdateActionRequest{
			ActionID:    f.actionRepo.action.ID,
			RequesterID: newUUID(),
			Title:       &newTitle,
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, "FORBIDDEN", svcErr.Type)
	})
}

func TestDeleteAction(t *testing.T) {
	owner := newUUID()

	t.Run("owner deletes a pending action", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{
			ID: newUUID(), UserID: owner,
			VerificationStatus: models.VerificationPending,
		}

		err := f.svc.DeleteAction(context.Background(), f.actionRepo.action.ID, owner, false)
		require.NoError(t, err)
		assert.Len(t, f.actionRepo.deleted, 1)
	})

	t.Run("decided actions cannot be deleted", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{
			ID: newUUID(), UserID: owner,
			VerificationStatus: models.VerificationVerified,
		}

		err := f.svc.DeleteAction(context.Background(), f.actionRepo.action.ID, owner, false)
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeActionNotEditable, svcErr.Code)
	})
}

func TestVerifyAction(t *testing.T) {
	verifier := newUUID()

	t.Run("approves a pending action", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{
			ID: newUUID(), UserID: newUUID(),
			Title:              "Composted",
			VerificationStatus: models.VerificationPending,
		}

		action, err := f.svc.VerifyAction(context.Background(), &VerifyActionRequest{
			ActionID:   f.actionRepo.action.ID,
			VerifierID: verifier,
			Status:     models.VerificationVerified,
		})
		require.NoError(t, err)
		assert.Equal(t, models.VerificationVerified, action.VerificationStatus)
		require.NotNil(t, action.VerifiedBy)
		assert.Equal(t, verifier, *action.VerifiedBy)
		assert.Len(t, f.bus.published("action.verified"), 1)
	})

	t.Run("a decision is one-way", func(t *testing.T) {
		f := newActionServiceFixture()
		f.actionRepo.action = &models.Action{
			ID: newUUID(), UserID: newUUID(),
			VerificationStatus: models.VerificationRejected,
		}

		_, err := f.svc.VerifyAction(context.Background(), &VerifyActionRequest{
			ActionID:   f.actionRepo.action.ID,
			VerifierID: verifier,
			Status:     models.VerificationVerified,
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, CodeActionAlreadySet, svcErr.Code)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		f := newActionServiceFixture()

		_, err := f.svc.VerifyAction(context.Background(), &VerifyActionRequest{
			ActionID:   newUUID(),
			VerifierID: verifier,
			Status:     models.VerificationStatus("maybe"),
		})
		require.Error(t, err)
		svcErr, _ := AsServiceError(err)
		assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
	})
}

func TestBulkVerifyActions(t *testing.T) {
	t.Run("applies one decision to the batch", func(t *testing.T) {
		f := newActionServiceFixture()
		ids := []uuid.UUID{newUUID(), newUUID(), newUUID()}

		affected, err := f.svc.BulkVerifyActions(context.Background(), &BulkVerifyRequest{
			ActionIDs:  ids,
			VerifierID: newUUID(),
			Status:     models.VerificationVerified,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		f := newActionServiceFixture()

		_, err := f.svc.BulkVerifyActions(context.Background(), &BulkVerifyRequest{
			VerifierID: newUUID(),
			Status:     models.VerificationVerified,
		})
		require.Error(t, err)
	})
}
