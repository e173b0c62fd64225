// file: internal/services/action_service.go
package services

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
	"github.com/ktie09rich-crypto/greenloop/internal/validation"
)

// actionService implements ActionService. It orchestrates the full flow
// around a logged action: scoring, badge evaluation and challenge
// progress.
type actionService struct {
	actionRepo       repositories.ActionRepository
	categoryRepo     repositories.CategoryRepository
	pointsService    PointsService
	badgeService     BadgeService
	challengeService ChallengeService
	eventBus         events.EventBus
	logger           *zap.Logger
}

// NewActionService creates a new action service
func NewActionService(
	actionRepo repositories.ActionRepository,
	categoryRepo repositories.CategoryRepository,
	pointsService PointsService,
	badgeService BadgeService,
	challengeService ChallengeService,
	eventBus events.EventBus,
	logger *zap.Logger,
) ActionService {
	return &actionService{
		actionRepo:       actionRepo,
		categoryRepo:     categoryRepo,
		pointsService:    pointsService,
		badgeService:     badgeService,
		challengeService: challengeService,
		eventBus:         eventBus,
		logger:           logger,
	}
}

// ===============================
// LOGGING
// ===============================

// LogAction creates an action, scores it and triggers the downstream
// gamification updates. Points are computed and written exactly once;
// the action itself is created before any of the side effects, so a
// side-effect failure never loses the submission.
func (s *actionService) LogAction(ctx context.Context, req *LogActionRequest) (*models.Action, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid action", err)
	}
	if err := validateImpactPair(req.ImpactValue, req.ImpactUnit); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, WrapInternalError("failed to load category", err)
	}
	if category == nil {
		return nil, NewNotFoundError("action category not found")
	}
	if !category.IsActive {
		return nil, NewBusinessError("action category is inactive", CodeCategoryInactive)
	}

	action := &models.Action{
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		ImpactValue: req.ImpactValue,
		ImpactUnit:  req.ImpactUnit,
		ActionDate:  req.ActionDate,
		Attachments: req.Attachments,
	}
	if err := s.actionRepo.Create(ctx, action); err != nil {
		return nil, WrapInternalError("failed to create action", err)
	}

	points, err := s.pointsService.AwardActionPoints(ctx, action, category)
	if err != nil {
		return nil, err
	}
	if err := s.actionRepo.SetPointsEarned(ctx, action.ID, points); err != nil {
		return nil, WrapInternalError("failed to finalize action points", err)
	}
	action.PointsEarned = points
	action.CategoryName = category.Name
	if category.Color != nil {
		action.CategoryColor = *category.Color
	}

	// Badge and challenge updates are derived state; a failure here is
	// recoverable on the next action, so it must not fail the submission.
	if _, err := s.badgeService.CheckAndAwardBadges(ctx, req.UserID); err != nil {
		s.logger.Error("Badge evaluation failed after action",
			zap.Error(err),
			zap.String("action_id", action.ID.String()),
		)
	}
	if err := s.challengeService.UpdateProgressForUser(ctx, req.UserID); err != nil {
		s.logger.Error("Challenge progress update failed after action",
			zap.Error(err),
			zap.String("action_id", action.ID.String()),
		)
	}

	s.eventBus.Publish(ctx, events.NewActionLoggedEvent(
		req.UserID, action.ID, action.CategoryID, points, action.ActionDate,
	))
	s.logger.Info("Action logged",
		zap.String("action_id", action.ID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.Int("points", points),
	)

	return action, nil
}

// ===============================
// READS
// ===============================

// GetAction returns an action visible to the requester
func (s *actionService) GetAction(ctx context.Context, actionID, requesterID uuid.UUID, isAdmin bool) (*models.Action, error) {
	action, err := s.actionRepo.GetByID(ctx, actionID)
	if err != nil {
		return nil, WrapInternalError("failed to get action", err)
	}
	if action == nil {
		return nil, NewNotFoundError("action not found")
	}
	if action.UserID != requesterID && !isAdmin {
		return nil, NewForbiddenError("not allowed to view this action")
	}
	return action, nil
}

// ListUserActions returns a user's own actions
func (s *actionService) ListUserActions(ctx context.Context, userID uuid.UUID, params models.PaginationParams) ([]*models.Action, error) {
	actions, err := s.actionRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, WrapInternalError("failed to list actions", err)
	}
	return actions, nil
}

// ListCategories returns the active category catalog
func (s *actionService) ListCategories(ctx context.Context) ([]*models.ActionCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, WrapInternalError("failed to list categories", err)
	}
	return categories, nil
}

// ===============================
// OWNER EDITS
// ===============================

// UpdateAction lets the owner edit a pending or rejected action. Editing
// a rejected action resubmits it for review.
func (s *actionService) UpdateAction(ctx context.Context, req *UpdateActionRequest) (*models.Action, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid action update", err)
	}

	action, err := s.actionRepo.GetByID(ctx, req.ActionID)
	if err != nil {
		return nil, WrapInternalError("failed to get action", err)
	}
	if action == nil {
		return nil, NewNotFoundError("action not found")
	}
	if action.UserID != req.RequesterID {
		return nil, NewForbiddenError("not allowed to edit this action")
	}
	if !action.Editable() {
		return nil, NewBusinessError("verified actions cannot be edited", CodeActionNotEditable)
	}

	if req.Title != nil {
		action.Title = *req.Title
	}
	if req.Description != nil {
		action.Description = req.Description
	}
	if req.ImpactValue != nil {
		action.ImpactValue = req.ImpactValue
	}
	if req.ImpactUnit != nil {
		action.ImpactUnit = req.ImpactUnit
	}
	if req.ActionDate != nil {
		action.ActionDate = *req.ActionDate
	}
	if req.Attachments != nil {
		action.Attachments = req.Attachments
	}
	if err := validateImpactPair(action.ImpactValue, action.ImpactUnit); err != nil {
		return nil, err
	}

	// Resubmit for review after an edit.
	if action.VerificationStatus == models.VerificationRejected {
		action.VerificationStatus = models.VerificationPending
	}

	if err := s.actionRepo.Update(ctx, action); err != nil {
		return nil, WrapInternalError("failed to update action", err)
	}
	return action, nil
}

// DeleteAction removes an owner's still-pending action
func (s *actionService) DeleteAction(ctx context.Context, actionID, requesterID uuid.UUID, isAdmin bool) error {
	action, err := s.actionRepo.GetByID(ctx, actionID)
	if err != nil {
		return WrapInternalError("failed to get action", err)
	}
	if action == nil {
		return NewNotFoundError("action not found")
	}
	if action.UserID != requesterID && !isAdmin {
		return NewForbiddenError("not allowed to delete this action")
	}
	if action.VerificationStatus != models.VerificationPending {
		return NewBusinessError("only pending actions can be deleted", CodeActionNotEditable)
	}

	if err := s.actionRepo.Delete(ctx, actionID); err != nil {
		if err == sql.ErrNoRows {
			return NewNotFoundError("action not found")
		}
		return WrapInternalError("failed to delete action", err)
	}
	return nil
}

// ===============================
// ADMIN VERIFICATION
// ===============================

// VerifyAction records an admin decision on one pending action. A
// decision is one-way; a rejected action only returns to pending through
// an owner edit.
func (s *actionService) VerifyAction(ctx context.Context, req *VerifyActionRequest) (*models.Action, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid verification request", err)
	}

	action, err := s.actionRepo.GetByID(ctx, req.ActionID)
	if err != nil {
		return nil, WrapInternalError("failed to get action", err)
	}
	if action == nil {
		return nil, NewNotFoundError("action not found")
	}
	if action.VerificationStatus != models.VerificationPending {
		return nil, NewBusinessError("action has already been decided", CodeActionAlreadySet)
	}

	if err := s.actionRepo.Verify(ctx, req.ActionID, req.Status, req.Notes, req.VerifierID); err != nil {
		return nil, WrapInternalError("failed to verify action", err)
	}

	action.VerificationStatus = req.Status
	action.VerificationNotes = req.Notes
	action.VerifiedBy = &req.VerifierID

	s.eventBus.Publish(ctx, events.NewActionVerifiedEvent(
		action.UserID, action.ID, action.Title, string(req.Status),
	))
	s.logger.Info("Action verified",
		zap.String("action_id", action.ID.String()),
		zap.String("status", string(req.Status)),
		zap.String("verified_by", req.VerifierID.String()),
	)

	return action, nil
}

// BulkVerifyActions applies one decision to a batch in a single
// statement, so the whole batch succeeds or fails together.
func (s *actionService) BulkVerifyActions(ctx context.Context, req *BulkVerifyRequest) (int64, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return 0, NewValidationError("invalid bulk verification request", err)
	}
	if len(req.ActionIDs) == 0 {
		return 0, NewBusinessError("no actions to verify", CodeEmptyVerifyBatch)
	}

	affected, err := s.actionRepo.BulkVerify(ctx, req.ActionIDs, req.Status, req.Notes, req.VerifierID)
	if err != nil {
		return 0, WrapInternalError("failed to bulk verify actions", err)
	}

	s.logger.Info("Actions bulk verified",
		zap.Int("requested", len(req.ActionIDs)),
		zap.Int64("affected", affected),
		zap.String("status", string(req.Status)),
	)
	return affected, nil
}

// ListPendingVerification returns the admin review queue
func (s *actionService) ListPendingVerification(ctx context.Context, params models.PaginationParams) ([]*models.Action, error) {
	actions, err := s.actionRepo.ListPendingVerification(ctx, params)
	if err != nil {
		return nil, WrapInternalError("failed to list pending actions", err)
	}
	return actions, nil
}

// validateImpactPair enforces that impact value and unit come together
// and the unit is one of the known enumeration.
func validateImpactPair(value *float64, unit *models.ImpactUnit) error {
	if (value == nil) != (unit == nil) {
		return NewValidationError("impact value and unit must be provided together", nil)
	}
	if unit != nil && !unit.Valid() {
		return NewBusinessError("unknown impact unit", CodeInvalidImpactUnit)
	}
	return nil
}
