// file: internal/services/types.go
package services

import (
	"io"
	"time"

	"github.com/gofrs/uuid"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

// ===============================
// ACTION TYPES
// ===============================

// LogActionRequest carries a new action submission
type LogActionRequest struct {
	UserID      uuid.UUID          `json:"-"`
	CategoryID  uuid.UUID          `json:"category_id" validate:"required"`
	Title       string             `json:"title" validate:"required,min=3,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImpactValue *float64           `json:"impact_value,omitempty" validate:"omitempty,gt=0"`
	ImpactUnit  *models.ImpactUnit `json:"impact_unit,omitempty"`
	ActionDate  time.Time          `json:"action_date" validate:"required"`
	Attachments []string           `json:"attachments,omitempty" validate:"max=5,dive,url"`
}

// UpdateActionRequest carries an owner edit of a pending or rejected action
type UpdateActionRequest struct {
	ActionID    uuid.UUID          `json:"-"`
	RequesterID uuid.UUID          `json:"-"`
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImpactValue *float64           `json:"impact_value,omitempty" validate:"omitempty,gt=0"`
	ImpactUnit  *models.ImpactUnit `json:"impact_unit,omitempty"`
	ActionDate  *time.Time         `json:"action_date,omitempty"`
	Attachments []string           `json:"attachments,omitempty" validate:"max=5,dive,url"`
}

// VerifyActionRequest carries an admin verification decision
type VerifyActionRequest struct {
	ActionID   uuid.UUID                 `json:"-"`
	VerifierID uuid.UUID                 `json:"-"`
	Status     models.VerificationStatus `json:"status" validate:"required,oneof=verified rejected"`
	Notes      *string                   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BulkVerifyRequest applies one decision to a batch of actions
type BulkVerifyRequest struct {
	ActionIDs  []uuid.UUID               `json:"action_ids" validate:"required,min=1,max=100"`
	VerifierID uuid.UUID                 `json:"-"`
	Status     models.VerificationStatus `json:"status" validate:"required,oneof=verified rejected"`
	Notes      *string                   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ===============================
// POINTS TYPES
// ===============================

// PointsCalculation carries the inputs of the weighted points formula
type PointsCalculation struct {
	// CategoryMultiplier comes from the action's category catalog entry
	CategoryMultiplier float64
	// ImpactValue is the user-reported figure, nil when not reported
	ImpactValue *float64
	// CurrentStreak is the streak BEFORE this action is applied
	CurrentStreak int
	// ActiveChallenges counts the open challenges the user has joined
	ActiveChallenges int
}

// ===============================
// IMPACT TYPES
// ===============================

// ImpactPeriod selects the reporting window of an impact report
type ImpactPeriod string

const (
	PeriodWeek  ImpactPeriod = "week"
	PeriodMonth ImpactPeriod = "month"
	PeriodYear  ImpactPeriod = "year"
	PeriodAll   ImpactPeriod = "all"
)

// Valid reports whether the period is supported
func (p ImpactPeriod) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return true
	}
	return false
}

// ===============================
// BADGE TYPES
// ===============================

// CreateBadgeRequest carries a new badge catalog entry
type CreateBadgeRequest struct {
	Name          string               `json:"name" validate:"required,min=3,max=100"`
	Description   string               `json:"description" validate:"max=500"`
	IconURL       string               `json:"icon_url" validate:"omitempty,url"`
	CriteriaType  models.BadgeCriteria `json:"criteria_type" validate:"required"`
	CriteriaValue int                  `json:"criteria_value" validate:"required,gt=0"`
	CategoryID    *uuid.UUID           `json:"category_id,omitempty"`
	Rarity        models.BadgeRarity   `json:"rarity" validate:"required,oneof=common rare epic legendary"`
}

// ===============================
// CHALLENGE TYPES
// ===============================

// CreateChallengeRequest carries a new challenge definition
type CreateChallengeRequest struct {
	CreatedBy         uuid.UUID              `json:"-"`
	Title             string                 `json:"title" validate:"required,min=3,max=200"`
	Description       string                 `json:"description" validate:"max=1000"`
	ChallengeType     models.ChallengeType   `json:"challenge_type" validate:"required,oneof=individual team department company_wide"`
	TargetMetric      models.ChallengeMetric `json:"target_metric" validate:"required"`
	TargetValue       float64                `json:"target_value" validate:"required,gt=0"`
	StartDate         time.Time              `json:"start_date" validate:"required"`
	EndDate           time.Time              `json:"end_date" validate:"required"`
	RewardPoints      int                    `json:"reward_points" validate:"min=0"`
	RewardDescription *string                `json:"reward_description,omitempty" validate:"omitempty,max=500"`
}

// ===============================
// USER TYPES
// ===============================

// UpdateProfileRequest carries a user's own profile edits
type UpdateProfileRequest struct {
	UserID     uuid.UUID `json:"-"`
	FirstName  *string   `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName   *string   `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Department *string   `json:"department,omitempty" validate:"omitempty,max=100"`
}

// AvatarUploadRequest carries a profile image upload
type AvatarUploadRequest struct {
	UserID   uuid.UUID
	File     io.Reader
	FileName string
	FileSize int64
}

// ListUsersRequest carries the admin user listing filters
type ListUsersRequest struct {
	Role       string                  `json:"role,omitempty" validate:"omitempty,oneof=employee admin sustainability_manager"`
	Department string                  `json:"department,omitempty"`
	Search     string                  `json:"search,omitempty" validate:"omitempty,max=100"`
	Pagination models.PaginationParams `json:"pagination"`
}

// DashboardResponse aggregates everything the employee home screen shows
type DashboardResponse struct {
	Stats              *models.UserStats                 `json:"stats"`
	RecentActions      []*models.Action                  `json:"recent_actions"`
	RecentTransactions []*models.PointTransaction        `json:"recent_transactions"`
	Badges             []*models.Badge                   `json:"badges"`
	ActiveChallenges   []*models.Challenge               `json:"active_challenges"`
	CategoryBreakdown  []*models.CategoryPointsBreakdown `json:"category_breakdown"`
	Impact             *models.ImpactReport              `json:"impact"`
}
