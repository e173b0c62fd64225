// file: internal/models/challenge.go
package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ChallengeType scopes who a challenge is aimed at
type ChallengeType string

const (
	ChallengeIndividual  ChallengeType = "individual"
	ChallengeTeam        ChallengeType = "team"
	ChallengeDepartment  ChallengeType = "department"
	ChallengeCompanyWide ChallengeType = "company_wide"
)

// ChallengeMetric is the typed variant progress recomputation dispatches on
type ChallengeMetric string

const (
	MetricActionsCount ChallengeMetric = "actions_count"
	MetricPointsTotal  ChallengeMetric = "points_total"
	MetricImpactValue  ChallengeMetric = "impact_value"
)

// Valid reports whether the metric is a known variant
func (m ChallengeMetric) Valid() bool {
	switch m {
	case MetricActionsCount, MetricPointsTotal, MetricImpactValue:
		return true
	}
	return false
}

// Challenge is a time-boxed competition against a target metric
type Challenge struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" db:"description" validate:"max=1000"`

	ChallengeType ChallengeType   `json:"challenge_type" db:"challenge_type" validate:"required,oneof=individual team department company_wide"`
	TargetMetric  ChallengeMetric `json:"target_metric" db:"target_metric" validate:"required,oneof=actions_count points_total impact_value"`
	TargetValue   float64         `json:"target_value" db:"target_value" validate:"required,gt=0"`

	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`

	RewardPoints      int     `json:"reward_points" db:"reward_points" validate:"min=0"`
	RewardDescription *string `json:"reward_description,omitempty" db:"reward_description" validate:"omitempty,max=500"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined fields (not in DB)
	ParticipantCount int  `json:"participant_count,omitempty" db:"-"`
	Joined           bool `json:"joined,omitempty" db:"-"`
}

// Open reports whether the challenge currently accepts joins
func (c *Challenge) Open(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartDate) && now.Before(c.EndDate)
}

// Ended reports whether the challenge window has closed
func (c *Challenge) Ended(now time.Time) bool {
	return !now.Before(c.EndDate)
}

// ChallengeParticipant tracks one user's progress in one challenge.
// Progress is recomputed from source tables, never accumulated, so
// recomputing at any time is idempotent.
type ChallengeParticipant struct {
	ChallengeID     uuid.UUID  `json:"challenge_id" db:"challenge_id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	CurrentProgress float64    `json:"current_progress" db:"current_progress"`
	Completed       bool       `json:"completed" db:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	JoinedAt        time.Time  `json:"joined_at" db:"joined_at"`

	// Joined fields (not in DB)
	FirstName  string  `json:"first_name,omitempty" db:"-"`
	LastName   string  `json:"last_name,omitempty" db:"-"`
	Department *string `json:"department,omitempty" db:"-"`
	Rank       int     `json:"rank,omitempty" db:"-"`
}
