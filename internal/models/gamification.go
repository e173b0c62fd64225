// file: internal/models/gamification.go
package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// POINTS & STREAKS
// ===============================

// UserPoints is the per-user running point and streak record.
// Mutated only by the points service inside a transaction that
// also appends a PointTransaction.
type UserPoints struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	TotalPoints   int       `json:"total_points" db:"total_points"`
	MonthlyPoints int       `json:"monthly_points" db:"monthly_points"`
	WeeklyPoints  int       `json:"weekly_points" db:"weekly_points"`

	CurrentStreak  int        `json:"current_streak" db:"current_streak"`
	LongestStreak  int        `json:"longest_streak" db:"longest_streak"`
	LastActionDate *time.Time `json:"last_action_date,omitempty" db:"last_action_date"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TransactionType tags a point ledger entry
type TransactionType string

const (
	TransactionEarned     TransactionType = "earned"
	TransactionBonus      TransactionType = "bonus"
	TransactionAdjustment TransactionType = "adjustment"
)

// PointTransaction is an immutable, append-only ledger entry
type PointTransaction struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	ActionID        *uuid.UUID      `json:"action_id,omitempty" db:"action_id"`
	Points          int             `json:"points" db:"points"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	Description     string          `json:"description" db:"description"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// Timeframe selects which running point column a leaderboard reads
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAll     Timeframe = "all"
)

// Valid reports whether the timeframe is supported
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeWeekly, TimeframeMonthly, TimeframeAll:
		return true
	}
	return false
}

// LeaderboardEntry is one ranked row of a points leaderboard
type LeaderboardEntry struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Department *string   `json:"department,omitempty" db:"department"`
	Points     int       `json:"points" db:"points"`
	Rank       int       `json:"rank" db:"rank"`
}

// UserStats aggregates a user's gamification standing
type UserStats struct {
	TotalPoints   int `json:"total_points"`
	MonthlyPoints int `json:"monthly_points"`
	WeeklyPoints  int `json:"weekly_points"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalActions  int `json:"total_actions"`
	TotalBadges   int `json:"total_badges"`
}

// CategoryPointsBreakdown is one row of a user's verified points grouped by category
type CategoryPointsBreakdown struct {
	CategoryName string  `json:"category_name" db:"name"`
	Color        *string `json:"color,omitempty" db:"color"`
	TotalPoints  int     `json:"total_points" db:"total_points"`
	ActionCount  int     `json:"action_count" db:"action_count"`
}

// ===============================
// BADGES
// ===============================

// BadgeCriteria is the typed variant a badge's eligibility rule dispatches on.
// Unknown values fail closed in the badge service.
type BadgeCriteria string

const (
	CriteriaActionCount    BadgeCriteria = "action_count"
	CriteriaPointsTotal    BadgeCriteria = "points_total"
	CriteriaStreakDays     BadgeCriteria = "streak_days"
	CriteriaCategoryMaster BadgeCriteria = "category_master"
)

// Valid reports whether the criteria type is a known variant
func (c BadgeCriteria) Valid() bool {
	switch c {
	case CriteriaActionCount, CriteriaPointsTotal, CriteriaStreakDays, CriteriaCategoryMaster:
		return true
	}
	return false
}

// BadgeRarity grades how hard a badge is to earn
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is a static catalog entry for a fixed-criteria achievement
type Badge struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Name          string        `json:"name" db:"name" validate:"required,min=3,max=100"`
	Description   string        `json:"description" db:"description" validate:"max=500"`
	IconURL       string        `json:"icon_url" db:"icon_url" validate:"omitempty,url"`
	CriteriaType  BadgeCriteria `json:"criteria_type" db:"criteria_type" validate:"required,oneof=action_count points_total streak_days category_master"`
	CriteriaValue int           `json:"criteria_value" db:"criteria_value" validate:"required,gt=0"`
	CategoryID    *uuid.UUID    `json:"category_id,omitempty" db:"category_id"`
	Rarity        BadgeRarity   `json:"rarity" db:"rarity" validate:"required,oneof=common rare epic legendary"`
	IsActive      bool          `json:"is_active" db:"is_active"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`

	// Joined field (not in DB)
	EarnedAt *time.Time `json:"earned_at,omitempty" db:"-"`
}

// UserBadge is the one-per-(user, badge) award row; inserted once, never touched again
type UserBadge struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	BadgeID  uuid.UUID `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

// ===============================
// IMPACT
// ===============================

// ImpactReport holds normalized environmental savings over a period
type ImpactReport struct {
	CO2SavedKg       float64 `json:"co2_saved_kg"`
	EnergySavedKWh   float64 `json:"energy_saved_kwh"`
	WaterSavedLiters float64 `json:"water_saved_liters"`
	TotalActions     int     `json:"total_actions"`
	Period           string  `json:"period"`
}
