package events

import (
	"time"

	"github.com/gofrs/uuid"
)

// Event types emitted by the gamification core
const (
	EventActionLogged       = "action.logged"
	EventActionVerified     = "action.verified"
	EventPointsAwarded      = "points.awarded"
	EventBadgeAwarded       = "badge.awarded"
	EventChallengeCreated   = "challenge.created"
	EventChallengeCompleted = "challenge.completed"
)

// ActionLoggedEvent fires after an action is created and scored
type ActionLoggedEvent struct {
	BaseEvent
	ActionID     uuid.UUID `json:"action_id"`
	CategoryID   uuid.UUID `json:"category_id"`
	PointsEarned int       `json:"points_earned"`
	ActionDate   time.Time `json:"action_date"`
}

// NewActionLoggedEvent builds an ActionLoggedEvent
func NewActionLoggedEvent(userID, actionID, categoryID uuid.UUID, points int, actionDate time.Time) *ActionLoggedEvent {
	return &ActionLoggedEvent{
		BaseEvent:    NewBaseEvent(EventActionLogged, &userID),
		ActionID:     actionID,
		CategoryID:   categoryID,
		PointsEarned: points,
		ActionDate:   actionDate,
	}
}

// ActionVerifiedEvent fires after an admin decides an action
type ActionVerifiedEvent struct {
	BaseEvent
	ActionID uuid.UUID `json:"action_id"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
}

// NewActionVerifiedEvent builds an ActionVerifiedEvent
func NewActionVerifiedEvent(userID, actionID uuid.UUID, title, status string) *ActionVerifiedEvent {
	return &ActionVerifiedEvent{
		BaseEvent: NewBaseEvent(EventActionVerified, &userID),
		ActionID:  actionID,
		Title:     title,
		Status:    status,
	}
}

// PointsAwardedEvent fires for every point ledger append
type PointsAwardedEvent struct {
	BaseEvent
	Points          int    `json:"points"`
	TransactionType string `json:"transaction_type"`
	Description     string `json:"description"`
}

// NewPointsAwardedEvent builds a PointsAwardedEvent
func NewPointsAwardedEvent(userID uuid.UUID, points int, txType, description string) *PointsAwardedEvent {
	return &PointsAwardedEvent{
		BaseEvent:       NewBaseEvent(EventPointsAwarded, &userID),
		Points:          points,
		TransactionType: txType,
		Description:     description,
	}
}

// BadgeAwardedEvent fires once per newly earned badge
type BadgeAwardedEvent struct {
	BaseEvent
	BadgeID   uuid.UUID `json:"badge_id"`
	BadgeName string    `json:"badge_name"`
	Rarity    string    `json:"rarity"`
}

// NewBadgeAwardedEvent builds a BadgeAwardedEvent
func NewBadgeAwardedEvent(userID, badgeID uuid.UUID, badgeName, rarity string) *BadgeAwardedEvent {
	return &BadgeAwardedEvent{
		BaseEvent: NewBaseEvent(EventBadgeAwarded, &userID),
		BadgeID:   badgeID,
		BadgeName: badgeName,
		Rarity:    rarity,
	}
}

// ChallengeCreatedEvent fires when an admin publishes a challenge
type ChallengeCreatedEvent struct {
	BaseEvent
	ChallengeID   uuid.UUID `json:"challenge_id"`
	Title         string    `json:"title"`
	ChallengeType string    `json:"challenge_type"`
	EndDate       time.Time `json:"end_date"`
}

// NewChallengeCreatedEvent builds a ChallengeCreatedEvent
func NewChallengeCreatedEvent(createdBy, challengeID uuid.UUID, title, challengeType string, endDate time.Time) *ChallengeCreatedEvent {
	return &ChallengeCreatedEvent{
		BaseEvent:     NewBaseEvent(EventChallengeCreated, &createdBy),
		ChallengeID:   challengeID,
		Title:         title,
		ChallengeType: challengeType,
		EndDate:       endDate,
	}
}

// ChallengeCompletedEvent fires when a participant reaches the target
type ChallengeCompletedEvent struct {
	BaseEvent
	ChallengeID    uuid.UUID `json:"challenge_id"`
	ChallengeTitle string    `json:"challenge_title"`
	RewardPoints   int       `json:"reward_points"`
}

// NewChallengeCompletedEvent builds a ChallengeCompletedEvent
func NewChallengeCompletedEvent(userID, challengeID uuid.UUID, title string, rewardPoints int) *ChallengeCompletedEvent {
	return &ChallengeCompletedEvent{
		BaseEvent:      NewBaseEvent(EventChallengeCompleted, &userID),
		ChallengeID:    challengeID,
		ChallengeTitle: title,
		RewardPoints:   rewardPoints,
	}
}
