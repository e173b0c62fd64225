// file: internal/models/models.go
package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents an employee account
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email" validate:"required,email,max=320"`
	FirstName string    `json:"first_name" db:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" db:"last_name" validate:"required,max=100"`

	Department *string `json:"department,omitempty" db:"department" validate:"omitempty,max=100"`
	AvatarURL  *string `json:"avatar_url,omitempty" db:"avatar_url"`

	// System fields
	Role          string `json:"role" db:"role" validate:"required,oneof=employee admin sustainability_manager"`
	IsActive      bool   `json:"is_active" db:"is_active"`
	EmailVerified bool   `json:"email_verified" db:"email_verified"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user can verify actions and manage challenges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSustainabilityManager
}

// User roles
const (
	RoleEmployee              = "employee"
	RoleAdmin                 = "admin"
	RoleSustainabilityManager = "sustainability_manager"
)

// ActionCategory is a static catalog entry for sustainability action types
type ActionCategory struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name" validate:"required,max=100"`
	Description      *string   `json:"description,omitempty" db:"description"`
	Icon             *string   `json:"icon,omitempty" db:"icon"`
	Color            *string   `json:"color,omitempty" db:"color"`
	PointsMultiplier float64   `json:"points_multiplier" db:"points_multiplier"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// SUSTAINABILITY ACTIONS
// ===============================

// VerificationStatus is the admin-controlled review state of an action
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Valid reports whether the status is one of the known states
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// ImpactUnit is the closed enumeration of user-reported impact units
type ImpactUnit string

const (
	UnitKgCO2  ImpactUnit = "kg_co2"
	UnitKWh    ImpactUnit = "kwh"
	UnitLiters ImpactUnit = "liters"
	UnitKm     ImpactUnit = "km"
)

// Valid reports whether the unit is part of the enumeration
func (u ImpactUnit) Valid() bool {
	switch u {
	case UnitKgCO2, UnitKWh, UnitLiters, UnitKm:
		return true
	}
	return false
}

// Action represents a single logged sustainability activity
type Action struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`

	Title       string  `json:"title" db:"title" validate:"required,min=3,max=200"`
	Description *string `json:"description,omitempty" db:"description" validate:"omitempty,max=1000"`

	// Optional self-reported impact
	ImpactValue *float64    `json:"impact_value,omitempty" db:"impact_value" validate:"omitempty,gt=0"`
	ImpactUnit  *ImpactUnit `json:"impact_unit,omitempty" db:"impact_unit"`

	// Finalized once by the points calculator after creation
	PointsEarned int `json:"points_earned" db:"points_earned"`

	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	VerificationNotes  *string            `json:"verification_notes,omitempty" db:"verification_notes"`
	VerifiedBy         *uuid.UUID         `json:"verified_by,omitempty" db:"verified_by"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty" db:"verified_at"`

	ActionDate  time.Time `json:"action_date" db:"action_date"`
	Attachments []string  `json:"attachments,omitempty" db:"attachments"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined fields (not in DB)
	CategoryName  string `json:"category_name,omitempty" db:"-"`
	CategoryColor string `json:"category_color,omitempty" db:"-"`
	UserName      string `json:"user_name,omitempty" db:"-"`
}

// Editable reports whether the owner may still modify the action
func (a *Action) Editable() bool {
	return a.VerificationStatus == VerificationPending || a.VerificationStatus == VerificationRejected
}
