// file: internal/models/models_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         PaginationParams
		wantLimit  int
		wantOffset int
	}{
		{"zero limit defaults", PaginationParams{}, 50, 0},
		{"negative limit defaults", PaginationParams{Limit: -5}, 50, 0},
		{"limit above cap is clamped", PaginationParams{Limit: 500}, 100, 0},
		{"valid values pass through", PaginationParams{Limit: 20, Offset: 40}, 20, 40},
		{"negative offset resets", PaginationParams{Limit: 10, Offset: -1}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
			assert.Equal(t, tt.wantOffset, tt.in.Offset)
		})
	}
}

func TestActionEditable(t *testing.T) {
	assert.True(t, (&Action{VerificationStatus: VerificationPending}).Editable())
	assert.True(t, (&Action{VerificationStatus: VerificationRejected}).Editable())
	assert.False(t, (&Action{VerificationStatus: VerificationVerified}).Editable())
}

func TestChallengeWindow(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	challenge := &Challenge{
		IsActive:  true,
		StartDate: now.AddDate(0, 0, -5),
		EndDate:   now.AddDate(0, 0, 5),
	}

	t.Run("open within the window", func(t *testing.T) {
		assert.True(t, challenge.Open(now))
		assert.False(t, challenge.Ended(now))
	})

	t.Run("closed before the start", func(t *testing.T) {
		assert.False(t, challenge.Open(challenge.StartDate.AddDate(0, 0, -1)))
	})

	t.Run("open exactly at the start", func(t *testing.T) {
		assert.True(t, challenge.Open(challenge.StartDate))
	})

	t.Run("closed at the end", func(t *testing.T) {
		assert.False(t, challenge.Open(challenge.EndDate))
		assert.True(t, challenge.Ended(challenge.EndDate))
	})

	t.Run("inactive challenges are never open", func(t *testing.T) {
		inactive := *challenge
		inactive.IsActive = false
		assert.False(t, inactive.Open(now))
	})
}

func TestEnumValidity(t *testing.T) {
	t.Run("verification status", func(t *testing.T) {
		assert.True(t, VerificationPending.Valid())
		assert.True(t, VerificationVerified.Valid())
		assert.True(t, VerificationRejected.Valid())
		assert.False(t, VerificationStatus("maybe").Valid())
	})

	t.Run("impact unit", func(t *testing.T) {
		for _, u := range []ImpactUnit{UnitKgCO2, UnitKWh, UnitLiters, UnitKm} {
			assert.True(t, u.Valid())
		}
		assert.False(t, ImpactUnit("furlongs").Valid())
	})

	t.Run("challenge metric", func(t *testing.T) {
		for _, m := range []ChallengeMetric{MetricActionsCount, MetricPointsTotal, MetricImpactValue} {
			assert.True(t, m.Valid())
		}
		assert.False(t, ChallengeMetric("steps").Valid())
	})

	t.Run("badge criteria", func(t *testing.T) {
		for _, c := range []BadgeCriteria{CriteriaActionCount, CriteriaPointsTotal, CriteriaStreakDays, CriteriaCategoryMaster} {
			assert.True(t, c.Valid())
		}
		assert.False(t, BadgeCriteria("vibes").Valid())
	})

	t.Run("timeframe", func(t *testing.T) {
		for _, tf := range []Timeframe{TimeframeWeekly, TimeframeMonthly, TimeframeAll} {
			assert.True(t, tf.Valid())
		}
		assert.False(t, Timeframe("fortnightly").Valid())
	})
}
