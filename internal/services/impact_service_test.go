// file: internal/services/impact_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
)

func impactAction(value float64, unit models.ImpactUnit) *models.Action {
	return &models.Action{
		ID:          newUUID(),
		ImpactValue: &value,
		ImpactUnit:  &unit,
	}
}

func TestReduceImpact(t *testing.T) {
	t.Run("converts each unit to kg of CO2", func(t *testing.T) {
		report := reduceImpact([]*models.Action{
			impactAction(10, models.UnitKWh),    // 5.0 kg
			impactAction(20, models.UnitKm),     // 4.0 kg
			impactAction(100, models.UnitLiters), // 0.1 kg
			impactAction(3, models.UnitKgCO2),   // 3.0 kg
		})

		assert.Equal(t, 12.1, report.CO2SavedKg)
		assert.Equal(t, 10.0, report.EnergySavedKWh)
		assert.Equal(t, 100.0, report.WaterSavedLiters)
		assert.Equal(t, 4, report.TotalActions)
	})

	t.Run("actions without impact still count toward the total", func(t *testing.T) {
		report := reduceImpact([]*models.Action{
			{ID: newUUID()},
			impactAction(2, models.UnitKgCO2),
		})

		assert.Equal(t, 2.0, report.CO2SavedKg)
		assert.Equal(t, 2, report.TotalActions)
	})

	t.Run("empty input yields zero report", func(t *testing.T) {
		report := reduceImpact(nil)
		assert.Zero(t, report.CO2SavedKg)
		assert.Zero(t, report.TotalActions)
	})

	t.Run("totals are rounded to two decimals", func(t *testing.T) {
		report := reduceImpact([]*models.Action{
			impactAction(0.333, models.UnitKgCO2),
			impactAction(0.333, models.UnitKgCO2),
		})
		assert.Equal(t, 0.67, report.CO2SavedKg)
	})
}

func TestPeriodBounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period ImpactPeriod
		start  time.Time
	}{
		{PeriodWeek, now.AddDate(0, 0, -7)},
		{PeriodMonth, now.AddDate(0, -1, 0)},
		{PeriodYear, now.AddDate(-1, 0, 0)},
		{PeriodAll, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := periodBounds(tt.period, now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, now, end)
		})
	}
}

func TestGetUserImpact(t *testing.T) {
	userID := newUUID()

	t.Run("rejects unknown period", func(t *testing.T) {
		svc := NewImpactService(&mockActionRepo{}, zap.NewNop())

		_, err := svc.GetUserImpact(context.Background(), userID, ImpactPeriod("decade"))
		require.Error(t, err)
		svcErr, ok := AsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
	})

	t.Run("aggregates verified actions and stamps the period", func(t *testing.T) {
		repo := &mockActionRepo{
			verifiedActions: []*models.Action{
				impactAction(4, models.UnitKWh),
				impactAction(10, models.UnitKm),
			},
		}
		svc := NewImpactService(repo, zap.NewNop())

		report, err := svc.GetUserImpact(context.Background(), userID, PeriodMonth)
		require.NoError(t, err)
		assert.Equal(t, string(PeriodMonth), report.Period)
		assert.Equal(t, 4.0, report.CO2SavedKg)
		assert.Equal(t, 2, report.TotalActions)
	})
}

func TestGetCompanyImpact(t *testing.T) {
	repo := &mockActionRepo{
		verifiedActions: []*models.Action{
			impactAction(200, models.UnitKWh),
		},
	}
	svc := NewImpactService(repo, zap.NewNop())

	report, err := svc.GetCompanyImpact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(PeriodAll), report.Period)
	assert.Equal(t, 100.0, report.CO2SavedKg)
	assert.Equal(t, 200.0, report.EnergySavedKWh)
}

func TestGetCategoryImpact(t *testing.T) {
	repo := &mockActionRepo{
		verifiedActions: []*models.Action{
			impactAction(50, models.UnitLiters),
		},
	}
	svc := NewImpactService(repo, zap.NewNop())

	report, err := svc.GetCategoryImpact(context.Background(), newUUID())
	require.NoError(t, err)
	assert.Equal(t, 0.05, report.CO2SavedKg)
	assert.Equal(t, 50.0, report.WaterSavedLiters)
}
