// file: internal/services/impact_service.go
package services

import (
	"context"
	"math"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
)

// co2Factors converts a reported impact value to kilograms of CO2 saved.
// Units without a factor contribute nothing.
var co2Factors = map[models.ImpactUnit]float64{
	models.UnitKWh:    0.5,
	models.UnitKm:     0.2,
	models.UnitLiters: 0.001,
	models.UnitKgCO2:  1.0,
}

// impactService implements ImpactService
type impactService struct {
	actionRepo repositories.ActionRepository
	logger     *zap.Logger
}

// NewImpactService creates a new impact service
func NewImpactService(actionRepo repositories.ActionRepository, logger *zap.Logger) ImpactService {
	return &impactService{
		actionRepo: actionRepo,
		logger:     logger,
	}
}

// ===============================
// REPORTS
// ===============================

// GetUserImpact aggregates a user's verified actions over the period
func (s *impactService) GetUserImpact(ctx context.Context, userID uuid.UUID, period ImpactPeriod) (*models.ImpactReport, error) {
	if !period.Valid() {
		return nil, NewValidationError("unknown impact period", nil)
	}

	start, end := periodBounds(period, time.Now().UTC())
	actions, err := s.actionRepo.ListVerifiedInRange(ctx, userID, start, end)
	if err != nil {
		return nil, WrapInternalError("failed to load verified actions", err)
	}

	report := reduceImpact(actions)
	report.Period = string(period)
	return report, nil
}

// GetCompanyImpact aggregates every verified action ever logged
func (s *impactService) GetCompanyImpact(ctx context.Context) (*models.ImpactReport, error) {
	actions, err := s.actionRepo.ListVerifiedAll(ctx)
	if err != nil {
		return nil, WrapInternalError("failed to load verified actions", err)
	}

	report := reduceImpact(actions)
	report.Period = string(PeriodAll)
	return report, nil
}

// GetCategoryImpact aggregates one category's verified actions
func (s *impactService) GetCategoryImpact(ctx context.Context, categoryID uuid.UUID) (*models.ImpactReport, error) {
	actions, err := s.actionRepo.ListVerifiedByCategory(ctx, categoryID)
	if err != nil {
		return nil, WrapInternalError("failed to load verified actions", err)
	}

	report := reduceImpact(actions)
	report.Period = string(PeriodAll)
	return report, nil
}

// ===============================
// REDUCERS
// ===============================

// reduceImpact folds actions into the three savings totals. Actions
// without a reported impact still count toward the action total.
func reduceImpact(actions []*models.Action) *models.ImpactReport {
	var co2, energy, water float64
	for _, a := range actions {
		if a.ImpactValue == nil || a.ImpactUnit == nil {
			continue
		}
		value := *a.ImpactValue
		co2 += value * co2Factors[*a.ImpactUnit]
		switch *a.ImpactUnit {
		case models.UnitKWh:
			energy += value
		case models.UnitLiters:
			water += value
		}
	}

	return &models.ImpactReport{
		CO2SavedKg:       round2(co2),
		EnergySavedKWh:   round2(energy),
		WaterSavedLiters: round2(water),
		TotalActions:     len(actions),
	}
}

// periodBounds returns the closed reporting window ending now
func periodBounds(period ImpactPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodMonth:
		return now.AddDate(0, -1, 0), now
	case PeriodYear:
		return now.AddDate(-1, 0, 0), now
	default:
		return time.Time{}, now
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
