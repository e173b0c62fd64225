// ===============================
// FILE: internal/handlers/api/v1/reports/reports_controller.go
// ===============================

package reports

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/contextutils"
	"github.com/ktie09rich-crypto/greenloop/internal/response"
	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

// ReportsController handles the environmental impact report endpoints
type ReportsController struct {
	impactService services.ImpactService
	logger        *zap.Logger
	builder       *response.Builder
}

// NewReportsController creates a new reports controller
func NewReportsController(impactService services.ImpactService, logger *zap.Logger, builder *response.Builder) *ReportsController {
	return &ReportsController{
		impactService: impactService,
		logger:        logger,
		builder:       builder,
	}
}

// GetMyImpact handles GET /api/v1/reports/impact
func (c *ReportsController) GetMyImpact(w http.ResponseWriter, r *http.Request) {
	period := services.ImpactPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = services.PeriodMonth
	}

	report, err := c.impactService.GetUserImpact(r.Context(), contextutils.GetUserID(r.Context()), period)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, report)
}

// GetCompanyImpact handles GET /api/v1/reports/impact/company
func (c *ReportsController) GetCompanyImpact(w http.ResponseWriter, r *http.Request) {
	report, err := c.impactService.GetCompanyImpact(r.Context())
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, report)
}

// GetCategoryImpact handles GET /api/v1/reports/impact/categories/{id}
func (c *ReportsController) GetCategoryImpact(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid category ID", err))
		return
	}

	report, err := c.impactService.GetCategoryImpact(r.Context(), categoryID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, report)
}
