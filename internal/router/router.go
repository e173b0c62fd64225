// ===============================
// FILE: internal/router/router.go
// ===============================

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/handlers/api/v1/actions"
	"github.com/ktie09rich-crypto/greenloop/internal/handlers/api/v1/admin"
	"github.com/ktie09rich-crypto/greenloop/internal/handlers/api/v1/challenges"
	"github.com/ktie09rich-crypto/greenloop/internal/handlers/api/v1/gamification"
	"github.com/ktie09rich-crypto/greenloop/internal/handlers/api/v1/reports"
	"github.com/ktie09rich-crypto/greenloop/internal/handlers/api/v1/users"
	"github.com/ktie09rich-crypto/greenloop/internal/middleware"
	"github.com/ktie09rich-crypto/greenloop/internal/response"
	"github.com/ktie09rich-crypto/greenloop/internal/services"

	_ "github.com/ktie09rich-crypto/greenloop/internal/docs" // swagger docs registration
)

// Setup wires the full HTTP surface and returns the root handler
func Setup(
	sc *services.ServiceCollection,
	authMiddleware *middleware.AuthMiddleware,
	builder *response.Builder,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Ambient middleware for every route
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogging(logger))
	r.Use(middleware.Recovery(logger, builder))

	// ===============================
	// PUBLIC ENDPOINTS
	// ===============================

	r.Get("/health", healthHandler(sc, builder))
	r.Mount("/swagger", middleware.SwaggerHandler(middleware.DefaultSwaggerConfig()))

	// ===============================
	// API V1
	// ===============================

	actionController := actions.NewActionController(sc.ActionService, logger, builder)
	gamificationController := gamification.NewGamificationController(sc.PointsService, sc.BadgeService, logger, builder)
	challengeController := challenges.NewChallengeController(sc.ChallengeService, logger, builder)
	reportsController := reports.NewReportsController(sc.ImpactService, logger, builder)
	userController := users.NewUserController(sc.UserService, logger, builder)
	adminController := admin.NewAdminController(sc.ActionService, sc.BadgeService, sc.UserService, logger, builder)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		// Action logging
		r.Route("/actions", func(r chi.Router) {
			r.Post("/", actionController.LogAction)
			r.Get("/", actionController.ListActions)
			r.Get("/categories", actionController.ListCategories)
			r.Get("/{id}", actionController.GetAction)
			r.Put("/{id}", actionController.UpdateAction)
			r.Delete("/{id}", actionController.DeleteAction)
		})

		// Points, leaderboard and badges
		r.Route("/gamification", func(r chi.Router) {
			r.Get("/points", gamificationController.GetPoints)
			r.Get("/points/transactions", gamificationController.GetTransactions)
			r.Get("/points/breakdown", gamificationController.GetCategoryBreakdown)
			r.Get("/leaderboard", gamificationController.GetLeaderboard)
			r.Get("/badges", gamificationController.GetBadges)
		})

		// Challenges
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", challengeController.ListChallenges)
			r.Get("/{id}", challengeController.GetChallenge)
			r.Post("/{id}/join", challengeController.JoinChallenge)
			r.Delete("/{id}/join", challengeController.LeaveChallenge)
			r.Get("/{id}/leaderboard", challengeController.GetLeaderboard)
		})

		// Impact reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/impact", reportsController.GetMyImpact)
			r.Get("/impact/company", reportsController.GetCompanyImpact)
			r.Get("/impact/categories/{id}", reportsController.GetCategoryImpact)
		})

		// Profile and dashboard
		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", userController.GetProfile)
			r.Put("/", userController.UpdateProfile)
			r.Post("/avatar", userController.UploadAvatar)
			r.Get("/stats", userController.GetStats)
			r.Get("/dashboard", userController.GetDashboard)
		})

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.RequireAdmin)

			r.Get("/actions/pending", adminController.ListPendingActions)
			r.Post("/actions/bulk-verify", adminController.BulkVerifyActions)
			r.Post("/actions/{id}/verify", adminController.VerifyAction)

			r.Post("/badges", adminController.CreateBadge)

			r.Post("/challenges", challengeController.CreateChallenge)
			r.Post("/challenges/{id}/distribute-rewards", challengeController.DistributeRewards)

			r.Get("/users", adminController.ListUsers)
			r.Delete("/users/{id}", adminController.DeactivateUser)
		})
	})

	logger.Info("Router setup completed",
		zap.String("base_path", "/api/v1"),
		zap.String("swagger_ui", "/swagger/index.html"),
	)

	return r
}

// healthHandler reports service health without requiring authentication
func healthHandler(sc *services.ServiceCollection, builder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := sc.HealthCheck(r.Context())
		builder.WriteSuccess(w, r, health)
	}
}
