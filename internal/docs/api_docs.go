// Package docs contains the Swagger endpoint documentation
package docs

// Import this in your router with: _ "github.com/ktie09rich-crypto/greenloop/internal/docs"

// HealthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API and its collaborators
// @Tags System
// @Produce json
// @Success 200 {object} HealthCheckResponse "API is healthy"
// @Router /health [get]
func _() {}

// LogAction godoc
// @Summary Log a sustainability action
// @Description Submit a new action for the authenticated employee; points are credited immediately
// @Tags Actions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param logActionRequest body services.LogActionRequest true "Action details"
// @Success 201 {object} APIResponse "Action logged"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Category not found"
// @Failure 422 {object} ErrorResponse "Category inactive or invalid impact pair"
// @Router /api/v1/actions [post]
func _() {}

// ListActions godoc
// @Summary List the caller's actions
// @Tags Actions
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} APIResponse "Actions page"
// @Router /api/v1/actions [get]
func _() {}

// GetAction godoc
// @Summary Get a single action
// @Tags Actions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Action ID"
// @Success 200 {object} APIResponse "Action"
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "Action not found"
// @Router /api/v1/actions/{id} [get]
func _() {}

// UpdateAction godoc
// @Summary Update a pending or rejected action
// @Description Owners may edit while an action has not been verified; a rejected action returns to pending
// @Tags Actions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Action ID"
// @Param updateActionRequest body services.UpdateActionRequest true "Fields to change"
// @Success 200 {object} APIResponse "Updated action"
// @Failure 422 {object} ErrorResponse "Action no longer editable"
// @Router /api/v1/actions/{id} [put]
func _() {}

// DeleteAction godoc
// @Summary Delete a pending action
// @Tags Actions
// @Security BearerAuth
// @Param id path string true "Action ID"
// @Success 204 {object} EmptyResponse "Deleted"
// @Failure 422 {object} ErrorResponse "Only pending actions can be deleted"
// @Router /api/v1/actions/{id} [delete]
func _() {}

// ListCategories godoc
// @Summary List active action categories
// @Tags Actions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "Categories"
// @Router /api/v1/actions/categories [get]
func _() {}

// GetPoints godoc
// @Summary Get the caller's points summary
// @Tags Gamification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "Points totals and streak"
// @Router /api/v1/gamification/points [get]
func _() {}

// GetTransactions godoc
// @Summary Get the caller's recent point transactions
// @Tags Gamification
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of transactions (default 10)"
// @Success 200 {object} APIResponse "Transactions"
// @Router /api/v1/gamification/points/transactions [get]
func _() {}

// GetLeaderboard godoc
// @Summary Get the company leaderboard
// @Description Ranked by points for the selected timeframe; ties share a rank
// @Tags Gamification
// @Security BearerAuth
// @Produce json
// @Param timeframe query string false "weekly, monthly or all (default all)"
// @Param limit query int false "Entries to return (default 50, max 100)"
// @Success 200 {object} APIResponse "Leaderboard entries"
// @Failure 400 {object} ErrorResponse "Unknown timeframe"
// @Router /api/v1/gamification/leaderboard [get]
func _() {}

// GetBadges godoc
// @Summary List the caller's earned badges
// @Tags Gamification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "Badges with earn dates"
// @Router /api/v1/gamification/badges [get]
func _() {}

// ListChallenges godoc
// @Summary List challenges
// @Tags Challenges
// @Security BearerAuth
// @Produce json
// @Param active query bool false "Only challenges whose window is open"
// @Success 200 {object} APIResponse "Challenges page"
// @Router /api/v1/challenges [get]
func _() {}

// JoinChallenge godoc
// @Summary Join a challenge
// @Tags Challenges
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 201 {object} APIResponse "Joined"
// @Failure 409 {object} ErrorResponse "Already joined"
// @Failure 422 {object} ErrorResponse "Challenge window closed"
// @Router /api/v1/challenges/{id}/join [post]
func _() {}

// LeaveChallenge godoc
// @Summary Leave a challenge
// @Tags Challenges
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 204 {object} EmptyResponse "Left"
// @Failure 422 {object} ErrorResponse "Not a participant"
// @Router /api/v1/challenges/{id}/join [delete]
func _() {}

// GetChallengeLeaderboard godoc
// @Summary Get challenge standings
// @Tags Challenges
// @Security BearerAuth
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} APIResponse "Participants ranked by progress"
// @Router /api/v1/challenges/{id}/leaderboard [get]
func _() {}

// GetMyImpact godoc
// @Summary Get the caller's environmental impact report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param period query string false "week, month, year or all (default month)"
// @Success 200 {object} APIResponse "Impact report"
// @Router /api/v1/reports/impact [get]
func _() {}

// GetCompanyImpact godoc
// @Summary Get the company-wide impact report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "Impact report"
// @Router /api/v1/reports/impact/company [get]
func _() {}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "User profile"
// @Router /api/v1/users/me [get]
func _() {}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags Users
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Image file (max 5MB)"
// @Success 200 {object} APIResponse "Avatar URL"
// @Failure 400 {object} ErrorResponse "Missing or oversized file"
// @Router /api/v1/users/me/avatar [post]
func _() {}

// GetDashboard godoc
// @Summary Get the caller's dashboard
// @Description Aggregates stats, recent activity, badges, active challenges and this month's impact
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "Dashboard"
// @Router /api/v1/users/me/dashboard [get]
func _() {}

// ListPendingActions godoc
// @Summary List actions awaiting verification
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} APIResponse "Pending actions, oldest first"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Router /api/v1/admin/actions/pending [get]
func _() {}

// VerifyAction godoc
// @Summary Verify or reject an action
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Action ID"
// @Param verifyActionRequest body services.VerifyActionRequest true "Decision"
// @Success 200 {object} APIResponse "Decided action"
// @Failure 422 {object} ErrorResponse "Action already decided"
// @Router /api/v1/admin/actions/{id}/verify [post]
func _() {}

// BulkVerifyActions godoc
// @Summary Apply one decision to a batch of actions
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param bulkVerifyRequest body services.BulkVerifyRequest true "Batch decision (max 100 IDs)"
// @Success 200 {object} APIResponse "Count of actions decided"
// @Router /api/v1/admin/actions/bulk-verify [post]
func _() {}

// CreateBadge godoc
// @Summary Create a badge definition
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param createBadgeRequest body services.CreateBadgeRequest true "Badge definition"
// @Success 201 {object} APIResponse "Badge"
// @Failure 400 {object} ErrorResponse "Unknown criteria type"
// @Router /api/v1/admin/badges [post]
func _() {}

// CreateChallenge godoc
// @Summary Create a challenge
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param createChallengeRequest body services.CreateChallengeRequest true "Challenge definition"
// @Success 201 {object} APIResponse "Challenge"
// @Failure 400 {object} ErrorResponse "End date not after start date"
// @Router /api/v1/admin/challenges [post]
func _() {}

// DistributeRewards godoc
// @Summary Pay top-three placement bonuses
// @Description Only callable after the challenge window closes; pays 100/50/25 bonus points
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 200 {object} APIResponse "Rewards distributed"
// @Failure 422 {object} ErrorResponse "Challenge still open"
// @Router /api/v1/admin/challenges/{id}/distribute-rewards [post]
func _() {}
