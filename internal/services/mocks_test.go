// file: internal/services/mocks_test.go
package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"

	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
)

func newUUID() uuid.UUID {
	id, _ := uuid.NewV4()
	return id
}

func float64Ptr(v float64) *float64 { return &v }

func uniqueViolation() error {
	return &pq.Error{Code: "23505"}
}

// ===============================
// EVENT BUS
// ===============================

// recordingBus captures published events synchronously for assertions
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Subscribe(eventType string, handler events.Handler) {}

func (b *recordingBus) Close() {}

func (b *recordingBus) published(eventType string) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []events.Event
	for _, e := range b.events {
		if e.GetEventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// ===============================
// CACHE
// ===============================

// stubCache is a map-backed cache without background cleanup
type stubCache struct {
	mu      sync.Mutex
	values  map[string]interface{}
	deletes []string
}

func newStubCache() *stubCache {
	return &stubCache{values: make(map[string]interface{})}
}

// Get always misses; stored values are only inspected by tests.
func (c *stubCache) Get(ctx context.Context, key string, dest interface{}) bool {
	return false
}

func (c *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *stubCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, pattern)
	return nil
}

func (c *stubCache) Health(ctx context.Context) error { return nil }
func (c *stubCache) Close() error                     { return nil }

// ===============================
// POINTS REPOSITORY
// ===============================

type streakWrite struct {
	current, longest int
	lastActionDate   time.Time
}

type mockPointsRepo struct {
	points  *models.UserPoints // returned by GetUserPoints and GetStreakTx
	entries []*models.LeaderboardEntry
	recent  []*models.PointTransaction
	sum     int

	addedPoints  []int
	transactions []*models.PointTransaction
	streakWrites []streakWrite

	leaderboardCalls int
}

func (m *mockPointsRepo) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (m *mockPointsRepo) GetUserPoints(ctx context.Context, userID uuid.UUID) (*models.UserPoints, error) {
	if m.points == nil {
		return &models.UserPoints{UserID: userID}, nil
	}
	return m.points, nil
}

func (m *mockPointsRepo) Leaderboard(ctx context.Context, timeframe models.Timeframe, limit int) ([]*models.LeaderboardEntry, error) {
	m.leaderboardCalls++
	return m.entries, nil
}

func (m *mockPointsRepo) RecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.PointTransaction, error) {
	return m.recent, nil
}

func (m *mockPointsRepo) CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*models.CategoryPointsBreakdown, error) {
	return nil, nil
}

func (m *mockPointsRepo) SumPointsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	return m.sum, nil
}

func (m *mockPointsRepo) AddPointsTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, points int) error {
	m.addedPoints = append(m.addedPoints, points)
	return nil
}

func (m *mockPointsRepo) InsertTransactionTx(ctx context.Context, tx *sql.Tx, pt *models.PointTransaction) error {
	m.transactions = append(m.transactions, pt)
	return nil
}

func (m *mockPointsRepo) GetStreakTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*models.UserPoints, error) {
	if m.points == nil {
		return &models.UserPoints{UserID: userID}, nil
	}
	return m.points, nil
}

func (m *mockPointsRepo) UpdateStreakTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, current, longest int, lastActionDate time.Time) error {
	m.streakWrites = append(m.streakWrites, streakWrite{current, longest, lastActionDate})
	return nil
}

// ===============================
// CHALLENGE REPOSITORY
// ===============================

type progressWrite struct {
	challengeID uuid.UUID
	userID      uuid.UUID
	progress    float64
	completed   bool
}

type mockChallengeRepo struct {
	challenge      *models.Challenge // returned by GetByID when IDs match
	challenges     []*models.Challenge
	activeJoined   int
	joinedList     []*models.Challenge
	participant    *models.ChallengeParticipant
	newlyCompleted []*models.ChallengeParticipant
	standings      []*models.ChallengeParticipant

	insertErr error
	deleteErr error

	inserted        []uuid.UUID // user IDs joined
	deleted         []uuid.UUID
	progressWrites  []progressWrite
	stamped         []uuid.UUID // user IDs stamped complete
	createdChallege *models.Challenge
}

func (m *mockChallengeRepo) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (m *mockChallengeRepo) Create(ctx context.Context, challenge *models.Challenge) error {
	challenge.ID = newUUID()
	challenge.IsActive = true
	challenge.CreatedAt = time.Now()
	m.createdChallege = challenge
	return nil
}

func (m *mockChallengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	if m.challenge != nil && m.challenge.ID == id {
		return m.challenge, nil
	}
	return nil, nil
}

func (m *mockChallengeRepo) List(ctx context.Context, activeOnly bool, p models.PaginationParams) ([]*models.Challenge, error) {
	return m.challenges, nil
}

func (m *mockChallengeRepo) CountActiveJoined(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.activeJoined, nil
}

func (m *mockChallengeRepo) ListActiveJoined(ctx context.Context, userID uuid.UUID) ([]*models.Challenge, error) {
	return m.joinedList, nil
}

func (m *mockChallengeRepo) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error) {
	return m.participant, nil
}

func (m *mockChallengeRepo) InsertParticipant(ctx context.Context, challengeID, userID uuid.UUID) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, userID)
	return nil
}

func (m *mockChallengeRepo) DeleteParticipant(ctx context.Context, challengeID, userID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, userID)
	return nil
}

func (m *mockChallengeRepo) UpdateParticipantProgress(ctx context.Context, challengeID, userID uuid.UUID, progress float64, completed bool) error {
	m.progressWrites = append(m.progressWrites, progressWrite{challengeID, userID, progress, completed})
	return nil
}

func (m *mockChallengeRepo) ListNewlyCompleted(ctx context.Context, challengeID uuid.UUID) ([]*models.ChallengeParticipant, error) {
	out := m.newlyCompleted
	m.newlyCompleted = nil // stamped participants are not returned again
	return out, nil
}

func (m *mockChallengeRepo) ListParticipantsByProgress(ctx context.Context, challengeID uuid.UUID, limit int) ([]*models.ChallengeParticipant, error) {
	if limit < len(m.standings) {
		return m.standings[:limit], nil
	}
	return m.standings, nil
}

func (m *mockChallengeRepo) StampCompletedTx(ctx context.Context, tx *sql.Tx, challengeID, userID uuid.UUID, at time.Time) error {
	m.stamped = append(m.stamped, userID)
	return nil
}

// ===============================
// ACTION REPOSITORY
// ===============================

type mockActionRepo struct {
	action          *models.Action // returned by GetByID when IDs match
	verifiedActions []*models.Action
	pending         []*models.Action

	countByUser     int
	countInCategory int
	countSince      int
	impactSum       float64
	latestDate      *time.Time

	created    []*models.Action
	updated    []*models.Action
	deleted    []uuid.UUID
	verifyArgs []models.VerificationStatus
	bulkCount  int64
	pointsSet  map[uuid.UUID]int
}

func (m *mockActionRepo) Create(ctx context.Context, action *models.Action) error {
	action.ID = newUUID()
	action.VerificationStatus = models.VerificationPending
	action.CreatedAt = time.Now()
	action.UpdatedAt = action.CreatedAt
	m.created = append(m.created, action)
	return nil
}

func (m *mockActionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Action, error) {
	if m.action != nil && m.action.ID == id {
		return m.action, nil
	}
	return nil, nil
}

func (m *mockActionRepo) Update(ctx context.Context, action *models.Action) error {
	m.updated = append(m.updated, action)
	return nil
}

func (m *mockActionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockActionRepo) SetPointsEarned(ctx context.Context, actionID uuid.UUID, points int) error {
	if m.pointsSet == nil {
		m.pointsSet = make(map[uuid.UUID]int)
	}
	m.pointsSet[actionID] = points
	return nil
}

func (m *mockActionRepo) Verify(ctx context.Context, actionID uuid.UUID, status models.VerificationStatus, notes *string, verifiedBy uuid.UUID) error {
	m.verifyArgs = append(m.verifyArgs, status)
	return nil
}

func (m *mockActionRepo) BulkVerify(ctx context.Context, actionIDs []uuid.UUID, status models.VerificationStatus, notes *string, verifiedBy uuid.UUID) (int64, error) {
	m.bulkCount = int64(len(actionIDs))
	return m.bulkCount, nil
}

func (m *mockActionRepo) ListByUser(ctx context.Context, userID uuid.UUID, p models.PaginationParams) ([]*models.Action, error) {
	return nil, nil
}

func (m *mockActionRepo) ListPendingVerification(ctx context.Context, p models.PaginationParams) ([]*models.Action, error) {
	return m.pending, nil
}

func (m *mockActionRepo) ListVerifiedInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Action, error) {
	return m.verifiedActions, nil
}

func (m *mockActionRepo) ListVerifiedAll(ctx context.Context) ([]*models.Action, error) {
	return m.verifiedActions, nil
}

func (m *mockActionRepo) ListVerifiedByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Action, error) {
	return m.verifiedActions, nil
}

func (m *mockActionRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.countByUser, nil
}

func (m *mockActionRepo) CountByUserInCategory(ctx context.Context, userID, categoryID uuid.UUID) (int, error) {
	return m.countInCategory, nil
}

func (m *mockActionRepo) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	return m.countSince, nil
}

func (m *mockActionRepo) SumImpactSince(ctx context.Context, userID uuid.UUID, unit models.ImpactUnit, since time.Time) (float64, error) {
	return m.impactSum, nil
}

func (m *mockActionRepo) LatestActionDate(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	return m.latestDate, nil
}

// ===============================
// BADGE REPOSITORY
// ===============================

type mockBadgeRepo struct {
	unearned []*models.Badge
	earned   []*models.Badge
	hasBadge bool

	insertTxErr error
	createdIDs  []uuid.UUID
	awardedIDs  []uuid.UUID
}

func (m *mockBadgeRepo) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (m *mockBadgeRepo) Create(ctx context.Context, badge *models.Badge) error {
	badge.ID = newUUID()
	badge.IsActive = true
	badge.CreatedAt = time.Now()
	m.createdIDs = append(m.createdIDs, badge.ID)
	return nil
}

func (m *mockBadgeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Badge, error) {
	return nil, nil
}

func (m *mockBadgeRepo) ListActiveUnearned(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error) {
	return m.unearned, nil
}

func (m *mockBadgeRepo) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*models.Badge, error) {
	return m.earned, nil
}

func (m *mockBadgeRepo) HasBadgeTx(ctx context.Context, tx *sql.Tx, userID, badgeID uuid.UUID) (bool, error) {
	return m.hasBadge, nil
}

func (m *mockBadgeRepo) InsertUserBadgeTx(ctx context.Context, tx *sql.Tx, userID, badgeID uuid.UUID) error {
	if m.insertTxErr != nil {
		return m.insertTxErr
	}
	m.awardedIDs = append(m.awardedIDs, badgeID)
	return nil
}

// ===============================
// CATEGORY REPOSITORY
// ===============================

type mockCategoryRepo struct {
	category *models.ActionCategory
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*models.ActionCategory, error) {
	if m.category == nil {
		return nil, nil
	}
	return []*models.ActionCategory{m.category}, nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ActionCategory, error) {
	if m.category != nil && m.category.ID == id {
		return m.category, nil
	}
	return nil, nil
}

// ===============================
// USER REPOSITORY
// ===============================

type mockUserRepo struct {
	user   *models.User // returned by GetByID when IDs match
	active []*models.User
	stats  *models.UserStats

	created []*models.User
	updated []*models.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = newUUID()
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = append(m.updated, user)
	return nil
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, opts repositories.ListUsersOptions) ([]*models.User, error) {
	return m.active, nil
}

func (m *mockUserRepo) ListActive(ctx context.Context) ([]*models.User, error) {
	return m.active, nil
}

func (m *mockUserRepo) GetUserStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	return m.stats, nil
}

// compile-time interface checks
var (
	_ repositories.UserRepository      = (*mockUserRepo)(nil)
	_ repositories.PointsRepository    = (*mockPointsRepo)(nil)
	_ repositories.ChallengeRepository = (*mockChallengeRepo)(nil)
	_ repositories.ActionRepository    = (*mockActionRepo)(nil)
	_ repositories.BadgeRepository     = (*mockBadgeRepo)(nil)
	_ repositories.CategoryRepository  = (*mockCategoryRepo)(nil)
	_ events.EventBus                  = (*recordingBus)(nil)
)
