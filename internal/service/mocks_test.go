package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockHighScoreRepo struct {
	mock.Mock
}

func (m *MockHighScoreRepo) SeedDefaults(ctx context.Context, userID uint, categories []entity.Category) error {
	args := m.Called(ctx, userID, categories)
	return args.Error(0)
}

func (m *MockHighScoreRepo) Get(ctx context.Context, userID uint, category entity.Category) (*entity.HighScore, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.HighScore), args.Error(1)
}

func (m *MockHighScoreRepo) ListByUser(ctx context.Context, userID uint) ([]entity.HighScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.HighScore), args.Error(1)
}

func (m *MockHighScoreRepo) SetValue(ctx context.Context, userID uint, category entity.Category, value int64) error {
	args := m.Called(ctx, userID, category, value)
	return args.Error(0)
}

type MockAchievementRepo struct {
	mock.Mock
}

func (m *MockAchievementRepo) Create(ctx context.Context, achievement *entity.Achievement) error {
	args := m.Called(ctx, achievement)
	return args.Error(0)
}

func (m *MockAchievementRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Achievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Achievement), args.Error(1)
}

type MockLeaderboardRepo struct {
	mock.Mock
}

func (m *MockLeaderboardRepo) SessionScores(ctx context.Context, gameCode string) ([]entity.LeaderboardEntry, error) {
	args := m.Called(ctx, gameCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeaderboardEntry), args.Error(1)
}

// passthroughTx выполняет функцию без транзакции
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockGrader struct {
	mock.Mock
}

func (m *MockGrader) Grade(ctx context.Context, submission entity.AnswerSubmission) (string, error) {
	args := m.Called(ctx, submission)
	return args.String(0), args.Error(1)
}

// recordingMetrics запоминает вызовы счётчиков
type recordingMetrics struct {
	mu           sync.Mutex
	players      int
	achievements map[bool]int
	highScores   map[string]int
	conflicts    map[string]int
	leaderboards []int
	grading      map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		achievements: map[bool]int{},
		highScores:   map[string]int{},
		conflicts:    map[string]int{},
		grading:      map[string]int{},
	}
}

func (r *recordingMetrics) PlayerCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players++
}

func (r *recordingMetrics) AchievementRecorded(achieved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.achievements[achieved]++
}

func (r *recordingMetrics) HighScoreUpdated(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highScores[category]++
}

func (r *recordingMetrics) ConflictDetected(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts[operation]++
}

func (r *recordingMetrics) LeaderboardComputed(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaderboards = append(r.leaderboards, size)
}

func (r *recordingMetrics) GradingRequested(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grading[outcome]++
}
