// Package memory хранит прогресс игроков в памяти процесса.
// Используется для локального запуска без PostgreSQL (storage.driver: memory) и в тестах.
// Гарантии уникальности те же, что дают индексы PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/domain/repository"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

type highScoreKey struct {
	userID   uint
	category entity.Category
}

type achievementKey struct {
	userID uint
	key    string
}

// Store - общее состояние всех репозиториев
type Store struct {
	mu sync.RWMutex

	users        map[uint]*entity.User
	nameIndex    map[string]uint
	highScores   map[highScoreKey]*entity.HighScore
	achievements map[achievementKey]*entity.Achievement

	nextUserID        uint
	nextHighScoreID   uint
	nextAchievementID uint

	now func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		users:        make(map[uint]*entity.User),
		nameIndex:    make(map[string]uint),
		highScores:   make(map[highScoreKey]*entity.HighScore),
		achievements: make(map[achievementKey]*entity.Achievement),
		now:          time.Now,
	}
}

// Users возвращает репозиторий игроков
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// HighScores возвращает репозиторий рекордов
func (s *Store) HighScores() *HighScoreRepo { return &HighScoreRepo{s: s} }

// Achievements возвращает журнал достижений
func (s *Store) Achievements() *AchievementRepo { return &AchievementRepo{s: s} }

// Leaderboard возвращает агрегатор лидерборда
func (s *Store) Leaderboard() *LeaderboardRepo { return &LeaderboardRepo{s: s} }

// RepositorySet возвращает все репозитории хранилища
func (s *Store) RepositorySet() repository.Set {
	return repository.Set{
		Users:        s.Users(),
		HighScores:   s.HighScores(),
		Achievements: s.Achievements(),
		Leaderboard:  s.Leaderboard(),
		Transactor:   s,
		Pinger:       s,
	}
}

// WithinTransaction выполняет fn без отката: каждая операция атомарна сама по себе,
// а частично выполненная подготовка игрока видна как отсутствующие категории.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Ping всегда успешен
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

var (
	_ repository.Transactor = (*Store)(nil)
	_ repository.Pinger     = (*Store)(nil)
)

// UserRepo реализует repository.UserRepository
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.nameIndex[user.Name]; exists {
		return fmt.Errorf("%w: username %q already exists", apperrors.ErrConflict, user.Name)
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = r.s.now()

	stored := *user
	if user.GameCode != nil {
		code := *user.GameCode
		stored.GameCode = &code
	}
	r.s.users[stored.ID] = &stored
	r.s.nameIndex[stored.Name] = stored.ID
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, id)
	}
	out := *user
	return &out, nil
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.nameIndex[name]
	r.s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, name)
	}
	return r.GetByID(ctx, id)
}

// HighScoreRepo реализует repository.HighScoreRepository
type HighScoreRepo struct{ s *Store }

var _ repository.HighScoreRepository = (*HighScoreRepo)(nil)

func (r *HighScoreRepo) SeedDefaults(ctx context.Context, userID uint, categories []entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, userID)
	}

	now := r.s.now()
	for _, row := range entity.DefaultHighScores(userID, categories) {
		key := highScoreKey{userID: userID, category: row.Category}
		if _, exists := r.s.highScores[key]; exists {
			continue
		}
		r.s.nextHighScoreID++
		row.ID = r.s.nextHighScoreID
		row.CreatedAt = now
		row.UpdatedAt = now
		stored := row
		r.s.highScores[key] = &stored
	}
	return nil
}

func (r *HighScoreRepo) Get(ctx context.Context, userID uint, category entity.Category) (*entity.HighScore, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	hs, ok := r.s.highScores[highScoreKey{userID: userID, category: category}]
	if !ok {
		return nil, fmt.Errorf("%w: highscore %s for user #%d", apperrors.ErrNotFound, category, userID)
	}
	out := *hs
	return &out, nil
}

func (r *HighScoreRepo) ListByUser(ctx context.Context, userID uint) ([]entity.HighScore, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []entity.HighScore
	for _, c := range entity.AllCategories() {
		if hs, ok := r.s.highScores[highScoreKey{userID: userID, category: c}]; ok {
			rows = append(rows, *hs)
		}
	}
	return rows, nil
}

func (r *HighScoreRepo) SetValue(ctx context.Context, userID uint, category entity.Category, value int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	hs, ok := r.s.highScores[highScoreKey{userID: userID, category: category}]
	if !ok {
		return fmt.Errorf("%w: highscore %s for user #%d", apperrors.ErrNotFound, category, userID)
	}
	hs.Value = value
	hs.UpdatedAt = r.s.now()
	return nil
}

// AchievementRepo реализует repository.AchievementRepository
type AchievementRepo struct{ s *Store }

var _ repository.AchievementRepository = (*AchievementRepo)(nil)

func (r *AchievementRepo) Create(ctx context.Context, achievement *entity.Achievement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[achievement.UserID]; !ok {
		return fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, achievement.UserID)
	}
	key := achievementKey{userID: achievement.UserID, key: achievement.Key}
	if _, exists := r.s.achievements[key]; exists {
		return fmt.Errorf("%w: achievement %q already set for user #%d", apperrors.ErrConflict, achievement.Key, achievement.UserID)
	}

	r.s.nextAchievementID++
	achievement.ID = r.s.nextAchievementID
	achievement.CreatedAt = r.s.now()
	stored := *achievement
	r.s.achievements[key] = &stored
	return nil
}

func (r *AchievementRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Achievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.achievementsOf(userID), nil
}

// achievementsOf возвращает записи игрока в порядке вставки. Вызывается под блокировкой.
func (s *Store) achievementsOf(userID uint) []entity.Achievement {
	rows := make([]entity.Achievement, 0)
	for key, a := range s.achievements {
		if key.userID == userID {
			rows = append(rows, *a)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// LeaderboardRepo реализует repository.LeaderboardRepository
type LeaderboardRepo struct{ s *Store }

var _ repository.LeaderboardRepository = (*LeaderboardRepo)(nil)

func (r *LeaderboardRepo) SessionScores(ctx context.Context, gameCode string) ([]entity.LeaderboardEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]entity.LeaderboardEntry, 0)
	for _, u := range r.s.users {
		if u.GameCode == nil || *u.GameCode != gameCode {
			continue
		}
		entries = append(entries, entity.LeaderboardEntry{
			UserID: u.ID,
			Name:   u.Name,
			Score:  entity.ScoreAchievements(r.s.achievementsOf(u.ID)),
		})
	}
	entity.SortLeaderboard(entries)
	return entries, nil
}
