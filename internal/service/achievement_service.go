package service

import (
	"context"
	"errors"
	"log"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/domain/repository"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// AchievementService ведёт журнал достижений
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	userRepo        repository.UserRepository
	metrics         ProgressMetrics
}

// NewAchievementService создает новый сервис достижений
func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	userRepo repository.UserRepository,
	metrics ProgressMetrics,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		userRepo:        userRepo,
		metrics:         metricsOrNoop(metrics),
	}
}

// GetAchievements возвращает все записи игрока. Неизвестный игрок даёт пустой список, а не ошибку.
func (s *AchievementService) GetAchievements(ctx context.Context, userID uint) ([]entity.Achievement, error) {
	return s.achievementRepo.ListByUser(ctx, userID)
}

// UnlockAchievement записывает достижение. Журнал работает по принципу "первая запись побеждает":
// повторная запись ключа возвращает ErrConflict независимо от сохранённого значения achieved.
func (s *AchievementService) UnlockAchievement(ctx context.Context, userID uint, key string, achieved bool) (*entity.Achievement, error) {
	if err := entity.ValidateAchievementKey(key); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	achievement := &entity.Achievement{UserID: userID, Key: key, Achieved: achieved}
	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.ConflictDetected("unlock_achievement")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[AchievementService] Ошибка записи достижения %q игрока #%d: %v", key, userID, err)
		}
		return nil, err
	}

	s.metrics.AchievementRecorded(achieved)
	return achievement, nil
}
