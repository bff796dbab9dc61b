package repository

import (
	"context"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// AchievementRepository определяет методы журнала достижений
type AchievementRepository interface {
	// Create атомарно вставляет запись. Повтор пары (user_id, key) возвращает apperrors.ErrConflict,
	// отсутствующий игрок - apperrors.ErrNotFound.
	Create(ctx context.Context, achievement *entity.Achievement) error
	ListByUser(ctx context.Context, userID uint) ([]entity.Achievement, error)
}
