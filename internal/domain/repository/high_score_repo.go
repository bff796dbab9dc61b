package repository

import (
	"context"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// HighScoreRepository определяет методы для работы с таблицей рекордов
type HighScoreRepository interface {
	// SeedDefaults создаёт нулевые записи для категорий одним запросом.
	// Уже существующие пары (user_id, category) пропускаются, повторный вызов безопасен.
	SeedDefaults(ctx context.Context, userID uint, categories []entity.Category) error
	Get(ctx context.Context, userID uint, category entity.Category) (*entity.HighScore, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.HighScore, error)
	// SetValue перезаписывает значение существующей пары. Новые строки не создаются,
	// если пара не найдена, возвращается apperrors.ErrNotFound.
	SetValue(ctx context.Context, userID uint, category entity.Category, value int64) error
}
