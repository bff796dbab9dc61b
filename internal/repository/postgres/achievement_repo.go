package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// AchievementRepo реализует repository.AchievementRepository
type AchievementRepo struct {
	db *gorm.DB
}

// NewAchievementRepo создает новый репозиторий достижений
func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Create вставляет запись журнала.
// Повторная вставка ключа ловится индексом idx_achievements_user_key (23505),
// удалённый игрок - внешним ключом (23503).
func (r *AchievementRepo) Create(ctx context.Context, achievement *entity.Achievement) error {
	err := conn(ctx, r.db).Create(achievement).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%w: achievement %q already set for user #%d", apperrors.ErrConflict, achievement.Key, achievement.UserID)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, achievement.UserID)
	default:
		return fmt.Errorf("create achievement %q for user #%d failed: %w", achievement.Key, achievement.UserID, err)
	}
}

// ListByUser возвращает все записи пользователя в порядке вставки
func (r *AchievementRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Achievement, error) {
	var rows []entity.Achievement
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	return rows, err
}
