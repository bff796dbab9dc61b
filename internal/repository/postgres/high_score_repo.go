package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/progress-api/internal/domain/entity"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// HighScoreRepo реализует repository.HighScoreRepository
type HighScoreRepo struct {
	db *gorm.DB
}

// NewHighScoreRepo создает новый репозиторий рекордов
func NewHighScoreRepo(db *gorm.DB) *HighScoreRepo {
	return &HighScoreRepo{db: db}
}

// SeedDefaults вставляет нулевые рекорды одним INSERT ... ON CONFLICT DO NOTHING
func (r *HighScoreRepo) SeedDefaults(ctx context.Context, userID uint, categories []entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	rows := entity.DefaultHighScores(userID, categories)
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user #%d", apperrors.ErrNotFound, userID)
		}
		return fmt.Errorf("seed highscores for user #%d failed: %w", userID, err)
	}
	return nil
}

// Get возвращает рекорд пользователя в категории
func (r *HighScoreRepo) Get(ctx context.Context, userID uint, category entity.Category) (*entity.HighScore, error) {
	var hs entity.HighScore
	err := conn(ctx, r.db).
		Where("user_id = ? AND category = ?", userID, category).
		First(&hs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: highscore %s for user #%d", apperrors.ErrNotFound, category, userID)
		}
		return nil, err
	}
	return &hs, nil
}

// ListByUser возвращает все рекорды пользователя
func (r *HighScoreRepo) ListByUser(ctx context.Context, userID uint) ([]entity.HighScore, error) {
	var rows []entity.HighScore
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	return rows, err
}

// SetValue перезаписывает значение рекорда без проверки "только больше".
// PostgreSQL считает в RowsAffected все совпавшие строки, поэтому запись того же значения
// тоже считается успешной.
func (r *HighScoreRepo) SetValue(ctx context.Context, userID uint, category entity.Category, value int64) error {
	result := conn(ctx, r.db).Model(&entity.HighScore{}).
		Where("user_id = ? AND category = ?", userID, category).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update highscore %s for user #%d failed: %w", category, userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: highscore %s for user #%d", apperrors.ErrNotFound, category, userID)
	}
	return nil
}
