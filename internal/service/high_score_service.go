package service

import (
	"context"
	"fmt"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/domain/repository"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// HighScoreService предоставляет методы для работы с рекордами
type HighScoreService struct {
	highScoreRepo repository.HighScoreRepository
	metrics       ProgressMetrics
}

// NewHighScoreService создает новый сервис рекордов
func NewHighScoreService(highScoreRepo repository.HighScoreRepository, metrics ProgressMetrics) *HighScoreService {
	return &HighScoreService{
		highScoreRepo: highScoreRepo,
		metrics:       metricsOrNoop(metrics),
	}
}

// GetHighScore возвращает рекорд игрока в категории.
// Для неизвестной категории записи существовать не может, поэтому возвращается ErrNotFound.
func (s *HighScoreService) GetHighScore(ctx context.Context, userID uint, category string) (int64, error) {
	c, err := entity.ParseCategory(category)
	if err != nil {
		return 0, fmt.Errorf("%w: highscore %q for user #%d", apperrors.ErrNotFound, category, userID)
	}
	hs, err := s.highScoreRepo.Get(ctx, userID, c)
	if err != nil {
		return 0, err
	}
	return hs.Value, nil
}

// ListHighScores возвращает все рекорды игрока (пустой срез для неизвестного игрока)
func (s *HighScoreService) ListHighScores(ctx context.Context, userID uint) ([]entity.HighScore, error) {
	return s.highScoreRepo.ListByUser(ctx, userID)
}

// SetHighScore безусловно перезаписывает рекорд: значение может как расти, так и уменьшаться.
// Если записи (userID, category) нет, возвращается ErrNotFound, новые строки не создаются.
func (s *HighScoreService) SetHighScore(ctx context.Context, userID uint, category string, value int64) error {
	c, err := entity.ParseCategory(category)
	if err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%w: highScore must be non-negative, got %d", apperrors.ErrValidation, value)
	}

	if err := s.highScoreRepo.SetValue(ctx, userID, c, value); err != nil {
		return err
	}
	s.metrics.HighScoreUpdated(string(c))
	return nil
}
