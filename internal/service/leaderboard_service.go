package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/domain/repository"
	apperrors "github.com/yourusername/progress-api/internal/pkg/errors"
)

// LeaderboardService вычисляет лидерборд игровой сессии.
// Результат не кешируется: каждый вызов читает текущее состояние журнала.
type LeaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	metrics         ProgressMetrics
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository, metrics ProgressMetrics) *LeaderboardService {
	return &LeaderboardService{
		leaderboardRepo: leaderboardRepo,
		metrics:         metricsOrNoop(metrics),
	}
}

// GetLeaderboard возвращает игроков сессии по убыванию очков; при равенстве - по имени, затем по ID.
// Если в сессии нет ни одного игрока, возвращается ErrNotFound.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, gameCode string) ([]entity.LeaderboardEntry, error) {
	code := strings.TrimSpace(gameCode)
	if code == "" {
		return nil, fmt.Errorf("%w: gameCode is required", apperrors.ErrValidation)
	}

	entries, err := s.leaderboardRepo.SessionScores(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no players in session %q", apperrors.ErrNotFound, code)
	}

	s.metrics.LeaderboardComputed(len(entries))
	return entries, nil
}
