package repository

import (
	"context"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// LeaderboardRepository вычисляет лидерборд по текущему состоянию журнала
type LeaderboardRepository interface {
	// SessionScores возвращает всех игроков сессии с их очками,
	// отсортированных по очкам (убыв.), имени и ID. Пустой срез, если в сессии никого нет.
	SessionScores(ctx context.Context, gameCode string) ([]entity.LeaderboardEntry, error)
}
