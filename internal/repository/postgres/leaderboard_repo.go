package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/progress-api/internal/domain/entity"
)

// LeaderboardRepo реализует repository.LeaderboardRepository одним агрегирующим запросом
type LeaderboardRepo struct {
	db *gorm.DB
}

// NewLeaderboardRepo создает новый репозиторий лидерборда
func NewLeaderboardRepo(db *gorm.DB) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

type leaderboardRow struct {
	UserID uint
	Name   string
	Score  int64
}

// SessionScores считает для каждого игрока сессии достигнутые несекретные достижения.
// LEFT JOIN оставляет в выборке игроков без единого достижения с нулевым счётом.
func (r *LeaderboardRepo) SessionScores(ctx context.Context, gameCode string) ([]entity.LeaderboardEntry, error) {
	var rows []leaderboardRow
	err := conn(ctx, r.db).
		Table("users AS u").
		Select("u.id AS user_id, u.name AS name, COUNT(a.id) AS score").
		Joins("LEFT JOIN achievements AS a ON a.user_id = u.id AND a.is_achieved = ? AND a.achievement_key NOT LIKE ?",
			true, likePrefix(entity.HiddenAchievementPrefix)).
		Where("u.game_code = ?", gameCode).
		Group("u.id, u.name").
		Order("score DESC, u.name ASC, u.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard query for session %q failed: %w", gameCode, err)
	}

	entries := make([]entity.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = entity.LeaderboardEntry{UserID: row.UserID, Name: row.Name, Score: row.Score}
	}
	return entries, nil
}

// likePrefix строит шаблон LIKE "начинается с", экранируя спецсимволы шаблона
func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}
