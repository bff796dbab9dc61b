package service

import (
	"github.com/yourusername/progress-api/internal/domain/repository"
)

// ProgressService - фасад над сервисами прогресса, которым пользуется HTTP-слой
type ProgressService struct {
	Users        *UserService
	HighScores   *HighScoreService
	Achievements *AchievementService
	Leaderboard  *LeaderboardService
}

// NewProgressService собирает все сервисы прогресса над одним набором репозиториев
func NewProgressService(repos repository.Set, metrics ProgressMetrics) *ProgressService {
	provisioner := NewProvisioner(repos.HighScores)
	return &ProgressService{
		Users:        NewUserService(repos.Users, provisioner, repos.Transactor, metrics),
		HighScores:   NewHighScoreService(repos.HighScores, metrics),
		Achievements: NewAchievementService(repos.Achievements, repos.Users, metrics),
		Leaderboard:  NewLeaderboardService(repos.Leaderboard, metrics),
	}
}
