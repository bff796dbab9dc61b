package entity

import "sort"

// LeaderboardEntry - строка лидерборда, вычисляется на каждый запрос и нигде не хранится
type LeaderboardEntry struct {
	UserID uint   `json:"-"`
	Name   string `json:"name"`
	Score  int64  `json:"score"`
}

// SortLeaderboard упорядочивает записи: очки по убыванию, затем имя по возрастанию, затем ID.
// Тот же порядок задаёт ORDER BY в PostgreSQL-репозитории.
func SortLeaderboard(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].UserID < entries[j].UserID
	})
}

// ScoreAchievements считает очки игрока по его записям журнала
func ScoreAchievements(achievements []Achievement) int64 {
	var score int64
	for i := range achievements {
		if achievements[i].IsScored() {
			score++
		}
	}
	return score
}
