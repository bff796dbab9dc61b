package repository

// Set собирает все репозитории одного хранилища
type Set struct {
	Users        UserRepository
	HighScores   HighScoreRepository
	Achievements AchievementRepository
	Leaderboard  LeaderboardRepository
	Transactor   Transactor
	Pinger       Pinger
}
