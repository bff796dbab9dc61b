package service

// ProgressMetrics - счётчики, которые сервисы обновляют после успешных и конфликтных операций.
// Реализуется pkg/metrics.Manager.
type ProgressMetrics interface {
	PlayerCreated()
	AchievementRecorded(achieved bool)
	HighScoreUpdated(category string)
	ConflictDetected(operation string)
	LeaderboardComputed(size int)
	GradingRequested(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) PlayerCreated()           {}
func (noopMetrics) AchievementRecorded(bool) {}
func (noopMetrics) HighScoreUpdated(string)  {}
func (noopMetrics) ConflictDetected(string)  {}
func (noopMetrics) LeaderboardComputed(int)  {}
func (noopMetrics) GradingRequested(string)  {}

func metricsOrNoop(m ProgressMetrics) ProgressMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
