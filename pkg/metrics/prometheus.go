// Package metrics содержит Prometheus-метрики сервиса прогресса игроков.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager владеет реестром и всеми метриками сервиса
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry
	withRuntime      bool

	// Бизнес-метрики
	playersCreated       prometheus.Counter
	achievementsUnlocked *prometheus.CounterVec
	highScoreUpdates     *prometheus.CounterVec
	conflicts            *prometheus.CounterVec
	leaderboardQueries   prometheus.Counter
	leaderboardSize      prometheus.Histogram
	gradingRequests      *prometheus.CounterVec

	// HTTP-метрики
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager создает менеджер метрик. По умолчанию используется собственный реестр,
// чтобы несколько экземпляров (например, в тестах) не конфликтовали при регистрации.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "progress",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if m.withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.playersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_created_total",
		Help:      "Total number of provisioned players",
	})

	m.achievementsUnlocked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "achievements_recorded_total",
		Help:      "Total number of achievement ledger rows written, by achieved flag",
	}, []string{"achieved"})

	m.highScoreUpdates = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "highscore_updates_total",
		Help:      "Total number of highscore overwrites, by category",
	}, []string{"category"})

	m.conflicts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conflicts_total",
		Help:      "Total number of uniqueness conflicts, by operation",
	}, []string{"operation"})

	m.leaderboardQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_queries_total",
		Help:      "Total number of computed leaderboards",
	})

	m.leaderboardSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_size",
		Help:      "Number of players per computed leaderboard",
		Buckets:   []float64{1, 5, 10, 25, 50, 100},
	})

	m.gradingRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "grading_requests_total",
		Help:      "Total number of answer grading requests, by outcome",
	}, []string{"outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})
}

// Registry возвращает реестр метрик
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдаёт метрики в формате Prometheus
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PlayerCreated учитывает созданного игрока
func (m *Manager) PlayerCreated() {
	m.playersCreated.Inc()
}

// AchievementRecorded учитывает запись в журнале достижений
func (m *Manager) AchievementRecorded(achieved bool) {
	m.achievementsUnlocked.WithLabelValues(strconv.FormatBool(achieved)).Inc()
}

// HighScoreUpdated учитывает перезапись рекорда
func (m *Manager) HighScoreUpdated(category string) {
	m.highScoreUpdates.WithLabelValues(category).Inc()
}

// ConflictDetected учитывает нарушение уникальности
func (m *Manager) ConflictDetected(operation string) {
	m.conflicts.WithLabelValues(operation).Inc()
}

// LeaderboardComputed учитывает вычисленный лидерборд
func (m *Manager) LeaderboardComputed(size int) {
	m.leaderboardQueries.Inc()
	m.leaderboardSize.Observe(float64(size))
}

// GradingRequested учитывает запрос к сервису оценки ответов
func (m *Manager) GradingRequested(outcome string) {
	m.gradingRequests.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest учитывает обработанный HTTP-запрос
func (m *Manager) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
