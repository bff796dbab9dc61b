package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option настраивает Manager
type Option func(*Manager)

// WithNamespace задаёт namespace для всех метрик
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem задаёт subsystem для всех метрик
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets задаёт границы гистограммы задержек
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry задаёт реестр, в котором регистрируются метрики
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithRuntimeCollectors добавляет метрики Go runtime и процесса
func WithRuntimeCollectors(enabled bool) Option {
	return func(m *Manager) {
		m.withRuntime = enabled
	}
}
