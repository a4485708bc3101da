// Package telemetry provides a Prometheus-backed implementation of the
// group.Recorder instrumentation interface.
//
//	metrics := telemetry.NewMetrics(telemetry.WithNamespace("myapp"))
//	tree := nested.New[Item](nested.WithRecorder(metrics))
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/loom-ui/loom/pkg/group"
)

// MetricsConfig configures the Prometheus recorder.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "registry").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus recorder.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "loom",
		Subsystem: "registry",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics implements group.Recorder on Prometheus collectors.
type Metrics struct {
	registrations   prometheus.Counter
	unregistrations prometheus.Counter
	selections      *prometheus.CounterVec
	size            prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		registrations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registrations_total",
			Help:        "Total number of items registered",
			ConstLabels: config.ConstLabels,
		}),
		unregistrations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unregistrations_total",
			Help:        "Total number of items unregistered",
			ConstLabels: config.ConstLabels,
		}),
		selections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "selection_ops_total",
			Help:        "Total number of selection operations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
		size: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "items",
			Help:        "Current number of registered items",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordRegister implements group.Recorder.
func (m *Metrics) RecordRegister(n int) {
	m.registrations.Add(float64(n))
}

// RecordUnregister implements group.Recorder.
func (m *Metrics) RecordUnregister(n int) {
	m.unregistrations.Add(float64(n))
}

// RecordSelection implements group.Recorder.
func (m *Metrics) RecordSelection(op string) {
	m.selections.WithLabelValues(op).Inc()
}

// RecordSize implements group.Recorder.
func (m *Metrics) RecordSize(n int) {
	m.size.Set(float64(n))
}

var _ group.Recorder = (*Metrics)(nil)
