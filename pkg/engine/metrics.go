package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "incr").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures engine metrics.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
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
		Namespace: "incr",
		Subsystem: "engine",
		// Passes are in-memory tree walks; 10µs to ~80ms.
		Buckets:  prometheus.ExponentialBuckets(0.00001, 4, 8),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors a Renderer records into. A nil
// *Metrics records nothing.
type Metrics struct {
	passesTotal     *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
	viewsCreated    prometheus.Counter
	viewsDestroyed  prometheus.Counter
	bindingsChanged prometheus.Counter
	slotablesMoved  prometheus.Counter
}

// NewMetrics registers the engine collectors. Register once per registry
// and share the result between renderers.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render, refresh and destroy passes",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		viewsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_created_total",
			Help:        "Total number of container and component views created",
			ConstLabels: config.ConstLabels,
		}),

		viewsDestroyed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_destroyed_total",
			Help:        "Total number of views destroyed",
			ConstLabels: config.ConstLabels,
		}),

		bindingsChanged: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bindings_changed_total",
			Help:        "Total number of binding checks that reported a change",
			ConstLabels: config.ConstLabels,
		}),

		slotablesMoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "slotables_moved_total",
			Help:        "Total number of slotables attached to a new slot",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) passObserved(kind, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.passesTotal.WithLabelValues(kind, status).Inc()
	m.passDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) viewCreated() {
	if m != nil {
		m.viewsCreated.Inc()
	}
}

func (m *Metrics) viewDestroyed() {
	if m != nil {
		m.viewsDestroyed.Inc()
	}
}

func (m *Metrics) bindingChanged() {
	if m != nil {
		m.bindingsChanged.Inc()
	}
}

func (m *Metrics) slotableMoved() {
	if m != nil {
		m.slotablesMoved.Inc()
	}
}
