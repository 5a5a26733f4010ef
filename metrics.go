package staterouter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics of a Router.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "staterouter").
	Namespace string

	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics of a Router.
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

// Metrics holds the Prometheus collectors of a Router. A nil *Metrics
// records nothing.
type Metrics struct {
	matches          *prometheus.CounterVec
	notFound         prometheus.Counter
	redirects        prometheus.Counter
	dispatchDuration *prometheus.HistogramVec
}

// NewMetrics registers the router collectors:
//   - staterouter_matches_total: matched locations by route name
//   - staterouter_not_found_total: locations matching no route
//   - staterouter_redirects_total: canonical and RedirectTo redirects
//   - staterouter_dispatch_duration_seconds: dispatches by route and status
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "staterouter",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "matches_total",
			Help:        "Total number of locations matched by route",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		notFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "not_found_total",
			Help:        "Total number of locations matching no route",
			ConstLabels: config.ConstLabels,
		}),

		redirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirects_total",
			Help:        "Total number of redirects to a canonical location",
			ConstLabels: config.ConstLabels,
		}),

		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Dispatch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) recordMatch(route string) {
	if m == nil {
		return
	}

	m.matches.WithLabelValues(route).Inc()
}

func (m *Metrics) recordNotFound() {
	if m == nil {
		return
	}

	m.notFound.Inc()
}

func (m *Metrics) recordRedirect() {
	if m == nil {
		return
	}

	m.redirects.Inc()
}

func (m *Metrics) observeDispatch(route, status string, start time.Time) {
	if m == nil {
		return
	}

	m.dispatchDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}
