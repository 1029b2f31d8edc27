package render

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/deuce-x/deuce/pkg/element"
)

// MetricsConfig configures the renderer's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "deuce").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
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
		Namespace: "deuce",
		Subsystem: "render",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the renderer's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	mounted   *prometheus.CounterVec
	unmounted *prometheus.CounterVec
	live      *prometheus.GaugeVec
	reports   *prometheus.CounterVec
	discarded *prometheus.CounterVec
	steps     prometheus.Counter
	commits   prometheus.Counter
	errors    *prometheus.CounterVec
}

// NewMetrics registers the renderer metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		mounted:   counter("slots_mounted_total", "Total number of slots mounted", "kind"),
		unmounted: counter("slots_unmounted_total", "Total number of slots unmounted", "kind"),
		live: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "slots_live",
			Help:        "Number of currently mounted slots",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
		reports:   counter("reports_total", "Total number of node list reports forwarded", "kind"),
		discarded: counter("discarded_total", "Asynchronous results dropped because their slot was unmounted", "kind"),
		steps: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stream_steps_total",
			Help:        "Total number of stream values rendered",
			ConstLabels: config.ConstLabels,
		}),
		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of root container updates",
			ConstLabels: config.ConstLabels,
		}),
		errors: counter("errors_total", "Total number of rendering errors", "type"),
	}
}

func (m *Metrics) mount(k element.Kind) {
	if m == nil {
		return
	}
	m.mounted.WithLabelValues(k.String()).Inc()
	m.live.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) unmount(k element.Kind) {
	if m == nil {
		return
	}
	m.unmounted.WithLabelValues(k.String()).Inc()
	m.live.WithLabelValues(k.String()).Dec()
}

func (m *Metrics) report(k element.Kind) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) discard(k element.Kind) {
	if m == nil {
		return
	}
	m.discarded.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) step() {
	if m == nil {
		return
	}
	m.steps.Inc()
}

func (m *Metrics) commit() {
	if m == nil {
		return
	}
	m.commits.Inc()
}

func (m *Metrics) fail(err error) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(errorType(err)).Inc()
}
