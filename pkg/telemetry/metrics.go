package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/toaster"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toaster").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for how long toasts are shown.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
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
		Namespace: "toaster",
		Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30, 60, 300},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records toast lifecycle metrics. It implements toaster.Observer.
//
// Metrics collected:
//   - toaster_toasts_mounted_total: toasts mounted, by category
//   - toaster_toasts_removed_total: toasts removed, by category and reason
//   - toaster_toast_shown_seconds: time from add to removal, by reason
//   - toaster_swipes_total: completed drags, by outcome
//   - toaster_store_events_total: store mutations, by kind (WatchStore)
//   - toaster_active_toasts: records in the watched store
type Metrics struct {
	mounted     *prometheus.CounterVec
	removed     *prometheus.CounterVec
	shown       *prometheus.HistogramVec
	swipes      *prometheus.CounterVec
	storeEvents *prometheus.CounterVec
	active      prometheus.Gauge
}

// NewMetrics creates and registers the metrics. Registering twice with
// the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		mounted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_mounted_total",
			Help:        "Total number of toasts mounted",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),

		removed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_removed_total",
			Help:        "Total number of toasts removed",
			ConstLabels: config.ConstLabels,
		}, []string{"category", "reason"}),

		shown: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toast_shown_seconds",
			Help:        "Time a toast was shown before removal in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"reason"}),

		swipes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "swipes_total",
			Help:        "Total number of completed swipe gestures",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		storeEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_events_total",
			Help:        "Total number of toast store mutations",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_toasts",
			Help:        "Number of toasts in the store",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) ToastMounted(rec toast.Record) {
	m.mounted.WithLabelValues(string(rec.Category)).Inc()
}

func (m *Metrics) ToastRemoved(rec toast.Record, reason toaster.RemovalReason, shown time.Duration) {
	m.removed.WithLabelValues(string(rec.Category), reason.String()).Inc()
	m.shown.WithLabelValues(reason.String()).Observe(shown.Seconds())
}

func (m *Metrics) SwipeReleased(_ toast.Record, r gesture.Release) {
	outcome := "reset"
	if r.Dismiss {
		outcome = "dismiss"
	}
	m.swipes.WithLabelValues(outcome).Inc()
}

// WatchStore counts the mutations of store and tracks its size until the
// returned function is called.
func (m *Metrics) WatchStore(store *toast.Store) (stop func()) {
	m.active.Set(float64(store.Len()))
	return store.Subscribe(func(e toast.Event) {
		m.storeEvents.WithLabelValues(e.Kind.String()).Inc()
		switch e.Kind {
		case toast.EventAdded:
			m.active.Inc()
		case toast.EventRemoved:
			m.active.Dec()
		}
	})
}

var _ toaster.Observer = (*Metrics)(nil)
