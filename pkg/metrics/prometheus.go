// Package metrics provides Prometheus metrics for the rexbot service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the bot.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Command dispatch metrics
	commandsProcessed *prometheus.CounterVec
	commandErrors     *prometheus.CounterVec
	commandDuration   *prometheus.HistogramVec

	// Raids helper metrics
	scoringDuration prometheus.Histogram
	reportsRendered prometheus.Counter

	// Collaborator metrics
	rosterFetchDuration prometheus.Histogram
	rosterFetchErrors   prometheus.Counter

	// Registry metrics
	registeredUsers  prometheus.Gauge
	registeredGuilds prometheus.Gauge

	// Ops HTTP metrics
	opsRequests        *prometheus.CounterVec
	opsRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rexbot",
		subsystem:        "bot",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.commandsProcessed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "commands_processed_total",
			Help:      "Total number of chat commands processed, by command name",
		},
		[]string{"command"},
	)

	m.commandErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "command_errors_total",
			Help:      "Total number of chat commands that failed, by command name",
		},
		[]string{"command"},
	)

	m.commandDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "command_duration_milliseconds",
			Help:      "Command handling duration in milliseconds, by command name",
			Buckets:   m.histogramBuckets,
		},
		[]string{"command"},
	)

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Raid achievement scoring duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.reportsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_rendered_total",
		Help:      "Total number of raid reports rendered",
	})

	m.rosterFetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_fetch_duration_milliseconds",
		Help:      "Roster provider fetch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rosterFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_fetch_errors_total",
		Help:      "Total number of failed roster provider fetches",
	})

	m.registeredUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registered_users",
		Help:      "Current number of users in the registry",
	})

	m.registeredGuilds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registered_guilds",
		Help:      "Current number of guilds in the registry",
	})

	m.opsRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ops_http_requests_total",
			Help:      "Total number of ops HTTP requests, by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	m.opsRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ops_http_request_duration_milliseconds",
			Help:      "Ops HTTP request duration in milliseconds, by endpoint and method",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method"},
	)
}

// Registry returns the prometheus registry all bot metrics are registered on.
// The ops HTTP server exposes it on /metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}

// RecordCommandProcessed increments the processed counter for a command.
func RecordCommandProcessed(command string) {
	if globalManager.enabled {
		globalManager.commandsProcessed.WithLabelValues(command).Inc()
	}
}

// RecordCommandError increments the error counter for a command.
func RecordCommandError(command string) {
	if globalManager.enabled {
		globalManager.commandErrors.WithLabelValues(command).Inc()
	}
}

// RecordCommandDuration observes the handling duration for a command.
func RecordCommandDuration(command string, ms float64) {
	if globalManager.enabled {
		globalManager.commandDuration.WithLabelValues(command).Observe(ms)
	}
}

// RecordScoringDuration observes one scoring pass over a raid.
func RecordScoringDuration(ms float64) {
	if globalManager.enabled {
		globalManager.scoringDuration.Observe(ms)
	}
}

// RecordReportRendered increments the rendered report counter.
func RecordReportRendered() {
	if globalManager.enabled {
		globalManager.reportsRendered.Inc()
	}
}

// RecordRosterFetchDuration observes a roster provider round trip.
func RecordRosterFetchDuration(ms float64) {
	if globalManager.enabled {
		globalManager.rosterFetchDuration.Observe(ms)
	}
}

// RecordRosterFetchError increments the roster fetch error counter.
func RecordRosterFetchError() {
	if globalManager.enabled {
		globalManager.rosterFetchErrors.Inc()
	}
}

// UpdateRegisteredUsers sets the current registered user gauge.
func UpdateRegisteredUsers(n int) {
	if globalManager.enabled {
		globalManager.registeredUsers.Set(float64(n))
	}
}

// UpdateRegisteredGuilds sets the current registered guild gauge.
func UpdateRegisteredGuilds(n int) {
	if globalManager.enabled {
		globalManager.registeredGuilds.Set(float64(n))
	}
}

// RecordOpsRequest counts one ops HTTP request.
func RecordOpsRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.opsRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordOpsRequestDuration observes one ops HTTP request round trip.
func RecordOpsRequestDuration(endpoint, method string, ms float64) {
	if globalManager.enabled {
		globalManager.opsRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
	}
}
