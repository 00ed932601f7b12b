package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-closures/internal/shared/logger"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Lesson metrics
	lessonRunsTotal       prometheus.Counter
	lessonSectionsTotal   *prometheus.CounterVec
	lessonSectionDuration *prometheus.HistogramVec
	closureCallsTotal     *prometheus.CounterVec

	// System metrics
	uptime prometheus.Gauge

	logger *logger.Logger
}

// New creates a new metrics instance backed by its own registry
func New(logger *logger.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logger.Named("metrics"),
	}

	m.initLessonMetrics()
	m.initSystemMetrics()

	m.logger.Info("Metrics initialized")

	return m
}

// initLessonMetrics initializes lesson-related metrics
func (m *Metrics) initLessonMetrics() {
	factory := promauto.With(m.registry)

	m.lessonRunsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "lesson_runs_total",
			Help: "Total number of lesson runs",
		},
	)

	m.lessonSectionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_sections_total",
			Help: "Total number of executed lesson sections",
		},
		[]string{"section", "status"},
	)

	m.lessonSectionDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lesson_section_duration_seconds",
			Help:    "Lesson section duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"section"},
	)

	m.closureCallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closure_calls_total",
			Help: "Total number of closure invocations",
		},
		[]string{"closure"},
	)
}

// initSystemMetrics initializes system metrics
func (m *Metrics) initSystemMetrics() {
	m.uptime = promauto.With(m.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
}

// Lesson Metrics Methods

// RecordLessonRun records a lesson run
func (m *Metrics) RecordLessonRun() {
	m.lessonRunsTotal.Inc()
}

// RecordSection records a finished lesson section
func (m *Metrics) RecordSection(section string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	m.lessonSectionsTotal.WithLabelValues(section, status).Inc()
	m.lessonSectionDuration.WithLabelValues(section).Observe(duration.Seconds())
}

// RecordClosureCall records one invocation of a named closure
func (m *Metrics) RecordClosureCall(name string) {
	m.closureCallsTotal.WithLabelValues(name).Inc()
}

// LessonRunCounter returns the lesson run counter
func (m *Metrics) LessonRunCounter() prometheus.Counter {
	return m.lessonRunsTotal
}

// SectionCounter returns the section counter for the given labels
func (m *Metrics) SectionCounter(section, status string) prometheus.Counter {
	return m.lessonSectionsTotal.WithLabelValues(section, status)
}

// ClosureCallCounter returns the call counter of a named closure
func (m *Metrics) ClosureCallCounter(name string) prometheus.Counter {
	return m.closureCallsTotal.WithLabelValues(name)
}

// System Metrics Methods

// RecordUptime records the application uptime
func (m *Metrics) RecordUptime(uptime time.Duration) {
	m.uptime.Set(uptime.Seconds())
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler serving this instance's metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMetricsHandler returns a Gin handler for the /metrics endpoint
func (m *Metrics) GinMetricsHandler() gin.HandlerFunc {
	return gin.WrapH(m.Handler())
}
