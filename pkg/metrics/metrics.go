// Package metrics holds the Prometheus collectors of the service.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	dbQueries     *prometheus.HistogramVec
	dbErrors      *prometheus.CounterVec
	dbOpenConns   prometheus.Gauge
	dbInUseConns  prometheus.Gauge
	dbIdleConns   prometheus.Gauge
	bookings      prometheus.Counter
	transitions   *prometheus.CounterVec
	slotConflicts prometheus.Counter
}

// New registers all collectors on reg under the serviceName namespace
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "db_errors_total",
			Help:      "Database errors by operation",
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool",
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use",
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_idle_connections",
			Help:      "Idle connections in the pool",
		}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "booking_transitions_total",
			Help:      "Applied booking status transitions by event",
		}, []string{"event"}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "slot_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken",
		}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbErrors,
		m.dbOpenConns, m.dbInUseConns, m.dbIdleConns,
		m.bookings, m.transitions, m.slotConflicts,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueries.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) SetDBPoolStats(s sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(s.OpenConnections))
	m.dbInUseConns.Set(float64(s.InUse))
	m.dbIdleConns.Set(float64(s.Idle))
}

func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookings.Inc()
}

func (m *Metrics) IncTransition(event string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(event).Inc()
}

func (m *Metrics) IncSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}
