package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	registry *prometheus.Registry
	service  string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec

	PublicSubmissions *prometheus.CounterVec
	SnapshotFailures  *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		service:  serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		PublicSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "public_booking_submissions_total",
			Help: "Public portal booking submissions by final state",
		}, []string{"service", "state"}),

		SnapshotFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_snapshot_fetch_failures_total",
			Help: "Failed collection fetches during dashboard refresh",
		}, []string{"service", "collection"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.PublicSubmissions,
		m.SnapshotFailures,
	)

	return m
}

// Handler HTTP-обработчик для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (нужен в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, route, http.StatusText(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

func (m *Metrics) SetDBConnections(inUse, idle, open int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.service, "in_use").Set(float64(inUse))
	m.DBOpenConnections.WithLabelValues(m.service, "idle").Set(float64(idle))
	m.DBOpenConnections.WithLabelValues(m.service, "open").Set(float64(open))
}

// ObserveSubmission учитывает итоговое состояние попытки публичного бронирования
func (m *Metrics) ObserveSubmission(state string) {
	if m == nil {
		return
	}
	m.PublicSubmissions.WithLabelValues(m.service, state).Inc()
}

func (m *Metrics) ObserveSnapshotFailure(collection string) {
	if m == nil {
		return
	}
	m.SnapshotFailures.WithLabelValues(m.service, collection).Inc()
}
