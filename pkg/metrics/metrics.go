package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	BookingTransitions *prometheus.CounterVec
	SlotConflicts      *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
}

// New регистрирует коллекторы в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует коллекторы в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Booking lifecycle transitions by event",
		}, []string{"service", "event"}),

		SlotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_slot_conflicts_total",
			Help: "Rejected writes because the resource was already taken",
		}, []string{"service", "operation"}),

		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Notification dispatch outcomes",
		}, []string{"service", "event", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.BookingTransitions,
		m.SlotConflicts,
		m.Notifications,
	)

	return m
}

// ServiceName имя сервиса, которым помечаются все метрики
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// IncBookingTransition учитывает переход бронирования (create, confirm, cancel, ...)
func (m *Metrics) IncBookingTransition(event string) {
	m.BookingTransitions.WithLabelValues(m.serviceName, event).Inc()
}

// IncSlotConflict учитывает отказ из-за занятого ресурса
func (m *Metrics) IncSlotConflict(operation string) {
	m.SlotConflicts.WithLabelValues(m.serviceName, operation).Inc()
}

// IncNotification учитывает результат отправки уведомления
func (m *Metrics) IncNotification(event, result string) {
	m.Notifications.WithLabelValues(m.serviceName, event, result).Inc()
}

// ObserveDBQuery учитывает длительность и результат запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections выставляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// ObserveHTTPRequest учитывает HTTP запрос по шаблону маршрута
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}
