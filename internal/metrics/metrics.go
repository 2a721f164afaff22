package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "napredele_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_bookings_total",
			Help: "Total number of bookings",
		},
		[]string{"kind", "status"},
	)

	BookingCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
		[]string{"canceled_by"},
	)

	VisitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_visits_total",
			Help: "Total number of recorded visits",
		},
		[]string{"charged"},
	)

	SessionsMaterializedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "napredele_sessions_materialized_total",
			Help: "Sessions generated from recurring events",
		},
	)

	TicketsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_tickets_issued_total",
			Help: "Total number of tickets issued",
		},
		[]string{"kind"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "napredele_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	CacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "napredele_cache_ops_total",
			Help: "Read-cache operations",
		},
		[]string{"key", "op"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(kind, status string) {
	BookingsTotal.WithLabelValues(kind, status).Inc()
}

func RecordBookingCancellation(canceledBy string) {
	BookingCancellationsTotal.WithLabelValues(canceledBy).Inc()
}

func RecordVisit(charged bool) {
	label := "no"
	if charged {
		label = "yes"
	}
	VisitsTotal.WithLabelValues(label).Inc()
}

func RecordSessionsMaterialized(n int) {
	SessionsMaterializedTotal.Add(float64(n))
}

func RecordTicketIssued(kind string) {
	TicketsIssuedTotal.WithLabelValues(kind).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordCacheOp(key, op string) {
	CacheOpsTotal.WithLabelValues(key, op).Inc()
}
