package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the internship platform
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	VacanciesCreatedTotal    prometheus.Counter
	OffersAcceptedTotal      prometheus.Counter
	ApplicationsSubmitted    prometheus.CounterVec
	MailingsSentTotal        prometheus.CounterVec
	MailingDeliveryFailures  prometheus.Counter
}

// NewRegistry initializes and returns a new Registry with all metrics
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internship_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "internship_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "internship_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		VacanciesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "internship_vacancies_created_total",
				Help: "Total vacancies posted by HR managers",
			},
		),
		OffersAcceptedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "internship_offers_accepted_total",
				Help: "Total mentor offers accepted",
			},
		),
		ApplicationsSubmitted: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internship_applications_submitted_total",
				Help: "Total intern applications submitted by screening outcome",
			},
			[]string{"status"},
		),
		MailingsSentTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internship_mailings_sent_total",
				Help: "Total mailing emails sent by template",
			},
			[]string{"template"},
		),
		MailingDeliveryFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "internship_mailing_delivery_failures_total",
				Help: "Total mailing emails that failed to deliver",
			},
		),
	}
}
