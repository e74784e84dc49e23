// Package metrics exposes the prometheus collectors for the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	BookingOutcomes *prometheus.CounterVec
}

func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_create_outcomes_total",
			Help:        "Reservation create attempts by outcome (created, conflict, busy, replayed).",
			ConstLabels: labels,
		}, []string{"outcome"}),
	}
}
