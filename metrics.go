package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_reports_http_requests_total",
		Help: "HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitch_reports_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	reportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_reports_generated_total",
		Help: "Reports assembled successfully.",
	})

	pdfsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_reports_pdfs_rendered_total",
		Help: "PDF documents rendered.",
	})

	emailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_reports_emails_sent_total",
		Help: "Report emails delivered to SMTP.",
	})

	emailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_reports_emails_failed_total",
		Help: "Report emails that failed to send.",
	})
)

// metricsHandler serves the Prometheus scrape endpoint.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// observeRequest records one completed HTTP request.
func observeRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
